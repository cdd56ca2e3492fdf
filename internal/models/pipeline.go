package models

// StepStatus represents the state of one pipeline step.
type StepStatus string

const (
	StepPending  StepStatus = "pending"
	StepRunning  StepStatus = "running"
	StepComplete StepStatus = "complete"
	StepFlagged  StepStatus = "flagged"
)

// Rank orders statuses for monotonic upgrades. A step's status never moves
// to a lower rank within a single run.
func (s StepStatus) Rank() int {
	switch s {
	case StepPending:
		return 0
	case StepRunning:
		return 1
	case StepComplete:
		return 2
	case StepFlagged:
		return 3
	default:
		return 0
	}
}

// Terminal reports whether the step finished (complete or flagged).
func (s StepStatus) Terminal() bool {
	return s == StepComplete || s == StepFlagged
}

// PipelineStep is one of the seven fixed workspace steps.
type PipelineStep struct {
	Name     string     `json:"name"`
	Status   StepStatus `json:"status"`
	Summary  string     `json:"summary,omitempty"`
	Output   string     `json:"output,omitempty"`
	Duration string     `json:"duration,omitempty"`
}

// Fixed step indices. The order mirrors the server pipeline.
const (
	StepRegime = iota
	StepScanner
	StepDividend
	StepDebate
	StepExecutor
	StepPortfolio
	StepAutonomous
	StepCount
)

// StepNames lists the seven pipeline steps in fixed order.
var StepNames = [StepCount]string{
	"Regime Analyst",
	"Stock Scanner",
	"Dividend Scanner",
	"Debate (Bull vs Bear)",
	"Trade Executor",
	"Portfolio Manager",
	"Autonomous Flow",
}

// NewPendingSteps returns the seven steps, all pending.
func NewPendingSteps() []PipelineStep {
	steps := make([]PipelineStep, StepCount)
	for i, name := range StepNames {
		steps[i] = PipelineStep{Name: name, Status: StepPending}
	}
	return steps
}

// CompletedCount counts terminal (complete or flagged) steps for the
// pipeline header counter.
func CompletedCount(steps []PipelineStep) int {
	n := 0
	for _, s := range steps {
		if s.Status.Terminal() {
			n++
		}
	}
	return n
}
