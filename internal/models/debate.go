package models

// DebateThesis is one side of the adversarial Bull vs Bear debate.
type DebateThesis struct {
	Points     []string `json:"points"`
	Conviction float64  `json:"conviction"`
}

// Debate holds both theses for a pipeline run. The two sides are
// independent; there are no cross-invariants between them.
type Debate struct {
	Bull DebateThesis `json:"bull"`
	Bear DebateThesis `json:"bear"`
}

// Empty reports whether neither side carries any points.
func (d *Debate) Empty() bool {
	return d == nil || (len(d.Bull.Points) == 0 && len(d.Bear.Points) == 0)
}
