package extract

import (
	"regexp"
	"strings"

	"trade-copilot/internal/api"
	"trade-copilot/internal/models"
)

const defaultConviction = 0.5

// Section markers, most specific first. Each pair captures one side's text
// up to the opposite side, the CIO decision, or end of input. An optional
// "SECTION N" prefix covers the numbered agent transcripts.
var (
	bullThesisBlock = regexp.MustCompile(`(?is)(?:SECTION\s*\d+\s*[-–—:]*\s*)?BULL_THESIS\s*:?\s*(.*?)(?:BEAR_THESIS|CIO_DECISION|$)`)
	bearThesisBlock = regexp.MustCompile(`(?is)(?:SECTION\s*\d+\s*[-–—:]*\s*)?BEAR_THESIS\s*:?\s*(.*?)(?:CIO_DECISION|BULL_THESIS|$)`)

	bullSummaryBlock = regexp.MustCompile(`(?is)Bull\s*Summary\s*:?\s*(.*?)(?:Bear\s*Summary|Reasoning|$)`)
	bearSummaryBlock = regexp.MustCompile(`(?is)Bear\s*Summary\s*:?\s*(.*?)(?:Reasoning|Bull\s*Summary|$)`)

	bullGenericBlock = regexp.MustCompile(`(?is)bull\s*(?:case|thesis|advocate|analysis)\s*:?\s*(.*?)(?:bear\s*(?:case|thesis|advocate|analysis)|CIO_DECISION|$)`)
	bearGenericBlock = regexp.MustCompile(`(?is)bear\s*(?:case|thesis|advocate|analysis)\s*:?\s*(.*?)(?:CIO_DECISION|bull\s*(?:case|thesis|advocate|analysis)|$)`)

	convictionLine = regexp.MustCompile(`(?i)conviction\s*\**\s*:\s*\**\s*([\d.]+)`)
	bulletMarker   = regexp.MustCompile(`^[-*•>\d.)\s]+`)
	sectionHeader  = regexp.MustCompile(`(?i)^(Conviction|BULL_THESIS|BEAR_THESIS|CIO_DECISION)`)
)

// DebateResult reconstructs the Bull vs Bear debate. Typed theses win when
// either side is populated; otherwise the sides are cut out of the Debate
// step's output, falling back to the whole reply.
func DebateResult(raw *api.RawDebate, reply string, steps []models.PipelineStep) models.Debate {
	if raw != nil && (raw.Bull.Populated() || raw.Bear.Populated()) {
		return models.Debate{
			Bull: adoptThesis(raw.Bull),
			Bear: adoptThesis(raw.Bear),
		}
	}

	source := ""
	fromStep := false
	if len(steps) > models.StepDebate && strings.TrimSpace(steps[models.StepDebate].Output) != "" {
		source = steps[models.StepDebate].Output
		fromStep = true
	} else if strings.TrimSpace(reply) != "" {
		source = reply
	}
	if source == "" {
		return models.Debate{
			Bull: models.DebateThesis{Conviction: defaultConviction},
			Bear: models.DebateThesis{Conviction: defaultConviction},
		}
	}

	bullText := firstSection(source, bullThesisBlock, bullSummaryBlock, bullGenericBlock)
	bearText := firstSection(source, bearThesisBlock, bearSummaryBlock, bearGenericBlock)

	// A debate output with no recognised markers is still debate text.
	if bullText == "" && bearText == "" && fromStep {
		bullText = source
		bearText = source
	}

	return models.Debate{
		Bull: parseThesis(bullText),
		Bear: parseThesis(bearText),
	}
}

func adoptThesis(t *api.RawThesis) models.DebateThesis {
	thesis := models.DebateThesis{Conviction: defaultConviction}
	if t == nil {
		return thesis
	}
	if len(t.Points) > 0 {
		thesis.Points = t.Points
	}
	if t.Conviction != nil {
		thesis.Conviction = clampConviction(*t.Conviction)
	}
	return thesis
}

func firstSection(source string, patterns ...*regexp.Regexp) string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(source); m != nil && strings.TrimSpace(m[1]) != "" {
			return m[1]
		}
	}
	return ""
}

// parseThesis splits section text into at most six bullet points and a
// conviction score. Lines outside 10..300 characters and known section
// headers are dropped.
func parseThesis(text string) models.DebateThesis {
	thesis := models.DebateThesis{Conviction: defaultConviction}
	if strings.TrimSpace(text) == "" {
		return thesis
	}

	for _, line := range strings.Split(text, "\n") {
		cleaned := stripMD(bulletMarker.ReplaceAllString(strings.TrimSpace(line), ""))
		if len(cleaned) < 10 || len(cleaned) > 300 {
			continue
		}
		if sectionHeader.MatchString(cleaned) {
			continue
		}
		thesis.Points = append(thesis.Points, cleaned)
		if len(thesis.Points) == 6 {
			break
		}
	}

	if m := convictionLine.FindStringSubmatch(text); m != nil {
		if v := parseNumber(m[1]); v != nil {
			thesis.Conviction = clampConviction(*v)
		}
	}

	return thesis
}
