// Package extract reconstructs structured trade, pipeline, and debate data
// from mixed typed and free-form pipeline payloads. Typed fields always win;
// regular-expression extraction over the concatenated reply text fills the
// gaps.
package extract

import (
	"regexp"
	"strings"

	"trade-copilot/internal/api"
)

var mdMarkers = regexp.MustCompile(`\*+`)

// stripMD removes markdown bold markers and surrounding whitespace. Agent
// replies routinely wrap field labels in **bold**.
func stripMD(s string) string {
	return strings.TrimSpace(mdMarkers.ReplaceAllString(s, ""))
}

// BuildCorpus concatenates the reply with every non-empty step output,
// joined by blank lines. Evidence present only in per-step outputs stays
// discoverable this way.
func BuildCorpus(reply string, steps []api.RawStep) string {
	parts := make([]string, 0, len(steps)+1)
	if strings.TrimSpace(reply) != "" {
		parts = append(parts, reply)
	}
	for _, s := range steps {
		if strings.TrimSpace(s.Output) != "" {
			parts = append(parts, s.Output)
		}
	}
	return strings.Join(parts, "\n\n")
}

// fieldValue returns the first "Key: value" match for the label pattern,
// markdown-stripped. The label pattern must not contain capture groups.
func fieldValue(corpus, labelPattern string) string {
	re := regexp.MustCompile(`(?i)\*{0,2}(?:` + labelPattern + `)\*{0,2}[ \t]*:[ \t]*([^\n]+)`)
	m := re.FindStringSubmatch(corpus)
	if m == nil {
		return ""
	}
	return stripMD(m[1])
}

// blockLines collects the lines following a bare "Label:" up to a blank
// line or a line starting with an uppercase letter.
func blockLines(corpus, labelPattern string) []string {
	re := regexp.MustCompile(`(?i)\*{0,2}(?:` + labelPattern + `)\*{0,2}[ \t]*:[ \t]*\n`)
	loc := re.FindStringIndex(corpus)
	if loc == nil {
		return nil
	}
	var collected []string
	for _, line := range strings.Split(corpus[loc[1]:], "\n") {
		trimmed := stripMD(line)
		if trimmed == "" {
			break
		}
		if r := trimmed[0]; r >= 'A' && r <= 'Z' {
			break
		}
		collected = append(collected, trimmed)
	}
	return collected
}

// blockAfter flattens blockLines to a single space-separated string.
func blockAfter(corpus, labelPattern string) string {
	return strings.Join(blockLines(corpus, labelPattern), " ")
}
