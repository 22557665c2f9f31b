package score

import (
	"fmt"
	"sort"
	"strings"
)

// DetectRegression compares the current score map against the previous
// iteration's. For every category present in both whose score dropped it
// records "{category}: {previous} -> {current} (-{diff})"; findings are
// joined with ", " and prefixed "Score decreased in: ". Returns
// ok=false when no shared category decreased. Categories missing from
// either side are ignored.
func DetectRegression(current, previous map[string]int) (string, bool) {
	cats := make([]string, 0, len(current))
	for cat := range current {
		if _, shared := previous[cat]; shared {
			cats = append(cats, cat)
		}
	}
	sort.Strings(cats)

	var findings []string
	for _, cat := range cats {
		prev, cur := previous[cat], current[cat]
		if cur < prev {
			findings = append(findings, fmt.Sprintf("%s: %d -> %d (-%d)", cat, prev, cur, prev-cur))
		}
	}
	if len(findings) == 0 {
		return "", false
	}
	return "Score decreased in: " + strings.Join(findings, ", "), true
}
