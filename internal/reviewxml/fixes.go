package reviewxml

import (
	"regexp"
	"strings"
)

var (
	fixesBlockPattern = regexp.MustCompile(`(?s)<fixes_applied>(.*?)</fixes_applied>`)
	fixItemPattern    = regexp.MustCompile(`(?s)<fix>(.*?)</fix>`)

	// Heuristic fallbacks for agents that narrate their fixes instead of
	// emitting the block: numbered then bulleted lines starting with a
	// past-tense change verb.
	numberedFixPattern = regexp.MustCompile(`\d+\.\s+((?:Fixed|Added|Updated|Removed|Corrected|Improved)[^.]+\.)`)
	bulletFixPattern   = regexp.MustCompile(`[-*]\s+((?:Fixed|Added|Updated|Removed|Corrected|Improved)[^.\n]+)`)
)

// ExtractFixes pulls the list of applied fixes out of a revision agent's
// free-text response. The canonical <fixes_applied> block wins; failing
// that, numbered then bulleted verb lines are matched. Nothing matching
// is not an error, some passes legitimately report no net change.
func ExtractFixes(response string) []string {
	if m := fixesBlockPattern.FindStringSubmatch(response); m != nil {
		var fixes []string
		for _, item := range fixItemPattern.FindAllStringSubmatch(m[1], -1) {
			if fix := strings.TrimSpace(item[1]); fix != "" {
				fixes = append(fixes, fix)
			}
		}
		if len(fixes) > 0 {
			return fixes
		}
	}

	for _, pattern := range []*regexp.Regexp{numberedFixPattern, bulletFixPattern} {
		matches := pattern.FindAllStringSubmatch(response, -1)
		if len(matches) == 0 {
			continue
		}
		fixes := make([]string, 0, len(matches))
		for _, m := range matches {
			fixes = append(fixes, strings.TrimSpace(m[1]))
		}
		return fixes
	}
	return nil
}
