package lint

import (
	"fmt"
	"strings"
)

// AllPassed reports whether every command ran to completion.
func (r Report) AllPassed() bool {
	for _, res := range r.Results {
		if !res.Success {
			return false
		}
	}
	return len(r.Results) > 0
}

// AllFailed reports whether no command ran at all.
func (r Report) AllFailed() bool {
	for _, res := range r.Results {
		if res.Success {
			return false
		}
	}
	return len(r.Results) > 0
}

// FormatForReviewer renders the report section embedded in the reviewer
// prompt. Failed commands are reported as absence of output: the
// reviewer should judge the site, not the toolchain.
func (r Report) FormatForReviewer() string {
	var lines []string
	for _, res := range r.Results {
		if !res.Success {
			continue
		}
		lines = append(lines, fmt.Sprintf("\n%s: ✓ PASS", res.Name))
		if res.Output != "" {
			lines = append(lines, res.Output)
		}
	}

	body := strings.Join(lines, "\n")
	if body == "" {
		return "\nLinter Results:\n  (no output)"
	}
	return "\nLinter Results:\n" + body
}
