// Package score holds the pure approval policy over category score maps.
// Nothing here performs I/O; thresholds and category sets are explicit
// configuration so pipeline variants tune data, not logic.
package score

// Default thresholds, out of 20.
const (
	DefaultCriticalThreshold = 17
	DefaultStandardThreshold = 15
	DefaultMeanThreshold     = 16.0
)

// Canonical category names.
const (
	CategoryUserPromptCompliance = "user_prompt_compliance"
	CategoryCodeValidity         = "code_validity"
	CategoryIntegration          = "integration"
	CategoryResponsiveness       = "responsiveness"
	CategoryBestPractices        = "best_practices"
	CategoryAccessibility        = "accessibility"
)

// PolicyConfig names the categories a pipeline scores and the thresholds
// they must clear. A category absent from the score map counts as 0 and
// therefore fails its threshold.
type PolicyConfig struct {
	// CriticalCategories must each score >= CriticalThreshold.
	CriticalCategories []string `yaml:"critical_categories"`
	// StandardCategories must each score >= StandardThreshold.
	StandardCategories []string `yaml:"standard_categories"`

	CriticalThreshold int `yaml:"critical_threshold"`
	StandardThreshold int `yaml:"standard_threshold"`

	// MeanThreshold gates Approved only; NeedsRevision ignores it.
	MeanThreshold float64 `yaml:"mean_threshold"`
}

// DefaultPolicy returns the six-category site review policy: code
// validity and integration are critical, everything else standard.
func DefaultPolicy() PolicyConfig {
	return PolicyConfig{
		CriticalCategories: []string{
			CategoryCodeValidity,
			CategoryIntegration,
		},
		StandardCategories: []string{
			CategoryUserPromptCompliance,
			CategoryResponsiveness,
			CategoryBestPractices,
			CategoryAccessibility,
		},
		CriticalThreshold: DefaultCriticalThreshold,
		StandardThreshold: DefaultStandardThreshold,
		MeanThreshold:     DefaultMeanThreshold,
	}
}

// Categories returns the full category set, critical first.
func (p PolicyConfig) Categories() []string {
	out := make([]string, 0, len(p.CriticalCategories)+len(p.StandardCategories))
	out = append(out, p.CriticalCategories...)
	out = append(out, p.StandardCategories...)
	return out
}

// NeedsRevision reports whether any category falls below its threshold.
func (p PolicyConfig) NeedsRevision(scores map[string]int) bool {
	for _, cat := range p.CriticalCategories {
		if scores[cat] < p.CriticalThreshold {
			return true
		}
	}
	for _, cat := range p.StandardCategories {
		if scores[cat] < p.StandardThreshold {
			return true
		}
	}
	return false
}

// Approved reports whether every category clears its threshold and the
// mean across the policy's categories reaches MeanThreshold.
func (p PolicyConfig) Approved(scores map[string]int) bool {
	if p.NeedsRevision(scores) {
		return false
	}
	return p.Mean(scores) >= p.MeanThreshold
}

// Mean averages the scores of the policy's categories, counting absent
// categories as 0. Returns 0 for an empty category set.
func (p PolicyConfig) Mean(scores map[string]int) float64 {
	cats := p.Categories()
	if len(cats) == 0 {
		return 0
	}
	sum := 0
	for _, cat := range cats {
		sum += scores[cat]
	}
	return float64(sum) / float64(len(cats))
}

// ThresholdFor returns the threshold the named category must clear, or
// 0 for a category the policy does not know.
func (p PolicyConfig) ThresholdFor(category string) int {
	for _, cat := range p.CriticalCategories {
		if cat == category {
			return p.CriticalThreshold
		}
	}
	for _, cat := range p.StandardCategories {
		if cat == category {
			return p.StandardThreshold
		}
	}
	return 0
}
