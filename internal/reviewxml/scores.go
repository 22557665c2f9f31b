package reviewxml

import (
	"strconv"

	"github.com/webcraft-agents/webcraft/internal/models"
)

const scoresRootTag = "review_scores"

// ScoreTag is the tag name callers pass to ExtractTag for score output.
const ScoreTag = scoresRootTag

// ParseScores validates a <review_scores> block against the required
// category set. Every category must be present as a child element whose
// <score> child parses to an integer in 0..20. The result preserves the
// order of required.
func ParseScores(xmlContent string, required []string) ([]models.CategoryScore, error) {
	root, err := parseElement(xmlContent)
	if err != nil {
		return nil, err
	}
	if root.tag != scoresRootTag {
		return nil, schemaErrorf("root element must be '%s', found '%s'", scoresRootTag, root.tag)
	}

	scores := make([]models.CategoryScore, 0, len(required))
	for _, category := range required {
		categoryElem := root.child(category)
		if categoryElem == nil {
			return nil, schemaErrorf("missing required category: %s", category)
		}
		raw := categoryElem.childText("score")
		if raw == "" {
			return nil, schemaErrorf("missing score for category: %s", category)
		}
		score, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return nil, schemaErrorf("invalid score format for %s: %q", category, raw)
		}
		if score < 0 || score > 20 {
			return nil, schemaErrorf("score for %s must be between 0 and 20, got %d", category, score)
		}
		scores = append(scores, models.CategoryScore{Name: category, Score: score})
	}
	return scores, nil
}
