package reviewxml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webcraft-agents/webcraft/internal/models"
)

var fiveCategories = []string{
	"code_validity", "integration", "responsiveness", "best_practices", "accessibility",
}

func scoresXML(overrides map[string]string) string {
	values := map[string]string{
		"code_validity":  "18",
		"integration":    "17",
		"responsiveness": "16",
		"best_practices": "15",
		"accessibility":  "15",
	}
	for k, v := range overrides {
		values[k] = v
	}
	out := "<review_scores>"
	for _, cat := range fiveCategories {
		if v, ok := values[cat]; ok {
			out += "<" + cat + "><score>" + v + "</score></" + cat + ">"
		}
	}
	return out + "</review_scores>"
}

func TestExtractTag(t *testing.T) {
	t.Run("first open rightmost close", func(t *testing.T) {
		content := "noise <review_scores>a</review_scores> mid <review_scores>b</review_scores> tail"
		got := ExtractTag(content, "review_scores")
		assert.Equal(t, "<review_scores>a</review_scores> mid <review_scores>b</review_scores>", got)
	})

	t.Run("generic fallback when tag absent", func(t *testing.T) {
		content := "preamble <other>payload</other> trailing"
		assert.Equal(t, "<other>payload</other>", ExtractTag(content, "review_scores"))
	})

	t.Run("no markup returns input unchanged", func(t *testing.T) {
		content := "just prose, no markup at all"
		assert.Equal(t, content, ExtractTag(content, "review_scores"))
	})
}

func TestParseScores(t *testing.T) {
	t.Run("well formed five categories", func(t *testing.T) {
		scores, err := ParseScores(scoresXML(nil), fiveCategories)
		require.NoError(t, err)
		require.Len(t, scores, 5)
		assert.Equal(t, models.CategoryScore{Name: "code_validity", Score: 18}, scores[0])
		assert.Equal(t, models.CategoryScore{Name: "accessibility", Score: 15}, scores[4])
	})

	t.Run("whitespace around score tolerated", func(t *testing.T) {
		scores, err := ParseScores(scoresXML(map[string]string{"integration": "\n  19\n  "}), fiveCategories)
		require.NoError(t, err)
		assert.Equal(t, 19, scores[1].Score)
	})

	t.Run("missing category fails", func(t *testing.T) {
		xml := "<review_scores><code_validity><score>18</score></code_validity></review_scores>"
		_, err := ParseScores(xml, fiveCategories)
		require.Error(t, err)
		assert.True(t, IsSchemaError(err))
		assert.Contains(t, err.Error(), "integration")
	})

	t.Run("out of range score fails", func(t *testing.T) {
		_, err := ParseScores(scoresXML(map[string]string{"responsiveness": "25"}), fiveCategories)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "between 0 and 20")
	})

	t.Run("non numeric score fails", func(t *testing.T) {
		_, err := ParseScores(scoresXML(map[string]string{"accessibility": "abc"}), fiveCategories)
		require.Error(t, err)
		assert.True(t, IsSchemaError(err))
		assert.Contains(t, err.Error(), "invalid score format")
	})

	t.Run("wrong root element fails", func(t *testing.T) {
		_, err := ParseScores("<scores><code_validity><score>18</score></code_validity></scores>", fiveCategories)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "review_scores")
	})

	t.Run("malformed markup fails closed", func(t *testing.T) {
		_, err := ParseScores("<review_scores><code_validity>", fiveCategories)
		require.Error(t, err)
		assert.True(t, IsSchemaError(err))
	})
}

func TestParseTasks(t *testing.T) {
	const valid = `<revision_tasks>
  <summary>Navigation and contrast problems remain.</summary>
  <tasks>
    <task>
      <files>index.html, styles.css</files>
      <description>Fix the broken nav link targets</description>
      <priority>critical</priority>
    </task>
    <task>
      <files>styles.css</files>
      <description>Raise body text contrast</description>
    </task>
  </tasks>
</revision_tasks>`

	t.Run("valid block", func(t *testing.T) {
		summary, tasks, err := ParseTasks(valid, TaskTag)
		require.NoError(t, err)
		assert.Equal(t, "Navigation and contrast problems remain.", summary)
		require.Len(t, tasks, 2)
		assert.Equal(t, []string{"index.html", "styles.css"}, tasks[0].Files)
		assert.Equal(t, models.PriorityCritical, tasks[0].Priority)
		assert.Equal(t, models.PriorityMedium, tasks[1].Priority)
	})

	t.Run("empty task list is legal", func(t *testing.T) {
		summary, tasks, err := ParseTasks("<review><summary>Looks good.</summary><tasks></tasks></review>", ReviewTag)
		require.NoError(t, err)
		assert.Equal(t, "Looks good.", summary)
		assert.Empty(t, tasks)
	})

	t.Run("missing summary fails", func(t *testing.T) {
		_, _, err := ParseTasks("<revision_tasks><tasks></tasks></revision_tasks>", TaskTag)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "summary")
	})

	t.Run("task without description fails", func(t *testing.T) {
		xml := "<revision_tasks><summary>s</summary><tasks><task><files>a.css</files></task></tasks></revision_tasks>"
		_, _, err := ParseTasks(xml, TaskTag)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "description")
	})

	t.Run("unknown priority fails", func(t *testing.T) {
		xml := "<revision_tasks><summary>s</summary><tasks><task><description>d</description><priority>URGENT</priority></task></tasks></revision_tasks>"
		_, _, err := ParseTasks(xml, TaskTag)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "URGENT")
	})
}

func TestExtractFixes(t *testing.T) {
	t.Run("canonical block", func(t *testing.T) {
		response := `Work complete.
<fixes_applied>
  <fix>Fixed nav link hrefs</fix>
  <fix>Added alt text to hero image</fix>
</fixes_applied>`
		assert.Equal(t,
			[]string{"Fixed nav link hrefs", "Added alt text to hero image"},
			ExtractFixes(response))
	})

	t.Run("numbered fallback", func(t *testing.T) {
		response := "Summary:\n1. Fixed the mobile breakpoint in styles.css.\n2. Updated the contact form validation.\n"
		fixes := ExtractFixes(response)
		require.Len(t, fixes, 2)
		assert.Contains(t, fixes[0], "mobile breakpoint")
	})

	t.Run("bullet fallback", func(t *testing.T) {
		response := "- Fixed footer overflow\n- Improved heading hierarchy\n"
		assert.Equal(t, []string{"Fixed footer overflow", "Improved heading hierarchy"}, ExtractFixes(response))
	})

	t.Run("no fixes reported", func(t *testing.T) {
		assert.Nil(t, ExtractFixes("Everything already satisfied the tasks, no changes made."))
	})

	t.Run("empty block falls through to heuristics", func(t *testing.T) {
		response := "<fixes_applied></fixes_applied>\n1. Fixed the carousel timing bug."
		fixes := ExtractFixes(response)
		require.Len(t, fixes, 1)
	})
}
