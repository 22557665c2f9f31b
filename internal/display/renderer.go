package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/term"

	"github.com/webcraft-agents/webcraft/internal/models"
	"github.com/webcraft-agents/webcraft/internal/score"
)

// Renderer writes loop progress to a terminal.
type Renderer struct {
	out        io.Writer
	styles     Styles
	mdRenderer *glamour.TermRenderer
}

// NewRenderer creates a renderer writing to out. Markdown rendering
// falls back to plain text when glamour cannot initialize.
func NewRenderer(out io.Writer, noColor bool) *Renderer {
	styles := DefaultStyles()
	if noColor {
		styles = NoColorStyles()
	}

	r := &Renderer{out: out, styles: styles}
	if !noColor {
		width := 80
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			width = w
		}
		md, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err == nil {
			r.mdRenderer = md
		}
	}
	return r
}

// IterationBanner prints the start-of-pass separator.
func (r *Renderer) IterationBanner(iteration, maxIterations int) {
	line := fmt.Sprintf("══════ Review Iteration %d of %d ══════", iteration, maxIterations)
	fmt.Fprintln(r.out, r.styles.Banner.Render(line))
}

// ScoreReport prints per-category scores against their thresholds, plus
// the mean and any regression warning.
func (r *Renderer) ScoreReport(scores map[string]int, policy score.PolicyConfig, regression string) {
	for _, category := range policy.Categories() {
		value := scores[category]
		threshold := policy.ThresholdFor(category)
		line := fmt.Sprintf("  %-24s %2d / 20 (need %d)", category, value, threshold)
		if value >= threshold {
			fmt.Fprintln(r.out, r.styles.ScorePass.Render(line))
		} else {
			fmt.Fprintln(r.out, r.styles.ScoreFail.Render(line))
		}
	}
	fmt.Fprintln(r.out, r.styles.Dim.Render(fmt.Sprintf("  mean: %.1f (need %.1f)", policy.Mean(scores), policy.MeanThreshold)))
	if regression != "" {
		fmt.Fprintln(r.out, r.styles.Warning.Render("  ⚠ "+regression))
	}
}

// TaskTable prints the generated revision tasks as a priority-colored
// table.
func (r *Renderer) TaskTable(summary string, tasks []models.Task) {
	if summary != "" {
		fmt.Fprintln(r.out, r.styles.Dim.Render(summary))
	}
	if len(tasks) == 0 {
		fmt.Fprintln(r.out, r.styles.Dim.Render("(no revision tasks)"))
		return
	}

	table := tablewriter.NewTable(r.out,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Lines:      tw.LinesNone,
				Separators: tw.SeparatorsNone,
			},
		}),
		tablewriter.WithPadding(tw.Padding{Left: "", Right: "  "}),
	)
	table.Header([]string{"#", "Priority", "Files", "Description"})
	for i, task := range tasks {
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			priorityLabel(task.Priority),
			strings.Join(task.Files, ", "),
			task.Description,
		})
	}
	table.Render()
}

// SessionResult prints the terminal state of the loop.
func (r *Renderer) SessionResult(approved bool, iterations int, finalScores map[string]int, policy score.PolicyConfig, summary string) {
	if approved {
		fmt.Fprintln(r.out, r.styles.Approved.Render(fmt.Sprintf("✓ Approved after %d iteration(s)", iterations)))
	} else {
		fmt.Fprintln(r.out, r.styles.Unresolved.Render(fmt.Sprintf("⚠ Not approved after %d iteration(s); needs manual follow-up", iterations)))
	}
	if len(finalScores) > 0 {
		r.ScoreReport(finalScores, policy, "")
	}
	if summary != "" {
		r.Markdown(summary)
	}
}

// Markdown renders text through glamour, falling back to plain output.
func (r *Renderer) Markdown(text string) {
	if r.mdRenderer != nil {
		if rendered, err := r.mdRenderer.Render(text); err == nil {
			fmt.Fprint(r.out, rendered)
			return
		}
	}
	fmt.Fprintln(r.out, text)
}

var (
	criticalPriority = color.New(color.FgHiRed, color.Bold).SprintFunc()
	highPriority     = color.New(color.FgHiRed).SprintFunc()
	mediumPriority   = color.New(color.FgHiYellow).SprintFunc()
	lowPriority      = color.New(color.FgHiBlue).SprintFunc()
)

func priorityLabel(p models.TaskPriority) string {
	switch p {
	case models.PriorityCritical:
		return criticalPriority(string(p))
	case models.PriorityHigh:
		return highPriority(string(p))
	case models.PriorityMedium:
		return mediumPriority(string(p))
	case models.PriorityLow:
		return lowPriority(string(p))
	default:
		return string(p)
	}
}
