package render

import (
	"fmt"
	"strings"

	"github.com/dkoosis/ciboard/pkg/event"
	"github.com/dkoosis/ciboard/pkg/summary"
)

// Span colors, matching GitHub's Primer palette.
const (
	colorOK     = "#1a7f37"
	colorFailed = "#d1242f"
	colorDimmed = "#6e7781"
)

// Markdown renders a GitHub-flavored markdown table suitable for a CI job summary.
type Markdown struct {
	columns  Columns
	footnote string
}

// NewMarkdown creates a markdown renderer. An empty footnote omits the legend.
func NewMarkdown(columns Columns, footnote string) *Markdown {
	return &Markdown{columns: columns, footnote: footnote}
}

// Render formats the summary as a markdown table followed by the footnote.
func (m *Markdown) Render(s *summary.Summary) string {
	var sb strings.Builder
	writeMarkdownRow(&sb, m.columns.Headers())

	align := make([]string, 0, event.NumCategories+2)
	align = append(align, ":--")
	for range event.NumCategories + 1 {
		align = append(align, ":-:")
	}
	writeMarkdownRow(&sb, align)

	for _, p := range s.Projects() {
		row := make([]string, 0, event.NumCategories+2)
		row = append(row, fmt.Sprintf("**%s**/%s", escapeCell(p.Dir), escapeCell(p.Name)))
		for _, c := range event.Categories {
			row = append(row, markdownCell(c, p.Tally(c)))
		}
		row = append(row, statusEmoji(p.Status()))
		writeMarkdownRow(&sb, row)
	}

	if m.footnote != "" {
		sb.WriteString("\n\n")
		sb.WriteString(strings.TrimRight(m.footnote, "\n"))
		sb.WriteString("\n")
	}
	return sb.String()
}

func writeMarkdownRow(sb *strings.Builder, cells []string) {
	sb.WriteString("| ")
	sb.WriteString(strings.Join(cells, " | "))
	sb.WriteString(" |\n")
}

func markdownCell(c event.Category, t summary.Tally) string {
	if showPlaceholder(c, t) {
		return Placeholder
	}
	numer := colorFailed
	if t.Total > 0 && t.Passed == t.Total {
		numer = colorOK
	}
	return fmt.Sprintf(`**<span style="color: %s">%d</span>** / <span style="color: %s">%d</span>`,
		numer, t.Passed, colorDimmed, t.Total)
}

func statusEmoji(s summary.Status) string {
	switch s {
	case summary.StatusFailing:
		return ":x:"
	case summary.StatusIncomplete:
		return ":warning:"
	case summary.StatusPassWithDocs:
		return ":sparkles:"
	case summary.StatusPass:
		return ":white_check_mark:"
	default:
		return ":thought_balloon:"
	}
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", " ", "\r", " ", "\n", " ")

// escapeCell keeps pipes and line breaks in a label from splitting the table row.
func escapeCell(s string) string {
	return cellEscaper.Replace(s)
}
