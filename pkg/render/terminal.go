package render

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/dkoosis/ciboard/pkg/event"
	"github.com/dkoosis/ciboard/pkg/summary"
)

const (
	columnGap    = 2
	minNameWidth = 12
)

// Terminal renders the summary as a styled, aligned table via lipgloss.
type Terminal struct {
	theme   Theme
	width   int
	columns Columns
}

// NewTerminal creates a terminal renderer with the given theme.
func NewTerminal(theme Theme, width int, columns Columns) *Terminal {
	if width <= 0 {
		width = 80
	}
	return &Terminal{theme: theme, width: width, columns: columns}
}

// Render formats the summary for terminal display.
func (t *Terminal) Render(s *summary.Summary) string {
	projects := s.Projects()

	// Column widths are measured on plain text; styling is applied after padding.
	widths := make([]int, event.NumCategories)
	for i, c := range event.Categories {
		widths[i] = runewidth.StringWidth(t.columns.Category(c))
		for _, p := range projects {
			if w := runewidth.StringWidth(plainCell(c, p.Tally(c))); w > widths[i] {
				widths[i] = w
			}
		}
	}
	statusWidth := runewidth.StringWidth(t.columns.Status)
	for _, p := range projects {
		if w := runewidth.StringWidth(p.Status().String()); w > statusWidth {
			statusWidth = w
		}
	}

	nameWidth := runewidth.StringWidth(t.columns.Name)
	for _, p := range projects {
		if w := runewidth.StringWidth(p.Label()); w > nameWidth {
			nameWidth = w
		}
	}
	fixed := 4 + statusWidth // indent, icon, space before name
	for _, w := range widths {
		fixed += columnGap + w
	}
	if maxName := t.width - fixed - columnGap; nameWidth > maxName {
		nameWidth = max(maxName, minNameWidth)
	}

	var sb strings.Builder
	sb.WriteString("    ")
	sb.WriteString(t.theme.Bold.Render(runewidth.FillRight(t.columns.Name, nameWidth)))
	for i, c := range event.Categories {
		sb.WriteString(strings.Repeat(" ", columnGap))
		sb.WriteString(t.theme.Bold.Render(padLeft(t.columns.Category(c), widths[i])))
	}
	sb.WriteString(strings.Repeat(" ", columnGap))
	sb.WriteString(t.theme.Bold.Render(t.columns.Status))
	sb.WriteString("\n")

	for _, p := range projects {
		status := p.Status()
		icon, style := t.theme.StatusIcon(status)
		sb.WriteString("  ")
		sb.WriteString(style.Render(icon))
		sb.WriteString(" ")
		label := runewidth.Truncate(p.Label(), nameWidth, "…")
		if rest, ok := strings.CutPrefix(label, p.Dir+"/"); ok {
			sb.WriteString(t.theme.Muted.Render(p.Dir+"/") + rest)
		} else {
			sb.WriteString(label)
		}
		sb.WriteString(strings.Repeat(" ", max(nameWidth-runewidth.StringWidth(label), 0)))
		for i, c := range event.Categories {
			sb.WriteString(strings.Repeat(" ", columnGap))
			sb.WriteString(t.styledCell(c, p.Tally(c), widths[i]))
		}
		sb.WriteString(strings.Repeat(" ", columnGap))
		sb.WriteString(style.Render(status.String()))
		sb.WriteString("\n")
	}

	if len(projects) > 0 {
		sb.WriteString("\n")
		sb.WriteString(t.footer(summary.ComputeStats(s)))
	}
	return sb.String()
}

func (t *Terminal) styledCell(c event.Category, tally summary.Tally, width int) string {
	plain := plainCell(c, tally)
	pad := strings.Repeat(" ", max(width-runewidth.StringWidth(plain), 0))
	if showPlaceholder(c, tally) {
		return pad + t.theme.Muted.Render(Placeholder)
	}
	numer := t.theme.Error
	if tally.Total > 0 && tally.Complete() {
		numer = t.theme.Success
	}
	return pad + numer.Render(fmt.Sprint(tally.Passed)) + t.theme.Muted.Render(fmt.Sprintf(" / %d", tally.Total))
}

func (t *Terminal) footer(st summary.Stats) string {
	parts := []string{fmt.Sprintf("%d projects", st.Projects)}
	for _, status := range summary.Statuses {
		n := st.ByStatus[status]
		if n == 0 {
			continue
		}
		_, style := t.theme.StatusIcon(status)
		parts = append(parts, style.Render(fmt.Sprintf("%d %s", n, status)))
	}
	parts = append(parts, t.theme.Muted.Render(humanize.Comma(int64(st.Runs))+" runs"))
	sep := " " + t.theme.Icons.Bullet + " "
	return "  " + strings.Join(parts, sep) + "\n"
}

func plainCell(c event.Category, t summary.Tally) string {
	if showPlaceholder(c, t) {
		return Placeholder
	}
	return counts(t)
}

func padLeft(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", width-w) + s
}
