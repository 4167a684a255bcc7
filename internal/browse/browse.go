// Package browse provides an interactive table of a summary for terminals.
package browse

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/dkoosis/ciboard/pkg/event"
	"github.com/dkoosis/ciboard/pkg/render"
	"github.com/dkoosis/ciboard/pkg/summary"
)

const (
	headerLines    = 2 // title row plus its bottom border
	minTableHeight = headerLines + 1
	chromeHeight   = 4 // help line, detail border, spacing
)

// Model is the bubbletea model for the project browser.
type Model struct {
	table    table.Model
	projects []*summary.Project
	theme    render.Theme
	detail   bool
	width    int
}

// New builds a browser over every project in s.
func New(s *summary.Summary, theme render.Theme, columns render.Columns) Model {
	projects := s.Projects()
	rows := make([]table.Row, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, row(p, theme))
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	styles.Selected = theme.Primary.Bold(true)

	// Styles go first: the table subtracts the header from the height.
	t := table.New(
		table.WithColumns(tableColumns(columns, rows)),
		table.WithRows(rows),
		table.WithStyles(styles),
		table.WithFocused(true),
		table.WithHeight(max(len(rows)+headerLines, minTableHeight)),
	)

	return Model{
		table:    t,
		projects: projects,
		theme:    theme,
	}
}

// Selected returns the project under the cursor, or nil for an empty summary.
func (m Model) Selected() *summary.Project {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.projects) {
		return nil
	}
	return m.projects[i]
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.detail {
				m.detail = false
				return m, nil
			}
			return m, tea.Quit
		case "enter", " ":
			m.detail = !m.detail
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		h := msg.Height - chromeHeight - detailHeight
		h = min(h, len(m.projects)+headerLines)
		m.table.SetHeight(max(h, minTableHeight))
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if len(m.projects) == 0 {
		return m.theme.Muted.Render("no events") + "\n" + m.help()
	}
	var b strings.Builder
	b.WriteString(m.table.View())
	b.WriteString("\n")
	if m.detail {
		b.WriteString(m.detailView())
		b.WriteString("\n")
	}
	b.WriteString(m.help())
	return b.String()
}

// detailHeight is the row count of the detail pane including its border.
const detailHeight = event.NumCategories + 4

func (m Model) detailView() string {
	p := m.Selected()
	if p == nil {
		return ""
	}
	icon, style := m.theme.StatusIcon(p.Status())

	var lines []string
	lines = append(lines, m.theme.Bold.Render(p.Label())+"  "+style.Render(icon+" "+p.Status().String()))
	for _, c := range event.Categories {
		t := p.Tally(c)
		label := fmt.Sprintf("%-16s", c.String())
		var detail string
		switch {
		case c.Checker() && t.Empty():
			detail = m.theme.Muted.Render("not run")
		case t.Failing():
			detail = m.theme.Error.Render(fmt.Sprintf("%d / %d  (%d failed)", t.Passed, t.Total, t.Total-t.Passed))
		case !t.Complete():
			detail = m.theme.Warning.Render(fmt.Sprintf("%d / %d", t.Passed, t.Total))
		default:
			detail = m.theme.Success.Render(fmt.Sprintf("%d / %d", t.Passed, t.Total))
		}
		lines = append(lines, "  "+label+detail)
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("242")).
		Padding(0, 1)
	return box.Render(strings.Join(lines, "\n"))
}

func (m Model) help() string {
	b := m.theme.Icons.Bullet
	return m.theme.Muted.Render("↑/↓ navigate " + b + " enter details " + b + " q quit")
}

func row(p *summary.Project, theme render.Theme) table.Row {
	r := make(table.Row, 0, event.NumCategories+2)
	r = append(r, p.Label())
	for _, c := range event.Categories {
		t := p.Tally(c)
		if c.Checker() && t.Empty() {
			r = append(r, render.Placeholder)
			continue
		}
		r = append(r, fmt.Sprintf("%d / %d", t.Passed, t.Total))
	}
	icon, _ := theme.StatusIcon(p.Status())
	return append(r, icon+" "+p.Status().String())
}

func tableColumns(columns render.Columns, rows []table.Row) []table.Column {
	headers := columns.Headers()
	cols := make([]table.Column, len(headers))
	for i, h := range headers {
		w := runewidth.StringWidth(h)
		for _, r := range rows {
			if cw := runewidth.StringWidth(r[i]); cw > w {
				w = cw
			}
		}
		cols[i] = table.Column{Title: h, Width: w}
	}
	return cols
}

// Run starts the browser on the controlling terminal and blocks until the
// user quits or ctx is cancelled.
func Run(ctx context.Context, s *summary.Summary, theme render.Theme, columns render.Columns, out io.Writer) error {
	p := tea.NewProgram(
		New(s, theme, columns),
		tea.WithContext(ctx),
		tea.WithOutput(out),
		tea.WithInputTTY(),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}
