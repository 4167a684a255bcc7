package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/dkoosis/ciboard/pkg/event"
	"github.com/dkoosis/ciboard/pkg/summary"
)

// LLM renders the summary as terse plain text optimized for AI consumption.
// Zero ANSI codes, a SCOPE line, worst rows first.
type LLM struct{}

// NewLLM creates an LLM renderer.
func NewLLM() *LLM {
	return &LLM{}
}

// Render formats the summary for LLM consumption.
func (l *LLM) Render(s *summary.Summary) string {
	var sb strings.Builder
	st := summary.ComputeStats(s)
	sb.WriteString("SCOPE: " + scope(st) + "\n")

	projects := s.Projects()
	if len(projects) == 0 {
		return sb.String()
	}

	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].Status().Severity() < projects[j].Status().Severity()
	})

	labelWidth := 0
	for _, p := range projects {
		labelWidth = max(labelWidth, runewidth.StringWidth(p.Label()))
	}

	sb.WriteString("\n")
	for _, p := range projects {
		sb.WriteString(fmt.Sprintf("%-10s ", statusTag(p.Status())))
		sb.WriteString(runewidth.FillRight(p.Label(), labelWidth))
		for _, c := range event.Categories {
			t := p.Tally(c)
			cell := Placeholder
			if !showPlaceholder(c, t) {
				cell = fmt.Sprintf("%d/%d", t.Passed, t.Total)
			}
			sb.WriteString("  " + c.String() + " " + cell)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func scope(st summary.Stats) string {
	runs := humanize.Comma(int64(st.Runs)) + " runs"
	switch {
	case st.Projects == 0:
		return "EMPTY 0 projects"
	case st.Failing():
		return fmt.Sprintf("FAIL %d of %d projects failing, %s", st.ByStatus[summary.StatusFailing], st.Projects, runs)
	case st.ByStatus[summary.StatusPass]+st.ByStatus[summary.StatusPassWithDocs] == st.Projects:
		return fmt.Sprintf("PASS %d projects, %s", st.Projects, runs)
	default:
		return fmt.Sprintf("WARN %d of %d projects not passing, %s",
			st.Projects-st.ByStatus[summary.StatusPass]-st.ByStatus[summary.StatusPassWithDocs], st.Projects, runs)
	}
}

func statusTag(s summary.Status) string {
	switch s {
	case summary.StatusFailing:
		return "FAIL"
	case summary.StatusIncomplete:
		return "INCOMPLETE"
	case summary.StatusPassWithDocs:
		return "PASS+DOCS"
	case summary.StatusPass:
		return "PASS"
	default:
		return "UNKNOWN"
	}
}
