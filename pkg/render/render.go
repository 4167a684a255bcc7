// Package render provides output renderers for ciboard summaries.
package render

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dkoosis/ciboard/pkg/event"
	"github.com/dkoosis/ciboard/pkg/summary"
)

// Renderer converts a summary to formatted output.
type Renderer interface {
	Render(s *summary.Summary) string
}

// Placeholder stands in for a checker that never ran.
const Placeholder = "-"

// DefaultFootnote explains the checker columns under the markdown table.
const DefaultFootnote = "\\* lib (S): `cargo miri test --lib` (Stacked Borrows)\n" +
	"\\* lib (T): `cargo miri test --lib` with `MIRIFLAGS=-Zmiri-tree-borrows`"

// Columns holds the header labels of the status table.
type Columns struct {
	Name           string `yaml:"name"`
	Release        string `yaml:"release"`
	Doc            string `yaml:"doc"`
	StackedBorrows string `yaml:"stacked_borrows"`
	TreeBorrows    string `yaml:"tree_borrows"`
	Status         string `yaml:"status"`
}

// DefaultColumns returns the standard header labels.
func DefaultColumns() Columns {
	return Columns{
		Name:           "name",
		Release:        "lib",
		Doc:            "doc",
		StackedBorrows: "lib (S)",
		TreeBorrows:    "lib (T)",
		Status:         "status",
	}
}

// Category returns the header label for c.
func (c Columns) Category(cat event.Category) string {
	switch cat {
	case event.Release:
		return c.Release
	case event.Doc:
		return c.Doc
	case event.StackedBorrows:
		return c.StackedBorrows
	case event.TreeBorrows:
		return c.TreeBorrows
	default:
		return cat.String()
	}
}

// Headers returns every label in column order.
func (c Columns) Headers() []string {
	h := make([]string, 0, event.NumCategories+2)
	h = append(h, c.Name)
	for _, cat := range event.Categories {
		h = append(h, c.Category(cat))
	}
	return append(h, c.Status)
}

// Merge fills empty labels in c from def.
func (c Columns) Merge(def Columns) Columns {
	pick := func(v, d string) string {
		if v == "" {
			return d
		}
		return v
	}
	return Columns{
		Name:           pick(c.Name, def.Name),
		Release:        pick(c.Release, def.Release),
		Doc:            pick(c.Doc, def.Doc),
		StackedBorrows: pick(c.StackedBorrows, def.StackedBorrows),
		TreeBorrows:    pick(c.TreeBorrows, def.TreeBorrows),
		Status:         pick(c.Status, def.Status),
	}
}

// HeaderCases lists the accepted values for Cased.
var HeaderCases = []string{"", "upper", "lower", "title"}

// Cased applies a text case ("upper", "lower", "title") to every label.
// Any other value leaves the labels unchanged.
func (c Columns) Cased(mode string) Columns {
	var f func(string) string
	switch strings.ToLower(mode) {
	case "upper":
		f = cases.Upper(language.English).String
	case "lower":
		f = cases.Lower(language.English).String
	case "title":
		f = cases.Title(language.English).String
	default:
		return c
	}
	return Columns{
		Name:           f(c.Name),
		Release:        f(c.Release),
		Doc:            f(c.Doc),
		StackedBorrows: f(c.StackedBorrows),
		TreeBorrows:    f(c.TreeBorrows),
		Status:         f(c.Status),
	}
}

// showPlaceholder reports whether t renders as Placeholder in column c.
// Only checker columns collapse; release and doc always show counts.
func showPlaceholder(c event.Category, t summary.Tally) bool {
	return c.Checker() && t.Empty()
}

// counts formats a tally as "passed / total".
func counts(t summary.Tally) string {
	return fmt.Sprintf("%d / %d", t.Passed, t.Total)
}
