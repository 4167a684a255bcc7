// Package event defines the CI test-result events ciboard consumes and
// decodes them from JSON, NDJSON, and YAML input.
package event

import (
	"fmt"
	"strconv"
	"strings"
)

// PassToken is the outcome that marks a non-doc event as passed.
// Any other token counts as a failure.
const PassToken = "ok"

// Event is one reported test outcome.
type Event struct {
	Dir      string `json:"dir" yaml:"dir"`
	Project  string `json:"crate" yaml:"crate"`
	Category string `json:"type" yaml:"type"`
	Outcome  string `json:"event" yaml:"event"` // "ok", a failure token, or "passed/total" for doc
}

// Category identifies which test suite produced an event.
type Category int

const (
	Release Category = iota
	Doc
	StackedBorrows
	TreeBorrows

	// NumCategories is the size of the enumeration.
	NumCategories = int(TreeBorrows) + 1
)

// Categories lists every category in column order.
var Categories = [NumCategories]Category{Release, Doc, StackedBorrows, TreeBorrows}

// String returns the wire token for c.
func (c Category) String() string {
	switch c {
	case Release:
		return "release"
	case Doc:
		return "doc"
	case StackedBorrows:
		return "stacked-borrows"
	case TreeBorrows:
		return "tree-borrows"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Optional reports whether a project can be fully passing without c having run.
func (c Category) Optional() bool {
	return c != Release
}

// Checker reports whether c is one of the memory-model checker runs.
func (c Category) Checker() bool {
	return c == StackedBorrows || c == TreeBorrows
}

// ParseCategory maps a wire token to its Category.
func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(s) {
	case "release":
		return Release, true
	case "doc", "documentation":
		return Doc, true
	case "stacked-borrows", "checker-variant-a":
		return StackedBorrows, true
	case "tree-borrows", "checker-variant-b":
		return TreeBorrows, true
	default:
		return 0, false
	}
}

// ParseDocOutcome decodes a doc outcome of the form "passed/total".
func ParseDocOutcome(s string) (passed, total int, err error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q is not passed/total", ErrMalformedOutcome, s)
	}
	passed, err = parseCount(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q: passed: %v", ErrMalformedOutcome, s, err)
	}
	total, err = parseCount(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q: total: %v", ErrMalformedOutcome, s, err)
	}
	return passed, total, nil
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative count %d", n)
	}
	return n, nil
}

// Validate checks that the labels of e are set and the category is known.
// index is the event's position in its batch and is carried into the error.
// An empty outcome is valid: it counts as a run that did not pass. Whether the
// outcome key was present at all is checked by the decoders.
func (e Event) Validate(index int) error {
	switch {
	case e.Dir == "":
		return missing(index, "dir")
	case e.Project == "":
		return missing(index, "crate")
	case e.Category == "":
		return missing(index, "type")
	}
	if _, ok := ParseCategory(e.Category); !ok {
		return &Error{Index: index, Field: "type", Err: fmt.Errorf("%w: unknown category %q", ErrMalformedEvent, e.Category)}
	}
	return nil
}

func missing(index int, field string) error {
	return &Error{Index: index, Field: field, Err: fmt.Errorf("%w: missing field", ErrMalformedEvent)}
}
