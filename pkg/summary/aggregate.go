package summary

import (
	"github.com/dkoosis/ciboard/pkg/event"
)

// Aggregate folds events, in order, into a Summary.
//
// Non-doc events add one run to their category and one pass when the outcome
// is event.PassToken; any other outcome is a failed run. Doc events carry an
// already-counted "passed/total" and overwrite the project's doc tally, so the
// last doc event for a project wins.
//
// A malformed event aborts the whole batch: the returned Summary is nil and
// the error unwraps to event.ErrMalformedEvent or event.ErrMalformedOutcome.
func Aggregate(events []event.Event) (*Summary, error) {
	a := newAggregator()
	for i, e := range events {
		if err := a.processEvent(i, e); err != nil {
			return nil, err
		}
	}
	return a.summary, nil
}

type aggregator struct {
	summary *Summary
}

func newAggregator() *aggregator {
	return &aggregator{summary: &Summary{index: make(map[string]*Directory)}}
}

func (a *aggregator) getOrCreate(dir, name string) *Project {
	d, ok := a.summary.index[dir]
	if !ok {
		d = &Directory{Name: dir, index: make(map[string]*Project)}
		a.summary.index[dir] = d
		a.summary.dirs = append(a.summary.dirs, d)
	}
	p, ok := d.index[name]
	if !ok {
		p = &Project{Dir: dir, Name: name}
		d.index[name] = p
		d.projects = append(d.projects, p)
	}
	return p
}

func (a *aggregator) processEvent(i int, e event.Event) error {
	if err := e.Validate(i); err != nil {
		return err
	}
	category, _ := event.ParseCategory(e.Category)

	// Parse before creating the entry so a failed batch leaves nothing behind.
	var passed, total int
	if category == event.Doc {
		var err error
		passed, total, err = event.ParseDocOutcome(e.Outcome)
		if err != nil {
			return &event.Error{Index: i, Field: "event", Err: err}
		}
	}

	p := a.getOrCreate(e.Dir, e.Project)
	t := &p.tallies[category]
	switch category {
	case event.Doc:
		t.Passed, t.Total = passed, total
	default:
		t.Total++
		if e.Outcome == event.PassToken {
			t.Passed++
		}
	}
	return nil
}
