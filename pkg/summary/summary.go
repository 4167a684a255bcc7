// Package summary folds a batch of CI events into per-project tallies.
package summary

import "github.com/dkoosis/ciboard/pkg/event"

// Tally counts runs of one category for one project.
type Tally struct {
	Passed int `json:"passed"`
	Total  int `json:"total"`
}

// Empty reports whether the category never ran.
func (t Tally) Empty() bool { return t.Total == 0 }

// Complete reports whether every run passed. A tally that never ran is complete.
func (t Tally) Complete() bool { return t.Passed == t.Total }

// Failing reports whether at least one run did not pass.
func (t Tally) Failing() bool { return t.Passed < t.Total }

// Project holds the tallies of one project within a directory.
type Project struct {
	Dir     string
	Name    string
	tallies [event.NumCategories]Tally
}

// Label returns "dir/name".
func (p *Project) Label() string { return p.Dir + "/" + p.Name }

// Tally returns the tally for c.
func (p *Project) Tally(c event.Category) Tally { return p.tallies[c] }

// Tallies returns all tallies in event.Categories order.
func (p *Project) Tallies() [event.NumCategories]Tally { return p.tallies }

// Status derives the project's composite status.
func (p *Project) Status() Status { return StatusOf(p) }

// Directory groups projects in first-seen order.
type Directory struct {
	Name     string
	projects []*Project
	index    map[string]*Project
}

// Projects returns the directory's projects in first-seen order.
func (d *Directory) Projects() []*Project { return d.projects }

// Summary is the aggregation of one batch: directories in first-seen order,
// each holding its projects in first-seen order.
type Summary struct {
	dirs  []*Directory
	index map[string]*Directory
}

// Directories returns all directories in first-seen order.
func (s *Summary) Directories() []*Directory { return s.dirs }

// Projects returns every project, directory by directory.
func (s *Summary) Projects() []*Project {
	var out []*Project
	for _, d := range s.dirs {
		out = append(out, d.projects...)
	}
	return out
}

// Project looks up a single project.
func (s *Summary) Project(dir, name string) (*Project, bool) {
	d, ok := s.index[dir]
	if !ok {
		return nil, false
	}
	p, ok := d.index[name]
	return p, ok
}

// Empty reports whether the batch contained no events.
func (s *Summary) Empty() bool { return len(s.dirs) == 0 }
