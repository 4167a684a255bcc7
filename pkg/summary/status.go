package summary

import "github.com/dkoosis/ciboard/pkg/event"

// Status classifies a project's overall health.
type Status int

const (
	// StatusUnknown is the residual case no other status matches, e.g. a doc
	// tally reporting more passes than runs.
	StatusUnknown Status = iota
	// StatusFailing means at least one run in some category did not pass.
	StatusFailing
	// StatusIncomplete means nothing failed but the release tests never ran.
	StatusIncomplete
	// StatusPassWithDocs means everything that ran passed, doc tests included.
	StatusPassWithDocs
	// StatusPass means everything that ran passed and there were no doc tests.
	StatusPass
)

// Statuses lists every status, most severe first.
var Statuses = []Status{StatusFailing, StatusIncomplete, StatusUnknown, StatusPass, StatusPassWithDocs}

func (s Status) String() string {
	switch s {
	case StatusFailing:
		return "failing"
	case StatusIncomplete:
		return "incomplete"
	case StatusPassWithDocs:
		return "pass-with-docs"
	case StatusPass:
		return "pass"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status as its name.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// OK reports whether s is one of the passing statuses.
func (s Status) OK() bool { return s == StatusPass || s == StatusPassWithDocs }

// Severity orders statuses for display; lower is worse.
func (s Status) Severity() int {
	for i, v := range Statuses {
		if v == s {
			return i
		}
	}
	return len(Statuses)
}

// StatusOf derives the composite status from p's tallies.
func StatusOf(p *Project) Status {
	for _, c := range event.Categories {
		if p.tallies[c].Failing() {
			return StatusFailing
		}
	}
	for _, c := range event.Categories {
		if !c.Optional() && p.tallies[c].Empty() {
			return StatusIncomplete
		}
	}
	for _, c := range event.Categories {
		if !p.tallies[c].Complete() {
			return StatusUnknown
		}
	}
	if p.tallies[event.Doc].Total > 0 {
		return StatusPassWithDocs
	}
	return StatusPass
}
