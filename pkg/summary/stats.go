package summary

// Stats holds aggregate counts across a whole summary.
type Stats struct {
	Directories int
	Projects    int
	Runs        int // release and checker runs plus doc tests
	Passed      int
	ByStatus    map[Status]int
}

// ComputeStats aggregates counts from a summary.
func ComputeStats(s *Summary) Stats {
	st := Stats{
		Directories: len(s.dirs),
		ByStatus:    make(map[Status]int),
	}
	for _, p := range s.Projects() {
		st.Projects++
		st.ByStatus[p.Status()]++
		for _, t := range p.tallies {
			st.Runs += t.Total
			st.Passed += t.Passed
		}
	}
	return st
}

// Failing reports whether any project is failing.
func (s Stats) Failing() bool { return s.ByStatus[StatusFailing] > 0 }
