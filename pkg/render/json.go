package render

import (
	"encoding/json"

	"github.com/dkoosis/ciboard/pkg/event"
	"github.com/dkoosis/ciboard/pkg/summary"
)

// JSON renders the summary as structured JSON for automation.
type JSON struct {
	version string
}

// NewJSON creates a JSON renderer that stamps output with the tool version.
func NewJSON(version string) *JSON {
	return &JSON{version: version}
}

type jsonOutput struct {
	Version     string          `json:"version"`
	Stats       jsonStats       `json:"stats"`
	Directories []jsonDirectory `json:"directories"`
}

type jsonStats struct {
	Projects int            `json:"projects"`
	Runs     int            `json:"runs"`
	Passed   int            `json:"passed"`
	ByStatus map[string]int `json:"by_status"`
}

type jsonDirectory struct {
	Name     string        `json:"name"`
	Projects []jsonProject `json:"projects"`
}

type jsonProject struct {
	Name    string         `json:"name"`
	Status  summary.Status `json:"status"`
	Tallies jsonTallies    `json:"tallies"`
}

type jsonTallies struct {
	Release        summary.Tally `json:"release"`
	Doc            summary.Tally `json:"doc"`
	StackedBorrows summary.Tally `json:"stacked-borrows"`
	TreeBorrows    summary.Tally `json:"tree-borrows"`
}

// Render formats the summary as indented JSON.
func (j *JSON) Render(s *summary.Summary) string {
	st := summary.ComputeStats(s)
	out := jsonOutput{
		Version: j.version,
		Stats: jsonStats{
			Projects: st.Projects,
			Runs:     st.Runs,
			Passed:   st.Passed,
			ByStatus: make(map[string]int, len(st.ByStatus)),
		},
		Directories: make([]jsonDirectory, 0, len(s.Directories())),
	}
	for status, n := range st.ByStatus {
		out.Stats.ByStatus[status.String()] = n
	}

	for _, d := range s.Directories() {
		jd := jsonDirectory{Name: d.Name, Projects: make([]jsonProject, 0, len(d.Projects()))}
		for _, p := range d.Projects() {
			jd.Projects = append(jd.Projects, jsonProject{
				Name:   p.Name,
				Status: p.Status(),
				Tallies: jsonTallies{
					Release:        p.Tally(event.Release),
					Doc:            p.Tally(event.Doc),
					StackedBorrows: p.Tally(event.StackedBorrows),
					TreeBorrows:    p.Tally(event.TreeBorrows),
				},
			})
		}
		out.Directories = append(out.Directories, jd)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		errJSON, _ := json.Marshal(map[string]string{"error": err.Error()})
		return string(errJSON)
	}
	return string(data) + "\n"
}
