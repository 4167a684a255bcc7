// Package metrics exports a summary as Prometheus gauges, for the node
// exporter's textfile collector or a pushgateway.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dkoosis/ciboard/pkg/event"
	"github.com/dkoosis/ciboard/pkg/summary"
)

const namespace = "ciboard"

// Collector holds one gauge per project, category, and status.
type Collector struct {
	passed *prometheus.GaugeVec
	total  *prometheus.GaugeVec
	status *prometheus.GaugeVec
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{
		passed: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tests_passed",
			Help:      "Passed runs per project and test category.",
		}, []string{"directory", "project", "category"}),
		total: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tests_total",
			Help:      "Total runs per project and test category.",
		}, []string{"directory", "project", "category"}),
		status: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "project_status",
			Help:      "Composite project status; 1 for the current status, 0 otherwise.",
		}, []string{"directory", "project", "status"}),
	}
}

// Observe replaces the collector's values with the contents of s.
func (c *Collector) Observe(s *summary.Summary) {
	c.passed.Reset()
	c.total.Reset()
	c.status.Reset()
	for _, p := range s.Projects() {
		for _, cat := range event.Categories {
			t := p.Tally(cat)
			c.passed.WithLabelValues(p.Dir, p.Name, cat.String()).Set(float64(t.Passed))
			c.total.WithLabelValues(p.Dir, p.Name, cat.String()).Set(float64(t.Total))
		}
		current := p.Status()
		for _, st := range summary.Statuses {
			v := 0.0
			if st == current {
				v = 1
			}
			c.status.WithLabelValues(p.Dir, p.Name, st.String()).Set(v)
		}
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.passed.Describe(ch)
	c.total.Describe(ch)
	c.status.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.passed.Collect(ch)
	c.total.Collect(ch)
	c.status.Collect(ch)
}

// WriteTextfile writes s to path in the Prometheus text exposition format.
// The file is replaced atomically.
func WriteTextfile(path string, s *summary.Summary) error {
	c := NewCollector()
	c.Observe(s)

	reg := prometheus.NewRegistry()
	if err := reg.Register(c); err != nil {
		return fmt.Errorf("registering collector: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
