package metrics

import (
	"fmt"
	"io"
	"sync/atomic"
)

var (
	reportsGenerated   atomic.Int64
	reportsFailed      atomic.Int64
	isolatesClassified atomic.Int64
	risksAssigned      atomic.Int64
)

func ObserveClassified(rows int) {
	isolatesClassified.Add(int64(rows))
}

func ObserveRisksAssigned(rows int) {
	risksAssigned.Add(int64(rows))
}

func ObserveReport(err error) {
	if err != nil {
		reportsFailed.Add(1)
		return
	}
	reportsGenerated.Add(1)
}

// Reset zeroes every counter.
func Reset() {
	reportsGenerated.Store(0)
	reportsFailed.Store(0)
	isolatesClassified.Store(0)
	risksAssigned.Store(0)
}

// WritePrometheus renders the counters in the Prometheus text format.
func WritePrometheus(w io.Writer) error {
	series := []struct {
		name, help string
		value      int64
	}{
		{"vetpathogen_reports_generated_total", "Number of reports written successfully.", reportsGenerated.Load()},
		{"vetpathogen_reports_failed_total", "Number of report runs aborted by an error.", reportsFailed.Load()},
		{"vetpathogen_isolates_classified_total", "Number of isolates assigned a predicted species.", isolatesClassified.Load()},
		{"vetpathogen_resistance_risks_assigned_total", "Number of isolates assigned a resistance risk.", risksAssigned.Load()},
	}
	for _, s := range series {
		if _, err := fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s counter\n%s %d\n", s.name, s.help, s.name, s.name, s.value); err != nil {
			return err
		}
	}
	return nil
}
