package metrics

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritePrometheus(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	ObserveClassified(3)
	ObserveRisksAssigned(3)
	ObserveReport(nil)
	ObserveReport(errors.New("boom"))

	var buf bytes.Buffer
	require.NoError(t, WritePrometheus(&buf))
	out := buf.String()

	assert.Contains(t, out, "# TYPE vetpathogen_reports_generated_total counter\n")
	assert.Contains(t, out, "vetpathogen_reports_generated_total 1\n")
	assert.Contains(t, out, "vetpathogen_reports_failed_total 1\n")
	assert.Contains(t, out, "vetpathogen_isolates_classified_total 3\n")
	assert.Contains(t, out, "vetpathogen_resistance_risks_assigned_total 3\n")
}
