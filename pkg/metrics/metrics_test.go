package metrics

import (
	"errors"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c interface{ Write(*dto.Metric) error }) float64 {
	t.Helper()
	var metric dto.Metric
	require.NoError(t, c.Write(&metric))
	return metric.GetCounter().GetValue()
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()

	assert.NotNil(t, r.SavesTotal)
	assert.NotNil(t, r.LoadsTotal)
	assert.NotNil(t, r.DefragmentsTotal)
	assert.NotNil(t, r.ReclaimedBytesTotal)
	assert.NotNil(t, r.ResetsTotal)
	assert.NotNil(t, r.FileSizeBytes)
	assert.NotNil(t, r.OperationDuration)
	assert.NotNil(t, r.GetPrometheusRegistry())
}

func TestRecordSave(t *testing.T) {
	r := NewRegistry()

	r.RecordSave("int", true, time.Millisecond, nil)
	r.RecordSave("int", true, time.Millisecond, nil)
	r.RecordSave("string", false, time.Millisecond, nil)
	r.RecordSave("string", false, time.Millisecond, errors.New("disk full"))

	tests := []struct {
		kind, placement, status string
		want                    float64
	}{
		{"int", "in_place", "success", 2},
		{"string", "appended", "success", 1},
		{"string", "appended", "error", 1},
		{"int", "appended", "success", 0},
	}
	for _, tt := range tests {
		counter, err := r.SavesTotal.GetMetricWithLabelValues(tt.kind, tt.placement, tt.status)
		require.NoError(t, err)
		assert.Equal(t, tt.want, counterValue(t, counter), "%s/%s/%s", tt.kind, tt.placement, tt.status)
	}
}

func TestRecordLoad(t *testing.T) {
	r := NewRegistry()

	r.RecordLoad("double", time.Microsecond, nil)
	r.RecordLoad("double", time.Microsecond, errors.New("missing"))

	ok, err := r.LoadsTotal.GetMetricWithLabelValues("double", "success")
	require.NoError(t, err)
	assert.Equal(t, 1.0, counterValue(t, ok))

	failed, err := r.LoadsTotal.GetMetricWithLabelValues("double", "error")
	require.NoError(t, err)
	assert.Equal(t, 1.0, counterValue(t, failed))
}

func TestRecordDefragment(t *testing.T) {
	r := NewRegistry()

	r.RecordDefragment(100, 40, time.Millisecond, nil)
	r.RecordDefragment(40, 40, time.Millisecond, nil)
	r.RecordDefragment(40, 0, time.Millisecond, errors.New("write failed"))

	assert.Equal(t, 60.0, counterValue(t, r.ReclaimedBytesTotal))

	ok, err := r.DefragmentsTotal.GetMetricWithLabelValues("success")
	require.NoError(t, err)
	assert.Equal(t, 2.0, counterValue(t, ok))
}

func TestRecordResetAndFileSize(t *testing.T) {
	r := NewRegistry()

	r.RecordReset("corrupt")
	r.RecordReset("clear")
	r.RecordReset("clear")
	r.SetFileSize(1234)

	cleared, err := r.ResetsTotal.GetMetricWithLabelValues("clear")
	require.NoError(t, err)
	assert.Equal(t, 2.0, counterValue(t, cleared))

	var metric dto.Metric
	require.NoError(t, r.FileSizeBytes.Write(&metric))
	assert.Equal(t, 1234.0, metric.GetGauge().GetValue())
}

func TestSnapshot(t *testing.T) {
	r := NewRegistry()

	r.RecordSave("bool", false, time.Millisecond, nil)
	r.RecordLoad("bool", time.Millisecond, nil)
	r.SetFileSize(9)

	samples, err := r.Snapshot()
	require.NoError(t, err)

	got := make(map[string]float64)
	for _, s := range samples {
		got[s.String()] = s.Value
	}

	assert.Equal(t, 1.0, got[`quickdata_saves_total{kind="bool",placement="appended",status="success"} 1`])
	assert.Equal(t, 9.0, got[`quickdata_file_size_bytes 9`])
	assert.Equal(t, 1.0, got[`quickdata_operation_duration_seconds_count{operation="load"} 1`])

	for i := 1; i < len(samples); i++ {
		assert.LessOrEqual(t, samples[i-1].Name, samples[i].Name)
	}
}
