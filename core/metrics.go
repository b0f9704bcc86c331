package core

import "time"

// MetricsCollector receives store activity. pkg/metrics provides a
// Prometheus implementation.
type MetricsCollector interface {
	// RecordSave is called after each save. inPlace reports whether the
	// existing slot was reused.
	RecordSave(kind string, inPlace bool, duration time.Duration, err error)

	// RecordLoad is called after each load.
	RecordLoad(kind string, duration time.Duration, err error)

	// RecordDefragment is called after each defragmentation pass with the
	// file size before and after.
	RecordDefragment(before, after int64, duration time.Duration, err error)

	// RecordReset is called whenever the store is emptied, with ResetClear or
	// ResetCorrupt.
	RecordReset(reason string)

	// SetFileSize is called whenever the file length changes.
	SetFileSize(bytes int64)
}

// NoopMetricsCollector discards everything.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSave(string, bool, time.Duration, error)       {}
func (NoopMetricsCollector) RecordLoad(string, time.Duration, error)             {}
func (NoopMetricsCollector) RecordDefragment(int64, int64, time.Duration, error) {}
func (NoopMetricsCollector) RecordReset(string)                                  {}
func (NoopMetricsCollector) SetFileSize(int64)                                   {}
