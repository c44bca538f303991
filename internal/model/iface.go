package model

// Recorder observes write outcomes. The metrics package implements it.
type Recorder interface {
	RecordWritten(label string)
	RecordWriteError()
	RecordWebhookFailure()
}

// NopRecorder discards every observation.
type NopRecorder struct{}

func (NopRecorder) RecordWritten(string)  {}
func (NopRecorder) RecordWriteError()     {}
func (NopRecorder) RecordWebhookFailure() {}
