package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "INGESTION_COMPLETED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewIngestionCompleted reports a document fully chunked, embedded and stored.
func NewIngestionCompleted(sessionId string, filename string, chunks int) Event {
	return BaseEvent{
		Type: "INGESTION_COMPLETED",
		Data: map[string]interface{}{
			"session_id": sessionId,
			"filename":   filename,
			"chunks":     chunks,
		},
		OccurredAt: time.Now(),
	}
}

// NewIngestionFailed reports a document whose ingestion job aborted. Chunks
// stored before the failure are kept.
func NewIngestionFailed(sessionId string, filename string, reason string) Event {
	return BaseEvent{
		Type: "INGESTION_FAILED",
		Data: map[string]interface{}{
			"session_id": sessionId,
			"filename":   filename,
			"reason":     reason,
		},
		OccurredAt: time.Now(),
	}
}
