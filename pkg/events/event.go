package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "USER_SIGNIN").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the concrete implementation the constructors below share.
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

// NewUserSignIn records a successful session issuance for a subject.
func NewUserSignIn(subject string) Event {
	return BaseEvent{
		Type:       "USER_SIGNIN",
		Data:       map[string]interface{}{"subject": subject},
		OccurredAt: time.Now(),
	}
}

// NewUserSignOut records a sign-out, whether or not revocation succeeded.
func NewUserSignOut(subject string, revoked bool) Event {
	return BaseEvent{
		Type: "USER_SIGNOUT",
		Data: map[string]interface{}{
			"subject": subject,
			"revoked": revoked,
		},
		OccurredAt: time.Now(),
	}
}

// NewRetrievalIngested records a published retrieval index generation.
func NewRetrievalIngested(ingestionID string, generation uint64, chunks int) Event {
	return BaseEvent{
		Type: "RETRIEVAL_INGESTED",
		Data: map[string]interface{}{
			"ingestion_id": ingestionID,
			"generation":   generation,
			"chunks":       chunks,
		},
		OccurredAt: time.Now(),
	}
}
