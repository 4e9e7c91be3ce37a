package domain

import "time"

// JournalEntry records one console mutation attempt for the activity feed.
type JournalEntry struct {
	Resource  string    `json:"resource"`
	Action    string    `json:"action"`
	EntityID  string    `json:"entity_id,omitempty"`
	Outcome   string    `json:"outcome"`
	Message   string    `json:"message,omitempty"`
	Actor     string    `json:"actor,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
