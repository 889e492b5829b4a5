package models

const (
	EventEntryLogged    = "journal.entry_logged"
	EventMoodRecorded   = "journal.mood_recorded"
	EventProfileUpdated = "profile.updated"
	EventHistoryCleared = "journal.history_cleared"
)

// JournalEvent is published after a journal mutation has been persisted.
type JournalEvent struct {
	Type       string `json:"type"`
	UserKey    string `json:"userKey"`
	OccurredAt int64  `json:"occurredAt"`
	Payload    any    `json:"payload,omitempty"`
}
