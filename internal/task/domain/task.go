package domain

import (
	"encoding/json"
	"time"
)

// TaskStatus represents the current state of a task
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

// Task source tags
const (
	SourceTrello = "trello"
	SourceEmail  = "email"
	SourceManual = "manual"
)

// Task represents a to-do item created manually, synced from Trello, or
// derived from an email or calendar event.
type Task struct {
	ID           string          `json:"id" gorm:"primaryKey"`
	UserID       string          `json:"user_id" gorm:"index;not null"`
	Title        string          `json:"title" gorm:"not null"`
	Status       TaskStatus      `json:"status" gorm:"not null;default:pending"`
	DueAt        *time.Time      `json:"due_at,omitempty"`
	Source       string          `json:"source,omitempty"`
	MetadataJSON json.RawMessage `json:"metadata_json" gorm:"type:json"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Metadata is the free-form payload stored in MetadataJSON. TrelloID, when
// present, must map to at most one local task.
type Metadata struct {
	Priority    string          `json:"priority,omitempty"`
	TrelloID    string          `json:"trelloId,omitempty"`
	BoardID     string          `json:"boardId,omitempty"`
	ListID      string          `json:"listId,omitempty"`
	URL         string          `json:"url,omitempty"`
	Description string          `json:"description,omitempty"`
	Labels      json.RawMessage `json:"labels,omitempty"`
}

// Meta decodes the metadata payload; malformed or empty JSON yields the
// zero value.
func (t *Task) Meta() Metadata {
	var m Metadata
	if len(t.MetadataJSON) > 0 {
		_ = json.Unmarshal(t.MetadataJSON, &m)
	}
	return m
}

// EncodeMetadata serializes metadata for storage.
func EncodeMetadata(m Metadata) json.RawMessage {
	raw, err := json.Marshal(m)
	if err != nil {
		return json.RawMessage("{}")
	}
	return raw
}
