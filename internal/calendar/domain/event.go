package domain

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Event types, classified from the event title.
const (
	TypeMeeting  = "meeting"
	TypeDeepWork = "deep-work"
	TypeBuffer   = "buffer"
)

// Event statuses, mapped from the provider's status field.
const (
	StatusConfirmed = "confirmed"
	StatusTentative = "tentative"
	StatusDeclined  = "declined"
)

// Event is a normalized calendar event as served to clients.
type Event struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Attendees int       `json:"attendees,omitempty"`
	Location  string    `json:"location,omitempty"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
}

// EventCache is a locally persisted copy of an externally-sourced event,
// keyed by (user, source, external id).
type EventCache struct {
	ID           string          `json:"id" gorm:"primaryKey"`
	UserID       string          `json:"user_id" gorm:"index:idx_event_source,unique;not null"`
	Source       string          `json:"source" gorm:"index:idx_event_source,unique;not null"`
	ExternalID   string          `json:"external_id" gorm:"index:idx_event_source,unique;not null"`
	StartAt      time.Time       `json:"start_at" gorm:"not null"`
	EndAt        time.Time       `json:"end_at" gorm:"not null"`
	MetadataJSON json.RawMessage `json:"metadata_json" gorm:"type:json"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ClassifyType derives the event type from its title by case-insensitive
// substring match.
func ClassifyType(title string) string {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "deep work") || strings.Contains(lower, "focus"):
		return TypeDeepWork
	case strings.Contains(lower, "buffer"):
		return TypeBuffer
	default:
		return TypeMeeting
	}
}

// MapStatus converts a provider status into the local vocabulary.
func MapStatus(providerStatus string) string {
	switch providerStatus {
	case "tentative":
		return StatusTentative
	case "cancelled":
		return StatusDeclined
	default:
		return StatusConfirmed
	}
}

// IsWithinWorkHours reports whether a clock time falls inside the workday.
// The start bound is inclusive, the end bound exclusive.
func IsWithinWorkHours(t time.Time, workdayStart, workdayEnd string) bool {
	startMin, okStart := parseClock(workdayStart)
	endMin, okEnd := parseClock(workdayEnd)
	if !okStart || !okEnd {
		return false
	}
	minute := t.Hour()*60 + t.Minute()
	return minute >= startMin && minute < endMin
}

func parseClock(s string) (int, bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0, false
	}
	return h*60 + m, true
}
