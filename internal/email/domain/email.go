package domain

import "time"

// Priority labels assigned by the classifier.
const (
	PriorityHigh   = "high"
	PriorityNormal = "normal"
	PriorityLow    = "low"
)

// ValidPriority reports whether the label is one the classifier may emit.
func ValidPriority(p string) bool {
	return p == PriorityHigh || p == PriorityNormal || p == PriorityLow
}

// Email is a normalized inbox message.
type Email struct {
	ID          string    `json:"id"`
	Sender      string    `json:"sender"`
	SenderEmail string    `json:"senderEmail"`
	Subject     string    `json:"subject"`
	Preview     string    `json:"preview"`
	Timestamp   time.Time `json:"timestamp"`
	Labels      []string  `json:"labels"`
	Priority    string    `json:"priority,omitempty"`
	Unread      bool      `json:"unread"`
}

// PriorityCache memoizes the classifier's output per email id. Rows are
// written once and never recomputed or expired: an email's content and the
// priority framing are immutable after arrival.
type PriorityCache struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	UserID     string    `json:"user_id" gorm:"not null"`
	EmailID    string    `json:"email_id" gorm:"uniqueIndex;not null"`
	Priority   string    `json:"priority" gorm:"not null"`
	AnalyzedAt time.Time `json:"analyzed_at"`
}
