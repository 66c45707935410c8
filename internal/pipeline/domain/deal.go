package domain

import "time"

// StaleAfter is how long a deal may go without an update before it counts as
// stale. Staleness is derived, never stored.
const StaleAfter = 7 * 24 * time.Hour

// Deal is one record in the sales pipeline.
type Deal struct {
	ID           string     `json:"id" gorm:"primaryKey"`
	UserID       string     `json:"user_id" gorm:"index;not null"`
	Provider     string     `json:"provider" gorm:"not null"`
	DealID       string     `json:"deal_id" gorm:"not null"`
	Stage        string     `json:"stage" gorm:"not null"`
	Value        int64      `json:"value" gorm:"not null;default:0"`
	NextActionAt *time.Time `json:"next_action_at,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsStale reports whether the deal has gone more than seven days without an
// update. Exactly seven days is not stale.
func (d *Deal) IsStale(now time.Time) bool {
	return now.Sub(d.UpdatedAt) > StaleAfter
}
