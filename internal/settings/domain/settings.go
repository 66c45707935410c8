package domain

import (
	"encoding/json"
	"time"
)

// Settings is the per-user configuration. One row per user.
type Settings struct {
	ID                 string          `json:"id" gorm:"primaryKey"`
	UserID             string          `json:"user_id" gorm:"uniqueIndex;not null"`
	WorkdayStart       string          `json:"workday_start" gorm:"not null;default:08:00"`
	WorkdayEnd         string          `json:"workday_end" gorm:"not null;default:16:00"`
	MeetingWindowsJSON json.RawMessage `json:"meeting_windows_json" gorm:"type:json"`
	DeepWorkBlocksJSON json.RawMessage `json:"deep_work_blocks_json" gorm:"type:json"`
	TrelloBoardID      string          `json:"trello_board_id"`
	TrelloListID       string          `json:"trello_list_id"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// Defaults returns the settings row created lazily on first access.
func Defaults(userID string) *Settings {
	return &Settings{
		UserID:             userID,
		WorkdayStart:       "08:00",
		WorkdayEnd:         "16:00",
		MeetingWindowsJSON: json.RawMessage("[]"),
		DeepWorkBlocksJSON: json.RawMessage("[]"),
	}
}
