package usecase

import (
	"context"

	caldomain "briefdesk-backend/internal/calendar/domain"
	emaildomain "briefdesk-backend/internal/email/domain"
	pipelinedomain "briefdesk-backend/internal/pipeline/domain"
	taskdomain "briefdesk-backend/internal/task/domain"
)

// Metrics summarizes today's workload.
type Metrics struct {
	MeetingsToday  int `json:"meetingsToday"`
	PriorityEmails int `json:"priorityEmails"`
	TasksDue       int `json:"tasksDue"`
	StaleDeals     int `json:"staleDeals"`
}

// Brief is the aggregated daily snapshot served to the dashboard.
type Brief struct {
	Date    string                 `json:"date"`
	Metrics Metrics                `json:"metrics"`
	Emails  []emaildomain.Email    `json:"emails"`
	Events  []caldomain.Event      `json:"events"`
	Tasks   []*taskdomain.Task     `json:"tasks"`
	Deals   []*pipelinedomain.Deal `json:"deals"`
}

// BriefUsecase defines the interface for brief assembly
type BriefUsecase interface {
	// BuildDailyBrief assembles today's brief for the user. When syncTrello
	// is set, Trello cards are pulled into local tasks first, best effort.
	BuildDailyBrief(ctx context.Context, userID string, syncTrello bool) (*Brief, error)
}

// EmailSource yields recent classified emails. Failures degrade to an empty
// list inside the brief.
type EmailSource interface {
	FetchRecentEmails(ctx context.Context, userID string, maxResults int64) ([]emaildomain.Email, error)
}

// EventSource yields today's events. Failures degrade to an empty list
// inside the brief.
type EventSource interface {
	FetchTodayEvents(ctx context.Context, userID string) ([]caldomain.Event, error)
}

// TaskSource reads local tasks and runs the Trello sync.
type TaskSource interface {
	GetUserTasks(userID string) ([]*taskdomain.Task, error)
	SyncTrello(ctx context.Context, userID string) (int, error)
}

// DealSource reads the local pipeline.
type DealSource interface {
	FindActiveByUserID(userID string) ([]*pipelinedomain.Deal, error)
}
