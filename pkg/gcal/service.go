package gcal

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	caldomain "briefdesk-backend/internal/calendar/domain"
)

// Service wraps the Google Calendar API for the primary calendar.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

func (s *Service) client(ctx context.Context, accessToken string) (*calendar.Service, error) {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	srv, err := calendar.NewService(ctx, option.WithTokenSource(src))
	if err != nil {
		return nil, fmt.Errorf("unable to create Calendar service: %v", err)
	}
	return srv, nil
}

// FetchTodayEvents lists single-instance events between local midnight and
// 23:59:59 today, ordered by start time, normalized into the local shape.
func (s *Service) FetchTodayEvents(ctx context.Context, accessToken string) ([]caldomain.Event, error) {
	srv, err := s.client(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())

	resp, err := srv.Events.List("primary").
		TimeMin(dayStart.Format(time.RFC3339)).
		TimeMax(dayEnd.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to list events: %v", err)
	}

	events := make([]caldomain.Event, 0, len(resp.Items))
	for _, item := range resp.Items {
		events = append(events, NormalizeEvent(item))
	}
	return events, nil
}

// NormalizeEvent converts a provider event into the local shape: type from
// title keywords, status from the provider status, date-only fallback for
// all-day events.
func NormalizeEvent(item *calendar.Event) caldomain.Event {
	title := item.Summary
	if title == "" {
		title = "Untitled Event"
	}

	return caldomain.Event{
		ID:        item.Id,
		Title:     title,
		StartTime: eventTime(item.Start),
		EndTime:   eventTime(item.End),
		Attendees: len(item.Attendees),
		Location:  item.Location,
		Type:      caldomain.ClassifyType(item.Summary),
		Status:    caldomain.MapStatus(item.Status),
	}
}

// eventTime prefers the timed field and falls back to the all-day date.
func eventTime(edt *calendar.EventDateTime) time.Time {
	if edt == nil {
		return time.Time{}
	}
	if edt.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, edt.DateTime); err == nil {
			return t
		}
	}
	if edt.Date != "" {
		if t, err := time.Parse("2006-01-02", edt.Date); err == nil {
			return t
		}
	}
	return time.Time{}
}
