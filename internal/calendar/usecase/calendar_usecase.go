package usecase

import (
	"context"
	"encoding/json"
	"log"
	"time"

	authdomain "briefdesk-backend/internal/auth/domain"
	authusecase "briefdesk-backend/internal/auth/usecase"
	"briefdesk-backend/internal/calendar/domain"
	"briefdesk-backend/internal/calendar/repository"
)

// CalendarUsecase defines the interface for calendar business logic
type CalendarUsecase interface {
	// FetchTodayEvents returns today's normalized events for the user
	FetchTodayEvents(ctx context.Context, userID string) ([]domain.Event, error)
}

// EventSource is the slice of the Calendar adapter the usecase needs.
type EventSource interface {
	FetchTodayEvents(ctx context.Context, accessToken string) ([]domain.Event, error)
}

// calendarUsecase implements CalendarUsecase
type calendarUsecase struct {
	source EventSource
	tokens authusecase.TokenStore
	cache  repository.EventCacheRepository
}

// NewCalendarUsecase creates a new instance of calendarUsecase
func NewCalendarUsecase(source EventSource, tokens authusecase.TokenStore, cache repository.EventCacheRepository) CalendarUsecase {
	return &calendarUsecase{
		source: source,
		tokens: tokens,
		cache:  cache,
	}
}

func (u *calendarUsecase) FetchTodayEvents(ctx context.Context, userID string) ([]domain.Event, error) {
	token, err := u.tokens.GetValidAccessToken(ctx, userID, authdomain.ProviderGoogle)
	if err != nil {
		return nil, err
	}

	events, err := u.source.FetchTodayEvents(ctx, token)
	if err != nil {
		return nil, err
	}

	u.cacheEvents(userID, events)
	return events, nil
}

// cacheEvents persists a local copy of the fetched events. Failures are
// logged and swallowed; the cache is an optimization, not the source of
// truth.
func (u *calendarUsecase) cacheEvents(userID string, events []domain.Event) {
	if u.cache == nil || len(events) == 0 {
		return
	}

	rows := make([]*domain.EventCache, 0, len(events))
	for _, e := range events {
		meta, _ := json.Marshal(map[string]string{
			"title":  e.Title,
			"type":   e.Type,
			"status": e.Status,
		})
		rows = append(rows, &domain.EventCache{
			UserID:       userID,
			Source:       authdomain.ProviderGoogle,
			ExternalID:   e.ID,
			StartAt:      e.StartTime,
			EndAt:        e.EndTime,
			MetadataJSON: meta,
			CreatedAt:    time.Now(),
		})
	}

	if err := u.cache.CacheEvents(rows); err != nil {
		log.Printf("[Calendar] Failed to cache events: %v", err)
	}
}
