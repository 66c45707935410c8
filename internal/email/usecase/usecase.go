package usecase

import (
	"context"

	"briefdesk-backend/internal/email/domain"
)

// EmailUsecase defines the interface for inbox business logic
type EmailUsecase interface {
	// FetchRecentEmails returns recent inbox messages with classified
	// priority
	FetchRecentEmails(ctx context.Context, userID string, maxResults int64) ([]domain.Email, error)

	// SendEmail sends a plain-text message from the user's account
	SendEmail(ctx context.Context, userID, to, subject, body string) error

	// GenerateDraft produces a reply draft in the requested tone
	GenerateDraft(ctx context.Context, threadContext, tone string) (string, error)
}

// Classifier assigns one of high/normal/low to an email, memoizing by email
// id so each message is classified at most once.
type Classifier interface {
	Classify(ctx context.Context, userID, emailID, subject, body, senderEmail string) string
}

// Inbox is the slice of the Gmail adapter the usecase needs.
type Inbox interface {
	FetchRecentEmails(ctx context.Context, accessToken string, maxResults int64) ([]domain.Email, error)
	SendEmail(ctx context.Context, accessToken, to, subject, body string) error
}
