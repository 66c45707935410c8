package usecase

import (
	"context"
	"errors"

	authdomain "briefdesk-backend/internal/auth/domain"
	authusecase "briefdesk-backend/internal/auth/usecase"
	"briefdesk-backend/internal/email/domain"
	"briefdesk-backend/pkg/llm"
)

// emailUsecase implements EmailUsecase
type emailUsecase struct {
	inbox      Inbox
	tokens     authusecase.TokenStore
	classifier Classifier
	gen        llm.TextGenerator
}

// NewEmailUsecase creates a new instance of emailUsecase
func NewEmailUsecase(inbox Inbox, tokens authusecase.TokenStore, classifier Classifier, gen llm.TextGenerator) EmailUsecase {
	return &emailUsecase{
		inbox:      inbox,
		tokens:     tokens,
		classifier: classifier,
		gen:        gen,
	}
}

func (u *emailUsecase) FetchRecentEmails(ctx context.Context, userID string, maxResults int64) ([]domain.Email, error) {
	token, err := u.tokens.GetValidAccessToken(ctx, userID, authdomain.ProviderGoogle)
	if err != nil {
		return nil, err
	}

	emails, err := u.inbox.FetchRecentEmails(ctx, token, maxResults)
	if err != nil {
		return nil, err
	}

	for i := range emails {
		e := &emails[i]
		e.Priority = u.classifier.Classify(ctx, userID, e.ID, e.Subject, e.Preview, e.SenderEmail)
	}
	return emails, nil
}

func (u *emailUsecase) SendEmail(ctx context.Context, userID, to, subject, body string) error {
	token, err := u.tokens.GetValidAccessToken(ctx, userID, authdomain.ProviderGoogle)
	if err != nil {
		return err
	}
	return u.inbox.SendEmail(ctx, token, to, subject, body)
}

func (u *emailUsecase) GenerateDraft(ctx context.Context, threadContext, tone string) (string, error) {
	if u.gen == nil {
		return "", errors.New("no text-generation backend configured")
	}
	return llm.GenerateEmailDraft(ctx, u.gen, threadContext, tone)
}
