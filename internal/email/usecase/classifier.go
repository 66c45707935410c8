package usecase

import (
	"context"
	"log"
	"strings"

	"briefdesk-backend/internal/email/domain"
	"briefdesk-backend/internal/email/repository"
	"briefdesk-backend/pkg/llm"
)

const classifyPrompt = `You are an email triage assistant. Classify the priority of the email below.

Rules:
- "high": urgent language, messages from executives or key clients, or requests with deadlines
- "low": newsletters, automated notifications, FYI-only messages
- "normal": everything else

Answer with exactly one word: high, normal, or low.`

// priorityClassifier implements Classifier backed by a text-generation
// backend and the write-once cache.
type priorityClassifier struct {
	cacheRepo repository.PriorityCacheRepository
	gen       llm.TextGenerator
}

func NewPriorityClassifier(cacheRepo repository.PriorityCacheRepository, gen llm.TextGenerator) Classifier {
	return &priorityClassifier{cacheRepo: cacheRepo, gen: gen}
}

// Classify returns the cached label when present and otherwise asks the
// backend once, normalizes the answer, and caches it. It never fails: model
// and cache errors degrade to "normal" and a log line.
func (c *priorityClassifier) Classify(ctx context.Context, userID, emailID, subject, body, senderEmail string) string {
	cached, err := c.cacheRepo.FindByEmailID(emailID)
	if err != nil {
		log.Printf("[Classifier] Cache lookup failed for %s: %v", emailID, err)
	}
	if cached != nil {
		return cached.Priority
	}

	priority := c.analyze(ctx, subject, body, senderEmail)

	// Insert failures (including losing the unique-index race to a
	// concurrent classification of the same email) are swallowed; the
	// computed label is still returned.
	if err := c.cacheRepo.Create(&domain.PriorityCache{
		UserID:   userID,
		EmailID:  emailID,
		Priority: priority,
	}); err != nil {
		log.Printf("[Classifier] Failed to cache priority for %s: %v", emailID, err)
	}

	return priority
}

func (c *priorityClassifier) analyze(ctx context.Context, subject, body, senderEmail string) string {
	if c.gen == nil {
		return domain.PriorityNormal
	}

	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: classifyPrompt},
		{Role: llm.RoleUser, Content: "From: " + senderEmail + "\nSubject: " + subject + "\n\n" + body},
	}

	answer, err := c.gen.GenerateText(ctx, messages, llm.Options{Temperature: 0.1, MaxTokens: 10})
	if err != nil {
		log.Printf("[Classifier] Model call failed: %v", err)
		return domain.PriorityNormal
	}

	label := strings.ToLower(strings.TrimSpace(answer))
	if !domain.ValidPriority(label) {
		return domain.PriorityNormal
	}
	return label
}
