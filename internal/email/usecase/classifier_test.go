package usecase

import (
	"context"
	"errors"
	"testing"

	"briefdesk-backend/internal/email/domain"
	"briefdesk-backend/pkg/llm"
)

type memoryCacheRepo struct {
	rows      map[string]*domain.PriorityCache
	createErr error
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{rows: map[string]*domain.PriorityCache{}}
}

func (r *memoryCacheRepo) FindByEmailID(emailID string) (*domain.PriorityCache, error) {
	return r.rows[emailID], nil
}

func (r *memoryCacheRepo) Create(entry *domain.PriorityCache) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.rows[entry.EmailID] = entry
	return nil
}

type countingGenerator struct {
	answer string
	err    error
	calls  int
}

func (g *countingGenerator) GenerateText(ctx context.Context, messages []llm.Message, opts llm.Options) (string, error) {
	g.calls++
	return g.answer, g.err
}

func TestClassifyCachesResult(t *testing.T) {
	repo := newMemoryCacheRepo()
	gen := &countingGenerator{answer: "high"}
	c := NewPriorityClassifier(repo, gen)

	if got := c.Classify(context.Background(), "u1", "msg-1", "Urgent", "body", "boss@corp.com"); got != domain.PriorityHigh {
		t.Fatalf("first classification = %q, want high", got)
	}
	if got := c.Classify(context.Background(), "u1", "msg-1", "Urgent", "body", "boss@corp.com"); got != domain.PriorityHigh {
		t.Fatalf("second classification = %q, want high", got)
	}

	if gen.calls != 1 {
		t.Errorf("model called %d times for the same email, want 1", gen.calls)
	}
}

func TestClassifyNormalizesAnswer(t *testing.T) {
	repo := newMemoryCacheRepo()
	gen := &countingGenerator{answer: "  HIGH\n"}
	c := NewPriorityClassifier(repo, gen)

	if got := c.Classify(context.Background(), "u1", "msg-2", "s", "b", "a@b.c"); got != domain.PriorityHigh {
		t.Errorf("Classify = %q, want high", got)
	}
}

func TestClassifyMalformedAnswerFallsBackToNormal(t *testing.T) {
	repo := newMemoryCacheRepo()
	gen := &countingGenerator{answer: "maybe high"}
	c := NewPriorityClassifier(repo, gen)

	if got := c.Classify(context.Background(), "u1", "msg-3", "s", "b", "a@b.c"); got != domain.PriorityNormal {
		t.Errorf("Classify = %q, want normal", got)
	}
}

func TestClassifyModelErrorFallsBackToNormal(t *testing.T) {
	repo := newMemoryCacheRepo()
	gen := &countingGenerator{err: errors.New("backend down")}
	c := NewPriorityClassifier(repo, gen)

	if got := c.Classify(context.Background(), "u1", "msg-4", "s", "b", "a@b.c"); got != domain.PriorityNormal {
		t.Errorf("Classify = %q, want normal", got)
	}
}

func TestClassifyCacheWriteFailureStillReturnsLabel(t *testing.T) {
	repo := newMemoryCacheRepo()
	repo.createErr = errors.New("disk full")
	gen := &countingGenerator{answer: "low"}
	c := NewPriorityClassifier(repo, gen)

	if got := c.Classify(context.Background(), "u1", "msg-5", "s", "b", "a@b.c"); got != domain.PriorityLow {
		t.Errorf("Classify = %q, want low despite cache-write failure", got)
	}
}

func TestClassifyNilGeneratorDefaultsToNormal(t *testing.T) {
	c := NewPriorityClassifier(newMemoryCacheRepo(), nil)

	if got := c.Classify(context.Background(), "u1", "msg-6", "s", "b", "a@b.c"); got != domain.PriorityNormal {
		t.Errorf("Classify = %q, want normal", got)
	}
}
