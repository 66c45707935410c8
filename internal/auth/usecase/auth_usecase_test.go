package usecase

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"briefdesk-backend/internal/auth/domain"
	"briefdesk-backend/pkg/config"
)

type stubTokenRepo struct {
	token         *domain.OAuthToken
	findErr       error
	updatedAccess string
	updatedExpiry time.Time
	updateCalls   int
	updateErr     error
	upserted      *domain.OAuthToken
}

func (r *stubTokenRepo) FindByUserAndProvider(userID, provider string) (*domain.OAuthToken, error) {
	return r.token, r.findErr
}

func (r *stubTokenRepo) Upsert(token *domain.OAuthToken) error {
	r.upserted = token
	return nil
}

func (r *stubTokenRepo) UpdateAccessToken(id, accessToken string, expiresAt time.Time) error {
	r.updateCalls++
	r.updatedAccess = accessToken
	r.updatedExpiry = expiresAt
	return r.updateErr
}

type stubUserRepo struct{}

func (r *stubUserRepo) FindByEmail(email string) (*domain.User, error) { return nil, nil }
func (r *stubUserRepo) FindByID(id string) (*domain.User, error)      { return nil, nil }
func (r *stubUserRepo) EnsureByEmail(email, name, timezone string) (*domain.User, error) {
	return &domain.User{ID: "u1", Email: email}, nil
}

// fakeTokenEndpoint answers the refresh-token grant, counting requests.
func fakeTokenEndpoint(t *testing.T, status int, body string) (*httptest.Server, *int) {
	t.Helper()
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func testAuthUsecase(tokens *stubTokenRepo, tokenURL string) *authUsecase {
	uc := NewAuthUsecase(&stubUserRepo{}, tokens, &config.Config{
		GoogleClientID:     "client-id",
		GoogleClientSecret: "client-secret",
	})
	if tokenURL != "" {
		uc.endpoint = oauth2.Endpoint{
			AuthURL:  tokenURL + "/auth",
			TokenURL: tokenURL + "/token",
		}
	}
	return uc
}

func TestGetValidAccessTokenMissingRow(t *testing.T) {
	uc := testAuthUsecase(&stubTokenRepo{}, "")

	_, err := uc.GetValidAccessToken(context.Background(), "u1", domain.ProviderGoogle)
	if !errors.Is(err, ErrNotConnected) {
		t.Errorf("err = %v, want ErrNotConnected", err)
	}
}

func TestGetValidAccessTokenStillValid(t *testing.T) {
	repo := &stubTokenRepo{token: &domain.OAuthToken{
		ID:          "tok-1",
		AccessToken: "live",
		ExpiresAt:   time.Now().Add(time.Hour),
	}}
	uc := testAuthUsecase(repo, "")

	got, err := uc.GetValidAccessToken(context.Background(), "u1", domain.ProviderGoogle)
	if err != nil {
		t.Fatalf("GetValidAccessToken failed: %v", err)
	}
	if got != "live" {
		t.Errorf("token = %q, want the stored one", got)
	}
	if repo.updateCalls != 0 {
		t.Errorf("valid token must not trigger a refresh, got %d updates", repo.updateCalls)
	}
}

func TestGetValidAccessTokenRefreshesExpiredOnce(t *testing.T) {
	srv, hits := fakeTokenEndpoint(t, http.StatusOK,
		`{"access_token":"fresh","token_type":"Bearer","expires_in":3600}`)

	repo := &stubTokenRepo{token: &domain.OAuthToken{
		ID:           "tok-1",
		Provider:     domain.ProviderGoogle,
		AccessToken:  "stale",
		RefreshToken: "refresh-1",
		ExpiresAt:    time.Now().Add(-time.Minute),
	}}
	uc := testAuthUsecase(repo, srv.URL)

	got, err := uc.GetValidAccessToken(context.Background(), "u1", domain.ProviderGoogle)
	if err != nil {
		t.Fatalf("GetValidAccessToken failed: %v", err)
	}
	if got != "fresh" {
		t.Errorf("token = %q, want the refreshed one", got)
	}
	if *hits != 1 {
		t.Errorf("token endpoint hit %d times, want exactly 1 per call", *hits)
	}
	if repo.updateCalls != 1 {
		t.Errorf("persisted %d times, want 1", repo.updateCalls)
	}
	if repo.updatedAccess != "fresh" {
		t.Errorf("persisted access token = %q", repo.updatedAccess)
	}
	if !repo.updatedExpiry.After(time.Now()) {
		t.Errorf("persisted expiry %v is not in the future", repo.updatedExpiry)
	}
}

func TestGetValidAccessTokenRefreshFailure(t *testing.T) {
	srv, _ := fakeTokenEndpoint(t, http.StatusUnauthorized, `{"error":"invalid_grant"}`)

	repo := &stubTokenRepo{token: &domain.OAuthToken{
		ID:           "tok-1",
		Provider:     domain.ProviderGoogle,
		AccessToken:  "stale",
		RefreshToken: "revoked",
		ExpiresAt:    time.Now().Add(-time.Minute),
	}}
	uc := testAuthUsecase(repo, srv.URL)

	_, err := uc.GetValidAccessToken(context.Background(), "u1", domain.ProviderGoogle)
	if err == nil {
		t.Fatal("expected refresh failure")
	}

	var refreshErr *RefreshError
	if !errors.As(err, &refreshErr) {
		t.Fatalf("err = %T, want *RefreshError", err)
	}
	if refreshErr.Provider != domain.ProviderGoogle {
		t.Errorf("provider = %q", refreshErr.Provider)
	}
	if refreshErr.Unwrap() == nil {
		t.Error("RefreshError must wrap the underlying cause")
	}
	if repo.updateCalls != 0 {
		t.Errorf("failed refresh must not persist, got %d updates", repo.updateCalls)
	}
}

func TestGetValidAccessTokenPersistFailure(t *testing.T) {
	srv, _ := fakeTokenEndpoint(t, http.StatusOK,
		`{"access_token":"fresh","token_type":"Bearer","expires_in":3600}`)

	repo := &stubTokenRepo{
		token: &domain.OAuthToken{
			ID:           "tok-1",
			Provider:     domain.ProviderGoogle,
			AccessToken:  "stale",
			RefreshToken: "refresh-1",
			ExpiresAt:    time.Now().Add(-time.Minute),
		},
		updateErr: errors.New("db gone"),
	}
	uc := testAuthUsecase(repo, srv.URL)

	_, err := uc.GetValidAccessToken(context.Background(), "u1", domain.ProviderGoogle)
	var refreshErr *RefreshError
	if !errors.As(err, &refreshErr) {
		t.Fatalf("err = %v, want *RefreshError for a failed persist", err)
	}
}

func TestGetValidAccessTokenRefreshWithoutCredentials(t *testing.T) {
	repo := &stubTokenRepo{token: &domain.OAuthToken{
		ID:           "tok-1",
		Provider:     domain.ProviderGoogle,
		AccessToken:  "stale",
		RefreshToken: "refresh-1",
		ExpiresAt:    time.Now().Add(-time.Minute),
	}}
	uc := NewAuthUsecase(&stubUserRepo{}, repo, &config.Config{})

	_, err := uc.GetValidAccessToken(context.Background(), "u1", domain.ProviderGoogle)
	var refreshErr *RefreshError
	if !errors.As(err, &refreshErr) {
		t.Fatalf("err = %v, want *RefreshError when OAuth is unconfigured", err)
	}
}

func TestAuthURLRequestsOfflineConsent(t *testing.T) {
	uc := testAuthUsecase(&stubTokenRepo{}, "https://accounts.example.com")

	url, err := uc.AuthURL("https://app.example.com/api/oauth/callback")
	if err != nil {
		t.Fatalf("AuthURL failed: %v", err)
	}
	for _, want := range []string{"access_type=offline", "prompt=consent", "client_id=client-id"} {
		if !strings.Contains(url, want) {
			t.Errorf("auth URL %q missing %q", url, want)
		}
	}
}

func TestAuthURLWithoutCredentials(t *testing.T) {
	uc := NewAuthUsecase(&stubUserRepo{}, &stubTokenRepo{}, &config.Config{})

	if _, err := uc.AuthURL("https://app.example.com/cb"); err == nil {
		t.Fatal("expected configuration error")
	}
}
