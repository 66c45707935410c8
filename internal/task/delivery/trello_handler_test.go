package delivery

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	authdomain "briefdesk-backend/internal/auth/domain"
	settingsdomain "briefdesk-backend/internal/settings/domain"
	"briefdesk-backend/internal/task/domain"
	taskrepo "briefdesk-backend/internal/task/repository"
	"briefdesk-backend/internal/task/usecase"
	"briefdesk-backend/pkg/database"
	"briefdesk-backend/pkg/trello"
)

type stubUsers struct{ user *authdomain.User }

func (s *stubUsers) EnsureDefaultUser() (*authdomain.User, error) {
	return s.user, nil
}

type stubSettings struct{ settings *settingsdomain.Settings }

func (s *stubSettings) FindByUserID(userID string) (*settingsdomain.Settings, error) {
	return s.settings, nil
}

func (s *stubSettings) Upsert(settings *settingsdomain.Settings) (*settingsdomain.Settings, error) {
	s.settings = settings
	return settings, nil
}

type stubBoards struct{ listID string }

func (s *stubBoards) TrelloTarget(userID string) (string, string, error) {
	return "", s.listID, nil
}

func fakeTrello(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/cards":
			json.NewEncoder(w).Encode(trello.Card{
				ID:      "card-77",
				Name:    r.URL.Query().Get("name"),
				Desc:    r.URL.Query().Get("desc"),
				IDList:  r.URL.Query().Get("idList"),
				IDBoard: "b1",
				URL:     "https://trello.com/c/card-77",
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

// Creating a card through the endpoint must surface a local task whose
// metadata carries the created card's id.
func TestCreateCardRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "tasks.db"))
	if err != nil {
		t.Fatal(err)
	}
	if err := db.AutoMigrate(&domain.Task{}); err != nil {
		t.Fatal(err)
	}

	srv := fakeTrello(t)
	client := trello.NewClientWithBaseURL("k", "tok", srv.URL)

	repo := taskrepo.NewGormTaskRepository(db)
	taskUc := usecase.NewTaskUsecase(repo, client, &stubBoards{listID: "l1"})
	users := &stubUsers{user: &authdomain.User{ID: "u1"}}
	settings := &stubSettings{settings: &settingsdomain.Settings{UserID: "u1", TrelloListID: "l1"}}

	r := gin.New()
	trelloHandler := NewTrelloHandler(client, taskUc, settings, users)
	taskHandler := NewTaskHandler(taskUc, users)
	r.POST("/api/trello/cards", trelloHandler.CreateCard)
	r.GET("/api/tasks", taskHandler.GetTasks)

	// Create the card.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/trello/cards",
		strings.NewReader(`{"name":"Ship release","desc":"cut the tag"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("create card status = %d: %s", w.Code, w.Body.String())
	}

	// The task list must show one task mirroring the card.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))

	var resp struct {
		Tasks []*domain.Task `json:"tasks"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad tasks body: %v", err)
	}
	if len(resp.Tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(resp.Tasks))
	}
	task := resp.Tasks[0]
	if task.Title != "Ship release" {
		t.Errorf("task title = %q", task.Title)
	}
	if task.Meta().TrelloID != "card-77" {
		t.Errorf("metadata trelloId = %q, want card-77", task.Meta().TrelloID)
	}
	if task.Source != domain.SourceTrello {
		t.Errorf("source = %q, want trello", task.Source)
	}
}

func TestCreateCardWithoutConfiguredList(t *testing.T) {
	gin.SetMode(gin.TestMode)

	client := trello.NewClient("k", "tok")
	users := &stubUsers{user: &authdomain.User{ID: "u1"}}
	settings := &stubSettings{settings: &settingsdomain.Settings{UserID: "u1"}}

	r := gin.New()
	r.POST("/api/trello/cards", NewTrelloHandler(client, nil, settings, users).CreateCard)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/trello/cards", strings.NewReader(`{"name":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if !strings.Contains(w.Body.String(), "configure a Trello board") {
		t.Errorf("expected actionable message, got %s", w.Body.String())
	}
}

func TestCreateCardInvalidPayloadAnswers500(t *testing.T) {
	gin.SetMode(gin.TestMode)

	client := trello.NewClient("k", "tok")
	users := &stubUsers{user: &authdomain.User{ID: "u1"}}
	settings := &stubSettings{settings: &settingsdomain.Settings{UserID: "u1", TrelloListID: "l1"}}

	r := gin.New()
	r.POST("/api/trello/cards", NewTrelloHandler(client, nil, settings, users).CreateCard)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/trello/cards",
		strings.NewReader(`{"desc":"missing required name"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("validation failure status = %d, want 500", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["error"] == "" || body["message"] == "" {
		t.Errorf("error shape must carry error and message: %s", w.Body.String())
	}
}

func TestHumanizeCardError(t *testing.T) {
	closed := humanizeCardError(errStr("Trello API error: 400 Bad Request - Closed boards cannot be edited"))
	if !strings.Contains(closed, "closed/archived") {
		t.Errorf("closed-board rewrite missing: %q", closed)
	}

	noList := humanizeCardError(errStr("No Trello list configured. Please select a board and list in Settings."))
	if !strings.Contains(noList, "configure a Trello board") {
		t.Errorf("no-list rewrite missing: %q", noList)
	}

	generic := humanizeCardError(errStr("Trello API error: 500"))
	if generic != "Failed to create Trello card" {
		t.Errorf("generic error = %q", generic)
	}
}

type errStr string

func (e errStr) Error() string { return string(e) }
