package trello

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	taskdomain "briefdesk-backend/internal/task/domain"
)

func testServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") == "" || r.URL.Query().Get("token") == "" {
			http.Error(w, `{"message":"unauthorized"}`, http.StatusUnauthorized)
			return
		}
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestBoardsFiltersClosed(t *testing.T) {
	srv := testServer(t, map[string]string{
		"/members/me/boards": `[
			{"id":"b1","name":"Active","closed":false},
			{"id":"b2","name":"Archived","closed":true},
			{"id":"b3","name":"Work","closed":false}
		]`,
	})
	c := NewClientWithBaseURL("k", "t", srv.URL)

	boards, err := c.Boards(context.Background())
	if err != nil {
		t.Fatalf("Boards failed: %v", err)
	}
	if len(boards) != 2 {
		t.Fatalf("got %d boards, want 2 open ones", len(boards))
	}
	for _, b := range boards {
		if b.Closed {
			t.Errorf("closed board %s leaked through", b.ID)
		}
	}
}

func TestCardsPrefersListOverBoard(t *testing.T) {
	srv := testServer(t, map[string]string{
		"/lists/l1/cards":  `[{"id":"c1","name":"from list"}]`,
		"/boards/b1/cards": `[{"id":"c2","name":"from board"}]`,
	})
	c := NewClientWithBaseURL("k", "t", srv.URL)

	cards, err := c.Cards(context.Background(), "b1", "l1")
	if err != nil {
		t.Fatalf("Cards failed: %v", err)
	}
	if len(cards) != 1 || cards[0].ID != "c1" {
		t.Errorf("expected the list endpoint to win, got %+v", cards)
	}
}

func TestCreateCardSendsParams(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"id":"c9","name":"New card","idList":"l1"}`))
	}))
	defer srv.Close()
	c := NewClientWithBaseURL("k", "t", srv.URL)

	card, err := c.CreateCard(context.Background(), CreateCardParams{
		ListID: "l1",
		Name:   "New card",
		Desc:   "details",
	})
	if err != nil {
		t.Fatalf("CreateCard failed: %v", err)
	}
	if card.ID != "c9" {
		t.Errorf("card id = %q, want c9", card.ID)
	}
	for _, want := range []string{"idList=l1", "name=New+card", "desc=details"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}
}

func TestMissingCredentials(t *testing.T) {
	c := NewClient("", "")
	if _, err := c.Boards(context.Background()); err == nil {
		t.Fatal("expected error without credentials")
	}
}

func TestAPIErrorIncludesStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Closed boards cannot be edited", http.StatusBadRequest)
	}))
	defer srv.Close()
	c := NewClientWithBaseURL("k", "t", srv.URL)

	_, err := c.CreateCard(context.Background(), CreateCardParams{ListID: "l1", Name: "x"})
	if err == nil {
		t.Fatal("expected API error")
	}
	if !strings.Contains(err.Error(), "Closed boards cannot be edited") {
		t.Errorf("error %q should carry the vendor body", err)
	}
}

func TestDefaultListIDPrefersTodo(t *testing.T) {
	srv := testServer(t, map[string]string{
		"/boards/b1/lists": `[
			{"id":"l1","name":"Doing"},
			{"id":"l2","name":"To Do"},
			{"id":"l3","name":"Done"}
		]`,
	})
	c := NewClientWithBaseURL("k", "t", srv.URL)

	id, err := c.DefaultListID(context.Background(), "b1")
	if err != nil {
		t.Fatalf("DefaultListID failed: %v", err)
	}
	if id != "l2" {
		t.Errorf("DefaultListID = %q, want the To Do list l2", id)
	}
}

func TestDefaultListIDFallsBackToFirst(t *testing.T) {
	srv := testServer(t, map[string]string{
		"/boards/b1/lists": `[{"id":"l1","name":"Ideas"},{"id":"l2","name":"Later"}]`,
	})
	c := NewClientWithBaseURL("k", "t", srv.URL)

	id, err := c.DefaultListID(context.Background(), "b1")
	if err != nil {
		t.Fatal(err)
	}
	if id != "l1" {
		t.Errorf("DefaultListID = %q, want first list l1", id)
	}
}

func TestCardToTask(t *testing.T) {
	due := "2026-09-15T09:00:00Z"
	card := &Card{
		ID:      "card-42",
		Name:    "Ship release",
		Desc:    "cut the tag",
		Due:     &due,
		IDList:  "l1",
		IDBoard: "b1",
		URL:     "https://trello.com/c/card-42",
		Labels:  []Label{{ID: "lab1", Name: "urgent", Color: "red"}},
	}

	task := CardToTask(card)

	if task.Title != "Ship release" {
		t.Errorf("title = %q", task.Title)
	}
	if task.Status != taskdomain.TaskStatusPending {
		t.Errorf("status = %q, want pending", task.Status)
	}
	if task.Source != taskdomain.SourceTrello {
		t.Errorf("source = %q, want trello", task.Source)
	}
	if task.DueAt == nil || !task.DueAt.Equal(time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("dueAt = %v", task.DueAt)
	}

	meta := task.Meta()
	if meta.TrelloID != "card-42" || meta.BoardID != "b1" || meta.ListID != "l1" {
		t.Errorf("metadata ids = %+v", meta)
	}
	if meta.Description != "cut the tag" {
		t.Errorf("metadata description = %q", meta.Description)
	}
}

func TestCardToTaskDueComplete(t *testing.T) {
	task := CardToTask(&Card{ID: "c1", Name: "Done thing", DueComplete: true})
	if task.Status != taskdomain.TaskStatusCompleted {
		t.Errorf("status = %q, want completed", task.Status)
	}
}
