package repository

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"briefdesk-backend/internal/settings/domain"
	"briefdesk-backend/pkg/database"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "settings.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.Settings{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestFindByUserIDAbsent(t *testing.T) {
	repo := NewGormSettingsRepository(openTestDB(t))

	got, err := repo.FindByUserID("u1")
	if err != nil {
		t.Fatalf("absent settings must not be an error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestUpsertCreatesThenUpdates(t *testing.T) {
	repo := NewGormSettingsRepository(openTestDB(t))

	created, err := repo.Upsert(domain.Defaults("u1"))
	if err != nil {
		t.Fatalf("create upsert failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("Upsert must assign an id")
	}
	if created.WorkdayStart != "08:00" || created.WorkdayEnd != "16:00" {
		t.Errorf("defaults = %s-%s, want 08:00-16:00", created.WorkdayStart, created.WorkdayEnd)
	}

	created.TrelloBoardID = "b1"
	created.TrelloListID = "l1"
	updated, err := repo.Upsert(created)
	if err != nil {
		t.Fatalf("update upsert failed: %v", err)
	}
	if updated.ID != created.ID {
		t.Errorf("Upsert created a second row: %s vs %s", updated.ID, created.ID)
	}

	got, _ := repo.FindByUserID("u1")
	if got.TrelloBoardID != "b1" || got.TrelloListID != "l1" {
		t.Errorf("trello target not persisted: %+v", got)
	}
	if got.WorkdayStart != "08:00" {
		t.Errorf("untouched field changed: %s", got.WorkdayStart)
	}
}
