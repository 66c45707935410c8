package main

import (
	"log"

	api "briefdesk-backend/cmd/api"
	authdomain "briefdesk-backend/internal/auth/domain"
	caldomain "briefdesk-backend/internal/calendar/domain"
	emaildomain "briefdesk-backend/internal/email/domain"
	pipelinedomain "briefdesk-backend/internal/pipeline/domain"
	"briefdesk-backend/internal/scheduler"
	settingsdomain "briefdesk-backend/internal/settings/domain"
	taskdomain "briefdesk-backend/internal/task/domain"
	"briefdesk-backend/pkg/config"
	"briefdesk-backend/pkg/database"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&authdomain.User{},
		&authdomain.OAuthToken{},
		&settingsdomain.Settings{},
		&taskdomain.Task{},
		&pipelinedomain.Deal{},
		&caldomain.EventCache{},
		&emaildomain.PriorityCache{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize HTTP handler (wires repositories, usecases and clients)
	handler := api.NewHandler(db, cfg)

	// Start the fixed-time logging jobs
	sched := scheduler.NewScheduler(handler.BriefUsecase, handler.DealRepo, handler.Users, cfg.SchedulerTimezone)
	sched.Start()
	defer sched.Stop()

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
