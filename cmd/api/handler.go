package api

import (
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	authDelivery "briefdesk-backend/internal/auth/delivery"
	authRepo "briefdesk-backend/internal/auth/repository"
	authUsecasePkg "briefdesk-backend/internal/auth/usecase"
	briefDelivery "briefdesk-backend/internal/brief/delivery"
	briefUsecasePkg "briefdesk-backend/internal/brief/usecase"
	calDelivery "briefdesk-backend/internal/calendar/delivery"
	calRepo "briefdesk-backend/internal/calendar/repository"
	calUsecasePkg "briefdesk-backend/internal/calendar/usecase"
	emailDelivery "briefdesk-backend/internal/email/delivery"
	emailRepo "briefdesk-backend/internal/email/repository"
	emailUsecasePkg "briefdesk-backend/internal/email/usecase"
	pipelineRepo "briefdesk-backend/internal/pipeline/repository"
	settingsDelivery "briefdesk-backend/internal/settings/delivery"
	settingsRepo "briefdesk-backend/internal/settings/repository"
	taskDelivery "briefdesk-backend/internal/task/delivery"
	taskRepo "briefdesk-backend/internal/task/repository"
	taskUsecasePkg "briefdesk-backend/internal/task/usecase"
	"briefdesk-backend/pkg/config"
	"briefdesk-backend/pkg/gcal"
	"briefdesk-backend/pkg/gmail"
	"briefdesk-backend/pkg/llm"
	"briefdesk-backend/pkg/trello"
)

// Handler owns the wired-up delivery layer and the shared usecases the
// scheduler also needs.
type Handler struct {
	config *config.Config

	briefHandler    *briefDelivery.BriefHandler
	emailHandler    *emailDelivery.EmailHandler
	calendarHandler *calDelivery.CalendarHandler
	settingsHandler *settingsDelivery.SettingsHandler
	taskHandler     *taskDelivery.TaskHandler
	trelloHandler   *taskDelivery.TrelloHandler
	oauthHandler    *authDelivery.OAuthHandler

	BriefUsecase briefUsecasePkg.BriefUsecase
	DealRepo     pipelineRepo.DealRepository
	Users        authUsecasePkg.UserService
}

// boardConfigAdapter adapts SettingsRepository to TaskUsecase.BoardConfig.
type boardConfigAdapter struct {
	settings settingsRepo.SettingsRepository
}

func (a *boardConfigAdapter) TrelloTarget(userID string) (boardID, listID string, err error) {
	s, err := a.settings.FindByUserID(userID)
	if err != nil {
		return "", "", err
	}
	if s == nil {
		return "", "", nil
	}
	return s.TrelloBoardID, s.TrelloListID, nil
}

func NewHandler(db *gorm.DB, cfg *config.Config) *Handler {
	// Repositories
	userRepository := authRepo.NewUserRepository(db)
	tokenRepository := authRepo.NewTokenRepository(db)
	settingsRepository := settingsRepo.NewGormSettingsRepository(db)
	taskRepository := taskRepo.NewGormTaskRepository(db)
	dealRepository := pipelineRepo.NewGormDealRepository(db)
	eventCacheRepository := calRepo.NewGormEventCacheRepository(db)
	priorityCacheRepository := emailRepo.NewGormPriorityCacheRepository(db)

	// Auth usecase backs the token store, the OAuth flow and default-user
	// resolution for every handler.
	authUc := authUsecasePkg.NewAuthUsecase(userRepository, tokenRepository, cfg)

	// Text-generation backend. A misconfigured backend disables drafting and
	// degrades classification to "normal" instead of failing startup.
	gen, err := llm.NewTextGenerator(llm.Config{
		Provider:        llm.ProviderType(cfg.LLMProvider),
		GeminiAPIKey:    cfg.GeminiAPIKey,
		OpenAIAPIKey:    cfg.OpenAIAPIKey,
		AnthropicAPIKey: cfg.AnthropicAPIKey,
	})
	if err != nil {
		log.Printf("Warning: text-generation backend unavailable: %v", err)
	} else {
		log.Printf("Text-generation backend initialized: %s", cfg.LLMProvider)
	}

	// External service clients
	trelloClient := trello.NewClient(cfg.TrelloAPIKey, cfg.TrelloToken)
	gmailService := gmail.NewService()
	gcalService := gcal.NewService()

	// Usecases
	classifier := emailUsecasePkg.NewPriorityClassifier(priorityCacheRepository, gen)
	emailUc := emailUsecasePkg.NewEmailUsecase(gmailService, authUc, classifier, gen)
	calendarUc := calUsecasePkg.NewCalendarUsecase(gcalService, authUc, eventCacheRepository)
	taskUc := taskUsecasePkg.NewTaskUsecase(taskRepository, trelloClient, &boardConfigAdapter{settings: settingsRepository})
	briefUc := briefUsecasePkg.NewBriefUsecase(emailUc, calendarUc, taskUc, dealRepository)

	return &Handler{
		config: cfg,

		briefHandler:    briefDelivery.NewBriefHandler(briefUc, authUc),
		emailHandler:    emailDelivery.NewEmailHandler(emailUc, authUc),
		calendarHandler: calDelivery.NewCalendarHandler(calendarUc, authUc),
		settingsHandler: settingsDelivery.NewSettingsHandler(settingsRepository, authUc),
		taskHandler:     taskDelivery.NewTaskHandler(taskUc, authUc),
		trelloHandler:   taskDelivery.NewTrelloHandler(trelloClient, taskUc, settingsRepository, authUc),
		oauthHandler:    authDelivery.NewOAuthHandler(authUc, authUc),

		BriefUsecase: briefUc,
		DealRepo:     dealRepository,
		Users:        authUc,
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()
	gin.SetMode(gin.ReleaseMode)

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h)

	return r.Run(addr)
}
