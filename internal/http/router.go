// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, authentication, logging/redaction, panic
// recovery, metrics, CORS, security headers, idempotency, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → auth → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/axisapp/axis-backend/docs"
	"github.com/axisapp/axis-backend/internal/config"
	"github.com/axisapp/axis-backend/internal/domain"
	"github.com/axisapp/axis-backend/internal/http/handlers"
	"github.com/axisapp/axis-backend/internal/http/middleware"
	"github.com/axisapp/axis-backend/internal/repo"
	"github.com/axisapp/axis-backend/internal/services"
)

// chatRepoShim adapts the repository free functions to the services.ChatRepo
// interface expected by the ChatService. This keeps services decoupled from
// the concrete repo package while reusing existing functions.
type chatRepoShim struct{}

// CreateChat proxies repo.CreateChat.
func (chatRepoShim) CreateChat(ctx context.Context, db *gorm.DB, chat *domain.Chat) error {
	return repo.CreateChat(ctx, db, chat)
}

// GetChat proxies repo.GetChat.
func (chatRepoShim) GetChat(ctx context.Context, db *gorm.DB, id string) (*domain.Chat, error) {
	return repo.GetChat(ctx, db, id)
}

// ListChatsForUser proxies repo.ListChatsForUser.
func (chatRepoShim) ListChatsForUser(ctx context.Context, db *gorm.DB, userID string) ([]domain.Chat, error) {
	return repo.ListChatsForUser(ctx, db, userID)
}

// ListGroupChatsForOrganization proxies repo.ListGroupChatsForOrganization.
func (chatRepoShim) ListGroupChatsForOrganization(ctx context.Context, db *gorm.DB, orgID string) ([]domain.Chat, error) {
	return repo.ListGroupChatsForOrganization(ctx, db, orgID)
}

// FindPrivateChat proxies repo.FindPrivateChat.
func (chatRepoShim) FindPrivateChat(ctx context.Context, db *gorm.DB, userA, userB string) (*domain.Chat, error) {
	return repo.FindPrivateChat(ctx, db, userA, userB)
}

// IsChatMember proxies repo.IsChatMember.
func (chatRepoShim) IsChatMember(ctx context.Context, db *gorm.DB, chatID, userID string) (bool, error) {
	return repo.IsChatMember(ctx, db, chatID, userID)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), authentication,
// idempotency and rate limiting, CORS and security headers, health and
// metrics endpoints, and then mounts the versioned public API under /api/v*.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Auth: resolve caller identity so logs and limits can key on it
//  4. RedactingLogger: structured logs with PII scrubbing
//  5. Recovery: capture panics after logger
//  6. Body size limiter
//  7. Metrics
//  8. Idempotency validator (before rate limiter to allow bypass on replay)
//  9. Rate limiter (per user/IP, bypass on replay)
//  10. CORS and Security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Identity resolution (bearer token or trusted header)
	r.Use(middleware.Auth(cfg.JWTSecret))

	// 4) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{
			"X-API-Key",
		},
	}))

	// 5) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 6) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) Idempotency validation (before rate limiting)
	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{
			MaxLen: 200,
		},
		func(ctx context.Context, userID, chatID, key string, now time.Time) (bool, error) {
			rec, err := repo.GetIdempotency(ctx, db, userID, chatID, key, now)
			if err != nil || rec == nil {
				return false, nil
			}
			return true, nil
		},
	))

	// 9) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 10) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (opt-in)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db
	chatSvc := services.NewChatService(db, chatRepoShim{})
	msgSvc := services.NewMessageService(db, chatSvc)
	goalSvc := services.NewGoalService(db)
	goalTypeSvc := services.NewGoalTypeService(db)
	notifSvc := services.NewNotificationLogService(db)
	settingsSvc := services.NewNotificationSettingsService(db)
	templateSvc := services.NewNotificationTemplateService(db)

	h := handlers.New(db, chatSvc, msgSvc, goalSvc, goalTypeSvc, notifSvc, settingsSvc, templateSvc)

	// Public API
	apiBase := cfg.APIBasePath // e.g. "/api/v1"
	api := groupWithPrefix(r, apiBase)
	{
		// Goals
		api.POST("/goals", h.CreateGoal)
		api.GET("/goals", h.ListGoals)
		api.GET("/goals/:id", h.GetGoal)
		api.PATCH("/goals/:id", h.PatchGoal)
		api.PUT("/goals/:id", h.PutGoal)
		api.DELETE("/goals/:id", h.DeleteGoal)

		// Goal types and custom fields
		api.POST("/goal-types", h.CreateGoalType)
		api.GET("/goal-types", h.ListGoalTypes)
		api.GET("/goal-types/:id", h.GetGoalType)
		api.PUT("/goal-types/:id", h.UpdateGoalType)
		api.DELETE("/goal-types/:id", h.DeleteGoalType)
		api.POST("/goal-types/:id/fields", h.CreateField)
		api.GET("/goal-types/:id/fields", h.ListFields)
		api.PUT("/goal-fields/:id", h.UpdateField)
		api.PATCH("/goal-fields/:id", h.PatchField)
		api.DELETE("/goal-fields/:id", h.DeleteField)

		// Notifications
		api.POST("/notifications", h.CreateNotification)
		api.GET("/notifications", h.ListNotifications)
		api.DELETE("/notifications", h.DeleteAllNotifications)
		api.GET("/notifications/unread", h.UnreadNotifications)
		api.GET("/notifications/:id", h.GetNotification)
		api.PATCH("/notifications/:id", h.PatchNotification)
		api.DELETE("/notifications/:id", h.DeleteNotification)

		// Notification settings
		api.GET("/notification-settings", h.GetSettings)
		api.PATCH("/notification-settings", h.PatchSettings)
		api.DELETE("/notification-settings", h.ResetSettings)

		// Notification templates
		api.POST("/notification-templates", h.CreateTemplate)
		api.GET("/notification-templates", h.ListTemplates)
		api.GET("/notification-templates/by-type/:type", h.GetTemplateByType)
		api.GET("/notification-templates/:id", h.GetTemplate)
		api.PUT("/notification-templates/:id", h.UpdateTemplate)
		api.DELETE("/notification-templates/:id", h.DeleteTemplate)

		// Chats
		api.POST("/chats", h.CreateChat)
		api.GET("/chats", h.ListChats)
		api.GET("/chats/:id", h.GetChat)
		api.GET("/organizations/:id/group-chats", h.ListOrganizationGroupChats)

		// Messages
		api.POST("/chats/:id/messages", h.PostMessage)
		api.GET("/chats/:id/messages", h.ListMessages)
		api.GET("/chats/:id/messages/unread", h.UnreadMessages)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
