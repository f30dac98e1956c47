// Handler wiring and request helpers shared by all endpoints.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/axisapp/axis-backend/internal/services"
	"github.com/axisapp/axis-backend/internal/utils"
)

// Handlers groups the HTTP endpoints for the goal, notification, and chat
// APIs. It is transport-thin: input validation and result shaping live here,
// every business rule lives in the services package.
type Handlers struct {
	DB *gorm.DB

	chatSvc     *services.ChatService
	msgSvc      *services.MessageService
	goalSvc     *services.GoalService
	goalTypeSvc *services.GoalTypeService
	notifSvc    *services.NotificationLogService
	settingsSvc *services.NotificationSettingsService
	templateSvc *services.NotificationTemplateService
}

// New constructs a Handlers instance bound to the given database handle and
// services.
func New(
	db *gorm.DB,
	chatSvc *services.ChatService,
	msgSvc *services.MessageService,
	goalSvc *services.GoalService,
	goalTypeSvc *services.GoalTypeService,
	notifSvc *services.NotificationLogService,
	settingsSvc *services.NotificationSettingsService,
	templateSvc *services.NotificationTemplateService,
) *Handlers {
	return &Handlers{
		DB:          db,
		chatSvc:     chatSvc,
		msgSvc:      msgSvc,
		goalSvc:     goalSvc,
		goalTypeSvc: goalTypeSvc,
		notifSvc:    notifSvc,
		settingsSvc: settingsSvc,
		templateSvc: templateSvc,
	}
}

// currentUser extracts the authenticated user id placed in the Gin context by
// the auth middleware.
func currentUser(c *gin.Context) (string, bool) {
	if v, exists := c.Get("userID"); exists {
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) != "" {
			return s, true
		}
	}
	return "", false
}

// requireUser returns the authenticated user id or writes a 401 envelope,
// in which case the caller must return immediately.
func requireUser(c *gin.Context) (string, bool) {
	uid, found := currentUser(c)
	if !found {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "user not authenticated")
		return "", false
	}
	return uid, true
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// newPagination derives the metadata block for a page of results.
func newPagination(page, pageSize int, total int64) Pagination {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}
}

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.ClampInt(utils.AtoiDefault(c.Query("page_size"), defaultPageSize), 1, maxPageSize)
	return
}
