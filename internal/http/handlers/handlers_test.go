package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/axisapp/axis-backend/internal/domain"
	"github.com/axisapp/axis-backend/internal/http/middleware"
	"github.com/axisapp/axis-backend/internal/repo"
	"github.com/axisapp/axis-backend/internal/services"
)

// ---------- test DB + repo shim ----------

func newHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Unique DSN per call to avoid cross-test contamination
	dsn := fmt.Sprintf("file:handlers_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	db.Exec("PRAGMA foreign_keys=ON;")
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Minimal shim implementing services.ChatRepo using the repo package, like
// the production router does.
type testChatRepo struct{}

func (testChatRepo) CreateChat(ctx context.Context, db *gorm.DB, chat *domain.Chat) error {
	return repo.CreateChat(ctx, db, chat)
}

func (testChatRepo) GetChat(ctx context.Context, db *gorm.DB, id string) (*domain.Chat, error) {
	return repo.GetChat(ctx, db, id)
}

func (testChatRepo) ListChatsForUser(ctx context.Context, db *gorm.DB, userID string) ([]domain.Chat, error) {
	return repo.ListChatsForUser(ctx, db, userID)
}

func (testChatRepo) ListGroupChatsForOrganization(ctx context.Context, db *gorm.DB, orgID string) ([]domain.Chat, error) {
	return repo.ListGroupChatsForOrganization(ctx, db, orgID)
}

func (testChatRepo) FindPrivateChat(ctx context.Context, db *gorm.DB, userA, userB string) (*domain.Chat, error) {
	return repo.FindPrivateChat(ctx, db, userA, userB)
}

func (testChatRepo) IsChatMember(ctx context.Context, db *gorm.DB, chatID, userID string) (bool, error) {
	return repo.IsChatMember(ctx, db, chatID, userID)
}

// newTestHandlers wires the full service stack against a fresh database.
func newTestHandlers(t *testing.T) (*gorm.DB, *Handlers) {
	t.Helper()

	db := newHandlerDB(t)
	chatSvc := services.NewChatService(db, testChatRepo{})
	h := New(db,
		chatSvc,
		services.NewMessageService(db, chatSvc),
		services.NewGoalService(db),
		services.NewGoalTypeService(db),
		services.NewNotificationLogService(db),
		services.NewNotificationSettingsService(db),
		services.NewNotificationTemplateService(db),
	)
	return db, h
}

// newTestRouter registers the API routes the way router.go does, with a stub
// identity middleware instead of real auth. An empty userID leaves requests
// anonymous.
func newTestRouter(db *gorm.DB, h *Handlers, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	if userID != "" {
		r.Use(func(c *gin.Context) {
			c.Set("userID", userID)
			c.Next()
		})
	}
	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{},
		func(ctx context.Context, uid, chatID, key string, now time.Time) (bool, error) {
			_, err := repo.GetIdempotency(ctx, db, uid, chatID, key, now)
			if err != nil {
				return false, nil
			}
			return true, nil
		}))

	r.POST("/goals", h.CreateGoal)
	r.GET("/goals", h.ListGoals)
	r.GET("/goals/:id", h.GetGoal)
	r.PATCH("/goals/:id", h.PatchGoal)
	r.PUT("/goals/:id", h.PutGoal)
	r.DELETE("/goals/:id", h.DeleteGoal)

	r.POST("/goal-types", h.CreateGoalType)
	r.GET("/goal-types", h.ListGoalTypes)
	r.GET("/goal-types/:id", h.GetGoalType)
	r.PUT("/goal-types/:id", h.UpdateGoalType)
	r.DELETE("/goal-types/:id", h.DeleteGoalType)
	r.POST("/goal-types/:id/fields", h.CreateField)
	r.GET("/goal-types/:id/fields", h.ListFields)
	r.PUT("/goal-fields/:id", h.UpdateField)
	r.PATCH("/goal-fields/:id", h.PatchField)
	r.DELETE("/goal-fields/:id", h.DeleteField)

	r.POST("/notifications", h.CreateNotification)
	r.GET("/notifications", h.ListNotifications)
	r.DELETE("/notifications", h.DeleteAllNotifications)
	r.GET("/notifications/unread", h.UnreadNotifications)
	r.GET("/notifications/:id", h.GetNotification)
	r.PATCH("/notifications/:id", h.PatchNotification)
	r.DELETE("/notifications/:id", h.DeleteNotification)

	r.GET("/notification-settings", h.GetSettings)
	r.PATCH("/notification-settings", h.PatchSettings)
	r.DELETE("/notification-settings", h.ResetSettings)

	r.POST("/notification-templates", h.CreateTemplate)
	r.GET("/notification-templates", h.ListTemplates)
	r.GET("/notification-templates/by-type/:type", h.GetTemplateByType)
	r.GET("/notification-templates/:id", h.GetTemplate)
	r.PUT("/notification-templates/:id", h.UpdateTemplate)
	r.DELETE("/notification-templates/:id", h.DeleteTemplate)

	r.POST("/chats", h.CreateChat)
	r.GET("/chats", h.ListChats)
	r.GET("/chats/:id", h.GetChat)
	r.GET("/organizations/:id/group-chats", h.ListOrganizationGroupChats)

	r.POST("/chats/:id/messages", h.PostMessage)
	r.GET("/chats/:id/messages", h.ListMessages)
	r.GET("/chats/:id/messages/unread", h.UnreadMessages)

	return r
}

// doJSON performs a request with an optional JSON body and returns the
// recorder.
func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decode unmarshals the recorder body into out.
func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func TestRequireUser_Unauthenticated(t *testing.T) {
	db, h := newTestHandlers(t)
	r := newTestRouter(db, h, "") // anonymous

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/goals"},
		{http.MethodGet, "/notifications"},
		{http.MethodGet, "/chats"},
		{http.MethodGet, "/notification-settings"},
	} {
		w := doJSON(t, r, tc.method, tc.path, nil, nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: status = %d; want 401", tc.method, tc.path, w.Code)
		}
		var er ErrorResponse
		decode(t, w, &er)
		if er.Code != ErrCodeUnauthorized {
			t.Errorf("%s %s: code = %q", tc.method, tc.path, er.Code)
		}
	}
}
