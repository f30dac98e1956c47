// Chat HTTP handlers.
//
// This file exposes REST endpoints for chat resources:
//   - POST   /chats                          (create private or group chat)
//   - GET    /chats                          (list current user's chats, ETag support)
//   - GET    /chats/{id}                     (fetch one chat, membership required)
//   - GET    /organizations/{id}/group-chats (list an organization's group chats)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses (including conditional responses).
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/axisapp/axis-backend/internal/domain"
	"github.com/axisapp/axis-backend/internal/repo"
	"github.com/axisapp/axis-backend/internal/services"
)

// CreateChatRequest is the JSON payload for creating a chat.
type CreateChatRequest struct {
	// Type selects the chat kind: PRIVATE or GROUP.
	Type string `json:"type" binding:"required" example:"PRIVATE"`
	// OrganizationID scopes a group chat to an organization.
	OrganizationID *string `json:"organization_id,omitempty" example:"org-42"`
	// Name is required for group chats and ignored for private ones.
	Name *string `json:"name,omitempty" example:"Quarterly planning"`
	// Members lists user ids, including the requesting user.
	Members []string `json:"members" binding:"required" example:"user-1,user-2"`
}

// ListChatsResponse wraps the current user's chats.
type ListChatsResponse struct {
	Chats []domain.Chat `json:"chats"`
}

// CreateChat godoc
// @ID          createChat
// @Summary     Create a new chat
// @Description Creates a private or group chat for the current user and returns the chat resource.
// @Tags        Chats
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateChatRequest  true  "Create chat payload"
//
// @Success     201  {object}  domain.Chat
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Not authenticated"
// @Failure     409  {object}  handlers.ErrorResponse  "Private chat already exists"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /chats [post]
func (h *Handlers) CreateChat(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}

	var req CreateChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	ch, err := h.chatSvc.Create(c.Request.Context(), uid, services.CreateChatInput{
		Type:           domain.ChatType(req.Type),
		OrganizationID: req.OrganizationID,
		Name:           req.Name,
		Members:        req.Members,
	})
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, ch)
}

// ListChats godoc
// @ID          listChats
// @Summary     List the current user's chats
// @Description Returns every chat the user is a member of, most recently active first. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Chats
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"abc123\")
//
// @Success     200  {object} handlers.ListChatsResponse
// @Header      200  {string} ETag  "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     401  {object} handlers.ErrorResponse "Not authenticated"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /chats [get]
func (h *Handlers) ListChats(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	ctx := c.Request.Context()

	// ETag pre-check (best effort).
	if count, maxTS, err := repo.ChatsStats(ctx, h.DB, uid); err == nil {
		var ts int64
		if maxTS != nil {
			ts = maxTS.Unix()
		}
		etag := fmt.Sprintf(`W/"chats:%s:%d:%d"`, uid, count, ts)
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	chats, err := h.chatSvc.ListForUser(ctx, uid)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, ListChatsResponse{Chats: chats})
}

// GetChat godoc
// @ID          getChat
// @Summary     Fetch a single chat
// @Description Returns a chat the current user is a member of. Non-members receive 403.
// @Tags        Chats
// @Produce     json
//
// @Param       id  path  string  true  "Chat ID (UUID)"  format(uuid)
//
// @Success     200  {object} domain.Chat
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Not authenticated"
// @Failure     403  {object} handlers.ErrorResponse "Not a member"
// @Failure     404  {object} handlers.ErrorResponse "Chat not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /chats/{id} [get]
func (h *Handlers) GetChat(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	chatID := c.Param("id")
	if _, err := uuid.Parse(chatID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "chat id must be a UUID")
		return
	}

	ch, err := h.chatSvc.Get(c.Request.Context(), chatID, uid)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, ch)
}

// ListOrganizationGroupChats godoc
// @ID          listOrganizationGroupChats
// @Summary     List an organization's group chats
// @Description Returns all group chats that belong to the given organization.
// @Tags        Chats
// @Produce     json
//
// @Param       id  path  string  true  "Organization ID"
//
// @Success     200  {object} handlers.ListChatsResponse
// @Failure     401  {object} handlers.ErrorResponse "Not authenticated"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /organizations/{id}/group-chats [get]
func (h *Handlers) ListOrganizationGroupChats(c *gin.Context) {
	if _, authed := requireUser(c); !authed {
		return
	}
	orgID := c.Param("id")
	if orgID == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "organization id required")
		return
	}

	chats, err := h.chatSvc.ListGroupChatsForOrganization(c.Request.Context(), orgID)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, ListChatsResponse{Chats: chats})
}
