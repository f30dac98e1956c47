// Notification log HTTP handlers.
//
// This file exposes REST endpoints for the user's notification history:
//   - POST   /notifications        (record a sent notification)
//   - GET    /notifications        (list, filtered + paginated)
//   - GET    /notifications/{id}   (fetch one)
//   - PATCH  /notifications/{id}   (partial update, e.g. delivery status)
//   - DELETE /notifications/{id}   (delete one)
//   - DELETE /notifications        (clear the user's entire history)
//   - GET    /notifications/unread (count entries still in SENT state)
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

// NotificationRequest is the JSON payload for recording a notification.
type NotificationRequest struct {
	Channel  string  `json:"channel" binding:"required" example:"EMAIL"`
	Status   string  `json:"status" example:"SENT"`
	Subject  string  `json:"subject" example:"Weekly digest"`
	Content  string  `json:"content" example:"Here is what you missed this week."`
	Metadata *string `json:"metadata,omitempty"`
}

// NotificationPatchRequest is the JSON payload for partially updating a
// notification log entry. Absent fields are left untouched.
type NotificationPatchRequest struct {
	Status   *string `json:"status,omitempty" example:"READ"`
	Subject  *string `json:"subject,omitempty"`
	Content  *string `json:"content,omitempty"`
	Metadata *string `json:"metadata,omitempty"`
}

// ListNotificationsResponse wraps a page of notification log entries.
type ListNotificationsResponse struct {
	Notifications []domain.NotificationLog `json:"notifications"`
	Pagination    Pagination               `json:"pagination"`
}

// notificationFilterFromQuery builds the list filter from status/channel
// query params.
func notificationFilterFromQuery(c *gin.Context) (repo.NotificationFilter, error) {
	var f repo.NotificationFilter
	if v := c.Query("status"); v != "" {
		st := domain.NotificationStatus(v)
		if !st.Valid() {
			return f, fmt.Errorf("unknown status %q", v)
		}
		f.Status = &st
	}
	if v := c.Query("channel"); v != "" {
		ch := domain.NotificationChannel(v)
		if !ch.Valid() {
			return f, fmt.Errorf("unknown channel %q", v)
		}
		f.Channel = &ch
	}
	return f, nil
}

// CreateNotification godoc
// @ID          createNotification
// @Summary     Record a notification
// @Description Appends an entry to the current user's notification history. Status defaults to SENT.
// @Tags        Notifications
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.NotificationRequest  true  "Notification payload"
// @Success     201  {object} domain.NotificationLog
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Not authenticated"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /notifications [post]
func (h *Handlers) CreateNotification(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	var req NotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	n, err := h.notifSvc.Record(c.Request.Context(), uid, services.NotificationInput{
		Channel:  domain.NotificationChannel(req.Channel),
		Status:   domain.NotificationStatus(req.Status),
		Subject:  req.Subject,
		Content:  req.Content,
		Metadata: req.Metadata,
	})
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, n)
}

// ListNotifications godoc
// @ID          listNotifications
// @Summary     List the current user's notifications
// @Description Returns a page of the user's notification history, newest first. Optional status and channel filters.
// @Tags        Notifications
// @Produce     json
// @Param       status     query  string  false "Filter by status"   Enums(SENT, DELIVERED, READ, FAILED)
// @Param       channel    query  string  false "Filter by channel"  Enums(EMAIL, PUSH, TELEGRAM)
// @Param       page       query  int     false "Page number"        minimum(1) default(1)
// @Param       page_size  query  int     false "Items per page"     minimum(1) maximum(100) default(20)
// @Success     200  {object} handlers.ListNotificationsResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Not authenticated"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /notifications [get]
func (h *Handlers) ListNotifications(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}

	f, err := notificationFilterFromQuery(c)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	page, pageSize := clampPagination(c)

	items, total, err := h.notifSvc.ListPage(c.Request.Context(), uid, f, (page-1)*pageSize, pageSize)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, ListNotificationsResponse{
		Notifications: items,
		Pagination:    newPagination(page, pageSize, total),
	})
}

// GetNotification godoc
// @ID          getNotification
// @Summary     Fetch a single notification
// @Tags        Notifications
// @Produce     json
// @Param       id  path  string  true  "Notification ID (UUID)"  format(uuid)
// @Success     200  {object} domain.NotificationLog
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Not authenticated"
// @Failure     404  {object} handlers.ErrorResponse "Notification not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /notifications/{id} [get]
func (h *Handlers) GetNotification(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "notification id must be a UUID")
		return
	}

	n, err := h.notifSvc.Get(c.Request.Context(), id, uid)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, n)
}

// PatchNotification godoc
// @ID          patchNotification
// @Summary     Partially update a notification
// @Description Applies the provided fields to a notification owned by the current user, typically a delivery status change.
// @Tags        Notifications
// @Accept      json
// @Produce     json
// @Param       id    path  string  true  "Notification ID (UUID)"  format(uuid)
// @Param       body  body  handlers.NotificationPatchRequest  true  "Fields to update"
// @Success     200  {object} domain.NotificationLog
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Not authenticated"
// @Failure     404  {object} handlers.ErrorResponse "Notification not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /notifications/{id} [patch]
func (h *Handlers) PatchNotification(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "notification id must be a UUID")
		return
	}
	var req NotificationPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	patch := services.NotificationPatch{
		Subject:  req.Subject,
		Content:  req.Content,
		Metadata: req.Metadata,
	}
	if req.Status != nil {
		st := domain.NotificationStatus(*req.Status)
		patch.Status = &st
	}

	n, err := h.notifSvc.Patch(c.Request.Context(), id, uid, patch)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, n)
}

// DeleteNotification godoc
// @ID          deleteNotification
// @Summary     Delete a notification
// @Tags        Notifications
// @Produce     json
// @Param       id  path  string  true  "Notification ID (UUID)"  format(uuid)
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Not authenticated"
// @Failure     404  {object} handlers.ErrorResponse "Notification not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /notifications/{id} [delete]
func (h *Handlers) DeleteNotification(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "notification id must be a UUID")
		return
	}

	if err := h.notifSvc.Delete(c.Request.Context(), id, uid); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}

// DeleteAllNotifications godoc
// @ID          deleteAllNotifications
// @Summary     Clear the current user's notification history
// @Description Removes every notification owned by the current user. Clearing an empty history succeeds.
// @Tags        Notifications
// @Produce     json
// @Success     204  {string} string "No Content"
// @Failure     401  {object} handlers.ErrorResponse "Not authenticated"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /notifications [delete]
func (h *Handlers) DeleteAllNotifications(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	if err := h.notifSvc.DeleteAll(c.Request.Context(), uid); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}

// NotificationUnreadResponse reports how many notifications are still unread.
type NotificationUnreadResponse struct {
	Unread int64 `json:"unread" example:"4"`
}

// UnreadNotifications godoc
// @ID          unreadNotifications
// @Summary     Count unread notifications
// @Description Returns how many of the current user's notifications are still in the SENT state.
// @Tags        Notifications
// @Produce     json
// @Success     200  {object} handlers.NotificationUnreadResponse
// @Failure     401  {object} handlers.ErrorResponse "Not authenticated"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /notifications/unread [get]
func (h *Handlers) UnreadNotifications(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	n, err := h.notifSvc.UnreadCount(c.Request.Context(), uid)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, NotificationUnreadResponse{Unread: n})
}
