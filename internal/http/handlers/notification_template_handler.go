// Notification template HTTP handlers.
//
// This file exposes REST endpoints for the global template catalog:
//   - POST   /notification-templates       (create)
//   - GET    /notification-templates       (list, paginated)
//   - GET    /notification-templates/{id}  (fetch one)
//   - PUT    /notification-templates/{id}  (replace)
//   - DELETE /notification-templates/{id}  (delete)
//
// Template types are normalized to upper case and are unique across the
// catalog; creating or updating into an occupied type yields 409.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/axisapp/axis-backend/internal/domain"
	"github.com/axisapp/axis-backend/internal/services"
)

// TemplateRequest is the JSON payload for creating or replacing a template.
type TemplateRequest struct {
	Type    string `json:"type" binding:"required,min=1" example:"WELCOME"`
	Subject string `json:"subject" example:"Welcome aboard"`
	Content string `json:"content" binding:"required,min=1" example:"Hi {{name}}, glad to have you here."`
}

// ListTemplatesResponse wraps a page of templates and pagination information.
type ListTemplatesResponse struct {
	Templates  []domain.NotificationTemplate `json:"templates"`
	Pagination Pagination                    `json:"pagination"`
}

// CreateTemplate godoc
// @ID          createTemplate
// @Summary     Create a notification template
// @Tags        NotificationTemplates
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.TemplateRequest  true  "Template payload"
// @Success     201  {object} domain.NotificationTemplate
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Not authenticated"
// @Failure     409  {object} handlers.ErrorResponse "Template type already exists"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /notification-templates [post]
func (h *Handlers) CreateTemplate(c *gin.Context) {
	if _, authed := requireUser(c); !authed {
		return
	}
	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "type and content required")
		return
	}

	t, err := h.templateSvc.Create(c.Request.Context(), services.TemplateInput{
		Type:    req.Type,
		Subject: req.Subject,
		Content: req.Content,
	})
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, t)
}

// ListTemplates godoc
// @ID          listTemplates
// @Summary     List notification templates (paginated)
// @Tags        NotificationTemplates
// @Produce     json
// @Param       page       query  int  false "Page number"     minimum(1) default(1)
// @Param       page_size  query  int  false "Items per page"  minimum(1) maximum(100) default(20)
// @Success     200  {object} handlers.ListTemplatesResponse
// @Failure     401  {object} handlers.ErrorResponse "Not authenticated"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /notification-templates [get]
func (h *Handlers) ListTemplates(c *gin.Context) {
	if _, authed := requireUser(c); !authed {
		return
	}
	page, pageSize := clampPagination(c)

	items, total, err := h.templateSvc.ListPage(c.Request.Context(), (page-1)*pageSize, pageSize)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, ListTemplatesResponse{
		Templates:  items,
		Pagination: newPagination(page, pageSize, total),
	})
}

// GetTemplate godoc
// @ID          getTemplate
// @Summary     Fetch a notification template
// @Tags        NotificationTemplates
// @Produce     json
// @Param       id  path  string  true  "Template ID (UUID)"  format(uuid)
// @Success     200  {object} domain.NotificationTemplate
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Not authenticated"
// @Failure     404  {object} handlers.ErrorResponse "Template not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /notification-templates/{id} [get]
func (h *Handlers) GetTemplate(c *gin.Context) {
	if _, authed := requireUser(c); !authed {
		return
	}
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "template id must be a UUID")
		return
	}

	t, err := h.templateSvc.Get(c.Request.Context(), id)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, t)
}

// GetTemplateByType godoc
// @ID          getTemplateByType
// @Summary     Fetch a notification template by type
// @Description Looks up a template by its type enumerant. The lookup is case-insensitive.
// @Tags        NotificationTemplates
// @Produce     json
// @Param       type  path  string  true  "Template type"  example(WELCOME)
// @Success     200  {object} domain.NotificationTemplate
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Not authenticated"
// @Failure     404  {object} handlers.ErrorResponse "Template not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /notification-templates/by-type/{type} [get]
func (h *Handlers) GetTemplateByType(c *gin.Context) {
	if _, authed := requireUser(c); !authed {
		return
	}
	t, err := h.templateSvc.GetByType(c.Request.Context(), c.Param("type"))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, t)
}

// UpdateTemplate godoc
// @ID          updateTemplate
// @Summary     Replace a notification template
// @Description Overwrites the template's type, subject, and content. Keeping its own type is allowed; taking another template's type yields 409.
// @Tags        NotificationTemplates
// @Accept      json
// @Produce     json
// @Param       id    path  string  true  "Template ID (UUID)"  format(uuid)
// @Param       body  body  handlers.TemplateRequest  true  "Template payload"
// @Success     200  {object} domain.NotificationTemplate
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Not authenticated"
// @Failure     404  {object} handlers.ErrorResponse "Template not found"
// @Failure     409  {object} handlers.ErrorResponse "Template type already exists"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /notification-templates/{id} [put]
func (h *Handlers) UpdateTemplate(c *gin.Context) {
	if _, authed := requireUser(c); !authed {
		return
	}
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "template id must be a UUID")
		return
	}
	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "type and content required")
		return
	}

	t, err := h.templateSvc.Update(c.Request.Context(), id, services.TemplateInput{
		Type:    req.Type,
		Subject: req.Subject,
		Content: req.Content,
	})
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, t)
}

// DeleteTemplate godoc
// @ID          deleteTemplate
// @Summary     Delete a notification template
// @Tags        NotificationTemplates
// @Produce     json
// @Param       id  path  string  true  "Template ID (UUID)"  format(uuid)
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Not authenticated"
// @Failure     404  {object} handlers.ErrorResponse "Template not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /notification-templates/{id} [delete]
func (h *Handlers) DeleteTemplate(c *gin.Context) {
	if _, authed := requireUser(c); !authed {
		return
	}
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "template id must be a UUID")
		return
	}

	if err := h.templateSvc.Delete(c.Request.Context(), id); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}
