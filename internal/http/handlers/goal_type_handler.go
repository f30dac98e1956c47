// Goal type and custom field HTTP handlers.
//
// This file exposes REST endpoints for the global goal-type catalog:
//   - POST   /goal-types                  (create type)
//   - GET    /goal-types                  (list, paginated)
//   - GET    /goal-types/{id}             (fetch one)
//   - PUT    /goal-types/{id}             (rename)
//   - DELETE /goal-types/{id}             (delete, cascades to fields)
//   - POST   /goal-types/{id}/fields      (add custom field)
//   - GET    /goal-types/{id}/fields      (list custom fields)
//   - PUT    /goal-fields/{id}            (update custom field)
//   - DELETE /goal-fields/{id}            (delete custom field)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/axisapp/axis-backend/internal/domain"
	"github.com/axisapp/axis-backend/internal/services"
)

// GoalTypeRequest is the JSON payload for creating or renaming a goal type.
type GoalTypeRequest struct {
	Title string `json:"title" binding:"required,min=1,max=100" example:"Fitness"`
}

// FieldRequest is the JSON payload for creating or updating a custom field
// definition.
type FieldRequest struct {
	Label       string `json:"label" binding:"required,min=1" example:"Target weight"`
	Type        string `json:"type" binding:"required,min=1" example:"number"`
	Required    bool   `json:"required"`
	Placeholder string `json:"placeholder" example:"e.g. 72kg"`
}

// ListGoalTypesResponse wraps a page of goal types and pagination information.
type ListGoalTypesResponse struct {
	GoalTypes  []domain.GoalType `json:"goal_types"`
	Pagination Pagination        `json:"pagination"`
}

// ListFieldsResponse wraps the custom field definitions of one goal type.
type ListFieldsResponse struct {
	Fields []domain.CustomFieldDefinition `json:"fields"`
}

// CreateGoalType godoc
// @ID          createGoalType
// @Summary     Create a goal type
// @Tags        GoalTypes
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.GoalTypeRequest  true  "Goal type payload"
// @Success     201  {object} domain.GoalType
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Not authenticated"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /goal-types [post]
func (h *Handlers) CreateGoalType(c *gin.Context) {
	if _, authed := requireUser(c); !authed {
		return
	}
	var req GoalTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "title required (1-100 chars)")
		return
	}

	gt, err := h.goalTypeSvc.CreateType(c.Request.Context(), req.Title)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, gt)
}

// ListGoalTypes godoc
// @ID          listGoalTypes
// @Summary     List goal types (paginated)
// @Tags        GoalTypes
// @Produce     json
// @Param       page       query  int  false "Page number"      minimum(1) default(1)
// @Param       page_size  query  int  false "Items per page"   minimum(1) maximum(100) default(20)
// @Success     200  {object} handlers.ListGoalTypesResponse
// @Failure     401  {object} handlers.ErrorResponse "Not authenticated"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /goal-types [get]
func (h *Handlers) ListGoalTypes(c *gin.Context) {
	if _, authed := requireUser(c); !authed {
		return
	}
	page, pageSize := clampPagination(c)

	items, total, err := h.goalTypeSvc.ListTypesPage(c.Request.Context(), (page-1)*pageSize, pageSize)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, ListGoalTypesResponse{
		GoalTypes:  items,
		Pagination: newPagination(page, pageSize, total),
	})
}

// GetGoalType godoc
// @ID          getGoalType
// @Summary     Fetch a goal type
// @Tags        GoalTypes
// @Produce     json
// @Param       id  path  string  true  "Goal type ID (UUID)"  format(uuid)
// @Success     200  {object} domain.GoalType
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Not authenticated"
// @Failure     404  {object} handlers.ErrorResponse "Goal type not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /goal-types/{id} [get]
func (h *Handlers) GetGoalType(c *gin.Context) {
	if _, authed := requireUser(c); !authed {
		return
	}
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "goal type id must be a UUID")
		return
	}

	gt, err := h.goalTypeSvc.GetType(c.Request.Context(), id)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, gt)
}

// UpdateGoalType godoc
// @ID          updateGoalType
// @Summary     Rename a goal type
// @Tags        GoalTypes
// @Accept      json
// @Produce     json
// @Param       id    path  string  true  "Goal type ID (UUID)"  format(uuid)
// @Param       body  body  handlers.GoalTypeRequest  true  "New title"
// @Success     200  {object} domain.GoalType
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Not authenticated"
// @Failure     404  {object} handlers.ErrorResponse "Goal type not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /goal-types/{id} [put]
func (h *Handlers) UpdateGoalType(c *gin.Context) {
	if _, authed := requireUser(c); !authed {
		return
	}
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "goal type id must be a UUID")
		return
	}
	var req GoalTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "title required (1-100 chars)")
		return
	}

	gt, err := h.goalTypeSvc.RenameType(c.Request.Context(), id, req.Title)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, gt)
}

// DeleteGoalType godoc
// @ID          deleteGoalType
// @Summary     Delete a goal type and its custom fields
// @Tags        GoalTypes
// @Produce     json
// @Param       id  path  string  true  "Goal type ID (UUID)"  format(uuid)
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Not authenticated"
// @Failure     404  {object} handlers.ErrorResponse "Goal type not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /goal-types/{id} [delete]
func (h *Handlers) DeleteGoalType(c *gin.Context) {
	if _, authed := requireUser(c); !authed {
		return
	}
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "goal type id must be a UUID")
		return
	}

	if err := h.goalTypeSvc.DeleteType(c.Request.Context(), id); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}

// CreateField godoc
// @ID          createField
// @Summary     Add a custom field to a goal type
// @Tags        GoalTypes
// @Accept      json
// @Produce     json
// @Param       id    path  string  true  "Goal type ID (UUID)"  format(uuid)
// @Param       body  body  handlers.FieldRequest  true  "Field payload"
// @Success     201  {object} domain.CustomFieldDefinition
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Not authenticated"
// @Failure     404  {object} handlers.ErrorResponse "Goal type not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /goal-types/{id}/fields [post]
func (h *Handlers) CreateField(c *gin.Context) {
	if _, authed := requireUser(c); !authed {
		return
	}
	typeID := c.Param("id")
	if _, err := uuid.Parse(typeID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "goal type id must be a UUID")
		return
	}
	var req FieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "label and type required")
		return
	}

	fd, err := h.goalTypeSvc.AddField(c.Request.Context(), typeID, services.FieldInput{
		Label:       req.Label,
		Type:        req.Type,
		Required:    req.Required,
		Placeholder: req.Placeholder,
	})
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, fd)
}

// ListFields godoc
// @ID          listFields
// @Summary     List the custom fields of a goal type
// @Tags        GoalTypes
// @Produce     json
// @Param       id        path   string  true   "Goal type ID (UUID)"  format(uuid)
// @Param       required  query  bool    false  "Only required fields"
// @Success     200  {object} handlers.ListFieldsResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Not authenticated"
// @Failure     404  {object} handlers.ErrorResponse "Goal type not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /goal-types/{id}/fields [get]
func (h *Handlers) ListFields(c *gin.Context) {
	if _, authed := requireUser(c); !authed {
		return
	}
	typeID := c.Param("id")
	if _, err := uuid.Parse(typeID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "goal type id must be a UUID")
		return
	}

	fields, err := h.goalTypeSvc.ListFields(c.Request.Context(), typeID, c.Query("required") == "true")
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, ListFieldsResponse{Fields: fields})
}

// UpdateField godoc
// @ID          updateField
// @Summary     Update a custom field definition
// @Tags        GoalTypes
// @Accept      json
// @Produce     json
// @Param       id    path  string  true  "Field ID (UUID)"  format(uuid)
// @Param       body  body  handlers.FieldRequest  true  "Field payload"
// @Success     200  {object} domain.CustomFieldDefinition
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Not authenticated"
// @Failure     404  {object} handlers.ErrorResponse "Field not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /goal-fields/{id} [put]
func (h *Handlers) UpdateField(c *gin.Context) {
	if _, authed := requireUser(c); !authed {
		return
	}
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "field id must be a UUID")
		return
	}
	var req FieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "label and type required")
		return
	}

	fd, err := h.goalTypeSvc.UpdateField(c.Request.Context(), id, services.FieldInput{
		Label:       req.Label,
		Type:        req.Type,
		Required:    req.Required,
		Placeholder: req.Placeholder,
	})
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, fd)
}

// FieldPatchRequest is the JSON payload for partially updating a custom
// field definition. Absent fields are left untouched.
type FieldPatchRequest struct {
	Label       *string `json:"label,omitempty"`
	Type        *string `json:"type,omitempty"`
	Required    *bool   `json:"required,omitempty"`
	Placeholder *string `json:"placeholder,omitempty"`
}

// PatchField godoc
// @ID          patchField
// @Summary     Partially update a custom field definition
// @Description Updates only the fields present in the payload.
// @Tags        GoalTypes
// @Accept      json
// @Produce     json
// @Param       id    path  string  true  "Field ID (UUID)"  format(uuid)
// @Param       body  body  handlers.FieldPatchRequest  true  "Fields to change"
// @Success     200  {object} domain.CustomFieldDefinition
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Not authenticated"
// @Failure     404  {object} handlers.ErrorResponse "Field not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /goal-fields/{id} [patch]
func (h *Handlers) PatchField(c *gin.Context) {
	if _, authed := requireUser(c); !authed {
		return
	}
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "field id must be a UUID")
		return
	}
	var req FieldPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON payload")
		return
	}

	fd, err := h.goalTypeSvc.PatchField(c.Request.Context(), id, services.FieldPatch{
		Label:       req.Label,
		Type:        req.Type,
		Required:    req.Required,
		Placeholder: req.Placeholder,
	})
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, fd)
}

// DeleteField godoc
// @ID          deleteField
// @Summary     Delete a custom field definition
// @Tags        GoalTypes
// @Produce     json
// @Param       id  path  string  true  "Field ID (UUID)"  format(uuid)
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Not authenticated"
// @Failure     404  {object} handlers.ErrorResponse "Field not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /goal-fields/{id} [delete]
func (h *Handlers) DeleteField(c *gin.Context) {
	if _, authed := requireUser(c); !authed {
		return
	}
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "field id must be a UUID")
		return
	}

	if err := h.goalTypeSvc.DeleteField(c.Request.Context(), id); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}
