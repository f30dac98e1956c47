// Goal HTTP handlers.
//
// This file exposes REST endpoints for goal resources:
//   - POST   /goals        (create)
//   - GET    /goals        (list, filtered + paginated, ETag support)
//   - GET    /goals/{id}   (fetch one)
//   - PATCH  /goals/{id}   (partial update, nil fields untouched)
//   - PUT    /goals/{id}   (full replace, id/owner/parent/created_at preserved)
//   - DELETE /goals/{id}   (delete)
//
// All endpoints operate on the authenticated user's own goals; goals owned by
// other users are reported as absent.
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/axisapp/axis-backend/internal/domain"
	"github.com/axisapp/axis-backend/internal/repo"
	"github.com/axisapp/axis-backend/internal/services"
)

// GoalRequest is the JSON payload for creating or replacing a goal.
type GoalRequest struct {
	Title          string     `json:"title" binding:"required,min=1" example:"Learn conversational Spanish"`
	Description    string     `json:"description" example:"30 minutes of practice every weekday"`
	Type           string     `json:"type" binding:"required" example:"LONG_TERM"`
	Status         string     `json:"status" example:"IN_PROGRESS"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	CompletionDate *time.Time `json:"completion_date,omitempty"`
	ParentID       *string    `json:"parent_id,omitempty"`
}

// GoalPatchRequest is the JSON payload for partially updating a goal.
// Absent fields are left untouched. The parent link cannot be changed after
// creation and is not part of this payload.
type GoalPatchRequest struct {
	Title          *string    `json:"title,omitempty"`
	Description    *string    `json:"description,omitempty"`
	Type           *string    `json:"type,omitempty"`
	Status         *string    `json:"status,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	CompletionDate *time.Time `json:"completion_date,omitempty"`
}

// ListGoalsResponse wraps a page of goals and pagination information.
type ListGoalsResponse struct {
	Goals      []domain.Goal `json:"goals"`
	Pagination Pagination    `json:"pagination"`
}

func (r GoalRequest) toInput() services.GoalInput {
	return services.GoalInput{
		Title:          r.Title,
		Description:    r.Description,
		Type:           domain.GoalTerm(r.Type),
		Status:         domain.GoalStatus(r.Status),
		StartDate:      r.StartDate,
		Deadline:       r.Deadline,
		CompletionDate: r.CompletionDate,
		ParentID:       r.ParentID,
	}
}

// goalFilterFromQuery builds the list filter from status/type query params.
func goalFilterFromQuery(c *gin.Context) (repo.GoalFilter, error) {
	var f repo.GoalFilter
	if v := c.Query("status"); v != "" {
		st := domain.GoalStatus(v)
		if !st.Valid() {
			return f, fmt.Errorf("unknown status %q", v)
		}
		f.Status = &st
	}
	if v := c.Query("type"); v != "" {
		gt := domain.GoalTerm(v)
		if !gt.Valid() {
			return f, fmt.Errorf("unknown type %q", v)
		}
		f.Type = &gt
	}
	return f, nil
}

// CreateGoal godoc
// @ID          createGoal
// @Summary     Create a goal
// @Description Creates a goal owned by the current user. Status defaults to NOT_STARTED.
// @Tags        Goals
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.GoalRequest  true  "Goal payload"
//
// @Success     201  {object} domain.Goal
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Not authenticated"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /goals [post]
func (h *Handlers) CreateGoal(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}

	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	g, err := h.goalSvc.Create(c.Request.Context(), uid, req.toInput())
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, g)
}

// ListGoals godoc
// @ID          listGoals
// @Summary     List the current user's goals
// @Description Returns a page of the user's goals, newest first. Optional status and type filters. Supports weak ETag via If-None-Match.
// @Tags        Goals
// @Produce     json
//
// @Param       status     query   string  false "Filter by status"  Enums(NOT_STARTED, IN_PROGRESS, COMPLETED, CANCELLED, ON_HOLD)
// @Param       type       query   string  false "Filter by type"    Enums(LONG_TERM, MEDIUM_TERM, SHORT_TERM)
// @Param       page       query   int     false "Page number"       minimum(1) default(1)
// @Param       page_size  query   int     false "Items per page"    minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListGoalsResponse
// @Header      200  {string} ETag  "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Not authenticated"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /goals [get]
func (h *Handlers) ListGoals(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	ctx := c.Request.Context()

	f, err := goalFilterFromQuery(c)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	page, pageSize := clampPagination(c)

	// ETag pre-check (best effort). The tag covers the whole collection, so a
	// filter change alone never yields a false 304.
	if count, maxTS, serr := repo.GoalsStats(ctx, h.DB, uid); serr == nil {
		var ts int64
		if maxTS != nil {
			ts = maxTS.Unix()
		}
		etag := fmt.Sprintf(`W/"goals:%s:%d:%d:%s:%s:%d:%d"`, uid, count, ts, c.Query("status"), c.Query("type"), page, pageSize)
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	items, total, err := h.goalSvc.ListPage(ctx, uid, f, (page-1)*pageSize, pageSize)
	if err != nil {
		failService(c, err)
		return
	}

	ok(c, http.StatusOK, ListGoalsResponse{
		Goals:      items,
		Pagination: newPagination(page, pageSize, total),
	})
}

// GetGoal godoc
// @ID          getGoal
// @Summary     Fetch a single goal
// @Description Returns a goal owned by the current user.
// @Tags        Goals
// @Produce     json
//
// @Param       id  path  string  true  "Goal ID (UUID)"  format(uuid)
//
// @Success     200  {object} domain.Goal
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Not authenticated"
// @Failure     404  {object} handlers.ErrorResponse "Goal not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /goals/{id} [get]
func (h *Handlers) GetGoal(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	goalID := c.Param("id")
	if _, err := uuid.Parse(goalID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "goal id must be a UUID")
		return
	}

	g, err := h.goalSvc.Get(c.Request.Context(), goalID, uid)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, g)
}

// PatchGoal godoc
// @ID          patchGoal
// @Summary     Partially update a goal
// @Description Applies the provided fields to a goal owned by the current user. Absent fields are untouched.
// @Tags        Goals
// @Accept      json
// @Produce     json
//
// @Param       id    path  string  true  "Goal ID (UUID)"  format(uuid)
// @Param       body  body  handlers.GoalPatchRequest  true  "Fields to update"
//
// @Success     200  {object} domain.Goal
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Not authenticated"
// @Failure     404  {object} handlers.ErrorResponse "Goal not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /goals/{id} [patch]
func (h *Handlers) PatchGoal(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	goalID := c.Param("id")
	if _, err := uuid.Parse(goalID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "goal id must be a UUID")
		return
	}

	var req GoalPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	patch := services.GoalPatch{
		Title:          req.Title,
		Description:    req.Description,
		StartDate:      req.StartDate,
		Deadline:       req.Deadline,
		CompletionDate: req.CompletionDate,
	}
	if req.Type != nil {
		t := domain.GoalTerm(*req.Type)
		patch.Type = &t
	}
	if req.Status != nil {
		st := domain.GoalStatus(*req.Status)
		patch.Status = &st
	}

	g, err := h.goalSvc.Patch(c.Request.Context(), goalID, uid, patch)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, g)
}

// PutGoal godoc
// @ID          putGoal
// @Summary     Replace a goal
// @Description Overwrites every mutable field of a goal owned by the current user. Id, owner, parent link, and creation timestamp are preserved.
// @Tags        Goals
// @Accept      json
// @Produce     json
//
// @Param       id    path  string  true  "Goal ID (UUID)"  format(uuid)
// @Param       body  body  handlers.GoalRequest  true  "Full goal payload"
//
// @Success     200  {object} domain.Goal
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Not authenticated"
// @Failure     404  {object} handlers.ErrorResponse "Goal not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /goals/{id} [put]
func (h *Handlers) PutGoal(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	goalID := c.Param("id")
	if _, err := uuid.Parse(goalID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "goal id must be a UUID")
		return
	}

	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	g, err := h.goalSvc.Replace(c.Request.Context(), goalID, uid, req.toInput())
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, g)
}

// DeleteGoal godoc
// @ID          deleteGoal
// @Summary     Delete a goal
// @Description Removes a goal owned by the current user.
// @Tags        Goals
// @Produce     json
//
// @Param       id  path  string  true  "Goal ID (UUID)"  format(uuid)
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Not authenticated"
// @Failure     404  {object} handlers.ErrorResponse "Goal not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /goals/{id} [delete]
func (h *Handlers) DeleteGoal(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	goalID := c.Param("id")
	if _, err := uuid.Parse(goalID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "goal id must be a UUID")
		return
	}

	if err := h.goalSvc.Delete(c.Request.Context(), goalID, uid); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}
