// Notification settings HTTP handlers.
//
// This file exposes REST endpoints for per-user channel preferences:
//   - GET    /notification-settings  (read, serves defaults when never saved)
//   - PATCH  /notification-settings  (update toggles, materializes the row)
//   - DELETE /notification-settings  (reset to defaults)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/axisapp/axis-backend/internal/services"
)

// SettingsPatchRequest is the JSON payload for updating channel toggles.
// Absent fields are left untouched.
type SettingsPatchRequest struct {
	EnableEmail    *bool `json:"enable_email,omitempty"`
	EnablePush     *bool `json:"enable_push,omitempty"`
	EnableTelegram *bool `json:"enable_telegram,omitempty"`
}

// GetSettings godoc
// @ID          getSettings
// @Summary     Read the current user's notification settings
// @Description Returns the stored settings, or the channel defaults (email on, push on, telegram off) when none were ever saved. Reading defaults does not persist them.
// @Tags        NotificationSettings
// @Produce     json
// @Success     200  {object} domain.NotificationSettings
// @Failure     401  {object} handlers.ErrorResponse "Not authenticated"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /notification-settings [get]
func (h *Handlers) GetSettings(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	st, err := h.settingsSvc.Get(c.Request.Context(), uid)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, st)
}

// PatchSettings godoc
// @ID          patchSettings
// @Summary     Update the current user's notification settings
// @Description Applies the provided toggles, creating the settings row from defaults on first update.
// @Tags        NotificationSettings
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.SettingsPatchRequest  true  "Toggles to update"
// @Success     200  {object} domain.NotificationSettings
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Not authenticated"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /notification-settings [patch]
func (h *Handlers) PatchSettings(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	var req SettingsPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	st, err := h.settingsSvc.Update(c.Request.Context(), uid, services.SettingsPatch{
		EnableEmail:    req.EnableEmail,
		EnablePush:     req.EnablePush,
		EnableTelegram: req.EnableTelegram,
	})
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, st)
}

// ResetSettings godoc
// @ID          resetSettings
// @Summary     Reset the current user's notification settings
// @Description Removes the stored settings so future reads serve the defaults. Resetting a user with no stored settings succeeds.
// @Tags        NotificationSettings
// @Produce     json
// @Success     204  {string} string "No Content"
// @Failure     401  {object} handlers.ErrorResponse "Not authenticated"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /notification-settings [delete]
func (h *Handlers) ResetSettings(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	if err := h.settingsSvc.Reset(c.Request.Context(), uid); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}
