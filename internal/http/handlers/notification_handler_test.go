package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/axisapp/axis-backend/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestCreateNotification_DefaultsStatus(t *testing.T) {
	db, h := newTestHandlers(t)
	r := newTestRouter(db, h, "u1")

	w := doJSON(t, r, http.MethodPost, "/notifications", NotificationRequest{
		Channel: "EMAIL",
		Subject: "Digest",
		Content: "Weekly digest body",
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status = %d body %s", w.Code, w.Body.String())
	}
	var n domain.NotificationLog
	decode(t, w, &n)
	if n.ID == "" || n.UserID != "u1" || n.Status != domain.NotificationStatusSent {
		t.Fatalf("unexpected entry: %+v", n)
	}

	// Unknown channel is rejected
	w = doJSON(t, r, http.MethodPost, "/notifications", NotificationRequest{Channel: "FAX"}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad channel: status = %d", w.Code)
	}
}

func TestListNotifications_Filter(t *testing.T) {
	db, h := newTestHandlers(t)
	r := newTestRouter(db, h, "u1")

	for _, req := range []NotificationRequest{
		{Channel: "EMAIL", Status: "SENT"},
		{Channel: "EMAIL", Status: "READ"},
		{Channel: "PUSH", Status: "SENT"},
	} {
		if w := doJSON(t, r, http.MethodPost, "/notifications", req, nil); w.Code != http.StatusCreated {
			t.Fatalf("seed: %d", w.Code)
		}
	}

	w := doJSON(t, r, http.MethodGet, "/notifications?channel=EMAIL&status=SENT", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: status = %d", w.Code)
	}
	var resp ListNotificationsResponse
	decode(t, w, &resp)
	if resp.Pagination.Total != 1 || len(resp.Notifications) != 1 {
		t.Fatalf("filtered: %+v", resp.Pagination)
	}

	if w := doJSON(t, r, http.MethodGet, "/notifications?channel=SMS", nil, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("bad filter: status = %d", w.Code)
	}
}

func TestPatchNotification(t *testing.T) {
	db, h := newTestHandlers(t)
	r := newTestRouter(db, h, "u1")
	other := newTestRouter(db, h, "u2")

	var n domain.NotificationLog
	w := doJSON(t, r, http.MethodPost, "/notifications", NotificationRequest{Channel: "PUSH", Subject: "s"}, nil)
	decode(t, w, &n)

	status := "READ"
	w = doJSON(t, r, http.MethodPatch, "/notifications/"+n.ID, NotificationPatchRequest{Status: &status}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("patch: status = %d body %s", w.Code, w.Body.String())
	}
	var got domain.NotificationLog
	decode(t, w, &got)
	if got.Status != domain.NotificationStatusRead || got.Subject != "s" {
		t.Fatalf("patched: %+v", got)
	}

	// Foreign entries look absent
	if w := doJSON(t, other, http.MethodPatch, "/notifications/"+n.ID, NotificationPatchRequest{Status: &status}, nil); w.Code != http.StatusNotFound {
		t.Fatalf("foreign patch: status = %d; want 404", w.Code)
	}
}

func TestDeleteNotifications(t *testing.T) {
	db, h := newTestHandlers(t)
	r := newTestRouter(db, h, "u1")

	var n domain.NotificationLog
	w := doJSON(t, r, http.MethodPost, "/notifications", NotificationRequest{Channel: "EMAIL"}, nil)
	decode(t, w, &n)
	if w := doJSON(t, r, http.MethodPost, "/notifications", NotificationRequest{Channel: "PUSH"}, nil); w.Code != http.StatusCreated {
		t.Fatalf("seed: %d", w.Code)
	}

	if w := doJSON(t, r, http.MethodDelete, "/notifications/"+n.ID, nil, nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete one: status = %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodDelete, "/notifications", nil, nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete all: status = %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/notifications", nil, nil)
	var resp ListNotificationsResponse
	decode(t, w, &resp)
	if resp.Pagination.Total != 0 {
		t.Fatalf("history not empty: %+v", resp.Pagination)
	}
	// Clearing an empty history is still a 204
	if w := doJSON(t, r, http.MethodDelete, "/notifications", nil, nil); w.Code != http.StatusNoContent {
		t.Fatalf("empty delete all: status = %d", w.Code)
	}
}

func TestSettingsEndpoints(t *testing.T) {
	db, h := newTestHandlers(t)
	r := newTestRouter(db, h, "u1")

	// Defaults are served without a stored row
	w := doJSON(t, r, http.MethodGet, "/notification-settings", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get: status = %d", w.Code)
	}
	var st domain.NotificationSettings
	decode(t, w, &st)
	if !st.EnableEmail || !st.EnablePush || st.EnableTelegram || st.ID != "" {
		t.Fatalf("defaults: %+v", st)
	}

	// First patch materializes the row
	tg := true
	w = doJSON(t, r, http.MethodPatch, "/notification-settings", SettingsPatchRequest{EnableTelegram: &tg}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("patch: status = %d body %s", w.Code, w.Body.String())
	}
	decode(t, w, &st)
	if st.ID == "" || !st.EnableTelegram || !st.EnableEmail {
		t.Fatalf("materialized: %+v", st)
	}

	// Reset reverts to defaults
	if w := doJSON(t, r, http.MethodDelete, "/notification-settings", nil, nil); w.Code != http.StatusNoContent {
		t.Fatalf("reset: status = %d", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/notification-settings", nil, nil)
	decode(t, w, &st)
	if st.EnableTelegram || st.ID != "" {
		t.Fatalf("after reset: %+v", st)
	}
}

func TestTemplateEndpoints(t *testing.T) {
	db, h := newTestHandlers(t)
	r := newTestRouter(db, h, "u1")

	w := doJSON(t, r, http.MethodPost, "/notification-templates", TemplateRequest{
		Type:    "welcome",
		Subject: "Hi",
		Content: "Welcome aboard",
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status = %d body %s", w.Code, w.Body.String())
	}
	var tpl domain.NotificationTemplate
	decode(t, w, &tpl)
	if tpl.Type != "WELCOME" {
		t.Fatalf("type = %q; want WELCOME", tpl.Type)
	}

	// Same normalized type conflicts
	w = doJSON(t, r, http.MethodPost, "/notification-templates", TemplateRequest{Type: "WELCOME", Content: "x"}, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate type: status = %d; want 409", w.Code)
	}

	// Update keeping its own type is fine
	w = doJSON(t, r, http.MethodPut, "/notification-templates/"+tpl.ID, TemplateRequest{
		Type:    "welcome",
		Subject: "Hello",
		Content: "Updated",
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("update: status = %d body %s", w.Code, w.Body.String())
	}
	decode(t, w, &tpl)
	if tpl.Subject != "Hello" || tpl.Content != "Updated" {
		t.Fatalf("updated: %+v", tpl)
	}

	w = doJSON(t, r, http.MethodGet, "/notification-templates", nil, nil)
	var list ListTemplatesResponse
	decode(t, w, &list)
	if list.Pagination.Total != 1 {
		t.Fatalf("list total = %d", list.Pagination.Total)
	}

	if w := doJSON(t, r, http.MethodDelete, "/notification-templates/"+tpl.ID, nil, nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete: status = %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodGet, "/notification-templates/"+tpl.ID, nil, nil); w.Code != http.StatusNotFound {
		t.Fatalf("get after delete: status = %d", w.Code)
	}
}

func TestGoalTypeEndpoints(t *testing.T) {
	db, h := newTestHandlers(t)
	r := newTestRouter(db, h, "u1")

	w := doJSON(t, r, http.MethodPost, "/goal-types", GoalTypeRequest{Title: "Fitness"}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create type: status = %d body %s", w.Code, w.Body.String())
	}
	var gt domain.GoalType
	decode(t, w, &gt)

	w = doJSON(t, r, http.MethodPost, "/goal-types/"+gt.ID+"/fields", FieldRequest{
		Label:    "Target weight",
		Type:     "number",
		Required: true,
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create field: status = %d body %s", w.Code, w.Body.String())
	}
	var fd domain.CustomFieldDefinition
	decode(t, w, &fd)
	if fd.GoalTypeID != gt.ID || !fd.Required {
		t.Fatalf("field: %+v", fd)
	}

	w = doJSON(t, r, http.MethodGet, "/goal-types/"+gt.ID+"/fields", nil, nil)
	var fields ListFieldsResponse
	decode(t, w, &fields)
	if len(fields.Fields) != 1 {
		t.Fatalf("fields = %+v", fields.Fields)
	}

	w = doJSON(t, r, http.MethodPut, "/goal-fields/"+fd.ID, FieldRequest{Label: "Weight", Type: "number"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("update field: status = %d", w.Code)
	}

	if w := doJSON(t, r, http.MethodPut, "/goal-types/"+gt.ID, GoalTypeRequest{Title: "Health"}, nil); w.Code != http.StatusOK {
		t.Fatalf("rename type: status = %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodDelete, "/goal-types/"+gt.ID, nil, nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete type: status = %d", w.Code)
	}
	// Fields are gone together with their type
	if w := doJSON(t, r, http.MethodPut, "/goal-fields/"+fd.ID, FieldRequest{Label: "x", Type: "text"}, nil); w.Code != http.StatusNotFound {
		t.Fatalf("orphan field update: status = %d; want 404", w.Code)
	}
}

func TestUnreadNotifications(t *testing.T) {
	db, h := newTestHandlers(t)
	r := newTestRouter(db, h, "u1")

	w := doJSON(t, r, http.MethodGet, "/notifications/unread", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", w.Code, w.Body.String())
	}
	var resp NotificationUnreadResponse
	decode(t, w, &resp)
	if resp.Unread != 0 {
		t.Fatalf("unread = %d; want 0", resp.Unread)
	}

	doJSON(t, r, http.MethodPost, "/notifications", NotificationRequest{Channel: "EMAIL"}, nil)
	doJSON(t, r, http.MethodPost, "/notifications", NotificationRequest{Channel: "PUSH"}, nil)
	doJSON(t, r, http.MethodPost, "/notifications", NotificationRequest{Channel: "EMAIL", Status: "READ"}, nil)

	w = doJSON(t, r, http.MethodGet, "/notifications/unread", nil, nil)
	decode(t, w, &resp)
	if resp.Unread != 2 {
		t.Fatalf("unread = %d; want 2", resp.Unread)
	}
}

func TestGetTemplateByType(t *testing.T) {
	db, h := newTestHandlers(t)
	r := newTestRouter(db, h, "u1")

	w := doJSON(t, r, http.MethodPost, "/notification-templates", TemplateRequest{
		Type:    "goal_reminder",
		Content: "Time to check in on your goals",
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status = %d body %s", w.Code, w.Body.String())
	}

	// Lookup is case-insensitive
	w = doJSON(t, r, http.MethodGet, "/notification-templates/by-type/goal_reminder", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("by-type: status = %d body %s", w.Code, w.Body.String())
	}
	var tpl domain.NotificationTemplate
	decode(t, w, &tpl)
	if tpl.Type != "GOAL_REMINDER" {
		t.Fatalf("type = %q; want GOAL_REMINDER", tpl.Type)
	}

	w = doJSON(t, r, http.MethodGet, "/notification-templates/by-type/NOPE", nil, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing type: status = %d", w.Code)
	}
}

func TestPatchFieldEndpoint(t *testing.T) {
	db, h := newTestHandlers(t)
	r := newTestRouter(db, h, "u1")

	w := doJSON(t, r, http.MethodPost, "/goal-types", GoalTypeRequest{Title: "Career"}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create type: status = %d body %s", w.Code, w.Body.String())
	}
	var gt domain.GoalType
	decode(t, w, &gt)

	w = doJSON(t, r, http.MethodPost, "/goal-types/"+gt.ID+"/fields", FieldRequest{
		Label:       "Mentor",
		Type:        "text",
		Required:    true,
		Placeholder: "Name",
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create field: status = %d body %s", w.Code, w.Body.String())
	}
	var fd domain.CustomFieldDefinition
	decode(t, w, &fd)

	w = doJSON(t, r, http.MethodPatch, "/goal-fields/"+fd.ID, FieldPatchRequest{Label: strPtr("Coach")}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("patch: status = %d body %s", w.Code, w.Body.String())
	}
	var patched domain.CustomFieldDefinition
	decode(t, w, &patched)
	if patched.Label != "Coach" || patched.Type != "text" || !patched.Required || patched.Placeholder != "Name" {
		t.Fatalf("patched field: %+v", patched)
	}

	w = doJSON(t, r, http.MethodPatch, "/goal-fields/"+uuid.NewString(), FieldPatchRequest{}, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing field: status = %d", w.Code)
	}
}
