// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// This file centralizes symbolic error code constants that are mapped to HTTP responses
// (via the `fail()` helper in this package), plus the translation of service-level
// errors into HTTP results. The codes provide clients with a stable, machine-readable
// error taxonomy that supplements human-readable messages.
//
// Conventions:
//   - Codes are lowercase, snake_case, and domain-agnostic unless explicitly noted.
//   - Generic codes (e.g., bad_request, unauthorized, conflict) mirror common HTTP
//     status semantics to aid interoperability.
//   - All error responses must include both an HTTP status and one of these codes.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "conflict",
//	  "message": "private chat already exists between these users"
//	}
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/axisapp/axis-backend/internal/services"
)

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeForbidden    = "forbidden"
	ErrCodeNotFound     = "not_found"
	ErrCodeConflict     = "conflict"
	ErrCodeRateLimited  = "too_many_requests"
	ErrCodeInternal     = "internal_error"

	// Domain-specific:
	ErrCodeMethodNotAllowed = "method_not_allowed"
)

// failService translates a service-layer error into the HTTP error envelope.
//
// Known sentinel errors keep their message; anything unrecognized is reported
// as an opaque internal error so no storage details leak to clients.
func failService(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrChatNotFound),
		errors.Is(err, services.ErrGoalNotFound),
		errors.Is(err, services.ErrGoalTypeNotFound),
		errors.Is(err, services.ErrFieldNotFound),
		errors.Is(err, services.ErrNotificationNotFound),
		errors.Is(err, services.ErrTemplateNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())

	case errors.Is(err, services.ErrAccessDenied):
		fail(c, http.StatusForbidden, ErrCodeForbidden, err.Error())

	case errors.Is(err, services.ErrPrivateChatExists),
		errors.Is(err, services.ErrTemplateTypeExists):
		fail(c, http.StatusConflict, ErrCodeConflict, err.Error())

	case errors.Is(err, services.ErrCreatorNotMember),
		errors.Is(err, services.ErrInvalidChatType),
		errors.Is(err, services.ErrPrivateChatMembers),
		errors.Is(err, services.ErrGroupChatMembers),
		errors.Is(err, services.ErrGroupChatName),
		errors.Is(err, services.ErrGroupChatOrganization),
		errors.Is(err, services.ErrEmptyMessage),
		errors.Is(err, services.ErrMessageTooLong),
		errors.Is(err, services.ErrInvalidGoal),
		errors.Is(err, services.ErrInvalidNotification):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())

	case errors.Is(err, services.ErrNotAuthenticated):
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, err.Error())

	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
	}
}
