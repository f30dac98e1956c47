// Package services defines the business logic for the goal, notification,
// and chat domains. This file centralizes common service-level error values
// so that they can be consistently returned by service methods and checked
// by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the handler
// layer.
package services

import "errors"

// Identity errors.
var (
	// ErrNotAuthenticated is returned when no caller identity could be
	// resolved for an operation that requires one.
	ErrNotAuthenticated = errors.New("user not authenticated")
)

// Chat-related errors.
var (
	// ErrChatNotFound indicates that the requested chat does not exist.
	ErrChatNotFound = errors.New("chat not found")

	// ErrAccessDenied is returned when an authenticated user attempts an
	// operation on an existing chat they are not a member of.
	ErrAccessDenied = errors.New("access denied to chat")

	// ErrCreatorNotMember is returned when the requesting user is absent
	// from the member list of a chat being created.
	ErrCreatorNotMember = errors.New("current user must be in members list")

	// ErrInvalidChatType is returned for an unknown chat type.
	ErrInvalidChatType = errors.New("chat type must be PRIVATE or GROUP")

	// ErrPrivateChatMembers is returned when a private chat does not have
	// exactly two distinct members.
	ErrPrivateChatMembers = errors.New("private chat must have exactly 2 members")

	// ErrPrivateChatExists is returned when a private chat already exists
	// for the same unordered pair of users.
	ErrPrivateChatExists = errors.New("private chat already exists between these users")

	// ErrGroupChatMembers is returned when a group chat has fewer than two
	// members.
	ErrGroupChatMembers = errors.New("group chat must have at least 2 members")

	// ErrGroupChatName is returned when a group chat is missing a name.
	ErrGroupChatName = errors.New("group chat must have a name")

	// ErrGroupChatOrganization is returned when a group chat is missing an
	// organization id.
	ErrGroupChatOrganization = errors.New("group chat must belong to an organization")

	// ErrEmptyMessage is returned when a message send carries no content.
	ErrEmptyMessage = errors.New("message content is empty")

	// ErrMessageTooLong is returned when message content exceeds the
	// configured maximum length.
	ErrMessageTooLong = errors.New("message content too long")
)

// Goal-related errors.
var (
	// ErrGoalNotFound indicates that the goal does not exist or belongs to
	// another user. The two cases are deliberately indistinguishable.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrGoalTypeNotFound indicates that the goal type does not exist.
	ErrGoalTypeNotFound = errors.New("goal type not found")

	// ErrFieldNotFound indicates that the custom field definition does
	// not exist.
	ErrFieldNotFound = errors.New("custom field definition not found")

	// ErrInvalidGoal is returned for a structurally invalid goal payload
	// (blank title, unknown type or status).
	ErrInvalidGoal = errors.New("invalid goal payload")
)

// Notification-related errors.
var (
	// ErrNotificationNotFound indicates that the notification log entry does
	// not exist or belongs to another user (merged on purpose).
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrTemplateNotFound indicates that the notification template does
	// not exist.
	ErrTemplateNotFound = errors.New("notification template not found")

	// ErrTemplateTypeExists is returned when another template already holds
	// the requested type.
	ErrTemplateTypeExists = errors.New("notification template with this type already exists")

	// ErrInvalidNotification is returned for a structurally invalid
	// notification payload (unknown channel or status).
	ErrInvalidNotification = errors.New("invalid notification payload")
)
