// Package services – MessageService
//
// This file implements message sending and retrieval inside chats. Every
// operation is gated on chat membership: sending to or reading from a chat
// the caller does not belong to is denied.
package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/axisapp/axis-backend/internal/domain"
	"github.com/axisapp/axis-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// MessageService provides message operations scoped to a chat the caller is
// a member of.
type MessageService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Chats answers the membership question for authorization.
	Chats *ChatService

	// ContentMaxLen caps message content by rune length.
	ContentMaxLen int
}

// NewMessageService constructs a MessageService with sane defaults.
func NewMessageService(db *gorm.DB, chats *ChatService) *MessageService {
	return &MessageService{
		DB:            db,
		Chats:         chats,
		ContentMaxLen: 5000,
	}
}

// Send persists a message from senderID into chatID and touches the chat's
// last-activity timestamp. The caller must be a member of the chat.
//
// The activity touch is best-effort: the stored message is returned even if
// the touch fails, and the failure is logged.
func (s *MessageService) Send(ctx context.Context, chatID, senderID, content string) (*domain.Message, error) {
	tr := otel.Tracer("services/MessageService")
	ctx, span := tr.Start(ctx, "Send",
		trace.WithAttributes(
			attribute.String("chat.id", chatID),
			attribute.String("user.id", senderID),
		),
	)
	defer span.End()

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}
	if s.ContentMaxLen > 0 && utf8.RuneCountInString(content) > s.ContentMaxLen {
		return nil, ErrMessageTooLong
	}

	if err := s.requireMember(ctx, chatID, senderID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	msg, err := repo.CreateMessage(ctx, s.DB, chatID, senderID, content, now)
	if err != nil {
		return nil, err
	}

	if err := repo.TouchLastMessage(ctx, s.DB, chatID, now); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("chat_id", chatID).Msg("last-activity touch failed")
	}
	return msg, nil
}

// ListPage returns one page of messages in chatID, newest first, for a user
// who must be a member of the chat. It also reports the total message count.
func (s *MessageService) ListPage(ctx context.Context, chatID, userID string, offset, limit int) ([]domain.Message, int64, error) {
	tr := otel.Tracer("services/MessageService")
	ctx, span := tr.Start(ctx, "ListPage",
		trace.WithAttributes(attribute.String("chat.id", chatID)),
	)
	defer span.End()

	if err := s.requireMember(ctx, chatID, userID); err != nil {
		return nil, 0, err
	}

	total, err := repo.CountMessages(ctx, s.DB, chatID)
	if err != nil {
		return nil, 0, err
	}
	msgs, err := repo.ListMessagesPage(ctx, s.DB, chatID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return msgs, total, nil
}

// UnreadCount reports how many messages in chatID were sent by other users
// and not yet read. The caller must be a member of the chat.
func (s *MessageService) UnreadCount(ctx context.Context, chatID, userID string) (int64, error) {
	if err := s.requireMember(ctx, chatID, userID); err != nil {
		return 0, err
	}
	return repo.CountUnreadMessages(ctx, s.DB, chatID, userID)
}

// requireMember authorizes userID against chatID. A missing chat yields
// ErrChatNotFound; an existing chat the user is not a member of yields
// ErrAccessDenied.
func (s *MessageService) requireMember(ctx context.Context, chatID, userID string) error {
	ok, err := s.Chats.HasAccess(ctx, chatID, userID)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	if _, err := s.Chats.Repo.GetChat(ctx, s.DB, chatID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrChatNotFound
		}
		return err
	}
	return ErrAccessDenied
}
