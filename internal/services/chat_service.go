// Package services – ChatService
//
// This file implements the ChatService, which manages the lifecycle of chats.
// It validates chat-creation requests (member lists, group naming,
// organization scoping), enforces the private-chat uniqueness rule for
// unordered member pairs, and answers the membership question that gates
// every message operation.
//
// Service-level errors (e.g., ErrChatNotFound, ErrPrivateChatExists) are
// returned for predictable cases so handlers can map them to HTTP results
// consistently.
package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/axisapp/axis-backend/internal/domain"
	"github.com/axisapp/axis-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ChatRepo defines the repository contract required by ChatService.
// Implementations are responsible for persistence of chat aggregates.
type ChatRepo interface {
	// CreateChat inserts a chat with its membership rows.
	CreateChat(ctx context.Context, db *gorm.DB, chat *domain.Chat) error

	// GetChat fetches a chat by id with members loaded.
	GetChat(ctx context.Context, db *gorm.DB, id string) (*domain.Chat, error)

	// ListChatsForUser returns every chat the user is a member of.
	ListChatsForUser(ctx context.Context, db *gorm.DB, userID string) ([]domain.Chat, error)

	// ListGroupChatsForOrganization returns all group chats in an organization.
	ListGroupChatsForOrganization(ctx context.Context, db *gorm.DB, orgID string) ([]domain.Chat, error)

	// FindPrivateChat looks up the private chat between two users
	// (symmetric in its arguments).
	FindPrivateChat(ctx context.Context, db *gorm.DB, userA, userB string) (*domain.Chat, error)

	// IsChatMember reports whether the user is a member of the chat.
	IsChatMember(ctx context.Context, db *gorm.DB, chatID, userID string) (bool, error)
}

// ChatService provides chat lifecycle operations: creation with type-specific
// validation, listing, retrieval, and the membership check used as the
// authorization gate for message operations.
type ChatService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the chat repository used by this service.
	Repo ChatRepo

	// NameMaxLen caps stored group chat names by rune length.
	NameMaxLen int
}

// NewChatService constructs a ChatService with sane defaults.
func NewChatService(db *gorm.DB, r ChatRepo) *ChatService {
	return &ChatService{
		DB:         db,
		Repo:       r,
		NameMaxLen: 100,
	}
}

// CreateChatInput carries the validated fields of a chat-creation request.
type CreateChatInput struct {
	Type           domain.ChatType
	OrganizationID *string
	Name           *string
	Members        []string
}

// Create validates and persists a new chat requested by userID.
//
// The requesting user must appear in the member list. Private chats require
// exactly two distinct members and must not duplicate an existing chat for
// the same unordered pair; group chats require at least two members, a
// non-blank name, and an organization id.
func (s *ChatService) Create(ctx context.Context, userID string, in CreateChatInput) (*domain.Chat, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "Create",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("chat.type", string(in.Type)),
		),
	)
	defer span.End()

	members := dedupeMembers(in.Members)
	if !containsMember(members, userID) {
		return nil, ErrCreatorNotMember
	}

	chat := &domain.Chat{
		ID:        uuid.NewString(),
		Type:      in.Type,
		CreatedAt: time.Now().UTC(),
	}

	switch in.Type {
	case domain.ChatTypePrivate:
		if len(members) != 2 {
			return nil, ErrPrivateChatMembers
		}
		other := members[0]
		if other == userID {
			other = members[1]
		}
		// Symmetric pre-check for a friendly error; the unique pair-key index
		// remains the authoritative guard.
		if _, err := s.Repo.FindPrivateChat(ctx, s.DB, userID, other); err == nil {
			return nil, ErrPrivateChatExists
		} else if !errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
		pk := domain.PairKey(userID, other)
		chat.PairKey = &pk

	case domain.ChatTypeGroup:
		if len(members) < 2 {
			return nil, ErrGroupChatMembers
		}
		name := normalizeName(strPtrValue(in.Name))
		if name == "" {
			return nil, ErrGroupChatName
		}
		if in.OrganizationID == nil || strings.TrimSpace(*in.OrganizationID) == "" {
			return nil, ErrGroupChatOrganization
		}
		name = s.clipName(name)
		org := strings.TrimSpace(*in.OrganizationID)
		chat.Name = &name
		chat.OrganizationID = &org

	default:
		return nil, ErrInvalidChatType
	}

	for _, m := range members {
		chat.Members = append(chat.Members, domain.ChatMember{ChatID: chat.ID, UserID: m})
	}

	if err := s.Repo.CreateChat(ctx, s.DB, chat); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrPrivateChatExists
		}
		return nil, err
	}
	return chat, nil
}

// ListForUser returns every chat the user is a member of, most recently
// active first.
func (s *ChatService) ListForUser(ctx context.Context, userID string) ([]domain.Chat, error) {
	return s.Repo.ListChatsForUser(ctx, s.DB, userID)
}

// ListGroupChatsForOrganization returns all group chats within an organization.
func (s *ChatService) ListGroupChatsForOrganization(ctx context.Context, orgID string) ([]domain.Chat, error) {
	return s.Repo.ListGroupChatsForOrganization(ctx, s.DB, orgID)
}

// Get fetches a chat for userID. A missing chat yields ErrChatNotFound; an
// existing chat the user is not a member of yields ErrAccessDenied.
func (s *ChatService) Get(ctx context.Context, chatID, userID string) (*domain.Chat, error) {
	chat, err := s.Repo.GetChat(ctx, s.DB, chatID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, err
	}
	if !containsMember(chat.MemberIDs(), userID) {
		return nil, ErrAccessDenied
	}
	return chat, nil
}

// HasAccess reports whether userID is a member of chatID. It is the
// authorization gate for every message operation.
func (s *ChatService) HasAccess(ctx context.Context, chatID, userID string) (bool, error) {
	return s.Repo.IsChatMember(ctx, s.DB, chatID, userID)
}

// clipName truncates a group chat name to the configured maximum rune length.
func (s *ChatService) clipName(name string) string {
	if s.NameMaxLen > 0 && utf8.RuneCountInString(name) > s.NameMaxLen {
		return string([]rune(name)[:s.NameMaxLen])
	}
	return name
}

// dedupeMembers trims whitespace and removes duplicate and empty ids while
// preserving first-seen order.
func dedupeMembers(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, m := range in {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}

func containsMember(members []string, userID string) bool {
	for _, m := range members {
		if m == userID {
			return true
		}
	}
	return false
}

func strPtrValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// normalizeName trims whitespace and collapses multiple spaces to one.
func normalizeName(s string) string {
	return whitespaceRE.ReplaceAllString(strings.TrimSpace(s), " ")
}

// whitespaceRE collapses consecutive whitespace to a single space.
var whitespaceRE = regexp.MustCompile(`\s+`)
