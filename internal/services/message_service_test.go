package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/axisapp/axis-backend/internal/domain"
	"github.com/axisapp/axis-backend/internal/repo"
)

// newSvcDB opens an isolated in-memory SQLite database with the full schema.
// Shared by the service tests that hit real persistence.
func newSvcDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:services_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	db.Exec("PRAGMA foreign_keys=ON;")
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// dbChatRepo implements ChatRepo against the repo package, mirroring the
// shim the router wires in production.
type dbChatRepo struct{}

func (dbChatRepo) CreateChat(ctx context.Context, db *gorm.DB, chat *domain.Chat) error {
	return repo.CreateChat(ctx, db, chat)
}

func (dbChatRepo) GetChat(ctx context.Context, db *gorm.DB, id string) (*domain.Chat, error) {
	return repo.GetChat(ctx, db, id)
}

func (dbChatRepo) ListChatsForUser(ctx context.Context, db *gorm.DB, userID string) ([]domain.Chat, error) {
	return repo.ListChatsForUser(ctx, db, userID)
}

func (dbChatRepo) ListGroupChatsForOrganization(ctx context.Context, db *gorm.DB, orgID string) ([]domain.Chat, error) {
	return repo.ListGroupChatsForOrganization(ctx, db, orgID)
}

func (dbChatRepo) FindPrivateChat(ctx context.Context, db *gorm.DB, userA, userB string) (*domain.Chat, error) {
	return repo.FindPrivateChat(ctx, db, userA, userB)
}

func (dbChatRepo) IsChatMember(ctx context.Context, db *gorm.DB, chatID, userID string) (bool, error) {
	return repo.IsChatMember(ctx, db, chatID, userID)
}

// seedPrivateChat persists a private chat between the two users and returns it.
func seedPrivateChat(t *testing.T, db *gorm.DB, a, b string) *domain.Chat {
	t.Helper()

	pk := domain.PairKey(a, b)
	chat := &domain.Chat{
		ID:        uuid.NewString(),
		Type:      domain.ChatTypePrivate,
		PairKey:   &pk,
		CreatedAt: time.Now().UTC(),
		Members: []domain.ChatMember{
			{UserID: a},
			{UserID: b},
		},
	}
	for i := range chat.Members {
		chat.Members[i].ChatID = chat.ID
	}
	if err := repo.CreateChat(context.Background(), db, chat); err != nil {
		t.Fatalf("seed chat: %v", err)
	}
	return chat
}

func newMessageService(db *gorm.DB) *MessageService {
	return NewMessageService(db, NewChatService(db, dbChatRepo{}))
}

func TestSend_Success_PersistsAndTouchesChat(t *testing.T) {
	db := newSvcDB(t)
	chat := seedPrivateChat(t, db, "alice", "bob")
	s := newMessageService(db)

	msg, err := s.Send(context.Background(), chat.ID, "alice", "  hello there  ")
	if err != nil {
		t.Fatalf("Send error: %v", err)
	}
	if msg.ID == "" || msg.ChatID != chat.ID || msg.SenderID != "alice" {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if msg.Content != "hello there" {
		t.Fatalf("content not trimmed: %q", msg.Content)
	}
	if msg.Status != domain.MessageStatusSent {
		t.Fatalf("status = %q; want SENT", msg.Status)
	}

	got, err := repo.GetChat(context.Background(), db, chat.ID)
	if err != nil {
		t.Fatalf("reload chat: %v", err)
	}
	if got.LastMessageAt == nil {
		t.Fatalf("LastMessageAt not touched")
	}
}

func TestSend_EmptyContent(t *testing.T) {
	db := newSvcDB(t)
	chat := seedPrivateChat(t, db, "alice", "bob")
	s := newMessageService(db)

	for _, content := range []string{"", "   ", "\n\t"} {
		if _, err := s.Send(context.Background(), chat.ID, "alice", content); !errors.Is(err, ErrEmptyMessage) {
			t.Errorf("content=%q: expected ErrEmptyMessage, got %v", content, err)
		}
	}
}

func TestSend_ContentTooLong_CountsRunes(t *testing.T) {
	db := newSvcDB(t)
	chat := seedPrivateChat(t, db, "alice", "bob")
	s := newMessageService(db)
	if s.ContentMaxLen != 5000 {
		t.Fatalf("default cap = %d; want 5000", s.ContentMaxLen)
	}

	// The default cap at its exact boundary.
	if _, err := s.Send(context.Background(), chat.ID, "alice", strings.Repeat("a", 5000)); err != nil {
		t.Fatalf("at-cap send failed: %v", err)
	}
	if _, err := s.Send(context.Background(), chat.ID, "alice", strings.Repeat("a", 5001)); !errors.Is(err, ErrMessageTooLong) {
		t.Fatalf("expected ErrMessageTooLong, got %v", err)
	}

	// The cap counts runes, not bytes.
	s.ContentMaxLen = 5
	if _, err := s.Send(context.Background(), chat.ID, "alice", "☃☃☃☃☃☃"); !errors.Is(err, ErrMessageTooLong) {
		t.Fatalf("expected ErrMessageTooLong, got %v", err)
	}
	if _, err := s.Send(context.Background(), chat.ID, "alice", "☃☃☃☃☃"); err != nil {
		t.Fatalf("at-cap send failed: %v", err)
	}
}

func TestSend_NonMemberDenied(t *testing.T) {
	db := newSvcDB(t)
	chat := seedPrivateChat(t, db, "alice", "bob")
	s := newMessageService(db)

	if _, err := s.Send(context.Background(), chat.ID, "mallory", "hi"); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
	if _, err := s.Send(context.Background(), uuid.NewString(), "alice", "hi"); !errors.Is(err, ErrChatNotFound) {
		t.Fatalf("missing chat: expected ErrChatNotFound, got %v", err)
	}
}

func TestListPage_NewestFirstAndTotal(t *testing.T) {
	db := newSvcDB(t)
	chat := seedPrivateChat(t, db, "alice", "bob")
	s := newMessageService(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := repo.CreateMessage(ctx, db, chat.ID, "alice",
			fmt.Sprintf("m%d", i), time.Now().UTC().Add(time.Duration(i)*time.Second)); err != nil {
			t.Fatalf("seed message: %v", err)
		}
	}

	msgs, total, err := s.ListPage(ctx, chat.ID, "bob", 0, 2)
	if err != nil {
		t.Fatalf("ListPage error: %v", err)
	}
	if total != 5 {
		t.Fatalf("total = %d; want 5", total)
	}
	if len(msgs) != 2 || msgs[0].Content != "m4" || msgs[1].Content != "m3" {
		t.Fatalf("unexpected page: %+v", msgs)
	}

	// Second page continues the ordering
	msgs, _, err = s.ListPage(ctx, chat.ID, "bob", 2, 2)
	if err != nil || len(msgs) != 2 || msgs[0].Content != "m2" {
		t.Fatalf("second page = %+v err %v", msgs, err)
	}
}

func TestListPage_NonMember(t *testing.T) {
	db := newSvcDB(t)
	chat := seedPrivateChat(t, db, "alice", "bob")
	s := newMessageService(db)

	if _, _, err := s.ListPage(context.Background(), chat.ID, "mallory", 0, 10); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
}

func TestUnreadCount_ExcludesOwnAndRead(t *testing.T) {
	db := newSvcDB(t)
	chat := seedPrivateChat(t, db, "alice", "bob")
	s := newMessageService(db)
	ctx := context.Background()

	now := time.Now().UTC()
	seed := []domain.Message{
		{ID: uuid.NewString(), ChatID: chat.ID, SenderID: "alice", Content: "a1", Timestamp: now, Status: domain.MessageStatusSent},
		{ID: uuid.NewString(), ChatID: chat.ID, SenderID: "alice", Content: "a2", Timestamp: now, Status: domain.MessageStatusDelivered},
		{ID: uuid.NewString(), ChatID: chat.ID, SenderID: "alice", Content: "a3", Timestamp: now, Status: domain.MessageStatusRead},
		{ID: uuid.NewString(), ChatID: chat.ID, SenderID: "bob", Content: "b1", Timestamp: now, Status: domain.MessageStatusSent},
	}
	for i := range seed {
		if err := db.Create(&seed[i]).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	// bob: alice's SENT and DELIVERED count, her READ one and his own do not
	n, err := s.UnreadCount(ctx, chat.ID, "bob")
	if err != nil {
		t.Fatalf("UnreadCount: %v", err)
	}
	if n != 2 {
		t.Fatalf("unread for bob = %d; want 2", n)
	}

	n, err = s.UnreadCount(ctx, chat.ID, "alice")
	if err != nil {
		t.Fatalf("UnreadCount: %v", err)
	}
	if n != 1 {
		t.Fatalf("unread for alice = %d; want 1", n)
	}
}
