package services

import (
	"context"
	"errors"
	"testing"

	"github.com/axisapp/axis-backend/internal/domain"
	"github.com/axisapp/axis-backend/internal/repo"
)

func notifStatusPtr(s domain.NotificationStatus) *domain.NotificationStatus { return &s }

func TestNotificationRecord_DefaultsAndValidation(t *testing.T) {
	db := newSvcDB(t)
	s := NewNotificationLogService(db)
	ctx := context.Background()

	n, err := s.Record(ctx, "u1", NotificationInput{
		Channel: domain.ChannelEmail,
		Subject: "Welcome",
		Content: "Hello!",
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if n.ID == "" || n.UserID != "u1" {
		t.Fatalf("unexpected entry: %+v", n)
	}
	if n.Status != domain.NotificationStatusSent {
		t.Fatalf("status = %q; want SENT", n.Status)
	}

	if _, err := s.Record(ctx, "u1", NotificationInput{Channel: "FAX"}); !errors.Is(err, ErrInvalidNotification) {
		t.Fatalf("bad channel: expected ErrInvalidNotification, got %v", err)
	}
	if _, err := s.Record(ctx, "u1", NotificationInput{
		Channel: domain.ChannelPush,
		Status:  domain.NotificationStatus("QUEUED"),
	}); !errors.Is(err, ErrInvalidNotification) {
		t.Fatalf("bad status: expected ErrInvalidNotification, got %v", err)
	}
}

func TestNotificationGet_OwnerScoped(t *testing.T) {
	db := newSvcDB(t)
	s := NewNotificationLogService(db)
	ctx := context.Background()

	n, err := s.Record(ctx, "u1", NotificationInput{Channel: domain.ChannelPush})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	if _, err := s.Get(ctx, n.ID, "u1"); err != nil {
		t.Fatalf("owner get: %v", err)
	}
	if _, err := s.Get(ctx, n.ID, "u2"); !errors.Is(err, ErrNotificationNotFound) {
		t.Fatalf("foreign get: expected ErrNotificationNotFound, got %v", err)
	}
	if _, err := s.Get(ctx, "missing", "u1"); !errors.Is(err, ErrNotificationNotFound) {
		t.Fatalf("missing get: expected ErrNotificationNotFound, got %v", err)
	}
}

func TestNotificationListPage_Filters(t *testing.T) {
	db := newSvcDB(t)
	s := NewNotificationLogService(db)
	ctx := context.Background()

	seed := []NotificationInput{
		{Channel: domain.ChannelEmail, Status: domain.NotificationStatusSent},
		{Channel: domain.ChannelEmail, Status: domain.NotificationStatusRead},
		{Channel: domain.ChannelPush, Status: domain.NotificationStatusSent},
	}
	for i, in := range seed {
		if _, err := s.Record(ctx, "u1", in); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}
	if _, err := s.Record(ctx, "u2", NotificationInput{Channel: domain.ChannelEmail}); err != nil {
		t.Fatalf("seed other user: %v", err)
	}

	_, total, err := s.ListPage(ctx, "u1", repo.NotificationFilter{}, 0, 10)
	if err != nil || total != 3 {
		t.Fatalf("unfiltered: total=%d err=%v", total, err)
	}

	ch := domain.ChannelEmail
	st := domain.NotificationStatusSent
	items, total, err := s.ListPage(ctx, "u1", repo.NotificationFilter{Channel: &ch, Status: &st}, 0, 10)
	if err != nil || total != 1 || len(items) != 1 {
		t.Fatalf("filtered: total=%d len=%d err=%v", total, len(items), err)
	}
	if items[0].Channel != domain.ChannelEmail || items[0].Status != domain.NotificationStatusSent {
		t.Fatalf("filter leaked %+v", items[0])
	}
}

func TestNotificationPatch(t *testing.T) {
	db := newSvcDB(t)
	s := NewNotificationLogService(db)
	ctx := context.Background()

	n, err := s.Record(ctx, "u1", NotificationInput{
		Channel: domain.ChannelTelegram,
		Subject: "s",
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	got, err := s.Patch(ctx, n.ID, "u1", NotificationPatch{
		Status: notifStatusPtr(domain.NotificationStatusRead),
	})
	if err != nil {
		t.Fatalf("Patch: %v", err)
	}
	if got.Status != domain.NotificationStatusRead || got.Subject != "s" {
		t.Fatalf("patched entry: %+v", got)
	}

	if _, err := s.Patch(ctx, n.ID, "u1", NotificationPatch{
		Status: notifStatusPtr(domain.NotificationStatus("???")),
	}); !errors.Is(err, ErrInvalidNotification) {
		t.Fatalf("bad status: expected ErrInvalidNotification, got %v", err)
	}
	if _, err := s.Patch(ctx, n.ID, "u2", NotificationPatch{}); !errors.Is(err, ErrNotificationNotFound) {
		t.Fatalf("foreign patch: expected ErrNotificationNotFound, got %v", err)
	}
}

func TestNotificationDeleteAndDeleteAll(t *testing.T) {
	db := newSvcDB(t)
	s := NewNotificationLogService(db)
	ctx := context.Background()

	n1, _ := s.Record(ctx, "u1", NotificationInput{Channel: domain.ChannelEmail})
	n2, _ := s.Record(ctx, "u1", NotificationInput{Channel: domain.ChannelPush})
	other, _ := s.Record(ctx, "u2", NotificationInput{Channel: domain.ChannelEmail})

	if err := s.Delete(ctx, n1.ID, "u2"); !errors.Is(err, ErrNotificationNotFound) {
		t.Fatalf("foreign delete: expected ErrNotificationNotFound, got %v", err)
	}
	if err := s.Delete(ctx, n1.ID, "u1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if err := s.DeleteAll(ctx, "u1"); err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}
	if _, err := s.Get(ctx, n2.ID, "u1"); !errors.Is(err, ErrNotificationNotFound) {
		t.Fatalf("entry survived DeleteAll")
	}
	// Other users' history is untouched, and an empty history is fine
	if _, err := s.Get(ctx, other.ID, "u2"); err != nil {
		t.Fatalf("other user's entry was deleted: %v", err)
	}
	if err := s.DeleteAll(ctx, "u1"); err != nil {
		t.Fatalf("empty DeleteAll should be a no-op, got %v", err)
	}
}

func TestNotificationUnreadCount(t *testing.T) {
	db := newSvcDB(t)
	s := NewNotificationLogService(db)
	ctx := context.Background()

	n, err := s.UnreadCount(ctx, "u1")
	if err != nil || n != 0 {
		t.Fatalf("empty unread = (%d, %v); want (0, nil)", n, err)
	}

	sent, _ := s.Record(ctx, "u1", NotificationInput{Channel: domain.ChannelEmail})
	s.Record(ctx, "u1", NotificationInput{Channel: domain.ChannelPush})
	s.Record(ctx, "u1", NotificationInput{Channel: domain.ChannelEmail, Status: domain.NotificationStatusRead})
	s.Record(ctx, "u2", NotificationInput{Channel: domain.ChannelEmail})

	n, err = s.UnreadCount(ctx, "u1")
	if err != nil {
		t.Fatalf("UnreadCount: %v", err)
	}
	if n != 2 {
		t.Fatalf("unread = %d; want 2", n)
	}

	// Marking an entry read drops it from the count.
	if _, err := s.Patch(ctx, sent.ID, "u1", NotificationPatch{Status: notifStatusPtr(domain.NotificationStatusRead)}); err != nil {
		t.Fatalf("Patch: %v", err)
	}
	if n, _ = s.UnreadCount(ctx, "u1"); n != 1 {
		t.Fatalf("unread after read = %d; want 1", n)
	}
}
