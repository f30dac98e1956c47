// Package domain defines the persistence models for the goal, notification,
// and chat services. These types are mapped with GORM and form the core data
// layer of the application.
package domain

import "time"

// ChatType distinguishes direct two-party conversations from named group rooms.
type ChatType string

// Chat types.
const (
	ChatTypePrivate ChatType = "PRIVATE"
	ChatTypeGroup   ChatType = "GROUP"
)

// Valid reports whether t is a known chat type.
func (t ChatType) Valid() bool {
	return t == ChatTypePrivate || t == ChatTypeGroup
}

// MessageStatus tracks the delivery lifecycle of a message.
type MessageStatus string

// Message statuses.
const (
	MessageStatusSent      MessageStatus = "SENT"
	MessageStatusDelivered MessageStatus = "DELIVERED"
	MessageStatusRead      MessageStatus = "READ"
)

// Valid reports whether s is a known message status.
func (s MessageStatus) Valid() bool {
	switch s {
	case MessageStatusSent, MessageStatusDelivered, MessageStatusRead:
		return true
	}
	return false
}

// Chat represents a conversation between two or more users. Private chats hold
// exactly two members and are unique per unordered member pair; group chats
// are named and scoped to an organization.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - OrganizationID: owning organization (group chats only).
//   - Type: PRIVATE or GROUP.
//   - Name: human-readable room name (group chats only).
//   - PairKey: canonical unordered member pair for private chats. The unique
//     index on this column is the authoritative guard against duplicate
//     private chats; group chats leave it NULL.
//   - LastMessageAt: timestamp of the most recent message, touched on send.
type Chat struct {
	ID             string       `json:"id"                        gorm:"type:char(36);primaryKey"`
	OrganizationID *string      `json:"organization_id,omitempty" gorm:"type:varchar(64);index:idx_org_type,priority:1"`
	Type           ChatType     `json:"type"                      gorm:"type:varchar(16);not null;index:idx_org_type,priority:2;check:type IN ('PRIVATE','GROUP')"`
	Name           *string      `json:"name,omitempty"            gorm:"type:varchar(100)"`
	PairKey        *string      `json:"-"                         gorm:"type:varchar(130);uniqueIndex:ux_chats_pair"`
	CreatedAt      time.Time    `json:"created_at"`
	LastMessageAt  *time.Time   `json:"last_message_at,omitempty"`
	Members        []ChatMember `json:"-"                         gorm:"foreignKey:ChatID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Chat.
func (Chat) TableName() string { return "chats" }

// MemberIDs returns the user ids of all loaded members.
func (c *Chat) MemberIDs() []string {
	out := make([]string, 0, len(c.Members))
	for _, m := range c.Members {
		out = append(out, m.UserID)
	}
	return out
}

// ChatMember is one membership row linking a user to a chat. The composite
// primary key doubles as the uniqueness constraint, and the user-first index
// serves the "all chats for user" lookup.
type ChatMember struct {
	ChatID string `json:"chat_id" gorm:"type:char(36);primaryKey;index:idx_member_user,priority:2"`
	UserID string `json:"user_id" gorm:"type:varchar(64);primaryKey;index:idx_member_user,priority:1"`
}

// TableName returns the database table name for ChatMember.
func (ChatMember) TableName() string { return "chat_members" }

// PairKey returns the canonical key for an unordered pair of user ids, so a
// private chat between A and B collides with one between B and A.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}

// Message represents a single message within a chat. The sender must be a
// member of the chat at send time.
type Message struct {
	ID        string        `json:"id"        gorm:"type:char(36);primaryKey"`
	ChatID    string        `json:"chat_id"   gorm:"type:char(36);not null;index:idx_chat_ts,priority:1"`
	SenderID  string        `json:"sender_id" gorm:"type:varchar(64);not null;index"`
	Content   string        `json:"content"   gorm:"type:text;not null"`
	Timestamp time.Time     `json:"timestamp" gorm:"index:idx_chat_ts,priority:2"`
	Status    MessageStatus `json:"status"    gorm:"type:varchar(16);not null;default:'SENT';check:status IN ('SENT','DELIVERED','READ')"`

	// Chat is the parent conversation. Messages are cascade-deleted if their
	// chat is removed.
	Chat Chat `json:"-" gorm:"foreignKey:ChatID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Message.
func (Message) TableName() string { return "messages" }
