package domain

import "time"

// Idempotency records the outcome of a previously processed message send,
// keyed by (user_id, chat_id, key). It lets retries of POST message requests
// return the originally created message instead of sending a duplicate.
type Idempotency struct {
	ID        string    `gorm:"type:char(36);primaryKey"`
	UserID    string    `gorm:"type:varchar(64);not null;uniqueIndex:ux_idem_user_chat_key,priority:1"`
	ChatID    string    `gorm:"type:char(36);not null;uniqueIndex:ux_idem_user_chat_key,priority:2"`
	Key       string    `gorm:"type:varchar(200);not null;uniqueIndex:ux_idem_user_chat_key,priority:3"`
	MessageID string    `gorm:"type:char(36);not null"`
	Status    int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime"`
	ExpiresAt time.Time `gorm:"not null;index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }
