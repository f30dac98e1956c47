package domain

import "time"

// NotificationChannel is the delivery channel of a notification.
type NotificationChannel string

// Notification channels.
const (
	ChannelEmail    NotificationChannel = "EMAIL"
	ChannelPush     NotificationChannel = "PUSH"
	ChannelTelegram NotificationChannel = "TELEGRAM"
)

// Valid reports whether c is a known notification channel.
func (c NotificationChannel) Valid() bool {
	switch c {
	case ChannelEmail, ChannelPush, ChannelTelegram:
		return true
	}
	return false
}

// NotificationStatus is the delivery state of a notification log entry.
type NotificationStatus string

// Notification statuses. SENT doubles as "unread" for count queries.
const (
	NotificationStatusSent      NotificationStatus = "SENT"
	NotificationStatusDelivered NotificationStatus = "DELIVERED"
	NotificationStatusRead      NotificationStatus = "READ"
	NotificationStatusFailed    NotificationStatus = "FAILED"
)

// Valid reports whether s is a known notification status.
func (s NotificationStatus) Valid() bool {
	switch s {
	case NotificationStatusSent, NotificationStatusDelivered,
		NotificationStatusRead, NotificationStatusFailed:
		return true
	}
	return false
}

// NotificationLog is one delivered (or attempted) notification, owned
// exclusively by a single user.
type NotificationLog struct {
	ID        string              `json:"id"                 gorm:"type:char(36);primaryKey"`
	UserID    string              `json:"user_id"            gorm:"type:varchar(64);not null;index:idx_user_notifications"`
	Channel   NotificationChannel `json:"channel"            gorm:"type:varchar(16);not null"`
	Status    NotificationStatus  `json:"status"             gorm:"type:varchar(16);not null;default:'SENT'"`
	Subject   string              `json:"subject"            gorm:"type:varchar(255)"`
	Content   string              `json:"content"            gorm:"type:text"`
	Metadata  *string             `json:"metadata,omitempty" gorm:"type:text"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// TableName returns the database table name for NotificationLog.
func (NotificationLog) TableName() string { return "notification_logs" }

// NotificationSettings holds per-user channel toggles. At most one row exists
// per user; a missing row stands for the defaults (email on, push on,
// telegram off) and is never materialized by reads.
type NotificationSettings struct {
	ID             string    `json:"id"              gorm:"type:char(36);primaryKey"`
	UserID         string    `json:"user_id"         gorm:"type:varchar(64);not null;uniqueIndex:ux_settings_user"`
	EnableEmail    bool      `json:"enable_email"`
	EnablePush     bool      `json:"enable_push"`
	EnableTelegram bool      `json:"enable_telegram"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName returns the database table name for NotificationSettings.
func (NotificationSettings) TableName() string { return "notification_settings" }

// DefaultNotificationSettings returns the virtual settings used for users who
// never saved any. The zero ID marks the value as unpersisted.
func DefaultNotificationSettings(userID string) *NotificationSettings {
	return &NotificationSettings{
		UserID:         userID,
		EnableEmail:    true,
		EnablePush:     true,
		EnableTelegram: false,
	}
}

// NotificationTemplate is a reusable message body keyed by a globally unique
// type enumerant (e.g. "WELCOME").
type NotificationTemplate struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Type      string    `json:"type"       gorm:"type:varchar(64);not null;uniqueIndex:ux_templates_type"`
	Subject   string    `json:"subject"    gorm:"type:varchar(255)"`
	Content   string    `json:"content"    gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for NotificationTemplate.
func (NotificationTemplate) TableName() string { return "notification_templates" }
