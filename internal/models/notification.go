package models

import "time"

type NotificationType string

const (
	NotificationBadgeEarned   NotificationType = "BADGE_EARNED"
	NotificationPointsGranted NotificationType = "POINTS_GRANTED"
	NotificationEventReminder NotificationType = "EVENT_REMINDER"
)

// Notification is an in-app notification row shown in the user's feed
type Notification struct {
	ID     uint             `gorm:"primaryKey" json:"id"`
	UserID uint             `gorm:"not null;index" json:"userId"`
	Type   NotificationType `gorm:"type:text" json:"type"`

	Title  string `json:"title"`
	Body   string `gorm:"type:text" json:"body"`
	IsRead bool   `gorm:"default:false" json:"isRead"`

	CreatedAt time.Time `json:"createdAt"`
}
