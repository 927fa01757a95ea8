package models

import "time"

// Subscription is a newsletter signup with double opt-in
type Subscription struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Email string `gorm:"uniqueIndex;not null" json:"email"`
	Name  string `json:"name"`

	ConfirmationToken *string `gorm:"index" json:"-"` // cleared once confirmed
	IsConfirmed       bool    `gorm:"default:false" json:"isConfirmed"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NotificationPreference records a user's opt-in for updates about a school
type NotificationPreference struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_user_school_pref" json:"userId"`
	SchoolID uint `gorm:"not null;uniqueIndex:idx_user_school_pref" json:"schoolId"`

	// No column default on NotifyEvents: SetNotificationPreference resolves
	// it so an explicit opt-out is not flipped back on insert.
	NotifyEvents  bool `json:"notifyEvents"`
	NotifyReviews bool `gorm:"default:false" json:"notifyReviews"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PushSubscription is a web-push registration for a user's browser
type PushSubscription struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   uint   `gorm:"not null;index" json:"userId"`
	Endpoint string `gorm:"not null" json:"endpoint"`
	P256dh   string `json:"p256dh"`
	Auth     string `json:"auth"`

	CreatedAt time.Time `json:"createdAt"`
}
