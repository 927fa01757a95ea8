package models

import (
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type SubscriptionTier string

const (
	TierFree    SubscriptionTier = "free"
	TierPremium SubscriptionTier = "premium"
)

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Email    string `gorm:"uniqueIndex" json:"email"`

	// Empty for delegated-identity accounts
	Password     string `json:"-"`
	AuthProvider string `gorm:"default:'local'" json:"authProvider"` // local, google

	Role Role `gorm:"type:text;default:'user'" json:"role"`

	// Billing state, maintained by the Stripe adapter
	SubscriptionTier   SubscriptionTier `gorm:"type:text;default:'free'" json:"subscriptionTier"`
	SubscriptionStatus string           `json:"subscriptionStatus"`
	StripeCustomerID   string           `gorm:"index" json:"-"`
	StripeSubscriptionID string         `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SafeUser is the identity shape exposed to clients and trusted by handlers
type SafeUser struct {
	ID               uint             `json:"id"`
	Username         string           `json:"username"`
	Email            string           `json:"email"`
	Role             Role             `json:"role"`
	SubscriptionTier SubscriptionTier `json:"subscriptionTier"`
}

func (u *User) Safe() SafeUser {
	return SafeUser{
		ID:               u.ID,
		Username:         u.Username,
		Email:            u.Email,
		Role:             u.Role,
		SubscriptionTier: u.SubscriptionTier,
	}
}

// IsPremium reports whether premium-gated content should be visible
func (u *User) IsPremium() bool {
	return u.SubscriptionTier == TierPremium
}
