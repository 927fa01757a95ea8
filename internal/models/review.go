package models

import "time"

type Review struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	SchoolID uint `gorm:"not null;index" json:"schoolId"`
	UserID   uint `gorm:"not null;index" json:"userId"`

	Rating  int    `gorm:"not null" json:"rating"` // 1-5
	Title   string `json:"title"`
	Content string `gorm:"type:text" json:"content"`

	// No column default so an explicitly private review stays private;
	// CreateReview resolves the default.
	IsPublic      bool `json:"isPublic"`
	IsPremiumOnly bool `gorm:"default:false" json:"isPremiumOnly"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	School School `gorm:"foreignKey:SchoolID" json:"-"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`
}
