package models

import "time"

// Event is a school event (open day, tour, information night)
type Event struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	SchoolID uint `gorm:"not null;index" json:"schoolId"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Location    string `json:"location"`

	StartDate time.Time  `gorm:"not null;index" json:"startDate"`
	EndDate   *time.Time `json:"endDate"`

	// No column default so an explicitly non-public event stays hidden;
	// CreateEvent resolves the default.
	IsPublic      bool `json:"isPublic"`
	IsPremiumOnly bool `gorm:"default:false" json:"isPremiumOnly"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	School School `gorm:"foreignKey:SchoolID" json:"-"`
}
