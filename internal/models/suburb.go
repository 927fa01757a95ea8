package models

import "time"

type Suburb struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"not null;uniqueIndex" json:"name"`
	Postcode   string `gorm:"not null;index" json:"postcode"`
	Region     string `json:"region"` // Inner City, Eastern, South-Eastern, ...
	Latitude   string `json:"latitude"`
	Longitude  string `json:"longitude"`
	Population int    `json:"population"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
