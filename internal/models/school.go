package models

import (
	"time"

	"gorm.io/datatypes"
)

type School struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Name           string `gorm:"not null;index" json:"name"`
	Type           string `gorm:"not null" json:"type"`           // Public, Private, Catholic
	EducationLevel string `gorm:"not null" json:"educationLevel"` // Primary, Secondary, Combined
	Suburb         string `gorm:"not null;index" json:"suburb"`
	Postcode       string `gorm:"not null" json:"postcode"`
	Address        string `json:"address"`
	Website        string `json:"website"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Description    string `gorm:"type:text" json:"description"`

	YearLevels            string `json:"yearLevels"` // e.g. "Prep-12", "7-12"
	StudentCount          int    `json:"studentCount"`
	AverageClassSize      int    `json:"averageClassSize"`
	AtarAverage           int    `json:"atarAverage"` // stored x10, e.g. 855 = 85.5
	TeacherCount          int    `json:"teacherCount"`
	TeacherQualifications string `json:"teacherQualifications"`
	Fees                  string `json:"fees"`

	Facilities datatypes.JSONSlice[string] `json:"facilities"`
	Programs   datatypes.JSONSlice[string] `json:"programs"`

	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
	ImageURL  string `json:"imageUrl"`
	Featured  bool   `gorm:"default:false;index" json:"featured"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SchoolLanguage is a language program offered by a school (LOTE etc.)
type SchoolLanguage struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	SchoolID uint   `gorm:"not null;index" json:"schoolId"`
	Language string `gorm:"not null" json:"language"`
	Details  string `json:"details"`
}

// SchoolFacility is an individual facility record for the full school profile
type SchoolFacility struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	SchoolID    uint   `gorm:"not null;index" json:"schoolId"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
}

type EnrichmentProgram struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	SchoolID    uint   `gorm:"not null;index" json:"schoolId"`
	Name        string `gorm:"not null" json:"name"`
	Category    string `json:"category"` // STEM, Music, Sport, ...
	Description string `json:"description"`
}

// FullSchoolProfile aggregates a school with its enrichment data
type FullSchoolProfile struct {
	School     School              `json:"school"`
	Languages  []SchoolLanguage    `json:"languages"`
	Facilities []SchoolFacility    `json:"facilities"`
	Programs   []EnrichmentProgram `json:"programs"`
}
