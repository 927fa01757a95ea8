package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

type BadgeType string

const (
	BadgeSchoolExplorer  BadgeType = "SchoolExplorer"
	BadgeReviewMaster    BadgeType = "ReviewMaster"
	BadgeEventAttendee   BadgeType = "EventAttendee"
	BadgeQuizChampion    BadgeType = "QuizChampion"
	BadgeSuburbNavigator BadgeType = "SuburbNavigator"
	BadgeComparisonGuru  BadgeType = "ComparisonGuru"
)

// BadgeTypes is the closed set of badge categories
var BadgeTypes = []BadgeType{
	BadgeSchoolExplorer,
	BadgeReviewMaster,
	BadgeEventAttendee,
	BadgeQuizChampion,
	BadgeSuburbNavigator,
	BadgeComparisonGuru,
}

// BadgeRequirements is the closed vocabulary of award thresholds. Every
// present (non-zero) key must be satisfied for the badge to be awarded.
type BadgeRequirements struct {
	ChallengesCompleted  int `json:"challengesCompleted,omitempty"`
	SchoolsViewed        int `json:"schoolsViewed,omitempty"`
	ReviewsWritten       int `json:"reviewsWritten,omitempty"`
	EventsAttended       int `json:"eventsAttended,omitempty"`
	QuizzesPassed        int `json:"quizzesPassed,omitempty"`
	SuburbsExplored      int `json:"suburbsExplored,omitempty"`
	ComparisonsPerformed int `json:"comparisonsPerformed,omitempty"`
	MinimumPoints        int `json:"minimumPoints,omitempty"`
}

// ParseBadgeRequirements decodes raw requirement JSON, rejecting unknown
// signal names so an unrecognized requirement fails loudly at definition
// time instead of silently never matching.
func ParseBadgeRequirements(raw json.RawMessage) (BadgeRequirements, error) {
	var reqs BadgeRequirements
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&reqs); err != nil {
		return BadgeRequirements{}, fmt.Errorf("invalid badge requirements: %w", err)
	}
	if reqs.ChallengesCompleted < 0 || reqs.SchoolsViewed < 0 || reqs.ReviewsWritten < 0 ||
		reqs.EventsAttended < 0 || reqs.QuizzesPassed < 0 || reqs.SuburbsExplored < 0 ||
		reqs.ComparisonsPerformed < 0 || reqs.MinimumPoints < 0 {
		return BadgeRequirements{}, fmt.Errorf("badge requirement thresholds must be non-negative")
	}
	return reqs, nil
}

type Badge struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	BadgeType BadgeType `gorm:"type:text;not null" json:"badgeType"`
	Level     int       `gorm:"default:1" json:"level"` // 1, 2, 3 for increasing difficulty

	Requirements BadgeRequirements `gorm:"serializer:json" json:"requirements"`

	ImageURL string `json:"imageUrl"`

	CreatedAt time.Time `json:"createdAt"`
}

// UserBadge records a badge award. One row per (user, badge); awarding is
// idempotent and rows are never revoked.
type UserBadge struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	UserID  uint `gorm:"not null;uniqueIndex:idx_user_badge" json:"userId"`
	BadgeID uint `gorm:"not null;uniqueIndex:idx_user_badge" json:"badgeId"`

	EarnedAt time.Time `gorm:"autoCreateTime" json:"earnedAt"`

	Badge Badge `gorm:"foreignKey:BadgeID" json:"badge,omitempty"`
}

// IsValidBadgeType reports whether t is one of the known badge categories
func IsValidBadgeType(t BadgeType) bool {
	for _, known := range BadgeTypes {
		if t == known {
			return true
		}
	}
	return false
}
