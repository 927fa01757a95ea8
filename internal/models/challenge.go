package models

import "time"

type ChallengeType string

const (
	ChallengeViewSchools    ChallengeType = "ViewSchools"
	ChallengeWriteReviews   ChallengeType = "WriteReviews"
	ChallengeAttendEvents   ChallengeType = "AttendEvents"
	ChallengeExploreSuburbs ChallengeType = "ExploreSuburbs"
	ChallengeCompareSchools ChallengeType = "CompareSchools"
	ChallengeTakeQuiz       ChallengeType = "TakeQuiz"
)

type DifficultyLevel string

const (
	DifficultyBeginner     DifficultyLevel = "Beginner"
	DifficultyIntermediate DifficultyLevel = "Intermediate"
	DifficultyAdvanced     DifficultyLevel = "Advanced"
)

type ProgressStatus string

const (
	StatusNotStarted ProgressStatus = "NotStarted"
	StatusInProgress ProgressStatus = "InProgress"
	StatusCompleted  ProgressStatus = "Completed"
)

// ChallengeRequirements describes what it takes to finish a challenge,
// e.g. "view 5 schools" or "explore 3 suburbs"
type ChallengeRequirements struct {
	SchoolCount int `json:"schoolCount,omitempty"`
	ReviewCount int `json:"reviewCount,omitempty"`
	EventCount  int `json:"eventCount,omitempty"`
	SuburbCount int `json:"suburbCount,omitempty"`
	QuizCount   int `json:"quizCount,omitempty"`
}

type Challenge struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null;index" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	ChallengeType ChallengeType   `gorm:"type:text;not null" json:"challengeType"`
	Difficulty    DifficultyLevel `gorm:"type:text;default:'Beginner'" json:"difficulty"`
	Points        int             `gorm:"not null" json:"points"`

	Requirements ChallengeRequirements `gorm:"serializer:json" json:"requirements"`

	// No column default: a zero value with a default tag is omitted on
	// insert, which would flip an explicitly inactive challenge to active.
	// Handlers resolve the default instead.
	IsActive      bool `json:"isActive"`
	IsPremiumOnly bool `gorm:"default:false" json:"isPremiumOnly"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CompletedSteps accumulates sub-achievements toward a challenge:
// the distinct schools viewed and suburbs explored so far
type CompletedSteps struct {
	Schools []uint   `json:"schools,omitempty"`
	Suburbs []string `json:"suburbs,omitempty"`
}

// ChallengeProgress is the per-(user, challenge) completion record.
// At most one row exists per pair; Completed is terminal.
type ChallengeProgress struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	UserID      uint `gorm:"not null;uniqueIndex:idx_user_challenge" json:"userId"`
	ChallengeID uint `gorm:"not null;uniqueIndex:idx_user_challenge" json:"challengeId"`

	Status       ProgressStatus `gorm:"type:text;default:'NotStarted'" json:"status"`
	Progress     int            `gorm:"default:0" json:"progress"` // 0-100
	PointsEarned int            `gorm:"default:0" json:"pointsEarned"`

	CompletedSteps CompletedSteps `gorm:"serializer:json" json:"completedSteps"`
	CompletedAt    *time.Time     `json:"completedAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Challenge Challenge `gorm:"foreignKey:ChallengeID" json:"challenge,omitempty"`
}
