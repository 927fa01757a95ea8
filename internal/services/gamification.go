package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Annsgit/melbourneedu-backend/internal/database"
	"github.com/Annsgit/melbourneedu-backend/internal/models"
	"github.com/Annsgit/melbourneedu-backend/pkg/logger"
	"gorm.io/gorm"
)

// PointsChallengeTitle names the sentinel challenge used as the bookkeeping
// anchor for ad hoc point grants. Looked up by title; created on first use.
const PointsChallengeTitle = "Points Awarded"

// CompleteChallenge marks the (user, challenge) progress row Completed with
// the given points. If a row already exists it is overwritten, not
// accumulated: re-completion resets pointsEarned and completedAt rather than
// double-crediting. Badge re-evaluation always runs after the write.
//
// The challenge is not validated here; callers decide what IDs are legal.
func CompleteChallenge(userID, challengeID uint, pointsEarned int) (*models.ChallengeProgress, error) {
	now := time.Now()

	var progress models.ChallengeProgress
	err := database.DB.
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		First(&progress).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		progress = models.ChallengeProgress{
			UserID:       userID,
			ChallengeID:  challengeID,
			Status:       models.StatusCompleted,
			Progress:     100,
			PointsEarned: pointsEarned,
			CompletedAt:  &now,
		}
		if err := database.DB.Create(&progress).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		progress.Status = models.StatusCompleted
		progress.Progress = 100
		progress.PointsEarned = pointsEarned
		progress.CompletedAt = &now
		if err := database.DB.Save(&progress).Error; err != nil {
			return nil, err
		}
	}

	if _, err := CheckAndAwardBadges(userID); err != nil {
		return nil, err
	}

	return &progress, nil
}

// CheckAndAwardBadges re-derives the user's aggregate signals from their
// complete history of completed challenges and awards every badge whose
// requirements are now met. Returns newly awarded badges only; badges the
// user already holds are skipped, which makes repeated calls safe.
//
// This is a deliberate full re-scan, not an incremental update: cost is
// linear in history and catalog size, which is fine at completion frequency.
func CheckAndAwardBadges(userID uint) ([]models.UserBadge, error) {
	var completed []models.ChallengeProgress
	if err := database.DB.
		Where("user_id = ? AND status = ?", userID, models.StatusCompleted).
		Find(&completed).Error; err != nil {
		return nil, err
	}

	challengesCompleted := len(completed)
	totalPoints := 0
	schoolsViewed := make(map[uint]struct{})
	suburbsExplored := make(map[string]struct{})

	for _, p := range completed {
		totalPoints += p.PointsEarned
		for _, schoolID := range p.CompletedSteps.Schools {
			schoolsViewed[schoolID] = struct{}{}
		}
		for _, suburb := range p.CompletedSteps.Suburbs {
			suburbsExplored[suburb] = struct{}{}
		}
	}

	var heldIDs []uint
	if err := database.DB.Model(&models.UserBadge{}).
		Where("user_id = ?", userID).
		Pluck("badge_id", &heldIDs).Error; err != nil {
		return nil, err
	}
	held := make(map[uint]bool, len(heldIDs))
	for _, id := range heldIDs {
		held[id] = true
	}

	var badges []models.Badge
	if err := database.DB.Find(&badges).Error; err != nil {
		return nil, err
	}

	awarded := []models.UserBadge{}
	for _, badge := range badges {
		if held[badge.ID] {
			continue
		}
		if !qualifies(badge.Requirements, challengesCompleted, totalPoints, len(schoolsViewed), len(suburbsExplored)) {
			continue
		}

		userBadge, err := AwardBadgeToUser(userID, badge.ID)
		if err != nil {
			return awarded, err
		}
		awarded = append(awarded, *userBadge)
		notifyBadgeEarned(userID, badge)
	}

	return awarded, nil
}

// qualifies AND-combines every present (non-zero) requirement threshold
// against the computed aggregates. reviewsWritten, eventsAttended,
// quizzesPassed and comparisonsPerformed have no aggregation wired in, so a
// badge demanding any of them never qualifies here; those awards go through
// AwardBadgeToUser directly.
func qualifies(reqs models.BadgeRequirements, challengesCompleted, totalPoints, schoolsViewed, suburbsExplored int) bool {
	if reqs.ChallengesCompleted > 0 && challengesCompleted < reqs.ChallengesCompleted {
		return false
	}
	if reqs.SchoolsViewed > 0 && schoolsViewed < reqs.SchoolsViewed {
		return false
	}
	if reqs.SuburbsExplored > 0 && suburbsExplored < reqs.SuburbsExplored {
		return false
	}
	if reqs.MinimumPoints > 0 && totalPoints < reqs.MinimumPoints {
		return false
	}
	if reqs.ReviewsWritten > 0 || reqs.EventsAttended > 0 ||
		reqs.QuizzesPassed > 0 || reqs.ComparisonsPerformed > 0 {
		return false
	}
	return true
}

// AwardBadgeToUser grants a badge unconditionally, bypassing requirement
// checks. If the user already holds the badge the existing row is returned
// and nothing is written.
func AwardBadgeToUser(userID, badgeID uint) (*models.UserBadge, error) {
	var existing models.UserBadge
	err := database.DB.
		Where("user_id = ? AND badge_id = ?", userID, badgeID).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	userBadge := models.UserBadge{
		UserID:   userID,
		BadgeID:  badgeID,
		EarnedAt: time.Now(),
	}
	if err := database.DB.Create(&userBadge).Error; err != nil {
		return nil, err
	}
	return &userBadge, nil
}

// GetUserPoints derives the user's point total from completed challenge
// history. Points are never stored as a counter, so they cannot drift.
func GetUserPoints(userID uint) (int, error) {
	var total int64
	err := database.DB.Model(&models.ChallengeProgress{}).
		Where("user_id = ? AND status = ?", userID, models.StatusCompleted).
		Select("COALESCE(SUM(points_earned), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return int(total), nil
}

// AddPointsToUser grants points outside any real challenge by completing the
// shared "Points Awarded" sentinel with an explicit override. Because
// CompleteChallenge replaces the sentinel row rather than adding to it,
// repeated grants do not accumulate: each call stores exactly the amount
// passed in that call. Callers needing a running bonus total must pass the
// new cumulative amount themselves.
func AddPointsToUser(userID uint, points int) (int, error) {
	var sentinel models.Challenge
	err := database.DB.Where("title = ?", PointsChallengeTitle).First(&sentinel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		sentinel = models.Challenge{
			Title:         PointsChallengeTitle,
			Description:   "Points awarded for various activities",
			ChallengeType: models.ChallengeViewSchools,
			Difficulty:    models.DifficultyBeginner,
			Points:        0,
			IsActive:      true,
		}
		if err := database.DB.Create(&sentinel).Error; err != nil {
			return 0, err
		}
	} else if err != nil {
		return 0, err
	}

	if _, err := CompleteChallenge(userID, sentinel.ID, points); err != nil {
		return 0, err
	}

	return GetUserPoints(userID)
}

// notifyBadgeEarned writes an in-app notification for a fresh award.
// Best effort: a failed notification never fails the award itself.
func notifyBadgeEarned(userID uint, badge models.Badge) {
	notification := models.Notification{
		UserID: userID,
		Type:   models.NotificationBadgeEarned,
		Title:  "Badge earned: " + badge.Name,
		Body:   fmt.Sprintf("You earned the %s badge (level %d). %s", badge.Name, badge.Level, badge.Description),
	}
	if err := database.DB.Create(&notification).Error; err != nil {
		logger.Warn().Err(err).Uint("user_id", userID).Uint("badge_id", badge.ID).Msg("Failed to write badge notification")
	}
}
