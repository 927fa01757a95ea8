package seeds

import (
	"log"

	"github.com/Annsgit/melbourneedu-backend/internal/database"
	"github.com/Annsgit/melbourneedu-backend/internal/models"
)

func SeedBadges() {
	var count int64
	database.DB.Model(&models.Badge{}).Count(&count)
	if count > 0 {
		log.Println("🎖️ Badges already seeded, skipping")
		return
	}

	log.Println("🎖️ Seeding Badges...")

	badges := []models.Badge{
		{
			Name:         "School Scout",
			Description:  "Viewed your first 3 schools.",
			BadgeType:    models.BadgeSchoolExplorer,
			Level:        1,
			Requirements: models.BadgeRequirements{SchoolsViewed: 3},
		},
		{
			Name:         "School Explorer",
			Description:  "Viewed 10 different schools.",
			BadgeType:    models.BadgeSchoolExplorer,
			Level:        2,
			Requirements: models.BadgeRequirements{SchoolsViewed: 10},
		},
		{
			Name:         "School Authority",
			Description:  "Viewed 25 schools and earned 200 points.",
			BadgeType:    models.BadgeSchoolExplorer,
			Level:        3,
			Requirements: models.BadgeRequirements{SchoolsViewed: 25, MinimumPoints: 200},
		},
		{
			Name:         "Suburb Wanderer",
			Description:  "Explored schools in 3 different suburbs.",
			BadgeType:    models.BadgeSuburbNavigator,
			Level:        1,
			Requirements: models.BadgeRequirements{SuburbsExplored: 3},
		},
		{
			Name:         "Suburb Navigator",
			Description:  "Explored schools in 8 different suburbs.",
			BadgeType:    models.BadgeSuburbNavigator,
			Level:        2,
			Requirements: models.BadgeRequirements{SuburbsExplored: 8},
		},
		{
			Name:         "Getting Started",
			Description:  "Completed your first challenge.",
			BadgeType:    models.BadgeQuizChampion,
			Level:        1,
			Requirements: models.BadgeRequirements{ChallengesCompleted: 1},
		},
		{
			Name:         "Challenge Champion",
			Description:  "Completed 5 challenges and earned 100 points.",
			BadgeType:    models.BadgeQuizChampion,
			Level:        2,
			Requirements: models.BadgeRequirements{ChallengesCompleted: 5, MinimumPoints: 100},
		},
		{
			Name:         "Review Master",
			Description:  "Wrote 5 school reviews.",
			BadgeType:    models.BadgeReviewMaster,
			Level:        1,
			Requirements: models.BadgeRequirements{ReviewsWritten: 5},
		},
		{
			Name:         "Event Attendee",
			Description:  "Attended 3 school events.",
			BadgeType:    models.BadgeEventAttendee,
			Level:        1,
			Requirements: models.BadgeRequirements{EventsAttended: 3},
		},
		{
			Name:         "Comparison Guru",
			Description:  "Compared 10 pairs of schools.",
			BadgeType:    models.BadgeComparisonGuru,
			Level:        1,
			Requirements: models.BadgeRequirements{ComparisonsPerformed: 10},
		},
	}

	for _, badge := range badges {
		if err := database.DB.Create(&badge).Error; err != nil {
			log.Printf("❌ Failed to seed badge %s: %v", badge.Name, err)
		}
	}

	log.Printf("✅ Seeded %d badges", len(badges))
}
