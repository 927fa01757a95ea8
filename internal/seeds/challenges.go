package seeds

import (
	"log"

	"github.com/Annsgit/melbourneedu-backend/internal/database"
	"github.com/Annsgit/melbourneedu-backend/internal/models"
)

func SeedChallenges() {
	var count int64
	database.DB.Model(&models.Challenge{}).Count(&count)
	if count > 0 {
		log.Println("🏆 Challenges already seeded, skipping")
		return
	}

	log.Println("🏆 Seeding Challenges...")

	challenges := []models.Challenge{
		{
			Title:         "First Steps",
			Description:   "View the profiles of 3 Melbourne schools.",
			ChallengeType: models.ChallengeViewSchools,
			Difficulty:    models.DifficultyBeginner,
			Points:        10,
			Requirements:  models.ChallengeRequirements{SchoolCount: 3},
		},
		{
			Title:         "School Researcher",
			Description:   "View the profiles of 10 schools across Melbourne.",
			ChallengeType: models.ChallengeViewSchools,
			Difficulty:    models.DifficultyIntermediate,
			Points:        25,
			Requirements:  models.ChallengeRequirements{SchoolCount: 10},
		},
		{
			Title:         "Voice Your Opinion",
			Description:   "Write your first school review.",
			ChallengeType: models.ChallengeWriteReviews,
			Difficulty:    models.DifficultyBeginner,
			Points:        20,
			Requirements:  models.ChallengeRequirements{ReviewCount: 1},
		},
		{
			Title:         "Open Day Visitor",
			Description:   "Attend a school open day or information night.",
			ChallengeType: models.ChallengeAttendEvents,
			Difficulty:    models.DifficultyBeginner,
			Points:        30,
			Requirements:  models.ChallengeRequirements{EventCount: 1},
		},
		{
			Title:         "Suburb Explorer",
			Description:   "Explore schools in 3 different suburbs.",
			ChallengeType: models.ChallengeExploreSuburbs,
			Difficulty:    models.DifficultyIntermediate,
			Points:        25,
			Requirements:  models.ChallengeRequirements{SuburbCount: 3},
		},
		{
			Title:         "Side by Side",
			Description:   "Compare two schools using the comparison tool.",
			ChallengeType: models.ChallengeCompareSchools,
			Difficulty:    models.DifficultyBeginner,
			Points:        15,
			Requirements:  models.ChallengeRequirements{SchoolCount: 2},
		},
		{
			Title:         "School Match Quiz",
			Description:   "Take the school matching quiz to find schools suited to your family.",
			ChallengeType: models.ChallengeTakeQuiz,
			Difficulty:    models.DifficultyBeginner,
			Points:        20,
			Requirements:  models.ChallengeRequirements{QuizCount: 1},
		},
		{
			Title:         "Melbourne Schools Expert",
			Description:   "View 25 schools across 10 suburbs. For dedicated researchers.",
			ChallengeType: models.ChallengeViewSchools,
			Difficulty:    models.DifficultyAdvanced,
			Points:        100,
			Requirements:  models.ChallengeRequirements{SchoolCount: 25, SuburbCount: 10},
			IsPremiumOnly: true,
		},
	}

	for i := range challenges {
		challenges[i].IsActive = true
		if err := database.DB.Create(&challenges[i]).Error; err != nil {
			log.Printf("❌ Failed to seed challenge %s: %v", challenges[i].Title, err)
		}
	}

	log.Printf("✅ Seeded %d challenges", len(challenges))
}
