package main

import (
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/Annsgit/melbourneedu-backend/internal/config"
	"github.com/Annsgit/melbourneedu-backend/internal/database"
	"github.com/Annsgit/melbourneedu-backend/internal/models"
	"github.com/Annsgit/melbourneedu-backend/internal/seeds"
)

func main() {
	config.LoadConfig()
	database.Connect()

	log.Println("🔄 Running migrations (just in case)...")
	database.DB.AutoMigrate(
		&models.User{},
		&models.School{},
		&models.SchoolLanguage{},
		&models.SchoolFacility{},
		&models.EnrichmentProgram{},
		&models.Suburb{},
		&models.Review{},
		&models.Event{},
		&models.Challenge{},
		&models.ChallengeProgress{},
		&models.Badge{},
		&models.UserBadge{},
		&models.Subscription{},
		&models.NotificationPreference{},
		&models.PushSubscription{},
		&models.Notification{},
	)

	ensureAdmin()

	seeds.SeedSuburbs()
	seeds.SeedSchools()
	seeds.SeedBadges()
	seeds.SeedChallenges()

	log.Println("✅ Seeding complete")
}

func ensureAdmin() {
	var admin models.User
	if err := database.DB.Where("role = ?", models.RoleAdmin).First(&admin).Error; err == nil {
		return
	}

	log.Println("👤 No admin found, creating fallback admin...")
	hash, _ := bcrypt.GenerateFromPassword([]byte("ChangeMe123!"), bcrypt.DefaultCost)
	admin = models.User{
		Username: "admin",
		Email:    "admin@melbourneedu.local",
		Password: string(hash),
		Role:     models.RoleAdmin,
	}
	if err := database.DB.Create(&admin).Error; err != nil {
		log.Fatalf("❌ Failed to create admin: %v", err)
	}
}
