package seeds

import (
	"log"

	"github.com/Annsgit/melbourneedu-backend/internal/database"
	"github.com/Annsgit/melbourneedu-backend/internal/models"
)

func SeedSuburbs() {
	var count int64
	database.DB.Model(&models.Suburb{}).Count(&count)
	if count > 0 {
		log.Println("🗺️ Suburbs already seeded, skipping")
		return
	}

	log.Println("🗺️ Seeding Suburbs...")

	suburbs := []models.Suburb{
		{Name: "South Yarra", Postcode: "3141", Region: "Inner City", Population: 25000},
		{Name: "McKinnon", Postcode: "3204", Region: "South-Eastern", Population: 6500},
		{Name: "Toorak", Postcode: "3142", Region: "Inner City", Population: 13000},
		{Name: "Templestowe", Postcode: "3106", Region: "Eastern", Population: 16500},
		{Name: "Box Hill", Postcode: "3128", Region: "Eastern", Population: 11000},
	}

	for _, suburb := range suburbs {
		if err := database.DB.Create(&suburb).Error; err != nil {
			log.Printf("❌ Failed to seed suburb %s: %v", suburb.Name, err)
		}
	}

	log.Printf("✅ Seeded %d suburbs", len(suburbs))
}
