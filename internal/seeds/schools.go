package seeds

import (
	"log"

	"github.com/Annsgit/melbourneedu-backend/internal/database"
	"github.com/Annsgit/melbourneedu-backend/internal/models"
)

func SeedSchools() {
	var count int64
	database.DB.Model(&models.School{}).Count(&count)
	if count > 0 {
		log.Println("🏫 Schools already seeded, skipping")
		return
	}

	log.Println("🏫 Seeding Schools...")

	schools := []models.School{
		{
			Name:           "Melbourne Grammar School",
			Type:           "Private",
			EducationLevel: "Combined",
			Suburb:         "South Yarra",
			Postcode:       "3141",
			Address:        "355 St Kilda Road, Melbourne",
			Website:        "https://www.mgs.vic.edu.au",
			Description:    "One of Australia's oldest and most prestigious independent schools, offering education from Prep to Year 12.",
			YearLevels:     "Prep-12",
			StudentCount:   1800,
			AtarAverage:    880,
			Fees:           "$35,000 per year",
			Facilities:     []string{"Swimming Pool", "Performing Arts Centre", "Sports Fields", "Library"},
			Programs:       []string{"Music", "Rowing", "Debating", "STEM"},
			Featured:       true,
		},
		{
			Name:           "McKinnon Secondary College",
			Type:           "Public",
			EducationLevel: "Secondary",
			Suburb:         "McKinnon",
			Postcode:       "3204",
			Address:        "McKinnon Road, McKinnon",
			Website:        "https://www.mckinnonsc.vic.edu.au",
			Description:    "A high-performing government secondary school known for strong academic results and a vibrant school community.",
			YearLevels:     "7-12",
			StudentCount:   2200,
			AtarAverage:    850,
			Facilities:     []string{"Gymnasium", "Science Labs", "Performing Arts Centre"},
			Programs:       []string{"STEM", "Music", "Languages", "Sport"},
			Featured:       true,
		},
		{
			Name:           "St Catherine's School",
			Type:           "Private",
			EducationLevel: "Combined",
			Suburb:         "Toorak",
			Postcode:       "3142",
			Address:        "17 Heyington Place, Toorak",
			Website:        "https://www.stcatherines.net.au",
			Description:    "An independent day and boarding school for girls, with a strong tradition of academic excellence.",
			YearLevels:     "ELC-12",
			StudentCount:   700,
			AtarAverage:    900,
			Fees:           "$33,000 per year",
			Facilities:     []string{"Aquatic Centre", "Library", "Art Studios"},
			Programs:       []string{"Music", "Art", "Sport", "Languages"},
		},
		{
			Name:           "Templestowe College",
			Type:           "Public",
			EducationLevel: "Secondary",
			Suburb:         "Templestowe",
			Postcode:       "3106",
			Address:        "7 Cypress Avenue, Templestowe Lower",
			Website:        "https://www.tc.vic.edu.au",
			Description:    "A progressive government school known for individualised learning and flexible pathways.",
			YearLevels:     "7-12",
			StudentCount:   1100,
			Facilities:     []string{"Animal Facility", "Music Studios", "Gymnasium"},
			Programs:       []string{"Agriculture", "Music Industry", "STEM"},
		},
		{
			Name:           "Box Hill High School",
			Type:           "Public",
			EducationLevel: "Secondary",
			Suburb:         "Box Hill",
			Postcode:       "3128",
			Address:        "1180 Whitehorse Road, Box Hill",
			Website:        "https://www.boxhillhs.vic.edu.au",
			Description:    "A co-educational government secondary school with an accredited SEAL program for gifted students.",
			YearLevels:     "7-12",
			StudentCount:   1000,
			AtarAverage:    820,
			Facilities:     []string{"Science Labs", "Sports Courts", "Library"},
			Programs:       []string{"SEAL", "STEM", "Music"},
		},
	}

	for _, school := range schools {
		if err := database.DB.Create(&school).Error; err != nil {
			log.Printf("❌ Failed to seed school %s: %v", school.Name, err)
		}
	}

	log.Printf("✅ Seeded %d schools", len(schools))
}
