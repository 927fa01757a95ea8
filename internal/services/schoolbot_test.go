package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Annsgit/melbourneedu-backend/internal/database"
	"github.com/Annsgit/melbourneedu-backend/internal/models"
)

func seedBotSchools(t *testing.T) []models.School {
	t.Helper()
	require.NoError(t, database.DB.AutoMigrate(&models.School{}))

	schools := []models.School{
		{
			Name: "Melbourne Grammar School", Type: "Private", EducationLevel: "Combined",
			Suburb: "South Yarra", Postcode: "3141", AtarAverage: 880,
			Fees:       "$35,000 per year",
			Facilities: []string{"Swimming Pool", "Library"},
			Programs:   []string{"Music", "STEM"},
		},
		{
			Name: "McKinnon Secondary College", Type: "Public", EducationLevel: "Secondary",
			Suburb: "McKinnon", Postcode: "3204", AtarAverage: 850,
			Programs: []string{"STEM", "Languages"},
		},
		{
			Name: "St Catherine's School", Type: "Catholic", EducationLevel: "Combined",
			Suburb: "Toorak", Postcode: "3142",
		},
	}
	for i := range schools {
		require.NoError(t, database.DB.Create(&schools[i]).Error)
	}
	return schools
}

func TestAnswerSchoolQueryDirect_NoSchools(t *testing.T) {
	SetupTestDB(t)
	require.NoError(t, database.DB.AutoMigrate(&models.School{}))

	answer, err := AnswerSchoolQueryDirect("anything at all", nil)
	require.NoError(t, err)
	assert.Contains(t, answer, "couldn't find specific schools")
}

func TestAnswerSchoolQueryDirect_SpecificSchool(t *testing.T) {
	SetupTestDB(t)
	seedBotSchools(t)

	answer, err := AnswerSchoolQueryDirect("Tell me about Melbourne Grammar School", nil)
	require.NoError(t, err)
	assert.Contains(t, answer, "Melbourne Grammar School")
	assert.Contains(t, answer, "Private school")
	assert.Contains(t, answer, "South Yarra")
}

func TestAnswerSchoolQueryDirect_FilterIDs(t *testing.T) {
	SetupTestDB(t)
	schools := seedBotSchools(t)

	answer, err := AnswerSchoolQueryDirect("details please", []uint{schools[1].ID})
	require.NoError(t, err)
	assert.Contains(t, answer, "McKinnon Secondary College")
	assert.NotContains(t, answer, "Melbourne Grammar School")
}

func TestAnswerSchoolQueryDirect_TypeQuery(t *testing.T) {
	SetupTestDB(t)
	seedBotSchools(t)

	answer, err := AnswerSchoolQueryDirect("show me public schools", nil)
	require.NoError(t, err)
	assert.Contains(t, answer, "McKinnon Secondary College")
}

func TestAnswerSchoolQueryDirect_FeesQuery(t *testing.T) {
	SetupTestDB(t)
	seedBotSchools(t)

	answer, err := AnswerSchoolQueryDirect("what are the school fees like", nil)
	require.NoError(t, err)
	assert.Contains(t, answer, "$35,000 per year")
}

func TestAnswerSchoolQueryDirect_AcademicQuery(t *testing.T) {
	SetupTestDB(t)
	seedBotSchools(t)

	answer, err := AnswerSchoolQueryDirect("which schools have the best ATAR results", nil)
	require.NoError(t, err)
	// Sorted best-first: Melbourne Grammar (88.0) ahead of McKinnon (85.0)
	assert.Contains(t, answer, "88.0")
	assert.Contains(t, answer, "85.0")
}

func TestFindRelevantSchools_SuburbWordFallback(t *testing.T) {
	SetupTestDB(t)
	seedBotSchools(t)

	schools, err := findRelevantSchools("anything near toorak please", nil, 6)
	require.NoError(t, err)
	require.Len(t, schools, 1)
	assert.Equal(t, "St Catherine's School", schools[0].Name)
}

func TestFindRelevantSchools_DiverseSampleFallback(t *testing.T) {
	SetupTestDB(t)
	seedBotSchools(t)

	schools, err := findRelevantSchools("zzz qqq", nil, 6)
	require.NoError(t, err)
	// One of each type available
	assert.Len(t, schools, 3)
}

func TestProcessSchoolBotQuery_FallsBackWithoutAPIKey(t *testing.T) {
	SetupTestDB(t)
	seedBotSchools(t)

	answer, err := ProcessSchoolBotQuery(context.Background(), "tell me about McKinnon Secondary College", nil)
	require.NoError(t, err)
	assert.Contains(t, answer, "McKinnon Secondary College")
}
