package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Annsgit/melbourneedu-backend/internal/database"
	"github.com/Annsgit/melbourneedu-backend/internal/models"
)

// Maximum number of schools included in a direct (non-LLM) answer
const maxSchoolsInResponse = 6

// questionIntent captures which aspects of schooling a free-text question is
// asking about, derived from keyword matching
type questionIntent struct {
	location   bool
	schoolType bool
	level      bool
	fees       bool
	academic   bool
	programs   bool
	facilities bool
	specific   bool
}

func detectIntent(query string) questionIntent {
	q := strings.ToLower(query)
	containsAny := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(q, w) {
				return true
			}
		}
		return false
	}

	return questionIntent{
		location:   containsAny("where", "location", "suburb", "address", "near"),
		schoolType: containsAny("public", "private", "catholic", "independent", "government"),
		level:      containsAny("primary", "secondary", "high school", "elementary", "p-12", "k-12", "combined"),
		fees:       containsAny("fee", "cost", "price", "expensive", "affordable", "cheap"),
		academic:   containsAny("academic", "atar", "score", "performance", "results"),
		programs:   containsAny("program", "stem", "science", "music", "sport", "art", "language", "coding"),
		facilities: containsAny("facilit", "pool", "gym", "library", "field", "center", "centre"),
		specific:   containsAny("tell me about", "information about", "can you describe", "what is", "details on"),
	}
}

// findRelevantSchools selects schools to answer a question about: explicit
// IDs first, then text search, then type/level keywords, then suburb words,
// falling back to a diverse sample so there is always something to say.
func findRelevantSchools(query string, filterSchoolIDs []uint, limit int) ([]models.School, error) {
	if len(filterSchoolIDs) > 0 {
		var schools []models.School
		if err := database.DB.Where("id IN ?", filterSchoolIDs).Find(&schools).Error; err != nil {
			return nil, err
		}
		return schools, nil
	}

	queryLower := strings.ToLower(query)

	schools, err := SearchSchools(query)
	if err != nil {
		return nil, err
	}

	if len(schools) == 0 {
		switch {
		case strings.Contains(queryLower, "public") || strings.Contains(queryLower, "government"):
			schools, err = schoolsByField("type", "Public")
		case strings.Contains(queryLower, "private") || strings.Contains(queryLower, "independent"):
			schools, err = schoolsByField("type", "Private")
		case strings.Contains(queryLower, "catholic"):
			schools, err = schoolsByField("type", "Catholic")
		}
		if err != nil {
			return nil, err
		}
	}

	if levelSchools, err := levelMatches(queryLower); err != nil {
		return nil, err
	} else if len(levelSchools) > 0 {
		if len(schools) > 0 {
			schools = intersectSchools(schools, levelSchools)
		} else {
			schools = levelSchools
		}
	}

	if len(schools) == 0 {
		schools, err = suburbWordMatches(queryLower)
		if err != nil {
			return nil, err
		}
	}

	if len(schools) == 0 {
		schools, err = diverseSample()
		if err != nil {
			return nil, err
		}
	}

	if len(schools) > limit {
		schools = schools[:limit]
	}
	return schools, nil
}

// SearchSchools matches schools by name, suburb or postcode, case-insensitive
func SearchSchools(query string) ([]models.School, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var schools []models.School
	err := database.DB.
		Where("LOWER(name) LIKE ? OR LOWER(suburb) LIKE ? OR postcode LIKE ?", pattern, pattern, pattern).
		Order("name asc").
		Find(&schools).Error
	return schools, err
}

func schoolsByField(field, value string) ([]models.School, error) {
	var schools []models.School
	err := database.DB.Where(field+" = ?", value).Order("name asc").Find(&schools).Error
	return schools, err
}

func levelMatches(queryLower string) ([]models.School, error) {
	switch {
	case strings.Contains(queryLower, "primary") || strings.Contains(queryLower, "elementary"):
		return schoolsByField("education_level", "Primary")
	case strings.Contains(queryLower, "secondary") || strings.Contains(queryLower, "high school"):
		return schoolsByField("education_level", "Secondary")
	case strings.Contains(queryLower, "combined") || strings.Contains(queryLower, "p-12") || strings.Contains(queryLower, "k-12"):
		return schoolsByField("education_level", "Combined")
	}
	return nil, nil
}

func intersectSchools(a, b []models.School) []models.School {
	ids := make(map[uint]bool, len(b))
	for _, s := range b {
		ids[s.ID] = true
	}
	var out []models.School
	for _, s := range a {
		if ids[s.ID] {
			out = append(out, s)
		}
	}
	return out
}

// suburbWordMatches tries each word of the query as a suburb name
func suburbWordMatches(queryLower string) ([]models.School, error) {
	for _, word := range strings.Fields(queryLower) {
		if len(word) <= 3 {
			continue
		}
		pattern := "%" + word + "%"
		var schools []models.School
		if err := database.DB.
			Where("LOWER(suburb) LIKE ?", pattern).
			Order("name asc").
			Find(&schools).Error; err != nil {
			return nil, err
		}
		if len(schools) > 0 {
			return schools, nil
		}
	}
	return nil, nil
}

// diverseSample returns a mix of public, private and catholic schools
func diverseSample() ([]models.School, error) {
	var all []models.School
	if err := database.DB.Order("name asc").Find(&all).Error; err != nil {
		return nil, err
	}

	take := func(schoolType string, n int) []models.School {
		var out []models.School
		for _, s := range all {
			if s.Type == schoolType {
				out = append(out, s)
				if len(out) == n {
					break
				}
			}
		}
		return out
	}

	sample := take("Public", 3)
	sample = append(sample, take("Private", 2)...)
	sample = append(sample, take("Catholic", 1)...)
	return sample, nil
}

// AnswerSchoolQueryDirect answers a question about schools without calling
// any LLM, by pattern-matching the question intent against stored data.
// Used as the fallback when OpenAI is unconfigured or unavailable.
func AnswerSchoolQueryDirect(query string, filterSchoolIDs []uint) (string, error) {
	schools, err := findRelevantSchools(query, filterSchoolIDs, maxSchoolsInResponse)
	if err != nil {
		return "", err
	}

	if len(schools) == 0 {
		return "I couldn't find specific schools matching your query. Our database includes schools across Melbourne. " +
			"Try asking about schools in a specific suburb like Brighton or Kew, or about a specific type like 'public high schools'.", nil
	}

	queryLower := strings.ToLower(query)
	intent := detectIntent(query)

	// A question naming a single school gets its full profile
	for _, school := range schools {
		if strings.Contains(queryLower, strings.ToLower(school.Name)) {
			return describeSchool(school), nil
		}
	}
	if len(schools) == 1 || intent.specific {
		return describeSchool(schools[0]), nil
	}

	switch {
	case intent.location:
		return locationAnswer(schools), nil
	case intent.fees:
		return feesAnswer(schools), nil
	case intent.academic:
		return academicAnswer(schools), nil
	case intent.programs:
		return programsAnswer(schools), nil
	case intent.facilities:
		return facilitiesAnswer(schools), nil
	case intent.schoolType:
		return groupedAnswer(schools, "type"), nil
	case intent.level:
		return groupedAnswer(schools, "level"), nil
	}

	// Generic listing
	var b strings.Builder
	b.WriteString("Here are some Melbourne schools that may be relevant:\n\n")
	for _, s := range schools {
		fmt.Fprintf(&b, "- %s (%s, %s) in %s\n", s.Name, s.Type, s.EducationLevel, s.Suburb)
	}
	b.WriteString("\nAsk me about any of these schools for more detail.")
	return b.String(), nil
}

func describeSchool(s models.School) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here's information about %s:\n\n", s.Name)
	fmt.Fprintf(&b, "Type: %s school\n", s.Type)
	fmt.Fprintf(&b, "Education Level: %s\n", s.EducationLevel)
	fmt.Fprintf(&b, "Location: %s, %s\n", s.Suburb, s.Postcode)
	if s.Address != "" {
		fmt.Fprintf(&b, "Address: %s\n", s.Address)
	}
	if s.StudentCount > 0 {
		fmt.Fprintf(&b, "Student Population: %d\n", s.StudentCount)
	}
	if s.AtarAverage > 0 {
		fmt.Fprintf(&b, "ATAR Average: %.1f\n", float64(s.AtarAverage)/10)
	}
	if s.Fees != "" {
		fmt.Fprintf(&b, "Fees: %s\n", s.Fees)
	}
	if s.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", s.Description)
	}
	if len(s.Facilities) > 0 {
		fmt.Fprintf(&b, "\nFacilities: %s\n", strings.Join(s.Facilities, ", "))
	}
	if len(s.Programs) > 0 {
		fmt.Fprintf(&b, "Programs: %s\n", strings.Join(s.Programs, ", "))
	}
	if s.Website != "" {
		fmt.Fprintf(&b, "Website: %s\n", s.Website)
	}
	b.WriteString("\nIs there anything specific about this school you'd like to know more about?")
	return b.String()
}

func locationAnswer(schools []models.School) string {
	var b strings.Builder
	b.WriteString("Here are the locations of some relevant schools:\n\n")
	for i, s := range schools {
		if i == 5 {
			break
		}
		fmt.Fprintf(&b, "- %s is located in %s (%s)", s.Name, s.Suburb, s.Postcode)
		if s.Address != "" {
			fmt.Fprintf(&b, ", at %s", s.Address)
		}
		b.WriteString("\n")
	}
	b.WriteString("\nI can provide more details about any of these schools if you'd like.")
	return b.String()
}

func groupedAnswer(schools []models.School, by string) string {
	groups := make(map[string][]models.School)
	for _, s := range schools {
		key := s.Type
		if by == "level" {
			key = s.EducationLevel
		}
		groups[key] = append(groups[key], s)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	label := "type"
	if by == "level" {
		label = "education level"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here are schools grouped by %s:\n\n", label)
	for _, key := range keys {
		fmt.Fprintf(&b, "%s Schools:\n", key)
		for i, s := range groups[key] {
			if i == 4 {
				break
			}
			if by == "level" {
				fmt.Fprintf(&b, "- %s (%s, %s)\n", s.Name, s.Suburb, s.Type)
			} else {
				fmt.Fprintf(&b, "- %s (%s, %s)\n", s.Name, s.Suburb, s.EducationLevel)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func feesAnswer(schools []models.School) string {
	withFees := make([]models.School, 0, len(schools))
	for _, s := range schools {
		if s.Fees != "" {
			withFees = append(withFees, s)
		}
	}
	if len(withFees) == 0 {
		return "I don't have specific fee information for the schools in your query. In general, public schools in " +
			"Melbourne have minimal fees (usually under $1,000 per year), while private and Catholic schools have " +
			"annual fees ranging from $5,000 to $40,000 depending on the school's prestige and facilities."
	}

	var b strings.Builder
	b.WriteString("Here's fee information for some relevant schools:\n\n")
	for i, s := range withFees {
		if i == maxSchoolsInResponse {
			break
		}
		fmt.Fprintf(&b, "- %s (%s, %s): %s\n", s.Name, s.Type, s.EducationLevel, s.Fees)
	}
	b.WriteString("\nPublic schools generally have minimal fees compared to private schools. Fee assistance and scholarships may be available at many schools.")
	return b.String()
}

func academicAnswer(schools []models.School) string {
	withATAR := make([]models.School, 0, len(schools))
	for _, s := range schools {
		if s.AtarAverage > 0 {
			withATAR = append(withATAR, s)
		}
	}
	if len(withATAR) == 0 {
		return "I don't have specific academic performance data for the schools in your query. Academic results vary by " +
			"school and year. Many schools publish their VCE results and ATAR scores on their websites."
	}
	sort.Slice(withATAR, func(i, j int) bool { return withATAR[i].AtarAverage > withATAR[j].AtarAverage })

	var b strings.Builder
	b.WriteString("Here are some schools with their average ATAR scores:\n\n")
	for i, s := range withATAR {
		if i == 5 {
			break
		}
		fmt.Fprintf(&b, "- %s (%s): ATAR Average %.1f\n", s.Name, s.Type, float64(s.AtarAverage)/10)
	}
	b.WriteString("\nKeep in mind that academic results are just one factor to consider when choosing a school.")
	return b.String()
}

func programsAnswer(schools []models.School) string {
	var b strings.Builder
	found := false
	for i, s := range schools {
		if i == 5 {
			break
		}
		if len(s.Programs) > 0 {
			fmt.Fprintf(&b, "- %s offers: %s\n", s.Name, strings.Join(s.Programs, ", "))
			found = true
		}
	}
	if !found {
		return programFallbackList(schools)
	}
	return "Here are some schools with their program offerings:\n\n" + b.String() +
		"\nMany schools offer additional programs not listed here. Check their websites for the most up-to-date information."
}

func programFallbackList(schools []models.School) string {
	var b strings.Builder
	for i, s := range schools {
		if i == 5 {
			break
		}
		fmt.Fprintf(&b, "- %s (%s, %s)\n", s.Name, s.Type, s.EducationLevel)
	}
	return "Here are some schools that might match your interests:\n\n" + b.String() +
		"\nFor specific details, I recommend visiting the schools' websites or contacting them directly."
}

func facilitiesAnswer(schools []models.School) string {
	var b strings.Builder
	found := false
	for i, s := range schools {
		if i == 5 {
			break
		}
		if len(s.Facilities) > 0 {
			fmt.Fprintf(&b, "- %s has: %s\n", s.Name, strings.Join(s.Facilities, ", "))
			found = true
		}
	}
	if !found {
		return programFallbackList(schools)
	}
	return "Here are some schools with their facility information:\n\n" + b.String() +
		"\nSchool tours are a great way to see facilities firsthand."
}
