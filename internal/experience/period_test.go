package experience

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/types"
)

func TestExtractYear(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
		found    bool
	}{
		{"bare year", "2020", 2020, true},
		{"month and year", "Jan 2018", 2018, true},
		{"nineties year", "Summer 1998", 1998, true},
		{"first of several years", "2015 until 2019", 2015, true},
		{"no year", "not a date", 0, false},
		{"three digits", "201", 0, false},
		{"year outside range", "3020", 0, false},
		{"year embedded in longer number", "x120204", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, ok := ExtractYear(tt.input)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, year)
		})
	}
}

func TestYearsFromPeriod(t *testing.T) {
	currentYear := time.Now().Year()

	tests := []struct {
		name     string
		period   string
		expected float64
	}{
		{"plain range", "2020 - 2023", 3},
		{"en dash", "2020 – 2023", 3},
		{"em dash", "2019—2022", 3},
		{"word separator", "2016 to 2020", 4},
		{"months present", "Jan 2020 - Dec 2023", 3},
		{"present end", "Jan 2018 - Present", float64(currentYear - 2018)},
		{"current end", "2021 - current", float64(currentYear - 2021)},
		{"reversed range clamps to zero", "2023 - 2020", 0},
		{"no separator", "2020", 0},
		{"garbage", "not a date", 0},
		{"missing start year", "sometime - 2022", 0},
		{"missing end year", "2020 - whenever", 0},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, YearsFromPeriod(tt.period))
		})
	}
}

func TestTotalYears(t *testing.T) {
	entries := []types.ExperienceEntry{
		{JobTitle: "Engineer", Period: "2015 - 2018"},
		{JobTitle: "Senior Engineer", Period: "2018 - 2022"},
		{JobTitle: "Consultant", Period: "no dates here"},
	}

	assert.Equal(t, 7.0, TotalYears(entries))
	assert.Equal(t, 0.0, TotalYears(nil))
	assert.Equal(t, 0.0, TotalYears([]types.ExperienceEntry{}))
}

func TestTotalYearsFromDrafts(t *testing.T) {
	currentYear := time.Now().Year()
	entries := []types.DraftExperience{
		{Title: "Engineer", Years: "2015 - 2018"},
		{Title: "Lead", Years: fmt.Sprintf("2018 - %d", currentYear)},
	}

	assert.Equal(t, float64(currentYear-2015), TotalYearsFromDrafts(entries))
	assert.Equal(t, 0.0, TotalYearsFromDrafts(nil))
}
