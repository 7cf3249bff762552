// Package experience provides duration arithmetic over the free-text date
// ranges found in CVs. Resumes never follow one date format, so every helper
// degrades to zero on malformed input instead of failing the pipeline.
package experience

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/types"
)

var (
	yearPattern      = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	separatorPattern = regexp.MustCompile(`(?i)\s*(?:[-–—]+|\bto\b)\s*`)
)

// ExtractYear finds the first 4-digit year starting with 19 or 20 in the
// given text. Returns 0 and false when no year is present.
func ExtractYear(text string) (int, bool) {
	match := yearPattern.FindString(text)
	if match == "" {
		return 0, false
	}
	year, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return year, true
}

// YearsFromPeriod computes the span in years of a free-text period such as
// "2020 - 2023" or "Jan 2018 - Present". An end segment containing "present"
// or "current" resolves to the current calendar year. Any unrecoverable
// boundary yields 0.
func YearsFromPeriod(period string) float64 {
	parts := separatorPattern.Split(period, 2)
	if len(parts) < 2 {
		return 0
	}

	start := strings.TrimSpace(parts[0])
	end := strings.TrimSpace(parts[1])

	startYear, ok := ExtractYear(start)
	if !ok {
		return 0
	}

	var endYear int
	lowerEnd := strings.ToLower(end)
	if strings.Contains(lowerEnd, "present") || strings.Contains(lowerEnd, "current") {
		endYear = time.Now().Year()
	} else {
		endYear, ok = ExtractYear(end)
		if !ok {
			return 0
		}
	}

	return math.Max(0, float64(endYear-startYear))
}

// TotalYears sums the period spans across all experience entries,
// rounded to one decimal place.
func TotalYears(entries []types.ExperienceEntry) float64 {
	var total float64
	for _, entry := range entries {
		total += YearsFromPeriod(entry.Period)
	}
	return math.Round(total*10) / 10
}

// TotalYearsFromDrafts sums the period spans across edited draft rows, where
// the free-text period lives in the Years display field.
func TotalYearsFromDrafts(entries []types.DraftExperience) float64 {
	var total float64
	for _, entry := range entries {
		total += YearsFromPeriod(entry.Years)
	}
	return math.Round(total*10) / 10
}
