package reports

import (
	"math"
	"sort"
	"strings"

	"github.com/muneebabadar/result-management-system-kkamhs/app/models"
)

// GradeBucket maps a stored letter grade onto its distribution bucket by
// first letter, so "A+" and "A-" both count under "A". Missing or
// unrecognised grades fall into "N/A".
func GradeBucket(grade *string) string {
	if grade == nil || *grade == "" {
		return "N/A"
	}
	switch strings.ToUpper(*grade)[:1] {
	case "A":
		return "A"
	case "B":
		return "B"
	case "C":
		return "C"
	case "D":
		return "D"
	case "F":
		return "F"
	}
	return "N/A"
}

// NewGradeDistribution returns the zeroed bucket map every distribution
// starts from.
func NewGradeDistribution() map[string]int {
	return map[string]int{"A": 0, "B": 0, "C": 0, "D": 0, "F": 0, "N/A": 0}
}

// RoundTo2 rounds to two decimal places.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

// LetterGrade maps an overall percentage onto the school's letter scale.
func LetterGrade(pct float64) string {
	switch {
	case pct >= 80:
		return "A"
	case pct >= 70:
		return "B"
	case pct >= 60:
		return "C"
	case pct >= 50:
		return "D"
	default:
		return "F"
	}
}

// ResultFor converts an overall percentage into a pass or fail outcome.
// 50 is the pass mark.
func ResultFor(pct float64) models.OverallResult {
	if pct >= 50 {
		return models.ResultPass
	}
	return models.ResultFail
}

// AverageScore averages the non-nil percentages of a slice of outcomes,
// treating nil as zero the way the report totals do. Returns nil when the
// slice is empty.
func AverageScore(outcomes []models.StudentYearOutcome) *float64 {
	if len(outcomes) == 0 {
		return nil
	}
	var sum float64
	for _, o := range outcomes {
		if o.OverallPercentage != nil {
			sum += *o.OverallPercentage
		}
	}
	avg := RoundTo2(sum / float64(len(outcomes)))
	return &avg
}

// ClassRank ranks a student within their cohort by overall percentage,
// highest first. Students without a percentage are unranked. Returns
// (rank, class size); rank is nil when the student has no ranked outcome.
func ClassRank(outcomes []models.StudentYearOutcome, studentID string) (*int, int) {
	ranked := make([]models.StudentYearOutcome, 0, len(outcomes))
	for _, o := range outcomes {
		if o.OverallPercentage != nil {
			ranked = append(ranked, o)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return *ranked[i].OverallPercentage > *ranked[j].OverallPercentage
	})

	for i, o := range ranked {
		if o.StudentID == studentID {
			rank := i + 1
			return &rank, len(outcomes)
		}
	}
	return nil, len(outcomes)
}
