package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muneebabadar/result-management-system-kkamhs/app/models"
)

func strptr(s string) *string   { return &s }
func f64ptr(v float64) *float64 { return &v }

func TestGradeBucket(t *testing.T) {
	assert.Equal(t, "A", GradeBucket(strptr("A")))
	assert.Equal(t, "A", GradeBucket(strptr("A+")))
	assert.Equal(t, "B", GradeBucket(strptr("b-")))
	assert.Equal(t, "C", GradeBucket(strptr("C")))
	assert.Equal(t, "D", GradeBucket(strptr("D")))
	assert.Equal(t, "F", GradeBucket(strptr("F")))
	assert.Equal(t, "N/A", GradeBucket(strptr("X")))
	assert.Equal(t, "N/A", GradeBucket(strptr("")))
	assert.Equal(t, "N/A", GradeBucket(nil))
}

func TestLetterGrade(t *testing.T) {
	assert.Equal(t, "A", LetterGrade(92.5))
	assert.Equal(t, "A", LetterGrade(80))
	assert.Equal(t, "B", LetterGrade(79.99))
	assert.Equal(t, "C", LetterGrade(65))
	assert.Equal(t, "D", LetterGrade(50))
	assert.Equal(t, "F", LetterGrade(49.99))
	assert.Equal(t, "F", LetterGrade(0))
}

func TestResultFor(t *testing.T) {
	assert.Equal(t, models.ResultPass, ResultFor(50))
	assert.Equal(t, models.ResultPass, ResultFor(88))
	assert.Equal(t, models.ResultFail, ResultFor(49.99))
}

func TestRoundTo2(t *testing.T) {
	assert.Equal(t, 66.67, RoundTo2(66.666666))
	assert.Equal(t, 66.66, RoundTo2(66.664))
	assert.Equal(t, 100.0, RoundTo2(100))
}

func TestAverageScore(t *testing.T) {
	assert.Nil(t, AverageScore(nil))

	outcomes := []models.StudentYearOutcome{
		{StudentID: "s1", OverallPercentage: f64ptr(80)},
		{StudentID: "s2", OverallPercentage: f64ptr(70)},
		{StudentID: "s3"}, // no score counts as zero
	}
	avg := AverageScore(outcomes)
	require.NotNil(t, avg)
	assert.Equal(t, 50.0, *avg)
}

func TestClassRank(t *testing.T) {
	outcomes := []models.StudentYearOutcome{
		{StudentID: "s1", OverallPercentage: f64ptr(72)},
		{StudentID: "s2", OverallPercentage: f64ptr(91)},
		{StudentID: "s3", OverallPercentage: f64ptr(55)},
		{StudentID: "s4"}, // unranked, still counts toward class size
	}

	rank, size := ClassRank(outcomes, "s2")
	require.NotNil(t, rank)
	assert.Equal(t, 1, *rank)
	assert.Equal(t, 4, size)

	rank, _ = ClassRank(outcomes, "s1")
	require.NotNil(t, rank)
	assert.Equal(t, 2, *rank)

	rank, _ = ClassRank(outcomes, "s3")
	require.NotNil(t, rank)
	assert.Equal(t, 3, *rank)

	rank, size = ClassRank(outcomes, "s4")
	assert.Nil(t, rank)
	assert.Equal(t, 4, size)

	rank, size = ClassRank(nil, "s1")
	assert.Nil(t, rank)
	assert.Equal(t, 0, size)
}
