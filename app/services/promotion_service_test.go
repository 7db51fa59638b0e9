package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muneebabadar/result-management-system-kkamhs/app/models"
)

// fixture is a school with years 2024/25 (current) and 2025/26, cohort 6A
// holding three students and cohort 7A as the promotion target.
type fixture struct {
	store    *memStore
	svc      *PromotionService
	from, to *models.AcademicYear
	sixA     *models.Cohort
	sevenA   *models.Cohort
	amina    *memEnrollment // pass
	brian    *memEnrollment // fail
	chloe    *memEnrollment // no outcome row
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newMemStore()
	from := store.addYear(1, "2024/25", true)
	to := store.addYear(2, "2025/26", false)
	sixA := store.addCohort("6", "A")
	sevenA := store.addCohort("7", "A")

	amina := store.addEnrollment("a1000000-0000-0000-0000-000000000001", "Amina", from.ID, sixA.ClassSectionID)
	brian := store.addEnrollment("b2000000-0000-0000-0000-000000000002", "Brian", from.ID, sixA.ClassSectionID)
	chloe := store.addEnrollment("c3000000-0000-0000-0000-000000000003", "Chloe", from.ID, sixA.ClassSectionID)
	store.addOutcome(amina.StudentID, from.ID, models.ResultPass)
	store.addOutcome(brian.StudentID, from.ID, models.ResultFail)

	return &fixture{
		store:  store,
		svc:    NewPromotionService(store),
		from:   from,
		to:     to,
		sixA:   sixA,
		sevenA: sevenA,
		amina:  amina,
		brian:  brian,
		chloe:  chloe,
	}
}

func (f *fixture) withPath() *fixture {
	f.store.addPath(f.from.ID, f.to.ID, f.sixA.ClassSectionID, f.sevenA.ClassSectionID)
	return f
}

func decisionOf(t *testing.T, view *models.RunView, studentID string) *models.PromotionRow {
	t.Helper()
	for _, r := range view.Students {
		if r.StudentID == studentID {
			return r
		}
	}
	t.Fatalf("student %s not in run view", studentID)
	return nil
}

func TestListCohorts(t *testing.T) {
	f := newFixture(t)

	cohorts, err := f.svc.ListCohorts()
	require.NoError(t, err)
	require.Len(t, cohorts, 1)
	assert.Equal(t, "6A", cohorts[0].Label)
}

func TestListCohortsNoCurrentYear(t *testing.T) {
	store := newMemStore()
	svc := NewPromotionService(store)

	_, err := svc.ListCohorts()
	assert.ErrorIs(t, err, ErrNoCurrentYear)
}

func TestOpenRunSeedsDefaultDecisions(t *testing.T) {
	f := newFixture(t)

	view, err := f.svc.OpenRun(f.sixA.ClassSectionID)
	require.NoError(t, err)
	require.Len(t, view.Students, 3)
	assert.Equal(t, "6A", view.ClassLabel)
	assert.Equal(t, f.from.ID, view.FromYear.ID)
	assert.Equal(t, f.to.ID, view.ToYear.ID)

	amina := decisionOf(t, view, f.amina.StudentID)
	assert.Equal(t, models.DecisionPromote, amina.Decision)
	assert.Equal(t, "Pass", amina.OverallResult)
	assert.Equal(t, "Promoted", amina.PromotionStatus)

	brian := decisionOf(t, view, f.brian.StudentID)
	assert.Equal(t, models.DecisionRetain, brian.Decision)
	assert.Equal(t, "Fail", brian.OverallResult)
	assert.Equal(t, "Not Promoted", brian.PromotionStatus)

	// No outcome row reads the same as a fail.
	chloe := decisionOf(t, view, f.chloe.StudentID)
	assert.Equal(t, models.DecisionRetain, chloe.Decision)
	assert.Equal(t, "Fail", chloe.OverallResult)
}

func TestOpenRunOrdersByStudentID(t *testing.T) {
	f := newFixture(t)

	view, err := f.svc.OpenRun(f.sixA.ClassSectionID)
	require.NoError(t, err)
	require.Len(t, view.Students, 3)
	for i := 1; i < len(view.Students); i++ {
		assert.Less(t, view.Students[i-1].StudentID, view.Students[i].StudentID)
	}
}

func TestOpenRunIsIdempotent(t *testing.T) {
	f := newFixture(t)

	first, err := f.svc.OpenRun(f.sixA.ClassSectionID)
	require.NoError(t, err)
	second, err := f.svc.OpenRun(f.sixA.ClassSectionID)
	require.NoError(t, err)

	assert.Equal(t, first.RunID, second.RunID)
	assert.Equal(t, 1, f.store.runCount())
}

func TestOpenRunConcurrentCreatesConvergeOnOneDraft(t *testing.T) {
	f := newFixture(t)

	const workers = 16
	runIDs := make([]string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			view, err := f.svc.OpenRun(f.sixA.ClassSectionID)
			if assert.NoError(t, err) {
				runIDs[i] = view.RunID
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, f.store.runCount())
	for i := 1; i < workers; i++ {
		assert.Equal(t, runIDs[0], runIDs[i])
	}
}

func TestReopenPreservesManualOverrides(t *testing.T) {
	f := newFixture(t)

	view, err := f.svc.OpenRun(f.sixA.ClassSectionID)
	require.NoError(t, err)

	// Operator overrides the fail default for Brian.
	err = f.svc.ApplyDecisions(view.RunID, []DecisionUpdate{
		{StudentID: f.brian.StudentID, Decision: models.DecisionConditionalPromote},
	})
	require.NoError(t, err)

	reopened, err := f.svc.OpenRun(f.sixA.ClassSectionID)
	require.NoError(t, err)
	require.Equal(t, view.RunID, reopened.RunID)

	brian := decisionOf(t, reopened, f.brian.StudentID)
	assert.Equal(t, models.DecisionConditionalPromote, brian.Decision)
	assert.Equal(t, "Promoted", brian.PromotionStatus)
	// The frozen eligibility snapshot stays a fail even after the override.
	assert.Equal(t, "Fail", brian.OverallResult)
}

func TestOpenRunNoNextYear(t *testing.T) {
	store := newMemStore()
	store.addYear(1, "2024/25", true)
	cohort := store.addCohort("6", "A")
	svc := NewPromotionService(store)

	_, err := svc.OpenRun(cohort.ClassSectionID)
	assert.ErrorIs(t, err, ErrNoNextYear)
}

func TestOpenRunUnknownCohort(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.OpenRun("4f3a0000-0000-0000-0000-00000000dead")
	assert.ErrorIs(t, err, ErrCohortNotFound)
}

func TestApplyDecisionsUnknownRun(t *testing.T) {
	f := newFixture(t)

	err := f.svc.ApplyDecisions("missing-run", []DecisionUpdate{
		{StudentID: f.amina.StudentID, Decision: models.DecisionRetain},
	})
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestApplyDecisionsInvalidDecision(t *testing.T) {
	f := newFixture(t)
	view, err := f.svc.OpenRun(f.sixA.ClassSectionID)
	require.NoError(t, err)

	err = f.svc.ApplyDecisions(view.RunID, []DecisionUpdate{
		{StudentID: f.amina.StudentID, Decision: models.Decision("graduate")},
	})
	assert.ErrorIs(t, err, ErrInvalidDecision)
}

func TestApplyDecisionsMissingRowDoesNotInsert(t *testing.T) {
	f := newFixture(t)
	view, err := f.svc.OpenRun(f.sixA.ClassSectionID)
	require.NoError(t, err)

	stranger := "d4000000-0000-0000-0000-000000000004"
	err = f.svc.ApplyDecisions(view.RunID, []DecisionUpdate{
		{StudentID: stranger, Decision: models.DecisionPromote},
	})
	assert.ErrorIs(t, err, ErrDecisionRowMissing)

	rows, err := f.store.RunStudents(view.RunID)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestApplyDecisionsRejectsConfirmedRun(t *testing.T) {
	f := newFixture(t).withPath()
	view, err := f.svc.OpenRun(f.sixA.ClassSectionID)
	require.NoError(t, err)
	_, err = f.svc.ConfirmRun(view.RunID)
	require.NoError(t, err)

	err = f.svc.ApplyDecisions(view.RunID, []DecisionUpdate{
		{StudentID: f.amina.StudentID, Decision: models.DecisionRetain},
	})
	assert.ErrorIs(t, err, ErrRunNotDraft)
}

func TestConfirmRunPromotesIntoNextYear(t *testing.T) {
	f := newFixture(t).withPath()
	view, err := f.svc.OpenRun(f.sixA.ClassSectionID)
	require.NoError(t, err)

	// Brian gets a conditional promotion alongside Amina's pass default.
	err = f.svc.ApplyDecisions(view.RunID, []DecisionUpdate{
		{StudentID: f.brian.StudentID, Decision: models.DecisionConditionalPromote},
	})
	require.NoError(t, err)

	count, err := f.svc.ConfirmRun(view.RunID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	run, err := f.store.GetRun(view.RunID)
	require.NoError(t, err)
	assert.Equal(t, models.RunConfirmed, run.Status)
	require.NotNil(t, run.ConfirmedAt)

	// Promoted students land in 7A for the next year.
	for _, id := range []string{f.amina.StudentID, f.brian.StudentID} {
		next := f.store.enrollmentFor(id, f.to.ID)
		require.NotNil(t, next, "expected next-year enrollment for %s", id)
		assert.Equal(t, f.sevenA.ClassSectionID, next.ClassSectionID)
		assert.Equal(t, models.EnrollmentActive, next.Status)

		source := f.store.enrollmentFor(id, f.from.ID)
		require.NotNil(t, source)
		assert.Equal(t, models.EnrollmentPromoted, source.Status)
	}

	// Retained Chloe is untouched in both years.
	assert.Nil(t, f.store.enrollmentFor(f.chloe.StudentID, f.to.ID))
	assert.Equal(t, models.EnrollmentActive, f.store.enrollmentFor(f.chloe.StudentID, f.from.ID).Status)

	require.Len(t, f.store.notes, 1)
	assert.Equal(t, models.NotificationPromotion, f.store.notes[0].Type)
}

func TestConfirmRunWithoutPathLeavesRunDraft(t *testing.T) {
	f := newFixture(t) // no path configured
	view, err := f.svc.OpenRun(f.sixA.ClassSectionID)
	require.NoError(t, err)

	_, err = f.svc.ConfirmRun(view.RunID)
	assert.ErrorIs(t, err, ErrNoPromotionPath)

	run, err := f.store.GetRun(view.RunID)
	require.NoError(t, err)
	assert.Equal(t, models.RunDraft, run.Status)
	assert.Nil(t, f.store.enrollmentFor(f.amina.StudentID, f.to.ID))
}

func TestConfirmRunRejectsSecondConfirmation(t *testing.T) {
	f := newFixture(t).withPath()
	view, err := f.svc.OpenRun(f.sixA.ClassSectionID)
	require.NoError(t, err)

	_, err = f.svc.ConfirmRun(view.RunID)
	require.NoError(t, err)

	_, err = f.svc.ConfirmRun(view.RunID)
	assert.ErrorIs(t, err, ErrRunNotDraft)

	// The source enrollment was not flipped twice into some other state.
	assert.Equal(t, models.EnrollmentPromoted, f.store.enrollmentFor(f.amina.StudentID, f.from.ID).Status)
}

func TestConfirmRunUnknownRun(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ConfirmRun("missing-run")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestConfirmRunRetryAfterMarkSourceFailure(t *testing.T) {
	f := newFixture(t).withPath()
	view, err := f.svc.OpenRun(f.sixA.ClassSectionID)
	require.NoError(t, err)

	f.store.failMarkPromoted = true
	_, err = f.svc.ConfirmRun(view.RunID)

	var partial *PartialConfirmError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, "mark_source", partial.Stage)

	// Next-year enrollment exists but the run is still draft.
	require.NotNil(t, f.store.enrollmentFor(f.amina.StudentID, f.to.ID))
	run, err := f.store.GetRun(view.RunID)
	require.NoError(t, err)
	assert.Equal(t, models.RunDraft, run.Status)

	// Retry completes without duplicating the upserted enrollment.
	f.store.failMarkPromoted = false
	count, err := f.svc.ConfirmRun(view.RunID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	total := 0
	for _, e := range f.store.enrollments {
		if e.StudentID == f.amina.StudentID && e.YearID == f.to.ID {
			total++
		}
	}
	assert.Equal(t, 1, total)
	assert.Equal(t, models.EnrollmentPromoted, f.store.enrollmentFor(f.amina.StudentID, f.from.ID).Status)
}

func TestConfirmRunFinalizeFailureIsPartial(t *testing.T) {
	f := newFixture(t).withPath()
	view, err := f.svc.OpenRun(f.sixA.ClassSectionID)
	require.NoError(t, err)

	f.store.failSetStatus = true
	_, err = f.svc.ConfirmRun(view.RunID)

	var partial *PartialConfirmError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, "finalize", partial.Stage)

	f.store.failSetStatus = false
	count, err := f.svc.ConfirmRun(view.RunID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestConfirmRunWithNoPromotedStudents(t *testing.T) {
	f := newFixture(t).withPath()
	view, err := f.svc.OpenRun(f.sixA.ClassSectionID)
	require.NoError(t, err)

	err = f.svc.ApplyDecisions(view.RunID, []DecisionUpdate{
		{StudentID: f.amina.StudentID, Decision: models.DecisionRetain},
	})
	require.NoError(t, err)

	count, err := f.svc.ConfirmRun(view.RunID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	run, err := f.store.GetRun(view.RunID)
	require.NoError(t, err)
	assert.Equal(t, models.RunConfirmed, run.Status)
	assert.Nil(t, f.store.enrollmentFor(f.amina.StudentID, f.to.ID))
}
