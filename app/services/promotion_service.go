package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/muneebabadar/result-management-system-kkamhs/app/models"
)

// Workflow errors surfaced to handlers. Precondition errors report missing
// configuration verbatim; conflict errors tell the caller to reload state.
var (
	ErrNoCurrentYear      = errors.New("no current academic year found")
	ErrNoNextYear         = errors.New("no next academic year found, create it first")
	ErrCohortNotFound     = errors.New("class section not found")
	ErrRunNotFound        = errors.New("promotion run not found")
	ErrDecisionRowMissing = errors.New("decision row not found for student, reload the run and try again")
	ErrInvalidDecision    = errors.New("decision must be retain, promote or conditional_promote")
	ErrNoPromotionPath    = errors.New("no promotion path defined for this cohort and year pair, create it in promotion paths")
)

// PartialConfirmError reports a confirmation that wrote next-year
// enrollments but failed at a later step. The run is still draft, no data
// was corrupted, and re-running confirmation is safe: the enrollment
// upserts are idempotent.
type PartialConfirmError struct {
	Stage string // "mark_source" or "finalize"
	Err   error
}

func (e *PartialConfirmError) Error() string {
	return fmt.Sprintf("confirmation incomplete at %s (next-year enrollments already written, safe to retry): %v", e.Stage, e.Err)
}

func (e *PartialConfirmError) Unwrap() error { return e.Err }

// DecisionUpdate is one operator edit to a student's decision.
type DecisionUpdate struct {
	StudentID string          `json:"studentId" validate:"required"`
	Decision  models.Decision `json:"decision" validate:"required,oneof=retain promote conditional_promote"`
}

// PromotionService runs the cohort promotion workflow: find-or-create a
// draft run, seed and edit decisions, confirm into the next year. All
// year resolution is explicit; nothing here reads ambient global state.
type PromotionService struct {
	store PromotionStore
	now   func() time.Time
}

func NewPromotionService(store PromotionStore) *PromotionService {
	return &PromotionService{store: store, now: time.Now}
}

// ListCohorts returns the cohorts with at least one active enrollment in
// the current academic year, the candidates for a promotion run.
func (s *PromotionService) ListCohorts() ([]*models.Cohort, error) {
	current, err := s.currentYear()
	if err != nil {
		return nil, err
	}
	return s.store.ActiveCohorts(current.ID)
}

// OpenRun finds or creates the draft run for one cohort, seeds default
// decisions for any student not yet in the run, and returns the screen
// view. Calling it again for the same cohort returns the same run and
// never disturbs decisions the operator already edited.
func (s *PromotionService) OpenRun(classSectionID string) (*models.RunView, error) {
	current, err := s.currentYear()
	if err != nil {
		return nil, err
	}
	next, err := s.nextYear(current.ID)
	if err != nil {
		return nil, err
	}

	cohort, err := s.store.CohortByID(classSectionID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrCohortNotFound
		}
		return nil, err
	}

	run, err := s.findOrCreateDraftRun(current.ID, next.ID, classSectionID)
	if err != nil {
		return nil, err
	}

	enrollments, err := s.store.ActiveEnrollments(current.ID, classSectionID)
	if err != nil {
		return nil, err
	}

	outcomes, err := s.outcomesFor(current.ID, enrollments)
	if err != nil {
		return nil, err
	}

	if err := s.seedDecisions(run, enrollments, outcomes); err != nil {
		return nil, err
	}

	rows, err := s.buildRows(run.ID, cohort.Label, enrollments)
	if err != nil {
		return nil, err
	}

	return &models.RunView{
		RunID:          run.ID,
		FromYear:       current,
		ToYear:         next,
		ClassSectionID: classSectionID,
		ClassLabel:     cohort.Label,
		Students:       rows,
	}, nil
}

// ApplyDecisions mutates decision rows of a draft run. Every update must
// target an existing row; a missing row signals a seeding inconsistency
// and aborts with ErrDecisionRowMissing rather than silently inserting.
func (s *PromotionService) ApplyDecisions(runID string, updates []DecisionUpdate) error {
	run, err := s.store.GetRun(runID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrRunNotFound
		}
		return err
	}
	if run.Status != models.RunDraft {
		return ErrRunNotDraft
	}

	for _, u := range updates {
		if !u.Decision.Valid() {
			return ErrInvalidDecision
		}
		updated, err := s.store.UpdateDecision(runID, u.StudentID, u.Decision)
		if err != nil {
			return err
		}
		if !updated {
			return ErrDecisionRowMissing
		}
	}
	return nil
}

// ConfirmRun commits a draft run: resolves the promotion path, upserts
// next-year enrollments for every promoted student, marks their source
// enrollments promoted and finalises the run. Returns the promoted count.
//
// Write ordering matters: next-year enrollments are fully written before
// any source enrollment is touched, so a failure midway leaves the run
// draft and retryable without corrupting either year.
func (s *PromotionService) ConfirmRun(runID string) (int, error) {
	run, err := s.store.GetRun(runID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, ErrRunNotFound
		}
		return 0, err
	}
	if run.Status != models.RunDraft {
		return 0, ErrRunNotDraft
	}

	path, err := s.store.PromotionPathFor(run.FromAcademicYearID, run.ToAcademicYearID, run.ClassSectionID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, ErrNoPromotionPath
		}
		return 0, err
	}

	rows, err := s.store.RunStudents(runID)
	if err != nil {
		return 0, err
	}

	var promoted []*models.PromotionRunStudent
	for _, r := range rows {
		if r.Decision.Promotes() {
			promoted = append(promoted, r)
		}
	}

	// Step 1: next-year enrollments, idempotent on (student, year).
	for _, p := range promoted {
		if err := s.store.UpsertEnrollment(p.StudentID, run.ToAcademicYearID, path.ToClassSectionID); err != nil {
			return 0, fmt.Errorf("failed creating next-year enrollments: %w", err)
		}
	}

	// Step 2: flip source enrollments to promoted.
	if len(promoted) > 0 {
		ids := make([]string, len(promoted))
		for i, p := range promoted {
			ids[i] = p.FromEnrollmentID
		}
		if err := s.store.MarkEnrollmentsPromoted(ids); err != nil {
			return 0, &PartialConfirmError{Stage: "mark_source", Err: err}
		}
	}

	// Step 3: terminal transition.
	confirmedAt := s.now()
	if err := s.store.SetRunStatus(runID, models.RunConfirmed, &confirmedAt); err != nil {
		if errors.Is(err, ErrRunNotDraft) {
			return 0, ErrRunNotDraft
		}
		return 0, &PartialConfirmError{Stage: "finalize", Err: err}
	}

	// Best effort, never rolls back the confirmation.
	entityID := run.ID
	if err := s.store.InsertNotification(&models.Notification{
		Title:       "Promotions Confirmed",
		Description: fmt.Sprintf("Promotion run %s confirmed, %d students promoted.", run.ID, len(promoted)),
		Type:        models.NotificationPromotion,
		EntityID:    &entityID,
	}); err != nil {
		log.Printf("promotion: notification insert failed for run %s: %v", run.ID, err)
	}

	return len(promoted), nil
}

func (s *PromotionService) currentYear() (*models.AcademicYear, error) {
	year, err := s.store.CurrentYear()
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNoCurrentYear
		}
		return nil, err
	}
	return year, nil
}

// nextYear resolves the promotion target year. Only a year with an ID
// strictly greater than the current one qualifies; when none exists the
// caller gets ErrNoNextYear instead of a silently wrong target.
func (s *PromotionService) nextYear(currentID int64) (*models.AcademicYear, error) {
	year, err := s.store.NextYear(currentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNoNextYear
		}
		return nil, err
	}
	return year, nil
}

// findOrCreateDraftRun guarantees exactly one draft run per cohort and
// year pair. A uniqueness violation on insert means another request got
// there first, so the existing row is re-read and returned.
func (s *PromotionService) findOrCreateDraftRun(fromYearID, toYearID int64, classSectionID string) (*models.PromotionRun, error) {
	run, err := s.store.FindDraftRun(fromYearID, toYearID, classSectionID)
	if err == nil {
		return run, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	run, err = s.store.CreateDraftRun(fromYearID, toYearID, classSectionID)
	if err == nil {
		return run, nil
	}
	if !errors.Is(err, ErrDuplicateDraft) {
		return nil, err
	}

	return s.store.FindDraftRun(fromYearID, toYearID, classSectionID)
}

func (s *PromotionService) outcomesFor(yearID int64, enrollments []*models.EnrollmentRow) (map[string]*models.StudentYearOutcome, error) {
	if len(enrollments) == 0 {
		return map[string]*models.StudentYearOutcome{}, nil
	}
	ids := make([]string, len(enrollments))
	for i, e := range enrollments {
		ids[i] = e.StudentID
	}
	return s.store.OutcomesByStudent(yearID, ids)
}

// seedDecisions inserts a decision row for every enrollment not yet in the
// run. The eligibility status is frozen from the prior-year outcome and
// the default decision is promote on pass, retain otherwise. Rows that
// already exist are left alone, so seeding is idempotent.
func (s *PromotionService) seedDecisions(run *models.PromotionRun, enrollments []*models.EnrollmentRow, outcomes map[string]*models.StudentYearOutcome) error {
	if len(enrollments) == 0 {
		return nil
	}

	rows := make([]*models.PromotionRunStudent, 0, len(enrollments))
	for _, e := range enrollments {
		var eligibility *models.OverallResult
		decision := models.DecisionRetain
		if o, ok := outcomes[e.StudentID]; ok {
			result := o.OverallResult
			eligibility = &result
			if result == models.ResultPass {
				decision = models.DecisionPromote
			}
		}
		rows = append(rows, &models.PromotionRunStudent{
			PromotionRunID:    run.ID,
			StudentID:         e.StudentID,
			FromEnrollmentID:  e.EnrollmentID,
			Decision:          decision,
			EligibilityStatus: eligibility,
		})
	}
	return s.store.InsertMissingRunStudents(rows)
}

// buildRows joins the run's decision rows back onto the enrollment list,
// preserving its student-ID ordering, and derives the display fields.
func (s *PromotionService) buildRows(runID, label string, enrollments []*models.EnrollmentRow) ([]*models.PromotionRow, error) {
	decisions, err := s.store.RunStudents(runID)
	if err != nil {
		return nil, err
	}
	byStudent := make(map[string]*models.PromotionRunStudent, len(decisions))
	for _, d := range decisions {
		byStudent[d.StudentID] = d
	}

	rows := make([]*models.PromotionRow, 0, len(enrollments))
	for _, e := range enrollments {
		decision := models.DecisionRetain
		var eligibility *models.OverallResult
		if d, ok := byStudent[e.StudentID]; ok {
			decision = d.Decision
			eligibility = d.EligibilityStatus
		}
		rows = append(rows, &models.PromotionRow{
			StudentID:       e.StudentID,
			EnrollmentID:    e.EnrollmentID,
			Name:            e.StudentName,
			ClassLabel:      label,
			OverallResult:   overallResultLabel(eligibility),
			Decision:        decision,
			PromotionStatus: promotionStatusLabel(decision),
		})
	}
	return rows, nil
}

func overallResultLabel(eligibility *models.OverallResult) string {
	if eligibility != nil && *eligibility == models.ResultPass {
		return "Pass"
	}
	return "Fail"
}

func promotionStatusLabel(d models.Decision) string {
	if d.Promotes() {
		return "Promoted"
	}
	return "Not Promoted"
}
