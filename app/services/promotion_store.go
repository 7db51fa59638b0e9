package services

import (
	"errors"
	"time"

	"github.com/muneebabadar/result-management-system-kkamhs/app/models"
)

// Storage-level sentinel errors. The Postgres implementation maps driver
// errors onto these so the service never inspects pq error codes itself.
var (
	// ErrNotFound is returned by point lookups when no row matches.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateDraft is returned by CreateDraftRun when the partial
	// unique index on draft runs rejects the insert, i.e. another caller
	// created the draft first.
	ErrDuplicateDraft = errors.New("draft run already exists for this cohort and year pair")

	// ErrRunNotDraft is returned by SetRunStatus when the run has already
	// left the draft state. Confirmation and decision edits treat it as a
	// conflict, never as something to retry blindly.
	ErrRunNotDraft = errors.New("promotion run is not in draft state")
)

// PromotionStore is everything the promotion workflow needs from the
// backing database. Upserts are expressed as explicit insert-or-update by
// natural key so the idempotence guarantees hold for any implementation,
// not just Postgres ON CONFLICT.
type PromotionStore interface {
	// Academic calendar
	CurrentYear() (*models.AcademicYear, error)
	// NextYear returns the year with the smallest ID greater than
	// currentID, or ErrNotFound when no later year exists.
	NextYear(currentID int64) (*models.AcademicYear, error)

	// Cohorts and enrollments
	CohortByID(classSectionID string) (*models.Cohort, error)
	ActiveCohorts(yearID int64) ([]*models.Cohort, error)
	// ActiveEnrollments lists active enrollments for a cohort in a year,
	// ordered by student ID ascending. The ordering is part of the
	// contract; seeding and report rendering depend on it.
	ActiveEnrollments(yearID int64, classSectionID string) ([]*models.EnrollmentRow, error)

	// Prior-year outcomes, keyed by student ID. Students without an
	// outcome row are simply absent from the map.
	OutcomesByStudent(yearID int64, studentIDs []string) (map[string]*models.StudentYearOutcome, error)

	// Promotion runs
	FindDraftRun(fromYearID, toYearID int64, classSectionID string) (*models.PromotionRun, error)
	CreateDraftRun(fromYearID, toYearID int64, classSectionID string) (*models.PromotionRun, error)
	GetRun(runID string) (*models.PromotionRun, error)
	// SetRunStatus performs the terminal transition out of draft. It must
	// return ErrRunNotDraft when the run is no longer draft.
	SetRunStatus(runID string, status models.RunStatus, confirmedAt *time.Time) error

	// Decision rows
	// InsertMissingRunStudents inserts rows keyed on (run, student) and
	// silently skips rows that already exist, so re-seeding never
	// overwrites a manual decision.
	InsertMissingRunStudents(rows []*models.PromotionRunStudent) error
	RunStudents(runID string) ([]*models.PromotionRunStudent, error)
	// UpdateDecision mutates one existing decision row. It returns false
	// when no row exists for the student; it must not insert one.
	UpdateDecision(runID, studentID string, decision models.Decision) (bool, error)

	// Confirmation collaborators
	PromotionPathFor(fromYearID, toYearID int64, fromClassSectionID string) (*models.PromotionPath, error)
	// UpsertEnrollment inserts or updates the enrollment keyed on
	// (student, year), pointing it at classSectionID with active status.
	UpsertEnrollment(studentID string, yearID int64, classSectionID string) error
	MarkEnrollmentsPromoted(enrollmentIDs []string) error

	// Notification sink, fire and forget.
	InsertNotification(n *models.Notification) error
}
