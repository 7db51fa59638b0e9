package database

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/muneebabadar/result-management-system-kkamhs/app/models"
	"github.com/muneebabadar/result-management-system-kkamhs/app/services"
)

// PromotionStore is the Postgres implementation of services.PromotionStore.
// Uniqueness is enforced by the schema (ux_promotion_runs_one_draft,
// ux_enrollments_student_year, ux_run_students_run_student); this type only
// translates driver errors into the store's sentinel errors.
type PromotionStore struct {
	db *sql.DB
}

func NewPromotionStore(db *sql.DB) *PromotionStore {
	return &PromotionStore{db: db}
}

func (s *PromotionStore) CurrentYear() (*models.AcademicYear, error) {
	year, err := GetCurrentAcademicYear(s.db)
	if err == sql.ErrNoRows {
		return nil, services.ErrNotFound
	}
	return year, err
}

func (s *PromotionStore) NextYear(currentID int64) (*models.AcademicYear, error) {
	year, err := GetNextAcademicYear(s.db, currentID)
	if err == sql.ErrNoRows {
		return nil, services.ErrNotFound
	}
	return year, err
}

func (s *PromotionStore) CohortByID(classSectionID string) (*models.Cohort, error) {
	cohort, err := GetCohortByID(s.db, classSectionID)
	if err == sql.ErrNoRows {
		return nil, services.ErrNotFound
	}
	return cohort, err
}

// ActiveCohorts returns the distinct class sections with at least one
// active enrollment in the year, with labels, ordered by label.
func (s *PromotionStore) ActiveCohorts(yearID int64) ([]*models.Cohort, error) {
	query := `
		SELECT DISTINCT cs.id, cs.class_id, cs.section_id, c.name, sec.name
		FROM student_enrollments se
		JOIN class_sections cs ON cs.id = se.class_section_id
		JOIN classes c ON c.id = cs.class_id
		JOIN sections sec ON sec.id = cs.section_id
		WHERE se.academic_year_id = $1 AND se.status = 'active'
		ORDER BY c.name ASC, sec.name ASC
	`
	rows, err := s.db.Query(query, yearID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cohorts []*models.Cohort
	for rows.Next() {
		co := &models.Cohort{}
		if err := rows.Scan(&co.ClassSectionID, &co.ClassID, &co.SectionID, &co.ClassName, &co.SectionName); err != nil {
			return nil, err
		}
		co.Label = models.CohortLabel(co.ClassName, co.SectionName)
		cohorts = append(cohorts, co)
	}
	return cohorts, rows.Err()
}

func (s *PromotionStore) ActiveEnrollments(yearID int64, classSectionID string) ([]*models.EnrollmentRow, error) {
	return GetActiveEnrollments(s.db, yearID, classSectionID)
}

func (s *PromotionStore) OutcomesByStudent(yearID int64, studentIDs []string) (map[string]*models.StudentYearOutcome, error) {
	outcomes := make(map[string]*models.StudentYearOutcome, len(studentIDs))
	if len(studentIDs) == 0 {
		return outcomes, nil
	}

	query := `
		SELECT id, student_id, academic_year_id, class_section_id, overall_percentage, overall_grade, overall_result, created_at
		FROM student_year_outcomes
		WHERE academic_year_id = $1 AND student_id = ANY($2)
	`
	rows, err := s.db.Query(query, yearID, pq.Array(studentIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		o := &models.StudentYearOutcome{}
		if err := rows.Scan(&o.ID, &o.StudentID, &o.AcademicYearID, &o.ClassSectionID,
			&o.OverallPercentage, &o.OverallGrade, &o.OverallResult, &o.CreatedAt); err != nil {
			return nil, err
		}
		outcomes[o.StudentID] = o
	}
	return outcomes, rows.Err()
}

func (s *PromotionStore) FindDraftRun(fromYearID, toYearID int64, classSectionID string) (*models.PromotionRun, error) {
	run := &models.PromotionRun{}
	query := `
		SELECT id, from_academic_year_id, to_academic_year_id, class_section_id, status, confirmed_at, created_at, updated_at
		FROM promotion_runs
		WHERE from_academic_year_id = $1 AND to_academic_year_id = $2 AND class_section_id = $3 AND status = 'draft'
	`
	err := s.db.QueryRow(query, fromYearID, toYearID, classSectionID).Scan(
		&run.ID, &run.FromAcademicYearID, &run.ToAcademicYearID, &run.ClassSectionID,
		&run.Status, &run.ConfirmedAt, &run.CreatedAt, &run.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// CreateDraftRun inserts a draft run. When the partial unique index rejects
// the insert the caller gets ErrDuplicateDraft and is expected to re-read
// the winning row.
func (s *PromotionStore) CreateDraftRun(fromYearID, toYearID int64, classSectionID string) (*models.PromotionRun, error) {
	run := &models.PromotionRun{}
	query := `
		INSERT INTO promotion_runs (from_academic_year_id, to_academic_year_id, class_section_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, 'draft', NOW(), NOW())
		RETURNING id, from_academic_year_id, to_academic_year_id, class_section_id, status, confirmed_at, created_at, updated_at
	`
	err := s.db.QueryRow(query, fromYearID, toYearID, classSectionID).Scan(
		&run.ID, &run.FromAcademicYearID, &run.ToAcademicYearID, &run.ClassSectionID,
		&run.Status, &run.ConfirmedAt, &run.CreatedAt, &run.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err, "ux_promotion_runs_one_draft") {
			return nil, services.ErrDuplicateDraft
		}
		return nil, err
	}
	return run, nil
}

func (s *PromotionStore) GetRun(runID string) (*models.PromotionRun, error) {
	run := &models.PromotionRun{}
	query := `
		SELECT id, from_academic_year_id, to_academic_year_id, class_section_id, status, confirmed_at, created_at, updated_at
		FROM promotion_runs WHERE id = $1
	`
	err := s.db.QueryRow(query, runID).Scan(
		&run.ID, &run.FromAcademicYearID, &run.ToAcademicYearID, &run.ClassSectionID,
		&run.Status, &run.ConfirmedAt, &run.CreatedAt, &run.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// SetRunStatus transitions a run out of draft. The WHERE clause guards the
// precondition so a second confirmation attempt affects zero rows.
func (s *PromotionStore) SetRunStatus(runID string, status models.RunStatus, confirmedAt *time.Time) error {
	query := `UPDATE promotion_runs SET status = $1, confirmed_at = $2, updated_at = NOW()
			  WHERE id = $3 AND status = 'draft'`
	result, err := s.db.Exec(query, status, confirmedAt, runID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return services.ErrRunNotDraft
	}
	return nil
}

// InsertMissingRunStudents seeds decision rows, skipping any (run, student)
// pair that already exists so manual edits survive repeated seeding.
func (s *PromotionStore) InsertMissingRunStudents(rows []*models.PromotionRunStudent) error {
	query := `
		INSERT INTO promotion_run_students
			(promotion_run_id, student_id, from_enrollment_id, decision, eligibility_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT ON CONSTRAINT ux_run_students_run_student DO NOTHING
	`
	for _, r := range rows {
		if _, err := s.db.Exec(query, r.PromotionRunID, r.StudentID, r.FromEnrollmentID,
			r.Decision, r.EligibilityStatus); err != nil {
			return err
		}
	}
	return nil
}

func (s *PromotionStore) RunStudents(runID string) ([]*models.PromotionRunStudent, error) {
	query := `
		SELECT id, promotion_run_id, student_id, from_enrollment_id, decision, eligibility_status, created_at, updated_at
		FROM promotion_run_students
		WHERE promotion_run_id = $1
		ORDER BY student_id ASC
	`
	rows, err := s.db.Query(query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.PromotionRunStudent
	for rows.Next() {
		r := &models.PromotionRunStudent{}
		if err := rows.Scan(&r.ID, &r.PromotionRunID, &r.StudentID, &r.FromEnrollmentID,
			&r.Decision, &r.EligibilityStatus, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		students = append(students, r)
	}
	return students, rows.Err()
}

// UpdateDecision mutates one decision row. It never inserts; a zero-row
// update tells the caller the row is missing.
func (s *PromotionStore) UpdateDecision(runID, studentID string, decision models.Decision) (bool, error) {
	query := `UPDATE promotion_run_students SET decision = $1, updated_at = NOW()
			  WHERE promotion_run_id = $2 AND student_id = $3`
	result, err := s.db.Exec(query, decision, runID, studentID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (s *PromotionStore) PromotionPathFor(fromYearID, toYearID int64, fromClassSectionID string) (*models.PromotionPath, error) {
	p := &models.PromotionPath{}
	query := `
		SELECT id, from_academic_year_id, to_academic_year_id, from_class_section_id, to_class_section_id, is_active, created_at
		FROM promotion_paths
		WHERE from_academic_year_id = $1 AND to_academic_year_id = $2 AND from_class_section_id = $3 AND is_active = true
	`
	err := s.db.QueryRow(query, fromYearID, toYearID, fromClassSectionID).Scan(
		&p.ID, &p.FromAcademicYearID, &p.ToAcademicYearID, &p.FromClassSectionID,
		&p.ToClassSectionID, &p.IsActive, &p.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// UpsertEnrollment inserts or redirects the enrollment keyed on
// (student, year). Re-running a partially failed confirmation hits the
// conflict branch and converges instead of duplicating rows.
func (s *PromotionStore) UpsertEnrollment(studentID string, yearID int64, classSectionID string) error {
	query := `
		INSERT INTO student_enrollments (student_id, academic_year_id, class_section_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, 'active', NOW(), NOW())
		ON CONFLICT ON CONSTRAINT ux_enrollments_student_year
		DO UPDATE SET class_section_id = EXCLUDED.class_section_id, status = 'active', updated_at = NOW()
	`
	_, err := s.db.Exec(query, studentID, yearID, classSectionID)
	return err
}

func (s *PromotionStore) MarkEnrollmentsPromoted(enrollmentIDs []string) error {
	if len(enrollmentIDs) == 0 {
		return nil
	}
	query := `UPDATE student_enrollments SET status = 'promoted', updated_at = NOW() WHERE id = ANY($1)`
	_, err := s.db.Exec(query, pq.Array(enrollmentIDs))
	return err
}

func (s *PromotionStore) InsertNotification(n *models.Notification) error {
	return CreateNotification(s.db, n)
}
