package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/muneebabadar/result-management-system-kkamhs/app/models"
)

// memEnrollment mirrors one student_enrollments row.
type memEnrollment struct {
	ID             string
	StudentID      string
	StudentName    string
	YearID         int64
	ClassSectionID string
	Status         models.EnrollmentStatus
}

// memStore is an in-memory PromotionStore enforcing the same natural-key
// uniqueness the Postgres schema does: one draft run per cohort and year
// pair, one decision row per (run, student), one enrollment per
// (student, year).
type memStore struct {
	mu sync.Mutex

	years       []*models.AcademicYear
	cohorts     map[string]*models.Cohort
	enrollments []*memEnrollment
	outcomes    map[string]*models.StudentYearOutcome // studentID|yearID
	runs        map[string]*models.PromotionRun
	runStudents map[string]*models.PromotionRunStudent // runID|studentID
	paths       []*models.PromotionPath
	notes       []*models.Notification

	failMarkPromoted bool
	failSetStatus    bool
}

func newMemStore() *memStore {
	return &memStore{
		cohorts:     make(map[string]*models.Cohort),
		outcomes:    make(map[string]*models.StudentYearOutcome),
		runs:        make(map[string]*models.PromotionRun),
		runStudents: make(map[string]*models.PromotionRunStudent),
	}
}

func outcomeKey(studentID string, yearID int64) string {
	return fmt.Sprintf("%s|%d", studentID, yearID)
}

func decisionKey(runID, studentID string) string {
	return runID + "|" + studentID
}

func (m *memStore) addYear(id int64, name string, current bool) *models.AcademicYear {
	y := &models.AcademicYear{ID: id, Name: name, IsCurrent: current}
	m.years = append(m.years, y)
	return y
}

func (m *memStore) addCohort(className, sectionName string) *models.Cohort {
	c := &models.Cohort{
		ClassSectionID: uuid.NewString(),
		ClassName:      className,
		SectionName:    sectionName,
		Label:          models.CohortLabel(className, sectionName),
	}
	m.cohorts[c.ClassSectionID] = c
	return c
}

func (m *memStore) addEnrollment(studentID, name string, yearID int64, classSectionID string) *memEnrollment {
	e := &memEnrollment{
		ID:             uuid.NewString(),
		StudentID:      studentID,
		StudentName:    name,
		YearID:         yearID,
		ClassSectionID: classSectionID,
		Status:         models.EnrollmentActive,
	}
	m.enrollments = append(m.enrollments, e)
	return e
}

func (m *memStore) addOutcome(studentID string, yearID int64, result models.OverallResult) {
	m.outcomes[outcomeKey(studentID, yearID)] = &models.StudentYearOutcome{
		StudentID:      studentID,
		AcademicYearID: yearID,
		OverallResult:  result,
	}
}

func (m *memStore) addPath(fromYearID, toYearID int64, fromCS, toCS string) {
	m.paths = append(m.paths, &models.PromotionPath{
		ID:                 uuid.NewString(),
		FromAcademicYearID: fromYearID,
		ToAcademicYearID:   toYearID,
		FromClassSectionID: fromCS,
		ToClassSectionID:   toCS,
		IsActive:           true,
	})
}

func (m *memStore) CurrentYear() (*models.AcademicYear, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, y := range m.years {
		if y.IsCurrent {
			return y, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) NextYear(currentID int64) (*models.AcademicYear, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var next *models.AcademicYear
	for _, y := range m.years {
		if y.ID > currentID && (next == nil || y.ID < next.ID) {
			next = y
		}
	}
	if next == nil {
		return nil, ErrNotFound
	}
	return next, nil
}

func (m *memStore) CohortByID(classSectionID string) (*models.Cohort, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cohorts[classSectionID]
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

func (m *memStore) ActiveCohorts(yearID int64) ([]*models.Cohort, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := make(map[string]bool)
	var cohorts []*models.Cohort
	for _, e := range m.enrollments {
		if e.YearID == yearID && e.Status == models.EnrollmentActive && !seen[e.ClassSectionID] {
			seen[e.ClassSectionID] = true
			if c, ok := m.cohorts[e.ClassSectionID]; ok {
				cohorts = append(cohorts, c)
			}
		}
	}
	return cohorts, nil
}

func (m *memStore) ActiveEnrollments(yearID int64, classSectionID string) ([]*models.EnrollmentRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var rows []*models.EnrollmentRow
	for _, e := range m.enrollments {
		if e.YearID == yearID && e.ClassSectionID == classSectionID && e.Status == models.EnrollmentActive {
			rows = append(rows, &models.EnrollmentRow{
				EnrollmentID: e.ID,
				StudentID:    e.StudentID,
				StudentName:  e.StudentName,
			})
		}
	}
	for i := 0; i < len(rows); i++ {
		for j := i + 1; j < len(rows); j++ {
			if rows[j].StudentID < rows[i].StudentID {
				rows[i], rows[j] = rows[j], rows[i]
			}
		}
	}
	return rows, nil
}

func (m *memStore) OutcomesByStudent(yearID int64, studentIDs []string) (map[string]*models.StudentYearOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make(map[string]*models.StudentYearOutcome)
	for _, id := range studentIDs {
		if o, ok := m.outcomes[outcomeKey(id, yearID)]; ok {
			result[id] = o
		}
	}
	return result, nil
}

func (m *memStore) FindDraftRun(fromYearID, toYearID int64, classSectionID string) (*models.PromotionRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findDraftLocked(fromYearID, toYearID, classSectionID)
}

func (m *memStore) findDraftLocked(fromYearID, toYearID int64, classSectionID string) (*models.PromotionRun, error) {
	for _, r := range m.runs {
		if r.FromAcademicYearID == fromYearID && r.ToAcademicYearID == toYearID &&
			r.ClassSectionID == classSectionID && r.Status == models.RunDraft {
			return r, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) CreateDraftRun(fromYearID, toYearID int64, classSectionID string) (*models.PromotionRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.findDraftLocked(fromYearID, toYearID, classSectionID); err == nil {
		return nil, ErrDuplicateDraft
	}
	run := &models.PromotionRun{
		ID:                 uuid.NewString(),
		FromAcademicYearID: fromYearID,
		ToAcademicYearID:   toYearID,
		ClassSectionID:     classSectionID,
		Status:             models.RunDraft,
		CreatedAt:          time.Now(),
	}
	m.runs[run.ID] = run
	return run, nil
}

func (m *memStore) GetRun(runID string) (*models.PromotionRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.runs[runID]
	if !ok {
		return nil, ErrNotFound
	}
	return r, nil
}

func (m *memStore) SetRunStatus(runID string, status models.RunStatus, confirmedAt *time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSetStatus {
		return fmt.Errorf("injected status failure")
	}
	r, ok := m.runs[runID]
	if !ok || r.Status != models.RunDraft {
		return ErrRunNotDraft
	}
	r.Status = status
	r.ConfirmedAt = confirmedAt
	return nil
}

func (m *memStore) InsertMissingRunStudents(rows []*models.PromotionRunStudent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range rows {
		key := decisionKey(row.PromotionRunID, row.StudentID)
		if _, exists := m.runStudents[key]; exists {
			continue
		}
		stored := *row
		stored.ID = uuid.NewString()
		m.runStudents[key] = &stored
	}
	return nil
}

func (m *memStore) RunStudents(runID string) ([]*models.PromotionRunStudent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var rows []*models.PromotionRunStudent
	for _, r := range m.runStudents {
		if r.PromotionRunID == runID {
			rows = append(rows, r)
		}
	}
	return rows, nil
}

func (m *memStore) UpdateDecision(runID, studentID string, decision models.Decision) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.runStudents[decisionKey(runID, studentID)]
	if !ok {
		return false, nil
	}
	r.Decision = decision
	return true, nil
}

func (m *memStore) PromotionPathFor(fromYearID, toYearID int64, fromClassSectionID string) (*models.PromotionPath, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.paths {
		if p.FromAcademicYearID == fromYearID && p.ToAcademicYearID == toYearID &&
			p.FromClassSectionID == fromClassSectionID && p.IsActive {
			return p, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) UpsertEnrollment(studentID string, yearID int64, classSectionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.enrollments {
		if e.StudentID == studentID && e.YearID == yearID {
			e.ClassSectionID = classSectionID
			e.Status = models.EnrollmentActive
			return nil
		}
	}
	m.enrollments = append(m.enrollments, &memEnrollment{
		ID:             uuid.NewString(),
		StudentID:      studentID,
		YearID:         yearID,
		ClassSectionID: classSectionID,
		Status:         models.EnrollmentActive,
	})
	return nil
}

func (m *memStore) MarkEnrollmentsPromoted(enrollmentIDs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failMarkPromoted {
		return fmt.Errorf("injected mark failure")
	}
	ids := make(map[string]bool, len(enrollmentIDs))
	for _, id := range enrollmentIDs {
		ids[id] = true
	}
	for _, e := range m.enrollments {
		if ids[e.ID] {
			e.Status = models.EnrollmentPromoted
		}
	}
	return nil
}

func (m *memStore) InsertNotification(n *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notes = append(m.notes, n)
	return nil
}

// enrollmentFor returns the enrollment of a student in a year, nil when
// none exists.
func (m *memStore) enrollmentFor(studentID string, yearID int64) *memEnrollment {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.enrollments {
		if e.StudentID == studentID && e.YearID == yearID {
			return e
		}
	}
	return nil
}

func (m *memStore) runCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.runs)
}
