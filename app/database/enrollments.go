package database

import (
	"database/sql"

	"github.com/muneebabadar/result-management-system-kkamhs/app/models"
)

// CreateEnrollment enrolls a student into a class section for a year
func CreateEnrollment(db *sql.DB, e *models.StudentEnrollment) error {
	query := `INSERT INTO student_enrollments (student_id, academic_year_id, class_section_id, roll_number, status, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, 'active', NOW(), NOW())
			  RETURNING id, status, created_at, updated_at`
	return db.QueryRow(query, e.StudentID, e.AcademicYearID, e.ClassSectionID, e.RollNumber).
		Scan(&e.ID, &e.Status, &e.CreatedAt, &e.UpdatedAt)
}

// GetActiveEnrollments lists active enrollments for a cohort in a year
// with the student's name, ordered by student id ascending. Seeding and
// report rendering rely on this ordering being stable.
func GetActiveEnrollments(db *sql.DB, yearID int64, classSectionID string) ([]*models.EnrollmentRow, error) {
	query := `
		SELECT se.id, se.student_id, st.full_name, se.roll_number
		FROM student_enrollments se
		JOIN students st ON st.id = se.student_id
		WHERE se.academic_year_id = $1 AND se.class_section_id = $2 AND se.status = 'active'
		ORDER BY se.student_id ASC
	`
	rows, err := db.Query(query, yearID, classSectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []*models.EnrollmentRow
	for rows.Next() {
		e := &models.EnrollmentRow{}
		if err := rows.Scan(&e.EnrollmentID, &e.StudentID, &e.StudentName, &e.RollNumber); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

// GetEnrollmentForStudent returns a student's active enrollment in a year
func GetEnrollmentForStudent(db *sql.DB, yearID int64, studentID string) (*models.StudentEnrollment, error) {
	e := &models.StudentEnrollment{}
	query := `SELECT id, student_id, academic_year_id, class_section_id, roll_number, status, created_at, updated_at
			  FROM student_enrollments
			  WHERE academic_year_id = $1 AND student_id = $2 AND status = 'active'`
	err := db.QueryRow(query, yearID, studentID).Scan(&e.ID, &e.StudentID, &e.AcademicYearID,
		&e.ClassSectionID, &e.RollNumber, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// CountActiveEnrollments counts active enrollments in a year
func CountActiveEnrollments(db *sql.DB, yearID int64) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM student_enrollments WHERE academic_year_id = $1 AND status = 'active'`,
		yearID).Scan(&count)
	return count, err
}
