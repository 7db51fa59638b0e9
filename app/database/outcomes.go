package database

import (
	"database/sql"

	"github.com/muneebabadar/result-management-system-kkamhs/app/models"
)

// GetOutcomeForStudent retrieves a student's overall result for a year
func GetOutcomeForStudent(db *sql.DB, yearID int64, studentID string) (*models.StudentYearOutcome, error) {
	o := &models.StudentYearOutcome{}
	query := `SELECT id, student_id, academic_year_id, class_section_id, overall_percentage, overall_grade, overall_result, created_at
			  FROM student_year_outcomes WHERE academic_year_id = $1 AND student_id = $2`
	err := db.QueryRow(query, yearID, studentID).Scan(&o.ID, &o.StudentID, &o.AcademicYearID,
		&o.ClassSectionID, &o.OverallPercentage, &o.OverallGrade, &o.OverallResult, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// GetOutcomesForYear retrieves all outcomes recorded for a year
func GetOutcomesForYear(db *sql.DB, yearID int64) ([]models.StudentYearOutcome, error) {
	query := `SELECT id, student_id, academic_year_id, class_section_id, overall_percentage, overall_grade, overall_result, created_at
			  FROM student_year_outcomes WHERE academic_year_id = $1`
	return scanOutcomes(db.Query(query, yearID))
}

// GetOutcomesForCohort retrieves the outcomes of one cohort in a year
func GetOutcomesForCohort(db *sql.DB, yearID int64, classSectionID string) ([]models.StudentYearOutcome, error) {
	query := `SELECT id, student_id, academic_year_id, class_section_id, overall_percentage, overall_grade, overall_result, created_at
			  FROM student_year_outcomes WHERE academic_year_id = $1 AND class_section_id = $2`
	return scanOutcomes(db.Query(query, yearID, classSectionID))
}

// SaveOutcome upserts a student's overall result keyed on (student, year)
func SaveOutcome(db *sql.DB, o *models.StudentYearOutcome) error {
	query := `
		INSERT INTO student_year_outcomes (student_id, academic_year_id, class_section_id, overall_percentage, overall_grade, overall_result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (student_id, academic_year_id)
		DO UPDATE SET class_section_id = EXCLUDED.class_section_id,
					  overall_percentage = EXCLUDED.overall_percentage,
					  overall_grade = EXCLUDED.overall_grade,
					  overall_result = EXCLUDED.overall_result
	`
	_, err := db.Exec(query, o.StudentID, o.AcademicYearID, o.ClassSectionID,
		o.OverallPercentage, o.OverallGrade, o.OverallResult)
	return err
}

func scanOutcomes(rows *sql.Rows, err error) ([]models.StudentYearOutcome, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outcomes []models.StudentYearOutcome
	for rows.Next() {
		var o models.StudentYearOutcome
		if err := rows.Scan(&o.ID, &o.StudentID, &o.AcademicYearID, &o.ClassSectionID,
			&o.OverallPercentage, &o.OverallGrade, &o.OverallResult, &o.CreatedAt); err != nil {
			return nil, err
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}
