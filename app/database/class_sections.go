package database

import (
	"database/sql"

	"github.com/muneebabadar/result-management-system-kkamhs/app/models"
)

// GetAllClasses retrieves all classes ordered by name
func GetAllClasses(db *sql.DB) ([]models.Class, error) {
	rows, err := db.Query(`SELECT id, name, created_at FROM classes ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []models.Class
	for rows.Next() {
		var c models.Class
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// CreateClass inserts a new class
func CreateClass(db *sql.DB, c *models.Class) error {
	return db.QueryRow(`INSERT INTO classes (name, created_at) VALUES ($1, NOW()) RETURNING id, created_at`,
		c.Name).Scan(&c.ID, &c.CreatedAt)
}

// GetAllSections retrieves all sections ordered by name
func GetAllSections(db *sql.DB) ([]models.Section, error) {
	rows, err := db.Query(`SELECT id, name, created_at FROM sections ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []models.Section
	for rows.Next() {
		var s models.Section
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt); err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	return sections, rows.Err()
}

// CreateSection inserts a new section
func CreateSection(db *sql.DB, s *models.Section) error {
	return db.QueryRow(`INSERT INTO sections (name, created_at) VALUES ($1, NOW()) RETURNING id, created_at`,
		s.Name).Scan(&s.ID, &s.CreatedAt)
}

// CreateClassSection pairs a class with a section
func CreateClassSection(db *sql.DB, cs *models.ClassSection) error {
	query := `INSERT INTO class_sections (class_id, section_id, created_at)
			  VALUES ($1, $2, NOW()) RETURNING id, created_at`
	return db.QueryRow(query, cs.ClassID, cs.SectionID).Scan(&cs.ID, &cs.CreatedAt)
}

// GetClassSections retrieves all class sections with joined names, assigned
// teacher and the active student count for the given academic year
func GetClassSections(db *sql.DB, currentYearID int64) ([]models.Cohort, error) {
	query := `
		SELECT cs.id, cs.class_id, cs.section_id, c.name, s.name,
			   cs.class_teacher_id, COALESCE(u.name, ''),
			   COUNT(se.id) FILTER (WHERE se.academic_year_id = $1 AND se.status = 'active')
		FROM class_sections cs
		JOIN classes c ON c.id = cs.class_id
		JOIN sections s ON s.id = cs.section_id
		LEFT JOIN users u ON u.id = cs.class_teacher_id
		LEFT JOIN student_enrollments se ON se.class_section_id = cs.id
		GROUP BY cs.id, cs.class_id, cs.section_id, c.name, s.name, cs.class_teacher_id, u.name
		ORDER BY c.name ASC, s.name ASC
	`
	rows, err := db.Query(query, currentYearID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cohorts []models.Cohort
	for rows.Next() {
		var co models.Cohort
		if err := rows.Scan(&co.ClassSectionID, &co.ClassID, &co.SectionID, &co.ClassName,
			&co.SectionName, &co.TeacherID, &co.TeacherName, &co.StudentCount); err != nil {
			return nil, err
		}
		co.Label = models.CohortLabel(co.ClassName, co.SectionName)
		cohorts = append(cohorts, co)
	}
	return cohorts, rows.Err()
}

// GetCohortByID retrieves one class section with joined names and label
func GetCohortByID(db *sql.DB, classSectionID string) (*models.Cohort, error) {
	co := &models.Cohort{}
	query := `
		SELECT cs.id, cs.class_id, cs.section_id, c.name, s.name, cs.class_teacher_id, COALESCE(u.name, '')
		FROM class_sections cs
		JOIN classes c ON c.id = cs.class_id
		JOIN sections s ON s.id = cs.section_id
		LEFT JOIN users u ON u.id = cs.class_teacher_id
		WHERE cs.id = $1
	`
	err := db.QueryRow(query, classSectionID).Scan(&co.ClassSectionID, &co.ClassID, &co.SectionID,
		&co.ClassName, &co.SectionName, &co.TeacherID, &co.TeacherName)
	if err != nil {
		return nil, err
	}
	co.Label = models.CohortLabel(co.ClassName, co.SectionName)
	return co, nil
}

// AssignClassTeacher sets or clears the class teacher of a section
func AssignClassTeacher(db *sql.DB, classSectionID string, teacherID *string) error {
	result, err := db.Exec(`UPDATE class_sections SET class_teacher_id = $1 WHERE id = $2`,
		teacherID, classSectionID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountEnrollmentsForClassSection counts enrollments against a class
// section in a year. Used as a deletion guard: a cohort with current-year
// enrollments must not be removed.
func CountEnrollmentsForClassSection(db *sql.DB, classSectionID string, yearID int64) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM student_enrollments WHERE class_section_id = $1 AND academic_year_id = $2`,
		classSectionID, yearID).Scan(&count)
	return count, err
}

// DeleteClassSection removes a class section record
func DeleteClassSection(db *sql.DB, classSectionID string) error {
	result, err := db.Exec(`DELETE FROM class_sections WHERE id = $1`, classSectionID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountClasses counts all classes
func CountClasses(db *sql.DB) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM classes`).Scan(&count)
	return count, err
}
