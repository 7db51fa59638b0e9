package database

import (
	"database/sql"

	"github.com/muneebabadar/result-management-system-kkamhs/app/models"
)

// GetGradingWeights retrieves every class with its grading config, falling
// back to the even 25/25/25/25 split for classes without a saved row
func GetGradingWeights(db *sql.DB) ([]models.GradingWeights, error) {
	query := `
		SELECT c.id, c.name,
			   COALESCE(g.weight_1, 25), COALESCE(g.weight_2, 25),
			   COALESCE(g.weight_mid, 25), COALESCE(g.weight_final, 25)
		FROM classes c
		LEFT JOIN class_grading_config g ON g.class_id = c.id
		ORDER BY c.name ASC
	`
	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var configs []models.GradingWeights
	for rows.Next() {
		var w models.GradingWeights
		if err := rows.Scan(&w.ClassID, &w.ClassName, &w.Weight1, &w.Weight2, &w.WeightMid, &w.WeightFinal); err != nil {
			return nil, err
		}
		configs = append(configs, w)
	}
	return configs, rows.Err()
}

// GetGradingWeightsForClass retrieves one class's weights, defaulting when
// no config row exists
func GetGradingWeightsForClass(db *sql.DB, classID string) (*models.GradingWeights, error) {
	w := models.DefaultGradingWeights(classID)
	query := `SELECT weight_1, weight_2, weight_mid, weight_final FROM class_grading_config WHERE class_id = $1`
	err := db.QueryRow(query, classID).Scan(&w.Weight1, &w.Weight2, &w.WeightMid, &w.WeightFinal)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	return w, nil
}

// SaveGradingWeights upserts a class's weights keyed on class_id
func SaveGradingWeights(db *sql.DB, w *models.GradingWeights) error {
	query := `
		INSERT INTO class_grading_config (class_id, weight_1, weight_2, weight_mid, weight_final)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (class_id)
		DO UPDATE SET weight_1 = EXCLUDED.weight_1, weight_2 = EXCLUDED.weight_2,
					  weight_mid = EXCLUDED.weight_mid, weight_final = EXCLUDED.weight_final
	`
	_, err := db.Exec(query, w.ClassID, w.Weight1, w.Weight2, w.WeightMid, w.WeightFinal)
	return err
}

// GetTeacherAssignment retrieves one teacher assignment
func GetTeacherAssignment(db *sql.DB, assignmentID string) (*models.TeacherAssignment, error) {
	a := &models.TeacherAssignment{}
	query := `SELECT id, teacher_id, class_section_id, subject_name, created_at
			  FROM teacher_assignments WHERE id = $1`
	err := db.QueryRow(query, assignmentID).Scan(&a.ID, &a.TeacherID, &a.ClassSectionID, &a.SubjectName, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetTeacherAssignments lists a teacher's assignments
func GetTeacherAssignments(db *sql.DB, teacherID string) ([]models.TeacherAssignment, error) {
	query := `SELECT id, teacher_id, class_section_id, subject_name, created_at
			  FROM teacher_assignments WHERE teacher_id = $1 ORDER BY created_at ASC`
	rows, err := db.Query(query, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []models.TeacherAssignment
	for rows.Next() {
		var a models.TeacherAssignment
		if err := rows.Scan(&a.ID, &a.TeacherID, &a.ClassSectionID, &a.SubjectName, &a.CreatedAt); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// GetAssignmentsForClassSection lists every subject assignment of a cohort
func GetAssignmentsForClassSection(db *sql.DB, classSectionID string) ([]models.TeacherAssignment, error) {
	query := `SELECT id, teacher_id, class_section_id, subject_name, created_at
			  FROM teacher_assignments WHERE class_section_id = $1 ORDER BY subject_name ASC`
	rows, err := db.Query(query, classSectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []models.TeacherAssignment
	for rows.Next() {
		var a models.TeacherAssignment
		if err := rows.Scan(&a.ID, &a.TeacherID, &a.ClassSectionID, &a.SubjectName, &a.CreatedAt); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// CreateTeacherAssignment gives a teacher a subject in a class section
func CreateTeacherAssignment(db *sql.DB, a *models.TeacherAssignment) error {
	query := `INSERT INTO teacher_assignments (teacher_id, class_section_id, subject_name, created_at)
			  VALUES ($1, $2, $3, NOW()) RETURNING id, created_at`
	return db.QueryRow(query, a.TeacherID, a.ClassSectionID, a.SubjectName).Scan(&a.ID, &a.CreatedAt)
}

// GradeRow is a student of the assignment's cohort joined with their marks
type GradeRow struct {
	StudentID   string  `json:"studentId"`
	Name        string  `json:"name"`
	Assessment1 float64 `json:"assessment_1"`
	Assessment2 float64 `json:"assessment_2"`
	Midterm     float64 `json:"midterm"`
	FinalExam   float64 `json:"final_exam"`
}

// GetGradesForAssignment lists the assignment cohort's active students in
// the given year with their saved marks, zeros when none saved yet
func GetGradesForAssignment(db *sql.DB, assignmentID string, yearID int64, classSectionID string) ([]GradeRow, error) {
	query := `
		SELECT se.student_id, st.full_name,
			   COALESCE(g.assessment_1, 0), COALESCE(g.assessment_2, 0),
			   COALESCE(g.midterm, 0), COALESCE(g.final_exam, 0)
		FROM student_enrollments se
		JOIN students st ON st.id = se.student_id
		LEFT JOIN grades g ON g.student_id = se.student_id AND g.assignment_id = $1
		WHERE se.academic_year_id = $2 AND se.class_section_id = $3 AND se.status = 'active'
		ORDER BY se.student_id ASC
	`
	rows, err := db.Query(query, assignmentID, yearID, classSectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grades []GradeRow
	for rows.Next() {
		var g GradeRow
		if err := rows.Scan(&g.StudentID, &g.Name, &g.Assessment1, &g.Assessment2, &g.Midterm, &g.FinalExam); err != nil {
			return nil, err
		}
		grades = append(grades, g)
	}
	return grades, rows.Err()
}

// UpsertGrade saves a student's marks for an assignment, keyed on
// (student, assignment)
func UpsertGrade(db *sql.DB, g *models.Grade) error {
	query := `
		INSERT INTO grades (student_id, assignment_id, assessment_1, assessment_2, midterm, final_exam, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT ON CONSTRAINT ux_grades_student_assignment
		DO UPDATE SET assessment_1 = EXCLUDED.assessment_1, assessment_2 = EXCLUDED.assessment_2,
					  midterm = EXCLUDED.midterm, final_exam = EXCLUDED.final_exam, updated_at = NOW()
	`
	_, err := db.Exec(query, g.StudentID, g.AssignmentID, g.Assessment1, g.Assessment2, g.Midterm, g.FinalExam)
	return err
}
