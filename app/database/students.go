package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/muneebabadar/result-management-system-kkamhs/app/models"
)

// StudentFilters represents filtering options for student listings
type StudentFilters struct {
	Search string
	Status string // "active", "inactive" or empty for all
}

// GetStudents retrieves students matching the filters, newest first
func GetStudents(db *sql.DB, filters StudentFilters) ([]models.Student, error) {
	query := `SELECT id, full_name, roll_number, father_name, mother_name, address,
					 contact_number, email, status, created_at, updated_at
			  FROM students WHERE deleted_at IS NULL`
	var args []interface{}

	if filters.Search != "" {
		args = append(args, "%"+strings.ToLower(filters.Search)+"%")
		query += fmt.Sprintf(" AND LOWER(full_name) LIKE $%d", len(args))
	}
	switch filters.Status {
	case "active":
		query += " AND status = true"
	case "inactive":
		query += " AND status = false"
	}
	query += " ORDER BY created_at DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		var s models.Student
		if err := rows.Scan(&s.ID, &s.FullName, &s.RollNumber, &s.FatherName, &s.MotherName,
			&s.Address, &s.ContactNumber, &s.Email, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// GetStudentByID retrieves a single student
func GetStudentByID(db *sql.DB, studentID string) (*models.Student, error) {
	s := &models.Student{}
	query := `SELECT id, full_name, roll_number, father_name, mother_name, address,
					 contact_number, email, status, created_at, updated_at
			  FROM students WHERE id = $1 AND deleted_at IS NULL`
	err := db.QueryRow(query, studentID).Scan(&s.ID, &s.FullName, &s.RollNumber, &s.FatherName,
		&s.MotherName, &s.Address, &s.ContactNumber, &s.Email, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// CreateStudent inserts a new student record
func CreateStudent(db *sql.DB, s *models.Student) error {
	query := `INSERT INTO students (full_name, roll_number, father_name, mother_name, address,
									contact_number, email, status, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, true, NOW(), NOW())
			  RETURNING id, status, created_at, updated_at`
	return db.QueryRow(query, s.FullName, s.RollNumber, s.FatherName, s.MotherName,
		s.Address, s.ContactNumber, s.Email).
		Scan(&s.ID, &s.Status, &s.CreatedAt, &s.UpdatedAt)
}

// UpdateStudent updates an existing student record
func UpdateStudent(db *sql.DB, s *models.Student) error {
	query := `UPDATE students SET full_name = $1, roll_number = $2, father_name = $3,
				  mother_name = $4, address = $5, contact_number = $6, email = $7,
				  status = $8, updated_at = NOW()
			  WHERE id = $9 AND deleted_at IS NULL`
	result, err := db.Exec(query, s.FullName, s.RollNumber, s.FatherName, s.MotherName,
		s.Address, s.ContactNumber, s.Email, s.Status, s.ID)
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

// DeleteStudent soft-deletes a student
func DeleteStudent(db *sql.DB, studentID string) error {
	query := `UPDATE students SET deleted_at = NOW(), status = false WHERE id = $1 AND deleted_at IS NULL`
	result, err := db.Exec(query, studentID)
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
