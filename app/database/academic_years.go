package database

import (
	"database/sql"

	"github.com/muneebabadar/result-management-system-kkamhs/app/models"
)

// GetAllAcademicYears retrieves all academic years ordered by id
func GetAllAcademicYears(db *sql.DB) ([]models.AcademicYear, error) {
	query := `SELECT id, name, starts_on, ends_on, is_current, created_at, updated_at
			  FROM academic_years ORDER BY id ASC`
	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var years []models.AcademicYear
	for rows.Next() {
		var y models.AcademicYear
		if err := rows.Scan(&y.ID, &y.Name, &y.StartsOn, &y.EndsOn, &y.IsCurrent, &y.CreatedAt, &y.UpdatedAt); err != nil {
			return nil, err
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

// GetAcademicYearByID retrieves a single academic year
func GetAcademicYearByID(db *sql.DB, id int64) (*models.AcademicYear, error) {
	y := &models.AcademicYear{}
	query := `SELECT id, name, starts_on, ends_on, is_current, created_at, updated_at
			  FROM academic_years WHERE id = $1`
	err := db.QueryRow(query, id).Scan(&y.ID, &y.Name, &y.StartsOn, &y.EndsOn, &y.IsCurrent, &y.CreatedAt, &y.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return y, nil
}

// GetCurrentAcademicYear returns the year holding the is_current flag
func GetCurrentAcademicYear(db *sql.DB) (*models.AcademicYear, error) {
	y := &models.AcademicYear{}
	query := `SELECT id, name, starts_on, ends_on, is_current, created_at, updated_at
			  FROM academic_years WHERE is_current = true`
	err := db.QueryRow(query).Scan(&y.ID, &y.Name, &y.StartsOn, &y.EndsOn, &y.IsCurrent, &y.CreatedAt, &y.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return y, nil
}

// GetNextAcademicYear returns the year with the smallest id greater than
// currentID, or sql.ErrNoRows when no later year exists
func GetNextAcademicYear(db *sql.DB, currentID int64) (*models.AcademicYear, error) {
	y := &models.AcademicYear{}
	query := `SELECT id, name, starts_on, ends_on, is_current, created_at, updated_at
			  FROM academic_years WHERE id > $1 ORDER BY id ASC LIMIT 1`
	err := db.QueryRow(query, currentID).Scan(&y.ID, &y.Name, &y.StartsOn, &y.EndsOn, &y.IsCurrent, &y.CreatedAt, &y.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return y, nil
}

// CreateAcademicYear inserts a new academic year
func CreateAcademicYear(db *sql.DB, year *models.AcademicYear) error {
	query := `INSERT INTO academic_years (name, starts_on, ends_on, created_at, updated_at)
			  VALUES ($1, $2, $3, NOW(), NOW())
			  RETURNING id, is_current, created_at, updated_at`
	return db.QueryRow(query, year.Name, year.StartsOn, year.EndsOn).
		Scan(&year.ID, &year.IsCurrent, &year.CreatedAt, &year.UpdatedAt)
}

// UpdateAcademicYear updates the name and dates of an academic year
func UpdateAcademicYear(db *sql.DB, year *models.AcademicYear) error {
	query := `UPDATE academic_years SET name = $1, starts_on = $2, ends_on = $3, updated_at = NOW()
			  WHERE id = $4`
	result, err := db.Exec(query, year.Name, year.StartsOn, year.EndsOn, year.ID)
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

// SetCurrentAcademicYear moves the is_current flag to the given year in a
// single transaction so there is never zero or more than one current year
func SetCurrentAcademicYear(db *sql.DB, id int64) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE academic_years SET is_current = false, updated_at = NOW() WHERE is_current = true`); err != nil {
		return err
	}

	result, err := tx.Exec(`UPDATE academic_years SET is_current = true, updated_at = NOW() WHERE id = $1`, id)
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

	return tx.Commit()
}
