package database

import (
	"database/sql"

	"github.com/muneebabadar/result-management-system-kkamhs/app/models"
)

// GetPromotionPaths lists every configured promotion path, newest first
func GetPromotionPaths(db *sql.DB) ([]models.PromotionPath, error) {
	query := `
		SELECT id, from_academic_year_id, to_academic_year_id,
			   from_class_section_id, to_class_section_id, is_active, created_at
		FROM promotion_paths
		ORDER BY created_at DESC
	`
	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []models.PromotionPath
	for rows.Next() {
		var p models.PromotionPath
		if err := rows.Scan(&p.ID, &p.FromAcademicYearID, &p.ToAcademicYearID,
			&p.FromClassSectionID, &p.ToClassSectionID, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

// CreatePromotionPath configures the destination cohort for a source
// cohort and year pair
func CreatePromotionPath(db *sql.DB, p *models.PromotionPath) error {
	query := `
		INSERT INTO promotion_paths (from_academic_year_id, to_academic_year_id,
			from_class_section_id, to_class_section_id, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`
	return db.QueryRow(query, p.FromAcademicYearID, p.ToAcademicYearID,
		p.FromClassSectionID, p.ToClassSectionID, p.IsActive).Scan(&p.ID, &p.CreatedAt)
}

// SetPromotionPathActive toggles a path without deleting its history
func SetPromotionPathActive(db *sql.DB, pathID string, active bool) error {
	res, err := db.Exec(`UPDATE promotion_paths SET is_active = $2 WHERE id = $1`, pathID, active)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
