package database

import (
	"database/sql"

	"github.com/muneebabadar/result-management-system-kkamhs/app/models"
)

// CreateNotification adds a notification record
func CreateNotification(db *sql.DB, n *models.Notification) error {
	query := `INSERT INTO notifications (title, description, type, entity_id, created_at)
			  VALUES ($1, $2, $3, $4, NOW())
			  RETURNING id, created_at`
	return db.QueryRow(query, n.Title, n.Description, n.Type, n.EntityID).Scan(&n.ID, &n.CreatedAt)
}

// GetRecentNotifications retrieves the newest notifications
func GetRecentNotifications(db *sql.DB, limit int) ([]models.Notification, error) {
	query := `SELECT id, title, description, type, entity_id, created_at
			  FROM notifications ORDER BY created_at DESC LIMIT $1`
	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.Title, &n.Description, &n.Type, &n.EntityID, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}
