package database

import (
	"database/sql"

	"github.com/muneebabadar/result-management-system-kkamhs/app/models"
)

// GetUserByEmail retrieves an active user by email
func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, name, email, password_hash, role, status, created_at, updated_at
			  FROM users WHERE email = $1 AND status = true`
	err := db.QueryRow(query, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Role, &user.Status, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByID retrieves an active user by id
func GetUserByID(db *sql.DB, userID string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, name, email, password_hash, role, status, created_at, updated_at
			  FROM users WHERE id = $1 AND status = true`
	err := db.QueryRow(query, userID).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Role, &user.Status, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetAllUsers retrieves all users ordered by newest first
func GetAllUsers(db *sql.DB) ([]models.User, error) {
	query := `SELECT id, name, email, role, status, created_at, updated_at
			  FROM users ORDER BY created_at DESC`
	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// CreateUser inserts a new user with an already-hashed password
func CreateUser(db *sql.DB, user *models.User) error {
	query := `INSERT INTO users (name, email, password_hash, role, status, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, true, NOW(), NOW())
			  RETURNING id, status, created_at, updated_at`
	return db.QueryRow(query, user.Name, user.Email, user.PasswordHash, user.Role).
		Scan(&user.ID, &user.Status, &user.CreatedAt, &user.UpdatedAt)
}

// UpdateUser updates name, role and status
func UpdateUser(db *sql.DB, user *models.User) error {
	query := `UPDATE users SET name = $1, role = $2, status = $3, updated_at = NOW() WHERE id = $4`
	result, err := db.Exec(query, user.Name, user.Role, user.Status, user.ID)
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

// UpdateUserPassword replaces a user's password hash
func UpdateUserPassword(db *sql.DB, userID, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`
	_, err := db.Exec(query, passwordHash, userID)
	return err
}

// CountActiveTeachers counts active users holding the Teacher role
func CountActiveTeachers(db *sql.DB) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM users WHERE role = 'Teacher' AND status = true`).Scan(&count)
	return count, err
}
