package models

import "time"

// Notification is a fire-and-forget record shown on the dashboard, e.g.
// "Promotions Confirmed". Writers treat failures as non-fatal.
type Notification struct {
	ID          string           `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"omitempty,uuid"`
	Title       string           `json:"title" gorm:"not null" validate:"required"`
	Description string           `json:"description"`
	Type        NotificationType `json:"type" gorm:"not null"`
	EntityID    *string          `json:"entity_id,omitempty"`
	CreatedAt   time.Time        `json:"created_at" gorm:"autoCreateTime"`
}
