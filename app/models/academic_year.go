package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// CustomDate allows parsing dates in YYYY-MM-DD format
type CustomDate struct {
	time.Time
}

// UnmarshalJSON parses dates in YYYY-MM-DD format
func (cd *CustomDate) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == "" || s == `""` {
		cd.Time = time.Time{}
		return nil
	}

	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}

	cd.Time = t
	return nil
}

// MarshalJSON formats dates in YYYY-MM-DD format
func (cd CustomDate) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`"%s"`, cd.Time.Format("2006-01-02"))), nil
}

// Scan implements the Scanner interface for database reading
func (cd *CustomDate) Scan(value interface{}) error {
	if value == nil {
		cd.Time = time.Time{}
		return nil
	}

	if t, ok := value.(time.Time); ok {
		cd.Time = t
		return nil
	}

	return fmt.Errorf("cannot scan %T into CustomDate", value)
}

// Value implements the Valuer interface for database writing
func (cd CustomDate) Value() (driver.Value, error) {
	return cd.Time, nil
}

// AcademicYear represents one school year. Exactly one year carries the
// is_current flag at any time; the flag is moved by the set-current admin
// action, never by the promotion workflow. Year IDs are sequential so that
// "the next year" is the smallest ID greater than the current one.
type AcademicYear struct {
	ID        int64      `json:"id" gorm:"primaryKey;autoIncrement" validate:"omitempty"`
	Name      string     `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
	StartsOn  CustomDate `json:"starts_on" gorm:"not null" validate:"required"`
	EndsOn    CustomDate `json:"ends_on" gorm:"not null" validate:"required"`
	IsCurrent bool       `json:"is_current" gorm:"default:false;index"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}
