package models

import "time"

// Student represents a pupil record. Year-specific placement lives on
// StudentEnrollment, not here.
type Student struct {
	ID            string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"omitempty,uuid"`
	FullName      string     `json:"full_name" gorm:"not null" validate:"required"`
	RollNumber    *string    `json:"roll_number,omitempty"`
	FatherName    *string    `json:"father_name,omitempty"`
	MotherName    *string    `json:"mother_name,omitempty"`
	Address       *string    `json:"address,omitempty"`
	ContactNumber *string    `json:"contact_number,omitempty"`
	Email         *string    `json:"email,omitempty" validate:"omitempty,email"`
	Status        bool       `json:"status" gorm:"default:true"`
	CreatedAt     time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}

// StudentEnrollment links a student to a class section for one academic
// year. At most one enrollment exists per (student, academic year); the
// promotion confirmation upsert relies on that uniqueness.
type StudentEnrollment struct {
	ID             string           `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"omitempty,uuid"`
	StudentID      string           `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	AcademicYearID int64            `json:"academic_year_id" gorm:"not null;index" validate:"required"`
	ClassSectionID string           `json:"class_section_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	RollNumber     *string          `json:"roll_number,omitempty"`
	Status         EnrollmentStatus `json:"status" gorm:"not null;default:'active'"`
	CreatedAt      time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time        `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Student *Student `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
}

// EnrollmentRow is an enrollment joined with the student's name for run
// seeding and report rendering. Listings of these rows are ordered by
// student ID ascending; callers rely on that order being stable.
type EnrollmentRow struct {
	EnrollmentID string  `json:"enrollmentId"`
	StudentID    string  `json:"studentId"`
	StudentName  string  `json:"name"`
	RollNumber   *string `json:"roll_number,omitempty"`
}
