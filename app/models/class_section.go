package models

import "time"

// Class represents a grade level, e.g. "6".
type Class struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"omitempty,uuid"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// Section represents a stream within a class, e.g. "A".
type Section struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"omitempty,uuid"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// ClassSection pairs a class with a section ("6" + "A") and is the cohort
// unit that enrollments, teacher assignments and promotion runs operate on.
type ClassSection struct {
	ID             string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"omitempty,uuid"`
	ClassID        string    `json:"class_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	SectionID      string    `json:"section_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	ClassTeacherID *string   `json:"class_teacher_id,omitempty" gorm:"index;type:uuid" validate:"omitempty,uuid"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Relationships
	Class        *Class   `json:"class,omitempty" gorm:"foreignKey:ClassID;references:ID"`
	Section      *Section `json:"section,omitempty" gorm:"foreignKey:SectionID;references:ID"`
	ClassTeacher *User    `json:"class_teacher,omitempty" gorm:"foreignKey:ClassTeacherID;references:ID"`
}

// Cohort is a class section flattened for listings: joined names, the
// derived label and the current-year active student count.
type Cohort struct {
	ClassSectionID string `json:"classSectionId"`
	ClassID        string `json:"classId"`
	SectionID      string `json:"sectionId"`
	ClassName      string `json:"className"`
	SectionName    string `json:"sectionName"`
	Label          string `json:"label"`
	TeacherID      *string `json:"teacherId,omitempty"`
	TeacherName    string `json:"teacher,omitempty"`
	StudentCount   int    `json:"students"`
}

// CohortLabel derives the display label for a cohort. Class and section
// names are concatenated with no separator, so class "6" section "A" reads
// "6A". Every call site uses this helper so the format stays uniform.
func CohortLabel(className, sectionName string) string {
	return className + sectionName
}
