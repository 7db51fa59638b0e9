package models

import "time"

// PromotionRun is the workflow entity for promoting one cohort from one
// academic year into the next. At most one draft run may exist per
// (from year, to year, class section) triple; the database enforces this
// with a partial unique index so concurrent creates cannot race past it.
type PromotionRun struct {
	ID                 string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"omitempty,uuid"`
	FromAcademicYearID int64      `json:"from_academic_year_id" gorm:"not null;index" validate:"required"`
	ToAcademicYearID   int64      `json:"to_academic_year_id" gorm:"not null;index" validate:"required"`
	ClassSectionID     string     `json:"class_section_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Status             RunStatus  `json:"status" gorm:"not null;default:'draft'"`
	ConfirmedAt        *time.Time `json:"confirmed_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// PromotionRunStudent is one student's decision row within a run, keyed on
// (run, student). EligibilityStatus is a snapshot of the prior-year outcome
// frozen when the run was seeded; it never changes afterwards. The row is
// editable only while the run is draft.
type PromotionRunStudent struct {
	ID                string         `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"omitempty,uuid"`
	PromotionRunID    string         `json:"promotion_run_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	StudentID         string         `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	FromEnrollmentID  string         `json:"from_enrollment_id" gorm:"not null;type:uuid" validate:"required,uuid"`
	Decision          Decision       `json:"decision" gorm:"not null" validate:"required,oneof=retain promote conditional_promote"`
	EligibilityStatus *OverallResult `json:"eligibility_status,omitempty"`
	CreatedAt         time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// PromotionPath maps a source cohort and year pair to the destination
// cohort for the following year. Configured by the administrator; a run
// cannot be confirmed without one.
type PromotionPath struct {
	ID                 string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"omitempty,uuid"`
	FromAcademicYearID int64     `json:"from_academic_year_id" gorm:"not null;index" validate:"required"`
	ToAcademicYearID   int64     `json:"to_academic_year_id" gorm:"not null;index" validate:"required"`
	FromClassSectionID string    `json:"from_class_section_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	ToClassSectionID   string    `json:"to_class_section_id" gorm:"not null;type:uuid" validate:"required,uuid"`
	IsActive           bool      `json:"is_active" gorm:"default:true"`
	CreatedAt          time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// StudentYearOutcome is a student's overall result for one academic year,
// computed by report finalisation. The promotion engine only reads it.
type StudentYearOutcome struct {
	ID                string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"omitempty,uuid"`
	StudentID         string        `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	AcademicYearID    int64         `json:"academic_year_id" gorm:"not null;index" validate:"required"`
	ClassSectionID    *string       `json:"class_section_id,omitempty" gorm:"index;type:uuid"`
	OverallPercentage *float64      `json:"overall_percentage,omitempty"`
	OverallGrade      *string       `json:"overall_grade,omitempty"`
	OverallResult     OverallResult `json:"overall_result" gorm:"not null"`
	CreatedAt         time.Time     `json:"created_at" gorm:"autoCreateTime"`
}

// PromotionRow is the per-student view the run screen renders.
type PromotionRow struct {
	StudentID       string   `json:"studentId"`
	EnrollmentID    string   `json:"enrollmentId"`
	Name            string   `json:"name"`
	ClassLabel      string   `json:"classLabel"`
	OverallResult   string   `json:"overallResult"`
	Decision        Decision `json:"decision"`
	PromotionStatus string   `json:"promotionStatus"`
}

// RunView is the full payload for the promotion run screen.
type RunView struct {
	RunID          string          `json:"runId"`
	FromYear       *AcademicYear   `json:"fromYear"`
	ToYear         *AcademicYear   `json:"toYear"`
	ClassSectionID string          `json:"classSectionId"`
	ClassLabel     string          `json:"classLabel"`
	Students       []*PromotionRow `json:"students"`
}
