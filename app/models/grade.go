package models

import "time"

// TeacherAssignment gives a teacher a subject in a class section. Grade
// entry is scoped to one assignment.
type TeacherAssignment struct {
	ID             string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"omitempty,uuid"`
	TeacherID      string    `json:"teacher_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	ClassSectionID string    `json:"class_section_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	SubjectName    string    `json:"subject_name" gorm:"not null" validate:"required"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// GradingWeights is the per-class weighting of the four assessment
// components, upserted on class_id. Each weight is a percentage; a class
// without a saved config falls back to an even 25/25/25/25 split.
type GradingWeights struct {
	ClassID     string `json:"class_id" validate:"required,uuid"`
	ClassName   string `json:"className,omitempty"`
	Weight1     int    `json:"weight_1" validate:"min=0,max=100"`
	Weight2     int    `json:"weight_2" validate:"min=0,max=100"`
	WeightMid   int    `json:"weight_mid" validate:"min=0,max=100"`
	WeightFinal int    `json:"weight_final" validate:"min=0,max=100"`
}

// DefaultGradingWeights returns the even split used when a class has no
// saved configuration.
func DefaultGradingWeights(classID string) *GradingWeights {
	return &GradingWeights{ClassID: classID, Weight1: 25, Weight2: 25, WeightMid: 25, WeightFinal: 25}
}

// WeightedTotal combines the four assessment scores into a single
// percentage using the class weights.
func (w *GradingWeights) WeightedTotal(a1, a2, mid, final float64) float64 {
	return (float64(w.Weight1)*a1 + float64(w.Weight2)*a2 +
		float64(w.WeightMid)*mid + float64(w.WeightFinal)*final) / 100
}

// Grade holds one student's marks for one teacher assignment, upserted on
// (student, assignment).
type Grade struct {
	ID           string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"omitempty,uuid"`
	StudentID    string    `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	AssignmentID string    `json:"assignment_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Assessment1  float64   `json:"assessment_1" validate:"min=0,max=100"`
	Assessment2  float64   `json:"assessment_2" validate:"min=0,max=100"`
	Midterm      float64   `json:"midterm" validate:"min=0,max=100"`
	FinalExam    float64   `json:"final_exam" validate:"min=0,max=100"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
