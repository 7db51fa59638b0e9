package models

// UserRole defines the application roles a staff user can hold.
type UserRole string

const (
	RoleAdmin   UserRole = "Admin"
	RoleTeacher UserRole = "Teacher"
)

// EnrollmentStatus defines the lifecycle of a student enrollment within a year.
type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentPromoted  EnrollmentStatus = "promoted"
	EnrollmentWithdrawn EnrollmentStatus = "withdrawn"
)

// RunStatus defines the lifecycle of a promotion run.
// A run transitions exactly once, draft -> confirmed or draft -> cancelled.
type RunStatus string

const (
	RunDraft     RunStatus = "draft"
	RunConfirmed RunStatus = "confirmed"
	RunCancelled RunStatus = "cancelled"
)

// Decision defines the per-student promotion outcome choice.
type Decision string

const (
	DecisionRetain             Decision = "retain"
	DecisionPromote            Decision = "promote"
	DecisionConditionalPromote Decision = "conditional_promote"
)

// Valid reports whether d is one of the three allowed decision values.
func (d Decision) Valid() bool {
	switch d {
	case DecisionRetain, DecisionPromote, DecisionConditionalPromote:
		return true
	}
	return false
}

// Promotes reports whether the decision moves the student into the next year.
func (d Decision) Promotes() bool {
	return d == DecisionPromote || d == DecisionConditionalPromote
}

// OverallResult defines the pass/fail outcome of a student for a year.
type OverallResult string

const (
	ResultPass OverallResult = "pass"
	ResultFail OverallResult = "fail"
)

// NotificationType categorises notification records.
type NotificationType string

const (
	NotificationPromotion NotificationType = "promotion"
	NotificationGeneral   NotificationType = "general"
)
