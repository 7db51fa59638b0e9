package grades

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/muneebabadar/result-management-system-kkamhs/app/database"
	"github.com/muneebabadar/result-management-system-kkamhs/app/helpers"
	"github.com/muneebabadar/result-management-system-kkamhs/app/models"
)

// ListGradingWeightsHandler returns the grading config of every class,
// defaulted where none was saved
func ListGradingWeightsHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		weights, err := database.GetGradingWeights(db)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve grading weights"})
		}
		return c.JSON(fiber.Map{"success": true, "data": weights})
	}
}

// SaveGradingWeightsHandler upserts a class's weights. The four weights
// must sum to 100.
func SaveGradingWeightsHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var w models.GradingWeights
		if err := c.BodyParser(&w); err != nil {
			return helpers.BadRequest(c, "Invalid request body: "+err.Error())
		}
		if err := helpers.ValidateStruct(&w); err != nil {
			return helpers.BadRequest(c, err.Error())
		}
		if w.Weight1+w.Weight2+w.WeightMid+w.WeightFinal != 100 {
			return helpers.BadRequest(c, "Weights must sum to 100")
		}

		if err := database.SaveGradingWeights(db, &w); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save grading weights"})
		}
		return c.JSON(fiber.Map{"success": true, "data": w})
	}
}

// CreateAssignmentHandler gives a teacher a subject in a class section
func CreateAssignmentHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var a models.TeacherAssignment
		if err := c.BodyParser(&a); err != nil {
			return helpers.BadRequest(c, "Invalid request body: "+err.Error())
		}
		if err := helpers.ValidateStruct(&a); err != nil {
			return helpers.BadRequest(c, err.Error())
		}

		if err := database.CreateTeacherAssignment(db, &a); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create assignment"})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": a})
	}
}

// ListAssignmentsHandler lists teacher assignments. Teachers see only their
// own; admins can pass ?teacherId= to inspect any teacher's.
func ListAssignmentsHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		teacherID, _ := c.Locals("user_id").(string)
		role, _ := c.Locals("user_role").(models.UserRole)
		if role == models.RoleAdmin {
			if q := c.Query("teacherId"); q != "" {
				teacherID = q
			}
		}

		assignments, err := database.GetTeacherAssignments(db, teacherID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve assignments"})
		}
		return c.JSON(fiber.Map{"success": true, "data": assignments})
	}
}

// ListGradesHandler returns the assignment cohort's current-year students
// with their saved marks
func ListGradesHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		assignment := loadOwnedAssignment(c, db)
		if assignment == nil {
			return nil
		}

		year, err := database.GetCurrentAcademicYear(db)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No current academic year is set"})
		}

		grades, err := database.GetGradesForAssignment(db, assignment.ID, year.ID, assignment.ClassSectionID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve grades"})
		}
		return c.JSON(fiber.Map{"success": true, "data": grades})
	}
}

// SaveGradesHandler upserts a batch of students' marks for one assignment
func SaveGradesHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		assignment := loadOwnedAssignment(c, db)
		if assignment == nil {
			return nil
		}

		type gradeEntry struct {
			StudentID   string  `json:"studentId" validate:"required,uuid"`
			Assessment1 float64 `json:"assessment_1" validate:"min=0,max=100"`
			Assessment2 float64 `json:"assessment_2" validate:"min=0,max=100"`
			Midterm     float64 `json:"midterm" validate:"min=0,max=100"`
			FinalExam   float64 `json:"final_exam" validate:"min=0,max=100"`
		}
		var req struct {
			Grades []gradeEntry `json:"grades" validate:"required,min=1,dive"`
		}
		if err := c.BodyParser(&req); err != nil {
			return helpers.BadRequest(c, "Invalid request body: "+err.Error())
		}
		if err := helpers.ValidateStruct(&req); err != nil {
			return helpers.BadRequest(c, err.Error())
		}

		for _, entry := range req.Grades {
			grade := models.Grade{
				StudentID:    entry.StudentID,
				AssignmentID: assignment.ID,
				Assessment1:  entry.Assessment1,
				Assessment2:  entry.Assessment2,
				Midterm:      entry.Midterm,
				FinalExam:    entry.FinalExam,
			}
			if err := database.UpsertGrade(db, &grade); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save grades"})
			}
		}
		return c.JSON(fiber.Map{"success": true, "saved": len(req.Grades)})
	}
}

// loadOwnedAssignment resolves the :id assignment and rejects teachers
// touching assignments that are not theirs. Admins may touch any. On
// failure the response has already been written and nil is returned.
func loadOwnedAssignment(c *fiber.Ctx, db *sql.DB) *models.TeacherAssignment {
	assignment, err := database.GetTeacherAssignment(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Assignment not found"})
		} else {
			_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve assignment"})
		}
		return nil
	}

	role, _ := c.Locals("user_role").(models.UserRole)
	userID, _ := c.Locals("user_id").(string)
	if role != models.RoleAdmin && assignment.TeacherID != userID {
		_ = c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You are not assigned to this class"})
		return nil
	}
	return assignment
}
