package students

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/muneebabadar/result-management-system-kkamhs/app/database"
	"github.com/muneebabadar/result-management-system-kkamhs/app/helpers"
	"github.com/muneebabadar/result-management-system-kkamhs/app/models"
)

// ListStudentsHandler returns students matching the search and status
// query filters
func ListStudentsHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filters := database.StudentFilters{
			Search: c.Query("search"),
			Status: c.Query("status"),
		}

		students, err := database.GetStudents(db, filters)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve students"})
		}
		return c.JSON(fiber.Map{"success": true, "data": students})
	}
}

// GetStudentHandler returns a single student
func GetStudentHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		student, err := database.GetStudentByID(db, c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.JSON(fiber.Map{"success": true, "data": student})
	}
}

// CreateStudentHandler adds a new student
func CreateStudentHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var student models.Student
		if err := c.BodyParser(&student); err != nil {
			return helpers.BadRequest(c, "Invalid request body: "+err.Error())
		}
		if student.FullName == "" {
			return helpers.BadRequest(c, "Student name is required")
		}

		if err := database.CreateStudent(db, &student); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create student"})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": student})
	}
}

// UpdateStudentHandler updates a student record
func UpdateStudentHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var student models.Student
		if err := c.BodyParser(&student); err != nil {
			return helpers.BadRequest(c, "Invalid request body: "+err.Error())
		}
		student.ID = c.Params("id")

		if student.FullName == "" {
			return helpers.BadRequest(c, "Student name is required")
		}

		if err := database.UpdateStudent(db, &student); err != nil {
			if err == sql.ErrNoRows {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update student"})
		}
		return c.JSON(fiber.Map{"success": true, "data": student})
	}
}

// DeleteStudentHandler soft-deletes a student
func DeleteStudentHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := database.DeleteStudent(db, c.Params("id")); err != nil {
			if err == sql.ErrNoRows {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete student"})
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// EnrollStudentHandler enrolls a student into a class section for an
// academic year. At most one enrollment may exist per student and year.
func EnrollStudentHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		type enrollRequest struct {
			AcademicYearID int64   `json:"academic_year_id" validate:"required"`
			ClassSectionID string  `json:"class_section_id" validate:"required,uuid"`
			RollNumber     *string `json:"roll_number,omitempty"`
		}

		var req enrollRequest
		if err := c.BodyParser(&req); err != nil {
			return helpers.BadRequest(c, "Invalid request body: "+err.Error())
		}
		if err := helpers.ValidateStruct(&req); err != nil {
			return helpers.BadRequest(c, "Academic year and class section are required")
		}

		enrollment := &models.StudentEnrollment{
			StudentID:      c.Params("id"),
			AcademicYearID: req.AcademicYearID,
			ClassSectionID: req.ClassSectionID,
			RollNumber:     req.RollNumber,
		}
		if err := database.CreateEnrollment(db, enrollment); err != nil {
			if database.IsUniqueViolation(err, "ux_enrollments_student_year") {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Student already enrolled for this academic year"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to enroll student"})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": enrollment})
	}
}
