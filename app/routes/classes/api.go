package classes

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/muneebabadar/result-management-system-kkamhs/app/database"
	"github.com/muneebabadar/result-management-system-kkamhs/app/helpers"
	"github.com/muneebabadar/result-management-system-kkamhs/app/models"
)

// ListClassesHandler returns all classes
func ListClassesHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		classes, err := database.GetAllClasses(db)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve classes"})
		}
		return c.JSON(fiber.Map{"success": true, "data": classes})
	}
}

// CreateClassHandler adds a new class
func CreateClassHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var class models.Class
		if err := c.BodyParser(&class); err != nil {
			return helpers.BadRequest(c, "Invalid request body: "+err.Error())
		}
		if class.Name == "" {
			return helpers.BadRequest(c, "Class name is required")
		}

		if err := database.CreateClass(db, &class); err != nil {
			if database.IsUniqueViolation(err, "") {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A class with this name already exists"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create class"})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": class})
	}
}

// ListSectionsHandler returns all sections
func ListSectionsHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sections, err := database.GetAllSections(db)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve sections"})
		}
		return c.JSON(fiber.Map{"success": true, "data": sections})
	}
}

// CreateSectionHandler adds a new section
func CreateSectionHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var section models.Section
		if err := c.BodyParser(&section); err != nil {
			return helpers.BadRequest(c, "Invalid request body: "+err.Error())
		}
		if section.Name == "" {
			return helpers.BadRequest(c, "Section name is required")
		}

		if err := database.CreateSection(db, &section); err != nil {
			if database.IsUniqueViolation(err, "") {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A section with this name already exists"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create section"})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": section})
	}
}

// ListClassSectionsHandler returns all class sections with joined names,
// assigned teacher and current-year active student counts
func ListClassSectionsHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var currentYearID int64
		if year, err := database.GetCurrentAcademicYear(db); err == nil {
			currentYearID = year.ID
		}

		cohorts, err := database.GetClassSections(db, currentYearID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve class sections"})
		}
		return c.JSON(fiber.Map{"success": true, "data": cohorts})
	}
}

// CreateClassSectionHandler pairs a class with a section
func CreateClassSectionHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		type createRequest struct {
			ClassID   string `json:"classId" validate:"required,uuid"`
			SectionID string `json:"sectionId" validate:"required,uuid"`
		}

		var req createRequest
		if err := c.BodyParser(&req); err != nil {
			return helpers.BadRequest(c, "Invalid request body: "+err.Error())
		}
		if err := helpers.ValidateStruct(&req); err != nil {
			return helpers.BadRequest(c, "classId and sectionId are required")
		}

		cs := &models.ClassSection{ClassID: req.ClassID, SectionID: req.SectionID}
		if err := database.CreateClassSection(db, cs); err != nil {
			if database.IsUniqueViolation(err, "") {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "This class section already exists"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create class section"})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": cs})
	}
}

// AssignTeacherHandler sets or clears the class teacher; a null teacherId
// unassigns
func AssignTeacherHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		type assignRequest struct {
			TeacherID *string `json:"teacherId"`
		}

		var req assignRequest
		if err := c.BodyParser(&req); err != nil {
			return helpers.BadRequest(c, "Invalid request body: "+err.Error())
		}

		if err := database.AssignClassTeacher(db, c.Params("id"), req.TeacherID); err != nil {
			if err == sql.ErrNoRows {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class section not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to assign teacher"})
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// DeleteClassSectionHandler removes a class section unless students are
// enrolled against it in the current year
func DeleteClassSectionHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		classSectionID := c.Params("id")

		if year, err := database.GetCurrentAcademicYear(db); err == nil {
			count, err := database.CountEnrollmentsForClassSection(db, classSectionID, year.ID)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to check enrollments"})
			}
			if count > 0 {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Cannot delete a class section with current-year enrollments"})
			}
		}

		if err := database.DeleteClassSection(db, classSectionID); err != nil {
			if err == sql.ErrNoRows {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class section not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete class section"})
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
