package academic

import (
	"database/sql"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/muneebabadar/result-management-system-kkamhs/app/database"
	"github.com/muneebabadar/result-management-system-kkamhs/app/helpers"
	"github.com/muneebabadar/result-management-system-kkamhs/app/models"
)

// ListAcademicYearsHandler returns all academic years
func ListAcademicYearsHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		years, err := database.GetAllAcademicYears(db)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve academic years"})
		}
		return c.JSON(fiber.Map{"success": true, "data": years})
	}
}

// CurrentAcademicYearHandler returns the year holding the is_current flag
func CurrentAcademicYearHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		year, err := database.GetCurrentAcademicYear(db)
		if err != nil {
			if err == sql.ErrNoRows {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No current academic year found."})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve academic year"})
		}
		return c.JSON(fiber.Map{"success": true, "data": year})
	}
}

// GetAcademicYearHandler returns a specific academic year by id
func GetAcademicYearHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return helpers.BadRequest(c, "Invalid academic year id")
		}

		year, err := database.GetAcademicYearByID(db, id)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Academic year not found"})
		}
		return c.JSON(fiber.Map{"success": true, "data": year})
	}
}

// CreateAcademicYearHandler creates a new academic year
func CreateAcademicYearHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var year models.AcademicYear
		if err := c.BodyParser(&year); err != nil {
			return helpers.BadRequest(c, "Invalid request body: "+err.Error())
		}
		if err := helpers.ValidateStruct(&year); err != nil {
			return helpers.BadRequest(c, "Name, start date and end date are required")
		}

		if year.EndsOn.Time.Before(year.StartsOn.Time) {
			return helpers.BadRequest(c, "End date must be after start date")
		}

		if err := database.CreateAcademicYear(db, &year); err != nil {
			if database.IsUniqueViolation(err, "") {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "An academic year with this name already exists"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create academic year"})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": year})
	}
}

// UpdateAcademicYearHandler updates name and dates of an academic year
func UpdateAcademicYearHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return helpers.BadRequest(c, "Invalid academic year id")
		}

		var year models.AcademicYear
		if err := c.BodyParser(&year); err != nil {
			return helpers.BadRequest(c, "Invalid request body: "+err.Error())
		}
		year.ID = id

		if year.EndsOn.Time.Before(year.StartsOn.Time) {
			return helpers.BadRequest(c, "End date must be after start date")
		}

		if err := database.UpdateAcademicYear(db, &year); err != nil {
			if err == sql.ErrNoRows {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Academic year not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update academic year"})
		}
		return c.JSON(fiber.Map{"success": true, "data": year})
	}
}

// SetCurrentAcademicYearHandler moves the is_current flag to this year
func SetCurrentAcademicYearHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return helpers.BadRequest(c, "Invalid academic year id")
		}

		if err := database.SetCurrentAcademicYear(db, id); err != nil {
			if err == sql.ErrNoRows {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Academic year not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to set current academic year"})
		}
		return c.JSON(fiber.Map{"success": true})
	}
}
