package dashboard

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/muneebabadar/result-management-system-kkamhs/app/database"
)

// SummaryHandler returns the headline counts and recent notifications for
// the admin dashboard. Enrollment counts are scoped to the current year;
// with no current year set they read zero.
func SummaryHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		totalStudents := 0
		if year, err := database.GetCurrentAcademicYear(db); err == nil {
			count, err := database.CountActiveEnrollments(db, year.ID)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to count students"})
			}
			totalStudents = count
		}

		totalClasses, err := database.CountClasses(db)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to count classes"})
		}

		totalTeachers, err := database.CountActiveTeachers(db)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to count teachers"})
		}

		notifications, err := database.GetRecentNotifications(db, 5)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve notifications"})
		}

		return c.JSON(fiber.Map{
			"success": true,
			"data": fiber.Map{
				"totalStudents": totalStudents,
				"totalClasses":  totalClasses,
				"totalTeachers": totalTeachers,
				"notifications": notifications,
			},
		})
	}
}
