package academic

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/muneebabadar/result-management-system-kkamhs/app/models"
	"github.com/muneebabadar/result-management-system-kkamhs/app/routes/auth"
)

// RegisterRoutes registers the academic year routes. Reads are open to any
// authenticated staff; mutations are admin-only.
func RegisterRoutes(app *fiber.App, db *sql.DB) {
	group := app.Group("/api/academic-years", auth.AuthMiddleware)

	group.Get("/", ListAcademicYearsHandler(db))
	group.Get("/current", CurrentAcademicYearHandler(db))
	group.Get("/:id", GetAcademicYearHandler(db))

	admin := group.Group("", auth.RoleMiddleware(models.RoleAdmin))
	admin.Post("/", CreateAcademicYearHandler(db))
	admin.Put("/:id", UpdateAcademicYearHandler(db))
	admin.Put("/:id/set-current", SetCurrentAcademicYearHandler(db))
}
