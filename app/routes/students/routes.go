package students

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/muneebabadar/result-management-system-kkamhs/app/models"
	"github.com/muneebabadar/result-management-system-kkamhs/app/routes/auth"
)

// RegisterRoutes registers student management routes. Listings are open to
// staff; mutations are admin-only.
func RegisterRoutes(app *fiber.App, db *sql.DB) {
	group := app.Group("/api/students", auth.AuthMiddleware)

	group.Get("/", ListStudentsHandler(db))
	group.Get("/:id", GetStudentHandler(db))

	admin := group.Group("", auth.RoleMiddleware(models.RoleAdmin))
	admin.Post("/", CreateStudentHandler(db))
	admin.Put("/:id", UpdateStudentHandler(db))
	admin.Delete("/:id", DeleteStudentHandler(db))
	admin.Post("/:id/enroll", EnrollStudentHandler(db))
}
