package classes

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/muneebabadar/result-management-system-kkamhs/app/models"
	"github.com/muneebabadar/result-management-system-kkamhs/app/routes/auth"
)

// RegisterRoutes registers class, section and class-section routes
func RegisterRoutes(app *fiber.App, db *sql.DB) {
	group := app.Group("/api", auth.AuthMiddleware)

	group.Get("/classes", ListClassesHandler(db))
	group.Get("/sections", ListSectionsHandler(db))
	group.Get("/class-sections", ListClassSectionsHandler(db))

	admin := group.Group("", auth.RoleMiddleware(models.RoleAdmin))
	admin.Post("/classes", CreateClassHandler(db))
	admin.Post("/sections", CreateSectionHandler(db))
	admin.Post("/class-sections", CreateClassSectionHandler(db))
	admin.Put("/class-sections/:id/assign-teacher", AssignTeacherHandler(db))
	admin.Delete("/class-sections/:id", DeleteClassSectionHandler(db))
}
