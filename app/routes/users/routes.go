package users

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/muneebabadar/result-management-system-kkamhs/app/models"
	"github.com/muneebabadar/result-management-system-kkamhs/app/routes/auth"
)

// RegisterRoutes registers staff user management routes, admin-only
func RegisterRoutes(app *fiber.App, db *sql.DB) {
	group := app.Group("/api/users", auth.AuthMiddleware, auth.RoleMiddleware(models.RoleAdmin))

	group.Get("/", ListUsersHandler(db))
	group.Post("/", CreateUserHandler(db))
	group.Put("/:id", UpdateUserHandler(db))
}
