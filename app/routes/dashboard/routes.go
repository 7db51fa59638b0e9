package dashboard

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/muneebabadar/result-management-system-kkamhs/app/models"
	"github.com/muneebabadar/result-management-system-kkamhs/app/routes/auth"
)

// RegisterRoutes wires the admin dashboard summary endpoint
func RegisterRoutes(app *fiber.App, db *sql.DB) {
	group := app.Group("/api/dashboard", auth.AuthMiddleware, auth.RoleMiddleware(models.RoleAdmin))
	group.Get("/", SummaryHandler(db))
}
