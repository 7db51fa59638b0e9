package reports

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/muneebabadar/result-management-system-kkamhs/app/models"
	"github.com/muneebabadar/result-management-system-kkamhs/app/routes/auth"
)

// RegisterRoutes wires report generation and year-end outcome finalisation
func RegisterRoutes(app *fiber.App, db *sql.DB) {
	group := app.Group("/api/reports", auth.AuthMiddleware, auth.RoleMiddleware(models.RoleAdmin))
	group.Post("/generate", GenerateReportHandler(db))
	group.Post("/finalize", FinalizeOutcomesHandler(db))
}
