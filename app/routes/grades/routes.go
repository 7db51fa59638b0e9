package grades

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/muneebabadar/result-management-system-kkamhs/app/models"
	"github.com/muneebabadar/result-management-system-kkamhs/app/routes/auth"
)

// RegisterRoutes wires the grading weight configuration and per-assignment
// grade entry endpoints
func RegisterRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api", auth.AuthMiddleware)

	admin := api.Group("", auth.RoleMiddleware(models.RoleAdmin))
	admin.Get("/grading-weights", ListGradingWeightsHandler(db))
	admin.Post("/grading-weights", SaveGradingWeightsHandler(db))
	admin.Post("/teacher-assignments", CreateAssignmentHandler(db))

	staff := api.Group("", auth.RoleMiddleware(models.RoleAdmin, models.RoleTeacher))
	staff.Get("/teacher-assignments", ListAssignmentsHandler(db))
	staff.Get("/assignments/:id/grades", ListGradesHandler(db))
	staff.Post("/assignments/:id/grades", SaveGradesHandler(db))
}
