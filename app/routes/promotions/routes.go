package promotions

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/muneebabadar/result-management-system-kkamhs/app/database"
	"github.com/muneebabadar/result-management-system-kkamhs/app/models"
	"github.com/muneebabadar/result-management-system-kkamhs/app/routes/auth"
	"github.com/muneebabadar/result-management-system-kkamhs/app/services"
)

// RegisterRoutes registers the promotion workflow routes. Every operation
// mutates academic records, so the whole group is admin-only.
func RegisterRoutes(app *fiber.App, db *sql.DB) {
	svc := services.NewPromotionService(database.NewPromotionStore(db))

	group := app.Group("/api/promotions", auth.AuthMiddleware, auth.RoleMiddleware(models.RoleAdmin))
	group.Get("/cohorts", ListCohortsHandler(svc))
	group.Get("/run", OpenRunHandler(svc))
	group.Put("/run/:runId/decisions", UpdateDecisionsHandler(svc))
	group.Post("/run/:runId/confirm", ConfirmRunHandler(svc))

	group.Get("/paths", ListPathsHandler(db))
	group.Post("/paths", CreatePathHandler(db))
	group.Put("/paths/:id/active", SetPathActiveHandler(db))
}
