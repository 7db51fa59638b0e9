package promotions

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/muneebabadar/result-management-system-kkamhs/app/database"
	"github.com/muneebabadar/result-management-system-kkamhs/app/helpers"
	"github.com/muneebabadar/result-management-system-kkamhs/app/models"
)

// ListPathsHandler lists every configured promotion path
func ListPathsHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		paths, err := database.GetPromotionPaths(db)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve promotion paths"})
		}
		return c.JSON(fiber.Map{"success": true, "data": paths})
	}
}

// CreatePathHandler configures where a cohort promotes to for a year pair
func CreatePathHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		type createRequest struct {
			FromAcademicYearID int64  `json:"fromAcademicYearId" validate:"required"`
			ToAcademicYearID   int64  `json:"toAcademicYearId" validate:"required"`
			FromClassSectionID string `json:"fromClassSectionId" validate:"required,uuid"`
			ToClassSectionID   string `json:"toClassSectionId" validate:"required,uuid"`
		}

		var req createRequest
		if err := c.BodyParser(&req); err != nil {
			return helpers.BadRequest(c, "Invalid request body: "+err.Error())
		}
		if err := helpers.ValidateStruct(&req); err != nil {
			return helpers.BadRequest(c, err.Error())
		}
		if req.ToAcademicYearID <= req.FromAcademicYearID {
			return helpers.BadRequest(c, "toAcademicYearId must be a later year than fromAcademicYearId")
		}

		path := models.PromotionPath{
			FromAcademicYearID: req.FromAcademicYearID,
			ToAcademicYearID:   req.ToAcademicYearID,
			FromClassSectionID: req.FromClassSectionID,
			ToClassSectionID:   req.ToClassSectionID,
			IsActive:           true,
		}
		if err := database.CreatePromotionPath(db, &path); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create promotion path"})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": path})
	}
}

// SetPathActiveHandler toggles whether a path is considered by run
// confirmation
func SetPathActiveHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			IsActive bool `json:"isActive"`
		}
		if err := c.BodyParser(&req); err != nil {
			return helpers.BadRequest(c, "Invalid request body: "+err.Error())
		}

		if err := database.SetPromotionPathActive(db, c.Params("id"), req.IsActive); err != nil {
			if err == sql.ErrNoRows {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Promotion path not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update promotion path"})
		}
		return c.JSON(fiber.Map{"success": true})
	}
}
