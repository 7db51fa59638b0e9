package promotions

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/muneebabadar/result-management-system-kkamhs/app/helpers"
	"github.com/muneebabadar/result-management-system-kkamhs/app/services"
)

// ListCohortsHandler returns the cohorts with active current-year
// enrollments, the candidates for a promotion run
func ListCohortsHandler(svc *services.PromotionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cohorts, err := svc.ListCohorts()
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "data": cohorts})
	}
}

// OpenRunHandler fetches or creates the draft run for one cohort and
// returns the run screen payload
func OpenRunHandler(svc *services.PromotionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		classSectionID := c.Query("classSectionId")
		if classSectionID == "" {
			return helpers.BadRequest(c, "classSectionId is required")
		}

		view, err := svc.OpenRun(classSectionID)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "data": view})
	}
}

// UpdateDecisionsHandler applies a batch of decision edits to a draft run
func UpdateDecisionsHandler(svc *services.PromotionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		runID := c.Params("runId")

		type decisionsRequest struct {
			Updates []services.DecisionUpdate `json:"updates" validate:"required,min=1,dive"`
		}

		var req decisionsRequest
		if err := c.BodyParser(&req); err != nil {
			return helpers.BadRequest(c, "Invalid request body: "+err.Error())
		}
		if err := helpers.ValidateStruct(&req); err != nil {
			return helpers.BadRequest(c, "Invalid payload")
		}

		if err := svc.ApplyDecisions(runID, req.Updates); err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// ConfirmRunHandler commits a draft run and returns the promoted count
func ConfirmRunHandler(svc *services.PromotionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		runID := c.Params("runId")

		promoted, err := svc.ConfirmRun(runID)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"promoted": promoted}})
	}
}

// serviceError maps workflow errors onto HTTP statuses: precondition and
// configuration failures are 400, missing entities 404, conflicts 409,
// partial confirmations 500 with an explicit safe-to-retry message, and
// everything else a generic 500.
func serviceError(c *fiber.Ctx, err error) error {
	var partial *services.PartialConfirmError
	switch {
	case errors.Is(err, services.ErrNoCurrentYear):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No current academic year found."})
	case errors.Is(err, services.ErrNoNextYear):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No next academic year found. Create it first."})
	case errors.Is(err, services.ErrNoPromotionPath):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No promotion path defined for this cohort/year. Create it in promotion paths."})
	case errors.Is(err, services.ErrInvalidDecision):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid decision value."})
	case errors.Is(err, services.ErrCohortNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class section not found."})
	case errors.Is(err, services.ErrRunNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Promotion run not found."})
	case errors.Is(err, services.ErrRunNotDraft):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Run already confirmed/cancelled."})
	case errors.Is(err, services.ErrDecisionRowMissing):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Decision row not found for student. Reload the page and try again."})
	case errors.As(err, &partial):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": partial.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}
