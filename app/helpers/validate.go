package helpers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateStruct runs struct-tag validation on a request body.
func ValidateStruct(v interface{}) error {
	return validate.Struct(v)
}

// BadRequest writes the standard error shape with a 400 status.
func BadRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
