package users

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/muneebabadar/result-management-system-kkamhs/app/database"
	"github.com/muneebabadar/result-management-system-kkamhs/app/helpers"
	"github.com/muneebabadar/result-management-system-kkamhs/app/models"
	"github.com/muneebabadar/result-management-system-kkamhs/app/routes/auth"
)

// ListUsersHandler returns all staff users, newest first
func ListUsersHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := database.GetAllUsers(db)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve users"})
		}
		return c.JSON(fiber.Map{"success": true, "data": users})
	}
}

// CreateUserHandler creates a new staff user
func CreateUserHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		type createUserRequest struct {
			FullName string          `json:"fullName" validate:"required"`
			Email    string          `json:"email" validate:"required,email"`
			Role     models.UserRole `json:"role" validate:"required,oneof=Admin Teacher"`
			Password string          `json:"password" validate:"required,min=8"`
		}

		var req createUserRequest
		if err := c.BodyParser(&req); err != nil {
			return helpers.BadRequest(c, "Invalid request body: "+err.Error())
		}
		if err := helpers.ValidateStruct(&req); err != nil {
			return helpers.BadRequest(c, "All fields are required and the password must be at least 8 characters long")
		}

		hashedPassword, err := auth.HashPassword(req.Password)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
		}

		user := &models.User{
			Name:         req.FullName,
			Email:        req.Email,
			Role:         req.Role,
			PasswordHash: hashedPassword,
		}
		if err := database.CreateUser(db, user); err != nil {
			if database.IsUniqueViolation(err, "") {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already exists"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create user"})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": user})
	}
}

// UpdateUserHandler updates a user's name, role and active status
func UpdateUserHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		type updateUserRequest struct {
			Name   string          `json:"name" validate:"required"`
			Role   models.UserRole `json:"role" validate:"required,oneof=Admin Teacher"`
			Status bool            `json:"status"`
		}

		var req updateUserRequest
		if err := c.BodyParser(&req); err != nil {
			return helpers.BadRequest(c, "Invalid request body: "+err.Error())
		}
		if err := helpers.ValidateStruct(&req); err != nil {
			return helpers.BadRequest(c, "Name and a valid role are required")
		}

		user := &models.User{
			ID:     c.Params("id"),
			Name:   req.Name,
			Role:   req.Role,
			Status: req.Status,
		}
		if err := database.UpdateUser(db, user); err != nil {
			if err == sql.ErrNoRows {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update user"})
		}

		return c.JSON(fiber.Map{"success": true, "data": user})
	}
}
