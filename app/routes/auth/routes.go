package auth

import (
	"database/sql"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/muneebabadar/result-management-system-kkamhs/app/models"
)

// SetupAuthRoutes registers login, logout and password routes
func SetupAuthRoutes(app *fiber.App, db *sql.DB) {
	authGroup := app.Group("/api/auth")

	// Public routes
	authGroup.Post("/login", LoginHandler(db))
	authGroup.Post("/logout", LogoutHandler())

	// Protected routes
	authGroup.Use(AuthMiddleware)
	authGroup.Get("/me", MeHandler())
	authGroup.Post("/change-password", ChangePasswordHandler(db))
}

// AuthMiddleware validates the JWT and sets the caller's identity on the
// request context. Role gating happens server-side in RoleMiddleware;
// whatever the frontend caches about the session is UX only, never
// a security boundary.
func AuthMiddleware(c *fiber.Ctx) error {
	// Get JWT token from cookie or Authorization header
	tokenString := c.Cookies("jwt_token")
	if tokenString == "" {
		header := c.Get("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			tokenString = strings.TrimPrefix(header, "Bearer ")
		}
	}

	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No token found"})
	}

	claims, err := ValidateJWT(tokenString)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	c.Locals("user_id", claims.UserID)
	c.Locals("user_email", claims.Email)
	c.Locals("user_name", claims.Name)
	c.Locals("user_role", claims.Role)

	return c.Next()
}

// RoleMiddleware rejects callers whose role is not in the allowed set.
// Every mutating route re-checks this on the server regardless of what
// the UI shows or hides.
func RoleMiddleware(allowedRoles ...models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("user_role").(models.UserRole)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No token found"})
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Insufficient permissions"})
	}
}
