package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/muneebabadar/result-management-system-kkamhs/app/config"
	"github.com/muneebabadar/result-management-system-kkamhs/app/database"
	"github.com/muneebabadar/result-management-system-kkamhs/app/routes/academic"
	"github.com/muneebabadar/result-management-system-kkamhs/app/routes/auth"
	"github.com/muneebabadar/result-management-system-kkamhs/app/routes/classes"
	"github.com/muneebabadar/result-management-system-kkamhs/app/routes/dashboard"
	"github.com/muneebabadar/result-management-system-kkamhs/app/routes/grades"
	"github.com/muneebabadar/result-management-system-kkamhs/app/routes/promotions"
	"github.com/muneebabadar/result-management-system-kkamhs/app/routes/reports"
	"github.com/muneebabadar/result-management-system-kkamhs/app/routes/students"
	"github.com/muneebabadar/result-management-system-kkamhs/app/routes/users"
)

// errorHandler keeps unhandled errors in the same JSON envelope the
// handlers use
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	config.LoadEnv()

	config.InitDB()
	defer config.GetDB().Close()

	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      "KKAMHS Result Management",
		ErrorHandler: errorHandler,
	})

	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	db := config.GetDB()
	auth.SetupAuthRoutes(app, db)
	users.RegisterRoutes(app, db)
	academic.RegisterRoutes(app, db)
	classes.RegisterRoutes(app, db)
	students.RegisterRoutes(app, db)
	grades.RegisterRoutes(app, db)
	reports.RegisterRoutes(app, db)
	promotions.RegisterRoutes(app, db)
	dashboard.RegisterRoutes(app, db)

	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	})

	port := config.Getenv("PORT", "8080")
	log.Println("Server starting on :" + port)
	log.Fatal(app.Listen(":" + port))
}
