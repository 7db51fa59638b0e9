package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/muneebabadar/result-management-system-kkamhs/app/config"
	"github.com/muneebabadar/result-management-system-kkamhs/app/database"
	"github.com/muneebabadar/result-management-system-kkamhs/app/models"
	"github.com/muneebabadar/result-management-system-kkamhs/app/routes/auth"
)

// Creates the first admin account so the API has a login to start from.
func main() {
	name := flag.String("name", "Administrator", "full name of the admin user")
	email := flag.String("email", "", "login email (required)")
	password := flag.String("password", "", "login password (required)")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Println("Usage: add_admin -email admin@school.edu -password <password> [-name \"Full Name\"]")
		os.Exit(1)
	}

	config.LoadEnv()
	config.InitDB()
	db := config.GetDB()
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		fmt.Printf("Failed to run migrations: %v\n", err)
		os.Exit(1)
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Printf("Failed to hash password: %v\n", err)
		os.Exit(1)
	}

	user := &models.User{
		Name:         *name,
		Email:        *email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		Status:       true,
	}
	if err := database.CreateUser(db, user); err != nil {
		if database.IsUniqueViolation(err, "") {
			fmt.Printf("A user with email %s already exists\n", *email)
		} else {
			fmt.Printf("Error creating user: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Printf("Admin created successfully: %s (%s)\n", user.Name, user.Email)
}
