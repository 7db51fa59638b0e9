package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type Config struct {
	DB        *sql.DB
	JWTSecret []byte
}

var AppConfig *Config

// LoadEnv reads a .env file if present. Real deployments set variables in
// the environment and ship no .env file.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
}

// Getenv returns the value of key or fallback when unset.
func Getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitDB opens the Postgres connection pool and verifies it.
func InitDB() {
	host := Getenv("DB_HOST", "localhost")
	port := Getenv("DB_PORT", "5432")
	user := Getenv("DB_USER", "postgres")
	password := os.Getenv("DB_PASSWORD")
	dbname := Getenv("DB_NAME", "kkamhs")
	sslmode := Getenv("DB_SSLMODE", "disable")

	psqlInfo := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=%s connect_timeout=10",
		host, port, user, dbname, sslmode)
	if password != "" {
		psqlInfo += " password=" + password
	}

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	if err = db.Ping(); err != nil {
		log.Fatalf("Cannot establish database connection to %s:%s/%s: %v", host, port, dbname, err)
	}

	AppConfig = &Config{
		DB:        db,
		JWTSecret: JWTSecret(),
	}
	log.Println("Database connected successfully")
}

func GetDB() *sql.DB {
	return AppConfig.DB
}

// JWTSecret resolves the signing secret from the environment, falling back
// to a development-only value. It does not require InitDB to have run.
func JWTSecret() []byte {
	if AppConfig != nil && len(AppConfig.JWTSecret) > 0 {
		return AppConfig.JWTSecret
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "kkamhs-dev-secret" // development only
	}
	return []byte(secret)
}
