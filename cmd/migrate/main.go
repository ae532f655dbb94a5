package main

import (
	"log"
	"os"

	"college-portal-be/internal/model"
	"college-portal-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Starting GORM migration")

	color.Yellow("Step 1: Setting up extensions")
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			color.Red("Warn: failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	color.Yellow("Step 2: Running AutoMigrate")
	models := []interface{}{
		&model.User{},
		&model.LiveChatSession{},
		&model.LiveChatMessage{},
		&model.Notice{},
		&model.ChatbotExchange{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	color.Green("Migration completed: %d tables", len(models))
}
