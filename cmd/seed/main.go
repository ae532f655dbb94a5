package main

import (
	"log"
	"os"
	"time"

	"college-portal-be/internal/constant"
	"college-portal-be/internal/entity"
	"college-portal-be/internal/mapper"
	"college-portal-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Seeds one demo student and one demo faculty member per department.
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

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "changeme123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error: failed to hash seed password: %v", err)
	}

	color.Cyan("Seeding demo accounts")

	userMapper := mapper.NewUserMapper()
	users := make([]*entity.User, 0, len(constant.Departments)*2+1)

	for _, dept := range constant.Departments {
		users = append(users,
			&entity.User{
				Id:           uuid.New(),
				Email:        "student." + dept + "@demo.local",
				FullName:     "Demo Student " + dept,
				PasswordHash: string(hash),
				Role:         entity.RoleStudent,
				Department:   dept,
				Status:       entity.UserStatusActive,
				CreatedAt:    time.Now(),
			},
			&entity.User{
				Id:           uuid.New(),
				Email:        "faculty." + dept + "@demo.local",
				FullName:     "Demo Faculty " + dept,
				PasswordHash: string(hash),
				Role:         entity.RoleFaculty,
				Department:   dept,
				Status:       entity.UserStatusActive,
				CreatedAt:    time.Now(),
			},
		)
	}
	users = append(users, &entity.User{
		Id:           uuid.New(),
		Email:        "admin@demo.local",
		FullName:     "Demo Admin",
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		Status:       entity.UserStatusActive,
		CreatedAt:    time.Now(),
	})

	created := 0
	for _, user := range users {
		var count int64
		db.Table("users").Where("email = ?", user.Email).Count(&count)
		if count > 0 {
			color.Yellow("User '%s' already exists, skipping...", user.Email)
			continue
		}

		if err := db.Create(userMapper.ToModel(user)).Error; err != nil {
			color.Red("Error creating user '%s': %v", user.Email, err)
			continue
		}
		created++
		color.Green("Created %s account: %s", user.Role, user.Email)
	}

	color.Cyan("Seeding completed: %d new accounts", created)
}
