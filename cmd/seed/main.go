package main

import (
	"log"
	"os"
	"time"

	"ai-docchat-be/internal/constant"
	"ai-docchat-be/internal/model"
	"ai-docchat-be/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Seeds the initial admin account. Idempotent: an existing admin row is left
// untouched.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	adminId := getenvDefault("SEED_ADMIN_EMPLOYEE_ID", "ADMIN001")
	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		log.Fatal("Error: SEED_ADMIN_PASSWORD is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	var count int64
	if err := db.Model(&model.User{}).Where("employee_id = ?", adminId).Count(&count).Error; err != nil {
		log.Fatal("Error: Failed to check existing admin:", err)
	}
	if count > 0 {
		log.Printf("Admin %s already exists, nothing to do.", adminId)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Error: Failed to hash password:", err)
	}

	admin := model.User{
		EmployeeId:   adminId,
		Name:         "System",
		Surname:      "Administrator",
		PasswordHash: string(hash),
		Role:         constant.RoleAdmin,
		CreatedAt:    time.Now(),
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal("Error: Failed to create admin:", err)
	}

	log.Printf("Admin %s created.", adminId)
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
