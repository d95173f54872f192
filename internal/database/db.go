package database

import (
	"log"
	"os"
	"time"

	"taskhub/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(dsn string) {
	var err error

	const maxAttempts = 10
	for i := 1; i <= maxAttempts; i++ {
		log.Printf("trying to connect to DB (attempt %d/%d)...", i, maxAttempts)

		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			log.Println("connected to DB successfully")
			break
		}

		log.Printf("failed to connect to DB: %v", err)
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		log.Fatalf("failed to connect to db after %d attempts: %v", maxAttempts, err)
	}

	// миграции
	err = DB.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
		&models.Comment{},
		&models.FileAttachment{},
		&models.Notification{},
		&models.ChatMessage{},
		&models.ChatFileAttachment{},
		&models.TimeLog{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// дефолтный менеджер и тестовый сотрудник
	createDefaultManager()
	seedDefaultEmployee()
}

// менеджер только из кода/конфига, роли через API не повышаются
func createDefaultManager() {
	email := os.Getenv("MANAGER_EMAIL")
	if email == "" {
		email = "manager@taskhub.local"
	}
	password := os.Getenv("MANAGER_PASSWORD")
	if password == "" {
		password = "Manager123!"
	}

	var count int64
	if err := DB.Model(&models.User{}).
		Where("role = ?", models.RoleManager).
		Count(&count).Error; err != nil {
		log.Printf("failed to check manager user: %v", err)
		return
	}
	if count > 0 {
		// менеджер уже есть — ничего не делаем
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("failed to hash default manager password: %v", err)
		return
	}

	manager := models.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Default Manager",
		Role:         models.RoleManager,
	}

	if err := DB.Create(&manager).Error; err != nil {
		log.Printf("failed to create default manager: %v", err)
		return
	}

	log.Printf("created default manager user: %s (password: %s)", email, password)
}

// тестовый сотрудник для демо
func seedDefaultEmployee() {
	email := "employee@taskhub.local"

	var count int64
	if err := DB.Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		log.Printf("failed to check seed user %s: %v", email, err)
		return
	}
	if count > 0 {
		// уже есть — пропускаем
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("Employee123!"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("failed to hash password for %s: %v", email, err)
		return
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Demo Employee",
		Role:         models.RoleEmployee,
	}

	if err := DB.Create(&user).Error; err != nil {
		log.Printf("failed to create seed user %s: %v", email, err)
		return
	}

	log.Printf("created seed user: %s (role=%s)", email, user.Role)
}
