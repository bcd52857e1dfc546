package main

import (
	"log"
	"os"
	"time"

	"sahby-assistant-be/internal/constant"
	"sahby-assistant-be/internal/model"
	"sahby-assistant-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// Seeds the default assistant thread for a user, so the first screen load
// shows a named conversation instead of an empty list.
//
// Usage: go run ./cmd/seed <user-uuid>
func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	if len(os.Args) < 2 {
		log.Fatal("Usage: seed <user-uuid>")
	}
	userId, err := uuid.Parse(os.Args[1])
	if err != nil {
		log.Fatal("Error: Invalid user uuid:", err)
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Assistant Thread Seeder...")

	seedDefaultThread(db, userId)

	log.Println("✅ Success: Seeding completed.")
}

func seedDefaultThread(db *gorm.DB, userId uuid.UUID) {
	var count int64
	if err := db.Model(&model.Thread{}).Where("user_id = ?", userId).Count(&count).Error; err != nil {
		log.Fatal("Error: Count failed:", err)
	}
	if count > 0 {
		log.Printf("User %s already has %d thread(s), skipping", userId, count)
		return
	}

	now := time.Now()
	thread := model.Thread{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     constant.DefaultThreadTitle,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.Create(&thread).Error; err != nil {
		log.Fatal("Error: Failed to seed thread:", err)
	}
	log.Printf("Seeded thread %s (%q) for user %s", thread.Id, thread.Title, userId)
}
