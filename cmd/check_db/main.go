package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Fatal("Error loading .env file")
	}

	// Database connection
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_SSLMODE"),
		os.Getenv("DB_TIMEZONE"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	fmt.Println("✅ Connected to database")
	fmt.Println()

	// Check if the canvas table exists
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM information_schema.tables
			WHERE table_name = 'canvas_documents'
		)
	`
	if err := db.Raw(query).Scan(&exists).Error; err != nil {
		log.Fatal("Failed to check canvas_documents table:", err)
	}

	fmt.Printf("📊 canvas_documents table exists: %v\n", exists)
	fmt.Println()

	if !exists {
		fmt.Println("❌ canvas_documents table does NOT exist!")
		fmt.Println("⚠️  Run the server once to apply migrations")
		return
	}

	// Canvas statistics
	type CanvasStats struct {
		Total    int64
		NonEmpty int64
	}
	var stats CanvasStats
	query = `
		SELECT
			COUNT(*) as total,
			COUNT(CASE WHEN elements::text <> '[]' THEN 1 END) as non_empty
		FROM canvas_documents
	`
	if err := db.Raw(query).Scan(&stats).Error; err != nil {
		log.Fatal("Failed to get statistics:", err)
	}

	fmt.Println("📈 Canvas Statistics:")
	fmt.Printf("  - Total documents: %d\n", stats.Total)
	fmt.Printf("  - Non-empty: %d\n", stats.NonEmpty)
	fmt.Println()

	// Dangling share links (video deleted but link row remains)
	var dangling int64
	query = `
		SELECT COUNT(*)
		FROM shared_links sl
		LEFT JOIN videos v ON v.id = sl.video_id
		WHERE v.id IS NULL
	`
	if err := db.Raw(query).Scan(&dangling).Error; err != nil {
		log.Fatal("Failed to check dangling links:", err)
	}
	fmt.Printf("🔗 Dangling share links: %d\n", dangling)
	fmt.Println()

	// Recent canvas documents
	type DocInfo struct {
		ID        int64
		VideoID   int64
		UserID    int64
		UpdatedAt string
	}
	var docs []DocInfo
	query = `
		SELECT id, video_id, user_id, updated_at
		FROM canvas_documents
		ORDER BY updated_at DESC
		LIMIT 10
	`
	if err := db.Raw(query).Scan(&docs).Error; err != nil {
		log.Fatal("Failed to get recent documents:", err)
	}

	fmt.Println("🎨 Recent Canvas Documents (last 10):")
	for _, d := range docs {
		fmt.Printf("  - ID: %d, Video: %d, User: %d, Updated: %s\n",
			d.ID, d.VideoID, d.UserID, d.UpdatedAt)
	}
}
