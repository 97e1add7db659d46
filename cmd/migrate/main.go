package main

import (
	"log"
	"os"

	"planhub-be/internal/model"
	"planhub-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Authoritative GORM Migration...")

	// 3. Pre-Migration: Extensions (Things GORM AutoMigrate doesn't do)
	log.Println("Step 1: Setting up Extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models
	log.Println("Step 2: Running AutoMigrate for 12 Tables...")

	models := []interface{}{
		&model.Organization{},
		&model.Project{},
		&model.Objective{},
		&model.KeyResult{},
		&model.Milestone{},
		&model.Initiative{},
		&model.Sprint{},
		&model.WorkItem{},
		&model.ChatSession{},
		&model.ChatMessage{},
		&model.RetrievalDocument{},
		&model.SequenceCounter{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: Indexes AutoMigrate cannot express
	log.Println("Step 3: Creating Vector and JSONB Indexes...")

	postMigrationSQL := []string{
		// ANN index for cosine retrieval
		`CREATE INDEX IF NOT EXISTS idx_retrieval_documents_embedding
		 ON retrieval_documents USING hnsw (embedding vector_cosine_ops);`,

		// Containment queries on the tenant metadata filter
		`CREATE INDEX IF NOT EXISTS idx_retrieval_documents_metadata
		 ON retrieval_documents USING gin (metadata jsonb_path_ops);`,

		// One active sprint per project
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_sprints_one_active_per_project
		 ON sprints (project_id) WHERE is_active;`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
