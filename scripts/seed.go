//go:build ignore

package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/trendwave/connect/internal/auth"
	"github.com/trendwave/connect/internal/database"
	"github.com/trendwave/connect/internal/database/models"
	"github.com/trendwave/connect/pkg/config"
	"github.com/trendwave/connect/pkg/util"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Server.Env)

	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	hash, err := auth.HashPassword("demo-password-123")
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	seeds := []models.Tenant{
		{
			Code:               "TWC0001",
			Name:               "Excel Academy",
			RegistrationNumber: "MOE/1/2024",
			ContactEmail:       "admin@excel.ac.ke",
			AdminName:          "Jane Wanjiru",
			Type:               models.TenantTypeSchool,
			Status:             models.TenantStatusActive,
			PasswordHash:       hash,
			Profile: models.JSONMap{
				"level":       "secondary",
				"county":      "Nairobi",
				"student_cap": 1200,
			},
		},
		{
			Code:               "TWCA0001",
			Name:               "Riverside Traders Association",
			RegistrationNumber: "RTA/2023/17",
			ContactEmail:       "secretary@riversidetraders.org",
			AdminName:          "Peter Otieno",
			Type:               models.TenantTypeAssociation,
			Status:             models.TenantStatusPending,
			PasswordHash:       hash,
			Profile: models.JSONMap{
				"member_count": 85,
				"sector":       "retail",
			},
		},
		{
			Code:               "TWCH0001",
			Name:               "St. Mary's Hospital",
			RegistrationNumber: "MOH/44/2022",
			ContactEmail:       "it@stmarys.health",
			AdminName:          "Dr. Amina Hassan",
			Type:               models.TenantTypeHospital,
			Status:             models.TenantStatusActive,
			PasswordHash:       hash,
			Profile: models.JSONMap{
				"beds":      240,
				"emergency": true,
			},
		},
	}

	for i := range seeds {
		if err := db.Where("code = ?", seeds[i].Code).FirstOrCreate(&seeds[i]).Error; err != nil {
			log.Fatalf("failed to seed tenant %s: %v", seeds[i].Code, err)
		}
		fmt.Printf("seeded tenant %s (%s)\n", seeds[i].Code, seeds[i].Name)
	}

	fmt.Println("seed complete, demo password: demo-password-123")
}
