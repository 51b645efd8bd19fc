package main

import (
	"log"
	"os"

	"ai-chat-be/internal/model"
	"ai-chat-be/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

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

	SeedSubscriptionPlans(db)
	log.Println("✅ Seeding completed")
}

// SeedSubscriptionPlans populates the plan catalog. Existing plans are
// matched by name and left untouched.
func SeedSubscriptionPlans(db *gorm.DB) {
	plans := []model.SubscriptionPlan{
		{
			Name:                    "premium_monthly",
			DisplayName:             "Premium Monthly",
			PeriodType:              "monthly",
			Price:                   1190.0,
			ChatRequestsDaily:       50,
			ImageGenerationsMonthly: 100,
			ToolCardsMonthly:        500,
			Description:             strPtr("Premium subscription with extended features"),
			IsActive:                true,
		},
		{
			Name:                    "premium_yearly",
			DisplayName:             "Premium Yearly",
			PeriodType:              "yearly",
			Price:                   11900.0,
			ChatRequestsDaily:       50,
			ImageGenerationsMonthly: 100,
			ToolCardsMonthly:        500,
			Description:             strPtr("Premium subscription billed yearly"),
			IsActive:                true,
		},
		{
			Name:                    "trial_7d",
			DisplayName:             "Trial",
			PeriodType:              "trial",
			Price:                   0,
			ChatRequestsDaily:       25,
			ImageGenerationsMonthly: 10,
			ToolCardsMonthly:        50,
			Description:             strPtr("Seven day trial of premium features"),
			IsActive:                true,
			IsTrial:                 true,
			TrialDurationDays:       intPtr(7),
		},
	}

	for _, plan := range plans {
		var existing model.SubscriptionPlan
		err := db.Where("name = ?", plan.Name).First(&existing).Error
		if err == nil {
			log.Printf("Plan %q already exists, skipping", plan.Name)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			log.Printf("Warn: failed to check plan %q: %v", plan.Name, err)
			continue
		}
		if err := db.Create(&plan).Error; err != nil {
			log.Printf("Warn: failed to create plan %q: %v", plan.Name, err)
			continue
		}
		log.Printf("Created plan %q", plan.Name)
	}
}
