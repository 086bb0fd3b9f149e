package main

import (
	"log"
	"os"
	"time"

	"prompttovideo-be/internal/model"
	"prompttovideo-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func main() {
	// Load Environment Variables
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

	seedAdminUser(db)
	seedChallenges(db)
	seedPromptPacks(db)

	color.Green("✅ Seeding completed!")
}

func seedAdminUser(db *gorm.DB) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL / ADMIN_PASSWORD not set, skipping admin seed...")
		return
	}

	var existing model.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		color.Yellow("Admin '%s' already exists, skipping...", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing admin password: %v", err)
		return
	}

	hashStr := string(hash)
	now := time.Now()
	admin := model.User{
		Email:            email,
		PasswordHash:     &hashStr,
		DisplayName:      "Administrator",
		Role:             "admin",
		Status:           "active",
		EmailVerified:    true,
		EmailVerifiedAt:  &now,
		SubscriptionTier: "enterprise",
		Credits:          -1,
		ReferralCode:     "ADMIN001",
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Error creating admin user: %v", err)
	} else {
		color.Green("Created admin user: %s", email)
	}
}

func seedChallenges(db *gorm.DB) {
	color.Cyan("Seeding Challenges...")

	now := time.Now()
	challenges := []model.Challenge{
		{
			Title:        "Neon Cityscapes",
			Description:  "Generate the most striking cyberpunk city scene. Rain, neon and holograms encouraged.",
			Theme:        "cyberpunk",
			StartsAt:     now,
			EndsAt:       now.Add(7 * 24 * time.Hour),
			VotingEndsAt: now.Add(10 * 24 * time.Hour),
		},
		{
			Title:        "Nature in Motion",
			Description:  "Waterfalls, storms, migrations. Show the natural world moving.",
			Theme:        "nature",
			StartsAt:     now.Add(7 * 24 * time.Hour),
			EndsAt:       now.Add(14 * 24 * time.Hour),
			VotingEndsAt: now.Add(17 * 24 * time.Hour),
		},
	}

	for _, c := range challenges {
		var existing model.Challenge
		if err := db.Where("title = ?", c.Title).First(&existing).Error; err == nil {
			color.Yellow("Challenge '%s' already exists, skipping...", c.Title)
			continue
		}
		if err := db.Create(&c).Error; err != nil {
			log.Printf("Error creating challenge '%s': %v", c.Title, err)
		} else {
			color.Green("Created challenge: %s", c.Title)
		}
	}
}

func seedPromptPacks(db *gorm.DB) {
	color.Cyan("Seeding Prompt Packs...")

	packs := []model.PromptPack{
		{
			Name:        "Cinematic Basics",
			Description: "Starter prompts with proven camera and lighting language.",
			Category:    "cinematic",
			Prompts: datatypes.JSON([]byte(`[
				"A slow dolly shot through a misty pine forest at dawn, volumetric light",
				"Aerial drone shot circling a lighthouse during a storm, dramatic waves",
				"Close-up of rain drops hitting a window, city bokeh in the background"
			]`)),
		},
		{
			Name:        "Sci-Fi Worlds",
			Description: "Futuristic settings, ships and alien landscapes.",
			Category:    "sci-fi",
			Prompts: datatypes.JSON([]byte(`[
				"A massive generation ship drifting past a ringed gas giant",
				"Street level view of a floating market on a terraformed Mars colony",
				"Bioluminescent alien jungle at night, strange fauna moving in the canopy"
			]`)),
		},
		{
			Name:        "Food & Macro",
			Description: "Appetizing close-ups and satisfying slow motion.",
			Category:    "food",
			Premium:     true,
			Prompts: datatypes.JSON([]byte(`[
				"Extreme macro of honey dripping onto a stack of pancakes, golden hour",
				"Slow motion chocolate shell cracking over ice cream",
				"Steam rising from a bowl of ramen, shallow depth of field"
			]`)),
		},
	}

	for _, p := range packs {
		var existing model.PromptPack
		if err := db.Where("name = ?", p.Name).First(&existing).Error; err == nil {
			color.Yellow("Prompt pack '%s' already exists, skipping...", p.Name)
			continue
		}
		if err := db.Create(&p).Error; err != nil {
			log.Printf("Error creating prompt pack '%s': %v", p.Name, err)
		} else {
			color.Green("Created prompt pack: %s", p.Name)
		}
	}
}
