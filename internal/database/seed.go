package database

import (
	"fmt"
	"log"
	"time"

	"heartlink/backend/internal/config"
	"heartlink/backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedDemoData resets the database and populates it with demo accounts,
// matches and messages. Every seeded account uses the password "password".
//
// Dataset:
//   - 5 female and 5 male accounts plus one admin
//   - 3 matches with short conversations
//
// Compatible with both PostgreSQL and SQLite.
func SeedDemoData(db *gorm.DB, cfg *config.Config) error {
	// --- Fresh start ---
	if err := db.Exec("DELETE FROM messages").Error; err != nil {
		return fmt.Errorf("failed to clear messages: %w", err)
	}
	if err := db.Exec("DELETE FROM matches").Error; err != nil {
		return fmt.Errorf("failed to clear matches: %w", err)
	}
	if err := db.Exec("DELETE FROM users").Error; err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}

	log.Println("Cleared existing data")

	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("password"+cfg.PasswordPepper), cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	type account struct {
		username string
		name     string
		role     models.RoleID
	}
	accounts := []account{
		{"alice", "Alice Park", models.RoleFemale},
		{"beth", "Beth Moreno", models.RoleFemale},
		{"carla", "Carla Jensen", models.RoleFemale},
		{"dina", "Dina Osei", models.RoleFemale},
		{"eva", "Eva Lindqvist", models.RoleFemale},
		{"frank", "Frank Duarte", models.RoleMale},
		{"gary", "Gary Holt", models.RoleMale},
		{"henry", "Henry Abara", models.RoleMale},
		{"ivan", "Ivan Petrov", models.RoleMale},
		{"jonas", "Jonas Weber", models.RoleMale},
		{"root", "The Administrator", models.RoleAdmin},
	}

	for i, a := range accounts {
		user := models.User{
			Username:     a.username,
			PasswordHash: string(hash),
			Name:         a.name,
			Birthday:     time.Date(1990+i%8, time.Month(1+i%12), 1+i%28, 0, 0, 0, 0, time.UTC),
			Occupation:   "unemployed",
			Bio:          fmt.Sprintf("Hi, I'm %s.", a.name),
			RoleID:       a.role,
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user %s: %w", a.username, err)
		}
	}
	log.Printf("Seeded %d users.", len(accounts))

	// --- Matches with conversations ---
	pairs := [][2]string{
		{"alice", "frank"},
		{"beth", "gary"},
		{"carla", "henry"},
	}
	for _, p := range pairs {
		a, b := models.NormalizePair(p[0], p[1])
		match := models.Match{UserA: a, UserB: b}
		if err := db.Create(&match).Error; err != nil {
			return fmt.Errorf("failed to seed match %s/%s: %w", a, b, err)
		}

		messages := []models.Message{
			{UserA: a, UserB: b, Sender: p[0], Content: "Hey, we matched!"},
			{UserA: a, UserB: b, Sender: p[1], Content: "Hi! Nice to meet you."},
			{UserA: a, UserB: b, Sender: p[0], Content: "Likewise. How's your week going?"},
		}
		for i := range messages {
			messages[i].CreatedAt = time.Now().Add(time.Duration(i-3) * time.Minute)
			if err := db.Create(&messages[i]).Error; err != nil {
				return fmt.Errorf("failed to seed message: %w", err)
			}
		}
	}
	log.Printf("Seeded %d matches with conversations.", len(pairs))

	return nil
}
