package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"contactly/internal/contacts"
	"contactly/internal/shared/config"
	"contactly/internal/shared/database"
	"contactly/internal/users"
	"contactly/pkg/gravatar"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Contactly Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"contacts",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	userIDs, err := s.SeedUsers()
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	if err := s.SeedContacts(userIDs); err != nil {
		return fmt.Errorf("failed to seed contacts: %w", err)
	}

	// Clear Redis so cached profiles do not outlive the reseed.
	if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
		log.Printf("Warning: Failed to clear Redis cache: %v", err)
	}

	return nil
}

// SeedUsers creates two confirmed accounts and one pending confirmation.
func (s *Seeder) SeedUsers() (map[string]uuid.UUID, error) {
	fmt.Println("  👤 Seeding users...")

	userIDs := make(map[string]uuid.UUID)

	// All seeded accounts share the password "qwerty".
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usersData := []struct {
		key       string
		username  string
		email     string
		confirmed bool
	}{
		{"alice", "alice", "alice@example.com", true},
		{"bob", "bob", "bob@example.com", true},
		{"carol", "carol", "carol@example.com", false},
	}

	for _, userData := range usersData {
		user := users.User{
			ID:        uuid.New(),
			Username:  userData.username,
			Email:     userData.email,
			Password:  string(hashedPassword),
			Avatar:    gravatar.URL(userData.email, 200),
			Confirmed: userData.confirmed,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", userData.email, err)
		}

		userIDs[userData.key] = user.ID
		fmt.Printf("    ✅ Created user: %s (confirmed=%v)\n", user.Email, user.Confirmed)
	}

	return userIDs, nil
}

// SeedContacts creates sample contacts for the confirmed accounts.
func (s *Seeder) SeedContacts(userIDs map[string]uuid.UUID) error {
	fmt.Println("  📇 Seeding contacts...")

	birthday := func(month time.Month, day int) *time.Time {
		t := time.Date(1990, month, day, 0, 0, 0, 0, time.UTC)
		return &t
	}

	contactsData := []struct {
		owner          string
		name           string
		email          string
		phone          string
		birthDate      *time.Time
		additionalData string
	}{
		{"alice", "Dave Martin", "dave.martin@example.com", "+1-202-555-0101", birthday(time.March, 14), "met at the Go meetup"},
		{"alice", "Erin Walsh", "erin.walsh@example.com", "+1-202-555-0102", birthday(time.July, 2), ""},
		{"alice", "Frank Ocean", "frank.o@example.com", "+1-202-555-0103", nil, "plumber"},
		{"bob", "Grace Kim", "grace.kim@example.com", "+44-20-7946-0201", birthday(time.December, 25), ""},
		{"bob", "Heidi Lang", "heidi.lang@example.com", "+44-20-7946-0202", birthday(time.September, 9), "college roommate"},
	}

	for _, data := range contactsData {
		ownerID, ok := userIDs[data.owner]
		if !ok {
			return fmt.Errorf("unknown owner %s", data.owner)
		}

		contact := contacts.Contact{
			ID:             uuid.New(),
			Name:           data.name,
			Email:          data.email,
			PhoneNumber:    data.phone,
			BirthDate:      data.birthDate,
			AdditionalData: data.additionalData,
			UserID:         ownerID,
			CreatedAt:      time.Now(),
			UpdatedAt:      time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&contact).Error; err != nil {
			return fmt.Errorf("failed to create contact %s: %w", data.name, err)
		}
		fmt.Printf("    ✅ Created contact: %s for %s\n", contact.Name, data.owner)
	}

	return nil
}
