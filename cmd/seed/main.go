package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/streamchat-api/config"
	"github.com/oksasatya/streamchat-api/pkg/helpers"
)

// Seeds two demo users and links the second into the first one's contact
// list, so a fresh database has something to log in with and list.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	password := "password123"
	aliceID := seedUser(db, "Alice Demo", "alice@streamchat.dev", "+15550000001", password)
	bobID := seedUser(db, "Bob Demo", "bob@streamchat.dev", "+15550000002", password)

	if _, err := db.Exec(`
		INSERT INTO contacts (owner_id, contact_id)
		VALUES ($1, $2)
		ON CONFLICT (owner_id, contact_id) DO NOTHING
	`, aliceID, bobID); err != nil {
		log.Fatalf("failed to seed contact: %v", err)
	}

	fmt.Printf("seeded users alice=%s bob=%s (password %q), alice has bob as contact\n", aliceID, bobID, password)
}

func seedUser(db *sql.DB, name, email, phone, password string) string {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (name, email, phone_number, password_hash)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, name, email, phone, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user %s: %v", email, err)
	}
	return id
}
