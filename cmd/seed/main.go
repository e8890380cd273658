package main

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/artisanmarket/marketplace-api/config"
	"github.com/artisanmarket/marketplace-api/pkg/helpers"
)

// Seeds a demo seller with a shop and a few products for local development.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@artisanmarket.dev"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = db.QueryRow(`
		SELECT id FROM users WHERE lower(email) = lower($1)
	`, email).Scan(&userID)
	if err == sql.ErrNoRows {
		userID = uuid.Must(uuid.NewV7()).String()
		if _, err := db.Exec(`
			INSERT INTO users (id, email, password_hash)
			VALUES ($1, $2, $3)
		`, userID, email, hash); err != nil {
			log.Fatalf("failed to seed user: %v", err)
		}
	} else if err != nil {
		log.Fatalf("failed to look up user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", userID, email, password)

	var shopID string
	err = db.QueryRow(`
		SELECT id FROM shops WHERE user_id = $1 AND deleted_at IS NULL
	`, userID).Scan(&shopID)
	if err == sql.ErrNoRows {
		shopID = uuid.Must(uuid.NewV7()).String()
		if _, err := db.Exec(`
			INSERT INTO shops (id, user_id, name, slug, description)
			VALUES ($1, $2, $3, $4, $5)
		`, shopID, userID, "Pracownia Ceramiki", "pracownia-ceramiki",
			"Hand-thrown stoneware from a small studio."); err != nil {
			log.Fatalf("failed to seed shop: %v", err)
		}
	} else if err != nil {
		log.Fatalf("failed to look up shop: %v", err)
	}
	fmt.Printf("seeded shop: id=%s slug=pracownia-ceramiki\n", shopID)

	products := []struct {
		name, description, price string
	}{
		{"Stoneware Mug", "350ml mug, dishwasher safe.", "19.90"},
		{"Serving Bowl", "Large glazed bowl, 24cm.", "45.00"},
		{"Espresso Cup Set", "Set of two 80ml cups.", "29.50"},
	}
	for _, p := range products {
		res, err := db.Exec(`
			INSERT INTO products (id, shop_id, name, description, price)
			SELECT $1, $2, $3, $4, $5
			WHERE NOT EXISTS (
				SELECT 1 FROM products WHERE shop_id = $2 AND name = $3 AND deleted_at IS NULL
			)
		`, uuid.Must(uuid.NewV7()).String(), shopID, p.name, p.description, p.price)
		if err != nil {
			log.Fatalf("failed to seed product %q: %v", p.name, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			fmt.Printf("seeded product: %s (%s)\n", p.name, p.price)
		}
	}
}
