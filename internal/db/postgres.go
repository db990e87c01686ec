package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	if err := initSchema(db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return db
}

// initSchema creates the catalog tables the menu service writes into.
// The ordering core only ever reads them.
func initSchema(db *pgxpool.Pool) error {
	ctx := context.Background()

	// -------------------------------
	// CATEGORIES
	// -------------------------------
	categoriesSQL := `
		CREATE TABLE IF NOT EXISTS categories (
			id VARCHAR(64) PRIMARY KEY,
			restaurant_id VARCHAR(64) NOT NULL,
			name VARCHAR(255) NOT NULL,
			sort_order INT NOT NULL DEFAULT 0
		)
	`
	if _, err := db.Exec(ctx, categoriesSQL); err != nil {
		return err
	}

	// -------------------------------
	// MENU ITEMS + VARIANTS
	// -------------------------------
	menuItemsSQL := `
		CREATE TABLE IF NOT EXISTS menu_items (
			id VARCHAR(64) PRIMARY KEY,
			restaurant_id VARCHAR(64) NOT NULL,
			category_id VARCHAR(64) NOT NULL REFERENCES categories(id),
			name VARCHAR(255) NOT NULL,
			family VARCHAR(32) NOT NULL DEFAULT 'generic',
			base_price NUMERIC(10,2) NOT NULL DEFAULT 0,
			prep_minutes INT NOT NULL DEFAULT 0,
			allows_custom_toppings BOOLEAN NOT NULL DEFAULT FALSE,
			default_toppings JSONB,
			sort_order INT NOT NULL DEFAULT 0
		)
	`
	if _, err := db.Exec(ctx, menuItemsSQL); err != nil {
		return err
	}

	variantsSQL := `
		CREATE TABLE IF NOT EXISTS variants (
			id VARCHAR(64) PRIMARY KEY,
			menu_item_id VARCHAR(64) NOT NULL REFERENCES menu_items(id),
			name VARCHAR(255) NOT NULL,
			size_code VARCHAR(32) NOT NULL,
			type_code VARCHAR(32) NOT NULL,
			price NUMERIC(10,2) NOT NULL,
			serves VARCHAR(32),
			piece_count INT,
			sort_order INT NOT NULL DEFAULT 0,
			UNIQUE (menu_item_id, size_code, type_code)
		)
	`
	if _, err := db.Exec(ctx, variantsSQL); err != nil {
		return err
	}

	// -------------------------------
	// ADD-ONS
	// -------------------------------
	addOnsSQL := `
		CREATE TABLE IF NOT EXISTS toppings (
			id VARCHAR(64) PRIMARY KEY,
			restaurant_id VARCHAR(64) NOT NULL,
			name VARCHAR(255) NOT NULL,
			category VARCHAR(64) NOT NULL,
			base_price NUMERIC(10,2) NOT NULL DEFAULT 0,
			premium BOOLEAN NOT NULL DEFAULT FALSE,
			applies_to TEXT[] NOT NULL DEFAULT '{}'
		);

		CREATE TABLE IF NOT EXISTS modifiers (
			id VARCHAR(64) PRIMARY KEY,
			restaurant_id VARCHAR(64) NOT NULL,
			name VARCHAR(255) NOT NULL,
			category VARCHAR(64) NOT NULL,
			price_adjustment NUMERIC(10,2) NOT NULL DEFAULT 0,
			applies_to TEXT[] NOT NULL DEFAULT '{}'
		);

		CREATE TABLE IF NOT EXISTS customizations (
			id VARCHAR(64) PRIMARY KEY,
			restaurant_id VARCHAR(64) NOT NULL,
			name VARCHAR(255) NOT NULL,
			category VARCHAR(64) NOT NULL,
			price NUMERIC(10,2) NOT NULL DEFAULT 0,
			applies_to TEXT[] NOT NULL DEFAULT '{}'
		);
	`
	if _, err := db.Exec(ctx, addOnsSQL); err != nil {
		return err
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}
