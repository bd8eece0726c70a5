// Command seed provisions a dashboard operator account. There is no
// self-registration path, so the first operator has to come from here.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	"floramia-be/internal/admin"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	_ = godotenv.Load()

	email := flag.String("email", os.Getenv("ADMIN_EMAIL"), "operator email")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "operator password")
	name := flag.String("name", "Admin", "operator display name")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("email and password are required (flags or ADMIN_EMAIL/ADMIN_PASSWORD)")
	}

	db, err := sql.Open("postgres", dsnFromEnv())
	if err != nil {
		log.Fatalf("failed to connect db: %v", err)
	}
	defer db.Close()

	hash, err := admin.HashPassword(*password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	_, err = db.Exec(`
		INSERT INTO operators (id, email, password_hash, name, created_at)
		VALUES ($1, lower($2), $3, $4, NOW())
		ON CONFLICT (email) DO UPDATE SET password_hash = $3, name = $4
	`, uuid.New().String(), *email, hash, *name)
	if err != nil {
		log.Fatalf("failed to upsert operator: %v", err)
	}

	fmt.Printf("operator %s is ready\n", *email)
}

func dsnFromEnv() string {
	if url := os.Getenv("DB_URL"); url != "" {
		return url
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"), os.Getenv("DB_PORT"),
	)
}
