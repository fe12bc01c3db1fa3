package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/peakplay/coaching-api/internal/models"
	"github.com/peakplay/coaching-api/pkg/config"
	"github.com/peakplay/coaching-api/pkg/database"
)

// Seeds or resets a back office account. Intended for first-boot setup and
// password recovery; the API itself has no self-registration.
func main() {
	var (
		email    string
		password string
		fullName string
		role     string
	)

	flag.StringVar(&email, "email", "", "account email (required)")
	flag.StringVar(&password, "password", "", "account password (required)")
	flag.StringVar(&fullName, "name", "Coach", "display name")
	flag.StringVar(&role, "role", string(models.RoleOwner), "role, OWNER or COACH")
	flag.Parse()

	if email == "" || password == "" {
		flag.Usage()
		os.Exit(2)
	}
	adminRole := models.AdminRole(strings.ToUpper(role))
	if adminRole != models.RoleOwner && adminRole != models.RoleCoach {
		log.Fatalf("unknown role %q", role)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	now := time.Now().UTC()
	email = strings.ToLower(strings.TrimSpace(email))
	result, err := db.Exec(`
		INSERT INTO admin_users (id, email, password_hash, full_name, role, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, $6, $6)
		ON CONFLICT (email) DO UPDATE
		SET password_hash = EXCLUDED.password_hash,
		    full_name = EXCLUDED.full_name,
		    role = EXCLUDED.role,
		    active = TRUE,
		    updated_at = EXCLUDED.updated_at`,
		uuid.NewString(), email, string(hash), fullName, adminRole, now)
	if err != nil {
		log.Fatalf("failed to upsert account: %v", err)
	}

	rows, _ := result.RowsAffected()
	fmt.Printf("account %s ready (%s, rows affected: %d)\n", email, adminRole, rows)
}
