package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	"golang.org/x/crypto/bcrypt"

	emailPkg "mikrobot/internal/adapters/email"
	web "mikrobot/internal/adapters/http"
	"mikrobot/internal/adapters/storage"
	achievementStore "mikrobot/internal/adapters/storage/achievement"
	memberStore "mikrobot/internal/adapters/storage/member"
	newsStore "mikrobot/internal/adapters/storage/news"
	publicationStore "mikrobot/internal/adapters/storage/publication"
	"mikrobot/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Initialize database with WAL mode, foreign keys, and busy timeout
	dbPath := envOrDefault("MIKROBOT_DB", "mikrobot.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}
	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database schema: %v", err)
	}

	// Wrap the DB so slow queries get logged
	timedDB := storage.NewTimedDB(db)

	stores := &web.Stores{
		MemberStore:      memberStore.NewSQLiteStore(timedDB),
		NewsStore:        newsStore.NewSQLiteStore(timedDB),
		AchievementStore: achievementStore.NewSQLiteStore(timedDB),
		PublicationStore: publicationStore.NewSQLiteStore(timedDB),
	}

	// Seed sample content so a fresh install renders a populated site
	seedDeps := orchestrators.SeedDeps{
		MemberStore:      stores.MemberStore,
		NewsStore:        stores.NewsStore,
		AchievementStore: stores.AchievementStore,
		PublicationStore: stores.PublicationStore,
	}
	if err := orchestrators.ExecuteSeed(context.Background(), seedDeps); err != nil {
		log.Fatalf("failed to seed sample data: %v", err)
	}

	// Shared admin password: hashed once at startup
	adminPassword := os.Getenv("MIKROBOT_ADMIN_PASSWORD")
	if adminPassword == "" {
		if os.Getenv("MIKROBOT_ENV") == "production" {
			log.Fatal("MIKROBOT_ADMIN_PASSWORD is required in production")
		}
		adminPassword = "mikrobot"
		log.Println("WARNING: using default admin password. Set MIKROBOT_ADMIN_PASSWORD.")
	}
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash admin password: %v", err)
	}

	// Configure contact form delivery
	resendKey := os.Getenv("MIKROBOT_RESEND_KEY")
	contactTo := envOrDefault("MIKROBOT_CONTACT_TO", "mikrobot@example.edu")
	contactFrom := envOrDefault("MIKROBOT_CONTACT_FROM", "MIKROBOT <noreply@example.edu>")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, contactFrom), contactTo, contactFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), contactTo, contactFrom)
		log.Println("Email sender configured (noop, set MIKROBOT_RESEND_KEY for real delivery)")
	}

	mux := web.NewMux(envOrDefault("MIKROBOT_STATIC", "static"), stores, string(passwordHash))

	addr := envOrDefault("MIKROBOT_ADDR", ":8080")
	log.Printf("MIKROBOT %s starting on %s (env=%s)", version, addr, envOrDefault("MIKROBOT_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
