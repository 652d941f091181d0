package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"mikrobot/internal/adapters/email"
	"mikrobot/internal/adapters/http/middleware"
	achievementStore "mikrobot/internal/adapters/storage/achievement"
	memberStore "mikrobot/internal/adapters/storage/member"
	newsStore "mikrobot/internal/adapters/storage/news"
	publicationStore "mikrobot/internal/adapters/storage/publication"
	"mikrobot/internal/adapters/uploads"
)

// Stores holds all storage dependencies.
type Stores struct {
	MemberStore      memberStore.Store
	NewsStore        newsStore.Store
	AchievementStore achievementStore.Store
	PublicationStore publicationStore.Store
}

// loadCSRFKey reads the CSRF secret from MIKROBOT_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("MIKROBOT_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("MIKROBOT_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("MIKROBOT_ENV") == "production" {
		log.Fatal("MIKROBOT_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set MIKROBOT_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// Global upload directory (set by NewMux)
var uploadDir *uploads.Dir

// adminPasswordHash is the bcrypt hash of the shared admin password.
var adminPasswordHash string

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Contact form configuration
var contactToAddress string
var contactFromAddress string

// SetEmailSender sets the global email sender for the contact form.
func SetEmailSender(sender email.Sender, to, from string) {
	emailSender = sender
	contactToAddress = to
	contactFromAddress = from
}

// NewMux wires HTTP handlers for the site.
func NewMux(staticDir string, s *Stores, passwordHash string) http.Handler {
	stores = s
	adminPasswordHash = passwordHash
	sessions = middleware.NewSessionStore()
	uploadDir = uploads.NewDir(staticDir)
	middleware.SecureCookies = os.Getenv("MIKROBOT_ENV") == "production"

	mux := http.NewServeMux()
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: RequestLog -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.RequestLog,
	)
}
