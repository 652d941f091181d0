package web

import (
	"net/http"

	"mikrobot/internal/adapters/http/middleware"
)

// registerRoutes attaches every page to the mux. Admin routes live under the
// /skrwaw prefix and are gated by RequireAdmin.
func registerRoutes(mux *http.ServeMux) {
	// Public pages
	mux.HandleFunc("GET /{$}", handleHome)
	mux.HandleFunc("GET /news", handleNewsPage)
	mux.HandleFunc("GET /members", handleMembersPage)
	mux.HandleFunc("GET /achievements", handleAchievementsPage)
	mux.HandleFunc("GET /about", handleAboutPage)
	mux.HandleFunc("GET /statute", handleStatutePage)
	mux.HandleFunc("GET /links", handleLinksPage)
	mux.HandleFunc("GET /contact", handleContact)
	mux.HandleFunc("POST /contact", handleContact)

	// Projects and grants were folded into achievements; old links survive.
	redirectAchievements := func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/achievements", http.StatusMovedPermanently)
	}
	mux.HandleFunc("GET /projects", redirectAchievements)
	mux.HandleFunc("GET /grants", redirectAchievements)

	// Admin authentication
	mux.HandleFunc("GET /skrwaw/login", handleAdminLogin)
	mux.HandleFunc("POST /skrwaw/login", handleAdminLogin)
	mux.HandleFunc("GET /skrwaw/logout", handleAdminLogout)

	admin := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, middleware.RequireAdmin(h))
	}

	admin("GET /skrwaw", handleAdminDashboard)
	admin("GET /skrwaw/{$}", handleAdminDashboard)

	admin("GET /skrwaw/members", handleAdminMembers)
	admin("GET /skrwaw/members/add", handleAdminMemberAdd)
	admin("POST /skrwaw/members/add", handleAdminMemberAdd)
	admin("GET /skrwaw/members/edit/{id}", handleAdminMemberEdit)
	admin("POST /skrwaw/members/edit/{id}", handleAdminMemberEdit)
	admin("POST /skrwaw/members/delete/{id}", handleAdminMemberDelete)

	admin("GET /skrwaw/news", handleAdminNews)
	admin("GET /skrwaw/news/add", handleAdminNewsAdd)
	admin("POST /skrwaw/news/add", handleAdminNewsAdd)
	admin("GET /skrwaw/news/edit/{id}", handleAdminNewsEdit)
	admin("POST /skrwaw/news/edit/{id}", handleAdminNewsEdit)
	admin("POST /skrwaw/news/delete/{id}", handleAdminNewsDelete)
	admin("POST /skrwaw/news/delete_image/{imageID}", handleAdminNewsImageDelete)

	admin("GET /skrwaw/achievements", handleAdminAchievements)
	admin("GET /skrwaw/achievements/add", handleAdminAchievementAdd)
	admin("POST /skrwaw/achievements/add", handleAdminAchievementAdd)
	admin("GET /skrwaw/achievements/edit/{id}", handleAdminAchievementEdit)
	admin("POST /skrwaw/achievements/edit/{id}", handleAdminAchievementEdit)
	admin("POST /skrwaw/achievements/delete/{id}", handleAdminAchievementDelete)
	admin("POST /skrwaw/achievements/delete_image/{imageID}", handleAdminAchievementImageDelete)

	admin("GET /skrwaw/publications", handleAdminPublications)
	admin("GET /skrwaw/publications/add", handleAdminPublicationAdd)
	admin("POST /skrwaw/publications/add", handleAdminPublicationAdd)
	admin("GET /skrwaw/publications/edit/{id}", handleAdminPublicationEdit)
	admin("POST /skrwaw/publications/edit/{id}", handleAdminPublicationEdit)
	admin("POST /skrwaw/publications/delete/{id}", handleAdminPublicationDelete)
	admin("POST /skrwaw/publications/delete_image/{imageID}", handleAdminPublicationImageDelete)
}
