package web

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"mikrobot/internal/adapters/http/middleware"
	"mikrobot/internal/application/orchestrators"
	"mikrobot/internal/application/projections"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// homeFeedLimit is how many news items the home page shows before pointing
// at the archive.
const homeFeedLimit = 5

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

const templatesDir = "internal/adapters/http/templates"

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["Flash"]; !ok {
		data["Flash"] = popFlash(w, r)
	}
	isAdmin := middleware.IsAdmin(r.Context())

	funcMap := template.FuncMap{
		"isAdmin":   func() bool { return isAdmin },
		"csrfToken": func() string { return csrf.Token(r) },
		"staticURL": func(relPath string) string { return "/static/" + relPath },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
	}

	layoutPath := filepath.Join(templatesDir, "layout.html")
	pagePath := filepath.Join(templatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// handleHome renders the landing page with the latest news.
func handleHome(w http.ResponseWriter, r *http.Request) {
	feed, err := projections.QueryNewsFeed(r.Context(), homeFeedLimit,
		projections.NewsFeedDeps{NewsStore: stores.NewsStore})
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "home.html", map[string]any{"Feed": feed})
}

// handleNewsPage renders the full news archive.
func handleNewsPage(w http.ResponseWriter, r *http.Request) {
	feed, err := projections.QueryNewsFeed(r.Context(), 0,
		projections.NewsFeedDeps{NewsStore: stores.NewsStore})
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "news.html", map[string]any{"Feed": feed})
}

// handleMembersPage renders the roster grouped by category.
func handleMembersPage(w http.ResponseWriter, r *http.Request) {
	groups, err := projections.QueryRoster(r.Context(),
		projections.RosterDeps{MemberStore: stores.MemberStore})
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "members.html", map[string]any{"Groups": groups})
}

// handleAchievementsPage renders achievements and publications on one page.
func handleAchievementsPage(w http.ResponseWriter, r *http.Request) {
	sc, err := projections.QueryShowcase(r.Context(), projections.ShowcaseDeps{
		AchievementStore: stores.AchievementStore,
		PublicationStore: stores.PublicationStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "achievements.html", map[string]any{
		"Achievements": sc.Achievements,
		"Publications": sc.Publications,
	})
}

func handleAboutPage(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "about.html", nil)
}

func handleStatutePage(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "statute.html", nil)
}

func handleLinksPage(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "links.html", nil)
}

// handleContact renders the contact page and forwards form submissions to
// the club inbox.
func handleContact(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		renderTemplate(w, r, "contact.html", nil)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	if emailSender == nil {
		setFlash(w, "warning", "Formularz kontaktowy jest chwilowo niedostępny.")
		http.Redirect(w, r, "/contact", http.StatusSeeOther)
		return
	}

	err := orchestrators.ExecuteContact(r.Context(), orchestrators.ContactInput{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Message: r.FormValue("message"),
	}, orchestrators.ContactDeps{
		Sender: emailSender,
		To:     contactToAddress,
		From:   contactFromAddress,
	})
	switch {
	case err == orchestrators.ErrEmptyContactName,
		err == orchestrators.ErrEmptyContactEmail,
		err == orchestrators.ErrEmptyContactMessage:
		setFlash(w, "warning", "Wypełnij wszystkie pola formularza.")
	case err != nil:
		slog.Error("contact_form_failed", "error", err.Error())
		setFlash(w, "danger", "Nie udało się wysłać wiadomości. Spróbuj ponownie później.")
	default:
		setFlash(w, "success", "Wiadomość została wysłana. Dziękujemy!")
	}
	http.Redirect(w, r, "/contact", http.StatusSeeOther)
}
