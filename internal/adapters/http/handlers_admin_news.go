package web

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"mikrobot/internal/application/orchestrators"
)

// handleAdminNews lists news entries for management.
func handleAdminNews(w http.ResponseWriter, r *http.Request) {
	list, err := stores.NewsStore.List(r.Context(), 0)
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "admin/news.html", map[string]any{"News": list})
}

// handleAdminNewsAdd renders the add form and creates a news entry with its
// gallery.
func handleAdminNewsAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		renderTemplate(w, r, "admin/news_form.html", nil)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	ups, closer, err := uploadsFromForm(r, "images")
	if err != nil {
		internalError(w, err)
		return
	}
	defer closer()

	_, err = orchestrators.ExecuteCreateNews(r.Context(), orchestrators.CreateNewsInput{
		Title:   r.FormValue("title"),
		Content: r.FormValue("content"),
		Uploads: ups,
	}, newsDeps())
	if err != nil {
		if !flashUploadError(w, err) {
			setFlash(w, "warning", "Tytuł i treść nie mogą być puste.")
		}
		http.Redirect(w, r, "/skrwaw/news/add", http.StatusSeeOther)
		return
	}
	setFlash(w, "success", "Dodano aktualność.")
	http.Redirect(w, r, "/skrwaw/news", http.StatusSeeOther)
}

// handleAdminNewsEdit renders the edit form (with the current gallery) and
// rewrites a news entry.
func handleAdminNewsEdit(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		notFoundRedirect(w, r, "/skrwaw/news")
		return
	}

	if r.Method == http.MethodGet {
		n, err := stores.NewsStore.GetByID(r.Context(), id)
		if errors.Is(err, sql.ErrNoRows) {
			notFoundRedirect(w, r, "/skrwaw/news")
			return
		}
		if err != nil {
			internalError(w, err)
			return
		}
		images, err := stores.NewsStore.Images(r.Context(), id)
		if err != nil {
			internalError(w, err)
			return
		}
		renderTemplate(w, r, "admin/news_form.html", map[string]any{
			"News":   n,
			"Images": images,
		})
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	ups, closer, err := uploadsFromForm(r, "images")
	if err != nil {
		internalError(w, err)
		return
	}
	defer closer()

	err = orchestrators.ExecuteUpdateNews(r.Context(), orchestrators.UpdateNewsInput{
		ID:      id,
		Title:   r.FormValue("title"),
		Content: r.FormValue("content"),
		Uploads: ups,
	}, newsDeps())
	switch {
	case errors.Is(err, orchestrators.ErrNotFound):
		notFoundRedirect(w, r, "/skrwaw/news")
		return
	case err != nil:
		if !flashUploadError(w, err) {
			setFlash(w, "warning", "Tytuł i treść nie mogą być puste.")
		}
		http.Redirect(w, r, fmt.Sprintf("/skrwaw/news/edit/%d", id), http.StatusSeeOther)
		return
	}
	setFlash(w, "success", "Zapisano zmiany.")
	http.Redirect(w, r, "/skrwaw/news", http.StatusSeeOther)
}

// handleAdminNewsDelete removes a news entry, its gallery rows, and files.
func handleAdminNewsDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		notFoundRedirect(w, r, "/skrwaw/news")
		return
	}

	err = orchestrators.ExecuteDeleteNews(r.Context(), id, newsDeps())
	switch {
	case errors.Is(err, orchestrators.ErrNotFound):
		notFoundRedirect(w, r, "/skrwaw/news")
		return
	case err != nil:
		internalError(w, err)
		return
	}
	setFlash(w, "success", "Usunięto aktualność.")
	http.Redirect(w, r, "/skrwaw/news", http.StatusSeeOther)
}

// handleAdminNewsImageDelete detaches one gallery image and returns to the
// owning entry's edit form.
func handleAdminNewsImageDelete(w http.ResponseWriter, r *http.Request) {
	imageID, err := parseID(r, "imageID")
	if err != nil {
		notFoundRedirect(w, r, "/skrwaw/news")
		return
	}

	newsID, err := orchestrators.ExecuteDeleteNewsImage(r.Context(), imageID, newsDeps())
	switch {
	case errors.Is(err, orchestrators.ErrNotFound):
		notFoundRedirect(w, r, "/skrwaw/news")
		return
	case err != nil:
		internalError(w, err)
		return
	}
	setFlash(w, "success", "Usunięto zdjęcie.")
	http.Redirect(w, r, fmt.Sprintf("/skrwaw/news/edit/%d", newsID), http.StatusSeeOther)
}

func newsDeps() orchestrators.NewsDeps {
	return orchestrators.NewsDeps{
		NewsStore: stores.NewsStore,
		Files:     uploadDir,
		Now:       timeNow,
	}
}
