package web

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"mikrobot/internal/application/orchestrators"
)

// handleAdminAchievements lists achievements for management.
func handleAdminAchievements(w http.ResponseWriter, r *http.Request) {
	list, err := stores.AchievementStore.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "admin/achievements.html", map[string]any{"Achievements": list})
}

// handleAdminAchievementAdd renders the add form and creates an achievement.
func handleAdminAchievementAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		renderTemplate(w, r, "admin/achievement_form.html", nil)
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

	_, err = orchestrators.ExecuteCreateAchievement(r.Context(), orchestrators.AchievementInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Date:        r.FormValue("date"),
		Uploads:     ups,
	}, achievementDeps())
	if err != nil {
		if !flashUploadError(w, err) {
			setFlash(w, "warning", "Wypełnij wszystkie wymagane pola.")
		}
		http.Redirect(w, r, "/skrwaw/achievements/add", http.StatusSeeOther)
		return
	}
	setFlash(w, "success", "Dodano osiągnięcie.")
	http.Redirect(w, r, "/skrwaw/achievements", http.StatusSeeOther)
}

// handleAdminAchievementEdit renders the edit form and rewrites an achievement.
func handleAdminAchievementEdit(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		notFoundRedirect(w, r, "/skrwaw/achievements")
		return
	}

	if r.Method == http.MethodGet {
		a, err := stores.AchievementStore.GetByID(r.Context(), id)
		if errors.Is(err, sql.ErrNoRows) {
			notFoundRedirect(w, r, "/skrwaw/achievements")
			return
		}
		if err != nil {
			internalError(w, err)
			return
		}
		images, err := stores.AchievementStore.Images(r.Context(), id)
		if err != nil {
			internalError(w, err)
			return
		}
		renderTemplate(w, r, "admin/achievement_form.html", map[string]any{
			"Achievement": a,
			"Images":      images,
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

	err = orchestrators.ExecuteUpdateAchievement(r.Context(), orchestrators.AchievementInput{
		ID:          id,
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Date:        r.FormValue("date"),
		Uploads:     ups,
	}, achievementDeps())
	switch {
	case errors.Is(err, orchestrators.ErrNotFound):
		notFoundRedirect(w, r, "/skrwaw/achievements")
		return
	case err != nil:
		if !flashUploadError(w, err) {
			setFlash(w, "warning", "Wypełnij wszystkie wymagane pola.")
		}
		http.Redirect(w, r, fmt.Sprintf("/skrwaw/achievements/edit/%d", id), http.StatusSeeOther)
		return
	}
	setFlash(w, "success", "Zapisano zmiany.")
	http.Redirect(w, r, "/skrwaw/achievements", http.StatusSeeOther)
}

// handleAdminAchievementDelete removes an achievement with its gallery.
func handleAdminAchievementDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		notFoundRedirect(w, r, "/skrwaw/achievements")
		return
	}

	err = orchestrators.ExecuteDeleteAchievement(r.Context(), id, achievementDeps())
	switch {
	case errors.Is(err, orchestrators.ErrNotFound):
		notFoundRedirect(w, r, "/skrwaw/achievements")
		return
	case err != nil:
		internalError(w, err)
		return
	}
	setFlash(w, "success", "Usunięto osiągnięcie.")
	http.Redirect(w, r, "/skrwaw/achievements", http.StatusSeeOther)
}

// handleAdminAchievementImageDelete detaches one gallery image.
func handleAdminAchievementImageDelete(w http.ResponseWriter, r *http.Request) {
	imageID, err := parseID(r, "imageID")
	if err != nil {
		notFoundRedirect(w, r, "/skrwaw/achievements")
		return
	}

	ownerID, err := orchestrators.ExecuteDeleteAchievementImage(r.Context(), imageID, achievementDeps())
	switch {
	case errors.Is(err, orchestrators.ErrNotFound):
		notFoundRedirect(w, r, "/skrwaw/achievements")
		return
	case err != nil:
		internalError(w, err)
		return
	}
	setFlash(w, "success", "Usunięto zdjęcie.")
	http.Redirect(w, r, fmt.Sprintf("/skrwaw/achievements/edit/%d", ownerID), http.StatusSeeOther)
}

// handleAdminPublications lists publications for management.
func handleAdminPublications(w http.ResponseWriter, r *http.Request) {
	list, err := stores.PublicationStore.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "admin/publications.html", map[string]any{"Publications": list})
}

// handleAdminPublicationAdd renders the add form and creates a publication.
func handleAdminPublicationAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		renderTemplate(w, r, "admin/publication_form.html", nil)
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

	_, err = orchestrators.ExecuteCreatePublication(r.Context(), orchestrators.PublicationInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Date:        r.FormValue("date"),
		Uploads:     ups,
	}, publicationDeps())
	if err != nil {
		if !flashUploadError(w, err) {
			setFlash(w, "warning", "Wypełnij wszystkie wymagane pola.")
		}
		http.Redirect(w, r, "/skrwaw/publications/add", http.StatusSeeOther)
		return
	}
	setFlash(w, "success", "Dodano publikację.")
	http.Redirect(w, r, "/skrwaw/publications", http.StatusSeeOther)
}

// handleAdminPublicationEdit renders the edit form and rewrites a publication.
func handleAdminPublicationEdit(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		notFoundRedirect(w, r, "/skrwaw/publications")
		return
	}

	if r.Method == http.MethodGet {
		p, err := stores.PublicationStore.GetByID(r.Context(), id)
		if errors.Is(err, sql.ErrNoRows) {
			notFoundRedirect(w, r, "/skrwaw/publications")
			return
		}
		if err != nil {
			internalError(w, err)
			return
		}
		images, err := stores.PublicationStore.Images(r.Context(), id)
		if err != nil {
			internalError(w, err)
			return
		}
		renderTemplate(w, r, "admin/publication_form.html", map[string]any{
			"Publication": p,
			"Images":      images,
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

	err = orchestrators.ExecuteUpdatePublication(r.Context(), orchestrators.PublicationInput{
		ID:          id,
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Date:        r.FormValue("date"),
		Uploads:     ups,
	}, publicationDeps())
	switch {
	case errors.Is(err, orchestrators.ErrNotFound):
		notFoundRedirect(w, r, "/skrwaw/publications")
		return
	case err != nil:
		if !flashUploadError(w, err) {
			setFlash(w, "warning", "Wypełnij wszystkie wymagane pola.")
		}
		http.Redirect(w, r, fmt.Sprintf("/skrwaw/publications/edit/%d", id), http.StatusSeeOther)
		return
	}
	setFlash(w, "success", "Zapisano zmiany.")
	http.Redirect(w, r, "/skrwaw/publications", http.StatusSeeOther)
}

// handleAdminPublicationDelete removes a publication with its gallery.
func handleAdminPublicationDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		notFoundRedirect(w, r, "/skrwaw/publications")
		return
	}

	err = orchestrators.ExecuteDeletePublication(r.Context(), id, publicationDeps())
	switch {
	case errors.Is(err, orchestrators.ErrNotFound):
		notFoundRedirect(w, r, "/skrwaw/publications")
		return
	case err != nil:
		internalError(w, err)
		return
	}
	setFlash(w, "success", "Usunięto publikację.")
	http.Redirect(w, r, "/skrwaw/publications", http.StatusSeeOther)
}

// handleAdminPublicationImageDelete detaches one gallery image.
func handleAdminPublicationImageDelete(w http.ResponseWriter, r *http.Request) {
	imageID, err := parseID(r, "imageID")
	if err != nil {
		notFoundRedirect(w, r, "/skrwaw/publications")
		return
	}

	ownerID, err := orchestrators.ExecuteDeletePublicationImage(r.Context(), imageID, publicationDeps())
	switch {
	case errors.Is(err, orchestrators.ErrNotFound):
		notFoundRedirect(w, r, "/skrwaw/publications")
		return
	case err != nil:
		internalError(w, err)
		return
	}
	setFlash(w, "success", "Usunięto zdjęcie.")
	http.Redirect(w, r, fmt.Sprintf("/skrwaw/publications/edit/%d", ownerID), http.StatusSeeOther)
}

func achievementDeps() orchestrators.AchievementDeps {
	return orchestrators.AchievementDeps{
		AchievementStore: stores.AchievementStore,
		Files:            uploadDir,
		Now:              timeNow,
	}
}

func publicationDeps() orchestrators.PublicationDeps {
	return orchestrators.PublicationDeps{
		PublicationStore: stores.PublicationStore,
		Files:            uploadDir,
		Now:              timeNow,
	}
}
