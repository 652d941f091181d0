package web

import (
	"database/sql"
	"errors"
	"net/http"

	"mikrobot/internal/application/orchestrators"
	memberdom "mikrobot/internal/domain/member"
)

// handleAdminMembers lists the roster for management.
func handleAdminMembers(w http.ResponseWriter, r *http.Request) {
	members, err := stores.MemberStore.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "admin/members.html", map[string]any{
		"Members":    members,
		"Categories": memberdom.Categories,
	})
}

// handleAdminMemberAdd renders the add form and creates a member.
func handleAdminMemberAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		renderTemplate(w, r, "admin/member_form.html", map[string]any{
			"Categories": memberdom.Categories,
		})
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	photo, closer, err := photoFromForm(r, "photo")
	if err != nil {
		internalError(w, err)
		return
	}
	defer closer()

	_, err = orchestrators.ExecuteAddMember(r.Context(), orchestrators.MemberInput{
		Name:        r.FormValue("name"),
		Role:        r.FormValue("role"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Photo:       photo,
	}, memberDeps())
	if err != nil {
		if flashUploadError(w, err) {
			http.Redirect(w, r, "/skrwaw/members/add", http.StatusSeeOther)
			return
		}
		setFlash(w, "warning", "Wypełnij wszystkie wymagane pola.")
		http.Redirect(w, r, "/skrwaw/members/add", http.StatusSeeOther)
		return
	}
	setFlash(w, "success", "Dodano członka.")
	http.Redirect(w, r, "/skrwaw/members", http.StatusSeeOther)
}

// handleAdminMemberEdit renders the edit form and rewrites a member.
func handleAdminMemberEdit(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		notFoundRedirect(w, r, "/skrwaw/members")
		return
	}

	if r.Method == http.MethodGet {
		m, err := stores.MemberStore.GetByID(r.Context(), id)
		if errors.Is(err, sql.ErrNoRows) {
			notFoundRedirect(w, r, "/skrwaw/members")
			return
		}
		if err != nil {
			internalError(w, err)
			return
		}
		renderTemplate(w, r, "admin/member_form.html", map[string]any{
			"Member":     m,
			"Categories": memberdom.Categories,
		})
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	photo, closer, err := photoFromForm(r, "photo")
	if err != nil {
		internalError(w, err)
		return
	}
	defer closer()

	err = orchestrators.ExecuteUpdateMember(r.Context(), orchestrators.MemberInput{
		ID:          id,
		Name:        r.FormValue("name"),
		Role:        r.FormValue("role"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Photo:       photo,
	}, memberDeps())
	switch {
	case errors.Is(err, orchestrators.ErrNotFound):
		notFoundRedirect(w, r, "/skrwaw/members")
		return
	case err != nil:
		if !flashUploadError(w, err) {
			setFlash(w, "warning", "Wypełnij wszystkie wymagane pola.")
		}
		http.Redirect(w, r, "/skrwaw/members", http.StatusSeeOther)
		return
	}
	setFlash(w, "success", "Zapisano zmiany.")
	http.Redirect(w, r, "/skrwaw/members", http.StatusSeeOther)
}

// handleAdminMemberDelete removes a member and their photo file.
func handleAdminMemberDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		notFoundRedirect(w, r, "/skrwaw/members")
		return
	}

	err = orchestrators.ExecuteDeleteMember(r.Context(), id, memberDeps())
	switch {
	case errors.Is(err, orchestrators.ErrNotFound):
		notFoundRedirect(w, r, "/skrwaw/members")
		return
	case err != nil:
		internalError(w, err)
		return
	}
	setFlash(w, "success", "Usunięto członka.")
	http.Redirect(w, r, "/skrwaw/members", http.StatusSeeOther)
}

func memberDeps() orchestrators.MemberDeps {
	return orchestrators.MemberDeps{
		MemberStore: stores.MemberStore,
		Files:       uploadDir,
		Now:         timeNow,
	}
}
