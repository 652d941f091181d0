package web

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"mikrobot/internal/adapters/http/middleware"
	"mikrobot/internal/application/orchestrators"
	"mikrobot/internal/domain/upload"
)

// maxUploadBytes bounds a whole multipart request body.
const maxUploadBytes = 20 << 20

// parseID reads a positive integer path value.
func parseID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// uploadsFromForm opens every non-empty file part of the named field. The
// returned closer releases the parts and must run after the orchestrator
// has consumed the readers.
func uploadsFromForm(r *http.Request, field string) ([]upload.Upload, func(), error) {
	if r.MultipartForm == nil {
		return nil, func() {}, nil
	}
	var opened []multipart.File
	closer := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	var ups []upload.Upload
	for _, fh := range r.MultipartForm.File[field] {
		if fh.Filename == "" || fh.Size == 0 {
			continue // browsers submit an empty part when no file is picked
		}
		f, err := fh.Open()
		if err != nil {
			closer()
			return nil, func() {}, err
		}
		opened = append(opened, f)
		ups = append(ups, upload.Upload{Filename: fh.Filename, Content: f})
	}
	return ups, closer, nil
}

// photoFromForm returns the first non-empty file of the named field, nil
// when the visitor picked none.
func photoFromForm(r *http.Request, field string) (*upload.Upload, func(), error) {
	ups, closer, err := uploadsFromForm(r, field)
	if err != nil {
		return nil, func() {}, err
	}
	if len(ups) == 0 {
		closer()
		return nil, func() {}, nil
	}
	return &ups[0], closer, nil
}

// flashUploadError translates upload failures into a visitor-facing flash.
// Returns true when err was an upload validation error.
func flashUploadError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, upload.ErrUnsupportedFileType):
		setFlash(w, "warning", "Niedozwolony typ pliku. Dozwolone: png, jpg, jpeg, gif.")
		return true
	case errors.Is(err, upload.ErrEmptyFilename):
		setFlash(w, "warning", "Plik bez nazwy został odrzucony.")
		return true
	}
	return false
}

// notFoundRedirect flashes a danger message for a missing record and returns
// to the given admin list.
func notFoundRedirect(w http.ResponseWriter, r *http.Request, listPath string) {
	setFlash(w, "danger", "Nie znaleziono rekordu.")
	http.Redirect(w, r, listPath, http.StatusSeeOther)
}

// handleAdminLogin renders the login form and verifies the shared password.
func handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		if middleware.IsAdmin(r.Context()) {
			http.Redirect(w, r, "/skrwaw", http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "admin/login.html", nil)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	err := orchestrators.ExecuteLogin(r.FormValue("password"),
		orchestrators.LoginDeps{AdminPasswordHash: adminPasswordHash})
	if err != nil {
		setFlash(w, "danger", "Nieprawidłowe hasło.")
		http.Redirect(w, r, "/skrwaw/login", http.StatusSeeOther)
		return
	}

	token, err := sessions.Create()
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)
	setFlash(w, "success", "Zalogowano do panelu administracyjnego.")
	http.Redirect(w, r, "/skrwaw", http.StatusSeeOther)
}

// handleAdminLogout ends the session and returns to the public site.
func handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.SessionToken(r); token != "" {
		sessions.Delete(token)
	}
	middleware.ClearSessionCookie(w)
	setFlash(w, "info", "Wylogowano.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleAdminDashboard renders the panel landing page.
func handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "admin/dashboard.html", nil)
}
