package web

import (
	"encoding/base64"
	"net/http"
	"strings"
)

const flashCookieName = "mikrobot_flash"

// Flash is a one-shot message rendered by the next page load, in the
// categories the templates style: success, warning, danger, info.
type Flash struct {
	Category string
	Message  string
}

// setFlash stores a one-shot message in a short-lived cookie. The value is
// base64-encoded so messages with Polish characters survive the header.
func setFlash(w http.ResponseWriter, category, message string) {
	value := base64.URLEncoding.EncodeToString([]byte(category + "|" + message))
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    value,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   60,
	})
}

// popFlash reads and clears the flash cookie.
// POST: The cookie is cleared even when the value does not parse
func popFlash(w http.ResponseWriter, r *http.Request) *Flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})

	raw, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 {
		return nil
	}
	return &Flash{Category: parts[0], Message: parts[1]}
}
