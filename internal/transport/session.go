package transport

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const cartCookieName = "cart_id"

// cartID returns the caller's cart ID, issuing a new one via cookie on
// first contact. The cookie is the server-side replacement for the
// browser's localStorage slot.
func cartID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(cartCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     cartCookieName,
		Value:    id,
		Path:     "/",
		Expires:  time.Now().Add(365 * 24 * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
