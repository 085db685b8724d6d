package security

import (
	"net/http"
	"time"
)

const RefreshCookieName = "refresh_token"

func cookieName(secure bool) string {
	if secure {
		return "__Host-" + RefreshCookieName
	}
	return RefreshCookieName
}

// SetRefreshToken writes the refresh token as an HttpOnly cookie.
// secure switches to the __Host- prefix, which browsers only accept over HTTPS.
func SetRefreshToken(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName(secure),
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ttl.Seconds()),
	})
}

func ClearRefreshToken(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName(secure),
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// ReadRefreshToken prefers the secure cookie and falls back to the plain one
// used in local non-HTTPS development.
func ReadRefreshToken(r *http.Request) (string, error) {
	if c, err := r.Cookie(cookieName(true)); err == nil && c.Value != "" {
		return c.Value, nil
	}
	c, err := r.Cookie(RefreshCookieName)
	if err != nil {
		return "", err
	}
	return c.Value, nil
}
