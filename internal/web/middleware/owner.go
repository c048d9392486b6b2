package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/hrconsole/internal/core"
)

// ownerCookieAge keeps the anonymous identity for a year.
const ownerCookieAge = 365 * 24 * time.Hour

// Owner identifies the browser whose column preferences a request reads and
// writes. The identity is a random UUID kept in a cookie; requests without a
// valid one get a fresh identity.
func Owner(cookieName string, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			owner := ""
			if c, err := r.Cookie(cookieName); err == nil {
				if id, err := uuid.Parse(c.Value); err == nil {
					owner = id.String()
				}
			}
			if owner == "" {
				owner = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    owner,
					Path:     "/",
					MaxAge:   int(ownerCookieAge.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			next.ServeHTTP(w, r.WithContext(core.ContextWithOwner(r.Context(), owner)))
		})
	}
}
