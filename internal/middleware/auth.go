package middleware

import (
	"net/http"
	"strings"

	"staffpanel/internal/session"
)

// RequireAuth admits requests carrying an authenticated session and redirects
// everything else to the login page before any handler runs.
func RequireAuth(sessions *session.Manager) func(http.Handler) http.Handler {
	publicPaths := []string{
		"/auth/login",
		"/static/",
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path

			if path == "/" {
				next.ServeHTTP(w, r)
				return
			}

			for _, publicPath := range publicPaths {
				if path == publicPath || strings.HasSuffix(publicPath, "/") && strings.HasPrefix(path, publicPath) {
					next.ServeHTTP(w, r)
					return
				}
			}

			if _, ok := sessions.CurrentUser(r); !ok {
				http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
