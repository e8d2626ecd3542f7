package middlewarex

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"workoutadmin/internal/config"
)

// APITokenAuth guards routes with a static bearer token. An empty token
// in config leaves the routes open.
func APITokenAuth(cfg config.Cfg) func(http.Handler) http.Handler {
	want := []byte(cfg.Sec.APIToken)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(want) == 0 {
				next.ServeHTTP(w, r)
				return
			}
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				http.Error(w, "missing bearer", http.StatusUnauthorized)
				return
			}
			got := []byte(strings.TrimPrefix(auth, "Bearer "))
			if subtle.ConstantTimeCompare(got, want) != 1 {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
