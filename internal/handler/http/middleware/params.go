package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// UUIDParams answers 404 when any of the named URL params is not a UUID.
// Such ids can never match a row, and the database rejects them as malformed input.
func UUIDParams(names ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, name := range names {
				if !validator.IsValidUUID(chi.URLParam(r, name)) {
					response.NotFound(w, "Resource not found")
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
