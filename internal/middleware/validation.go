package middleware

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"
)

// MaxAppIDLength bounds app ids and native aliases accepted in paths.
const MaxAppIDLength = 128

// ErrAppIDInvalid is returned for app ids that cannot name any app.
var ErrAppIDInvalid = errors.New("app id is malformed")

// validAppIDPattern covers app_<hex> ids and native aliases such as WORLD_CHAT.
var validAppIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateAppID reports whether id could name an app or native alias.
func ValidateAppID(id string) error {
	if id == "" || len(id) > MaxAppIDLength || !validAppIDPattern.MatchString(id) {
		return ErrAppIDInvalid
	}
	return nil
}

// AppIDParam answers 404 for malformed values of the named chi URL
// parameter, keeping them away from the cache and the backend.
func AppIDParam(param string) func(http.Handler) http.Handler {
	attribute := param
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := ValidateAppID(chi.URLParam(r, param)); err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusNotFound)
				writeBody(w, errorBody{Code: "not_found", Detail: "App not found", Attribute: &attribute})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
