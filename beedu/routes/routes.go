package routes

import (
	"beedu/beedu/controllers"
	"beedu/beedu/sources/psql"
	"beedu/beedu/sources/psql/dao"
	"encoding/json"
	"errors"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeDetail emits the {"detail": ...} error body every 4xx/5xx uses.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// writeError maps controller and store errors onto wire responses. Unknown
// errors report as a store failure: by this point input validation has
// already passed, so the database is the only thing left to break.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, controllers.ErrMissingCredentials):
		writeDetail(w, http.StatusBadRequest, "Email and password are required")
	case errors.Is(err, dao.ErrDuplicateEmail):
		writeDetail(w, http.StatusBadRequest, "Email already registered")
	case errors.Is(err, controllers.ErrInvalidCredentials):
		writeDetail(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, controllers.ErrEmptyQuestion):
		writeDetail(w, http.StatusBadRequest, "Question is required")
	case errors.Is(err, psql.ErrNotConfigured):
		writeDetail(w, http.StatusServiceUnavailable, "Database not configured")
	default:
		writeDetail(w, http.StatusServiceUnavailable, "Database error")
	}
}
