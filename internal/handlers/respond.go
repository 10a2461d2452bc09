package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"workshop-backend/internal/apperrors"
	"workshop-backend/internal/timeutil"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError maps domain errors to status codes. Unexpected errors
// are logged and returned as an opaque 500.
func respondError(w http.ResponseWriter, err error) {
	status := apperrors.StatusCode(err)
	message := err.Error()
	if !apperrors.IsExpected(err) {
		log.Printf("[HTTP] internal error: %v", err)
		message = "internal server error"
	}
	respondJSON(w, status, map[string]string{"error": message})
}

func respondBadRequest(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusBadRequest, map[string]string{"error": message})
}

// pathID reads a numeric path variable; 0 is never a valid ID.
func pathID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	return id, err == nil && id > 0
}

func queryInt(r *http.Request, name string) int {
	v, _ := strconv.Atoi(r.URL.Query().Get(name))
	return v
}

func queryBool(r *http.Request, name string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return v
}

// queryDate parses a YYYY-MM-DD query parameter as a shop-local date.
func queryDate(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := timeutil.ParseInMVT(timeutil.DateLayout, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// reportPeriod resolves the from/to query parameters, defaulting to
// the current month. "to" is widened to the end of its day.
func reportPeriod(r *http.Request) (time.Time, time.Time, error) {
	now := timeutil.Now()
	from := timeutil.StartOfMonth(now)
	to := timeutil.EndOfDay(now)

	if f, err := queryDate(r, "from"); err != nil {
		return from, to, err
	} else if f != nil {
		from = *f
	}
	if t, err := queryDate(r, "to"); err != nil {
		return from, to, err
	} else if t != nil {
		to = timeutil.EndOfDay(*t)
	}
	return from, to, nil
}
