package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/iho/gobooks/internal/adapter/http/dto"
	"github.com/iho/gobooks/internal/blueprint"
	"github.com/iho/gobooks/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrLedgerNotFound),
		errors.Is(err, domain.ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrLedgerExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrLedgerLocked),
		errors.Is(err, domain.ErrEntryLocked):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnbalancedEntry),
		errors.Is(err, domain.ErrEmptyEntry),
		errors.Is(err, domain.ErrUnknownAccount),
		errors.Is(err, domain.ErrInvalidTxType),
		errors.Is(err, domain.ErrInvalidActivity),
		errors.Is(err, domain.ErrNegativeAmount):
		return http.StatusUnprocessableEntity
	case errors.Is(err, blueprint.ErrUnknownBlueprint),
		errors.Is(err, blueprint.ErrMissingArgument),
		errors.Is(err, blueprint.ErrInvalidArgument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// timeQueryLayouts are accepted formats for time query parameters, tried in
// order.
var timeQueryLayouts = []string{time.RFC3339, "2006-01-02"}

// parseTimeQuery parses a time query parameter. Returns ok=false when the
// parameter is absent.
func parseTimeQuery(r *http.Request, key string) (t time.Time, ok bool, err error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return time.Time{}, false, nil
	}
	for _, layout := range timeQueryLayouts {
		if parsed, perr := time.Parse(layout, val); perr == nil {
			return parsed, true, nil
		}
	}
	return time.Time{}, false, errors.New("invalid time parameter " + key)
}
