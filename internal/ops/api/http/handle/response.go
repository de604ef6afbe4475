package handle

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/justingrant1/heritagebox-app-v1/internal/ops/app/core"
)

// jsonResponse writes the given data as a JSON-encoded HTTP response.
func jsonResponse(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// jsonError writes an error response as JSON with the specified HTTP status code.
func jsonError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
	})
}

// jsonErrorDetails is jsonError with a details payload alongside the message.
func jsonErrorDetails(w http.ResponseWriter, code int, err error, details interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   err.Error(),
		"details": details,
	})
}

// writeServiceError maps service errors onto the HTTP taxonomy: 404 for
// missing entities, 400 for ambiguous or invalid input, 500 for upstream
// failures.
func writeServiceError(w http.ResponseWriter, err error) {
	var ambiguous *core.AmbiguousTrackingError
	switch {
	case errors.As(err, &ambiguous):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"error":   ambiguous.Error(),
			"matches": ambiguous.Matches,
		})
	case errors.Is(err, core.ErrOrderNotFound), errors.Is(err, core.ErrEmployeeNotFound):
		jsonError(w, http.StatusNotFound, err)
	case errors.Is(err, core.ErrInvalidInput):
		jsonError(w, http.StatusBadRequest, err)
	default:
		jsonError(w, http.StatusInternalServerError, err)
	}
}
