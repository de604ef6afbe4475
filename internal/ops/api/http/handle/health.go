package handle

import "net/http"

// Health is a liveness probe only; it makes no upstream calls.
func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
