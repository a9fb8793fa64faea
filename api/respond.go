package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"log/slog"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

func errorJSON(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"message": message})
}

// serverError logs the underlying cause and returns a generic message so no
// upstream detail leaks to clients.
func serverError(w http.ResponseWriter, op string, err error) {
	logger.Error(op, slog.Any("err", err))
	errorJSON(w, "Server error", http.StatusInternalServerError)
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
