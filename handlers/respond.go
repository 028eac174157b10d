// backend/handlers/respond.go
package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// respondWithJSON writes payload as JSON with the given status.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		zap.L().Error("Error marshalling JSON response", zap.Error(err))
		http.Error(w, `{"error":"Failed to marshal JSON response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondWithError logs and writes {"error": message}.
func respondWithError(w http.ResponseWriter, code int, message string) {
	zap.L().Warn("API error", zap.Int("status", code), zap.String("message", message))
	respondWithJSON(w, code, map[string]string{"error": message})
}
