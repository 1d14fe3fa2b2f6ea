package middleware

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

func writeDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"detail": detail}); err != nil {
		zap.L().Warn("failed to write JSON response", zap.Error(err))
	}
}
