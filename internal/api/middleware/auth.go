// Package middleware HTTP middleware: аутентификация и метрики запросов
package middleware

import (
	"encoding/json"
	"net/http"
)

const msgMissingUserID = "отсутствует заголовок X-User-ID"

// Auth требует заголовок X-User-ID.
// Проверка роли выполняется сервисным слоем через IdentityService;
// middleware гарантирует только наличие идентификатора
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-User-ID") == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": msgMissingUserID})
			return
		}

		next.ServeHTTP(w, r)
	})
}
