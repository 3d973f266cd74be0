package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/sto-booking-bot/internal/api/handlers"
)

const (
	bearerPrefix = "Bearer "

	msgMissingToken = "требуется авторизация"
	msgInvalidToken = "доступ запрещен"
)

// OperatorAuth проверяет заголовок Authorization: Bearer <token>
// Пустой token отключает проверку
func OperatorAuth(token string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}
			got := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				handlers.RespondForbidden(w, msgInvalidToken)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
