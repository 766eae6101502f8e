package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/jals-dev/JALS-LeadService/internal/api/handlers"
)

// AdminPasswordHeader заголовок с админским паролем
const AdminPasswordHeader = "X-Admin-Password"

// AdminAuth проверяет заголовок X-Admin-Password на админских ручках
// Сравнение за постоянное время
func AdminAuth(password string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(AdminPasswordHeader)

			if got == "" {
				handlers.RespondUnauthorized(w, "missing "+AdminPasswordHeader+" header")
				return
			}

			if subtle.ConstantTimeCompare([]byte(got), []byte(password)) != 1 {
				handlers.RespondUnauthorized(w, "invalid admin password")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
