package middleware

import (
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// RequestLogger логирует каждый HTTP запрос: метод, путь, статус, длительность
func RequestLogger(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			log.Info("%s %s - %d (%dms, remote=%s)",
				r.Method, r.URL.Path, rec.status,
				time.Since(start).Milliseconds(), r.RemoteAddr)
		})
	}
}
