package health

import (
	"context"
	"net/http"
	"time"

	"github.com/jals-dev/JALS-LeadService/internal/api/handlers"
)

const pingTimeout = 2 * time.Second

// Pinger интерфейс проверки соединения с БД
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse HTTP response model
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type Handler struct {
	db          Pinger
	serviceName string
}

func NewHandler(db Pinger, serviceName string) *Handler {
	return &Handler{
		db:          db,
		serviceName: serviceName,
	}
}

// Handle GET /
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		handlers.RespondJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:  "degraded",
			Service: h.serviceName,
		})
		return
	}

	handlers.RespondJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Service: h.serviceName,
	})
}
