package get_lead

import (
	"context"

	"github.com/jals-dev/JALS-LeadService/internal/service/leads/models"
)

type LeadsService interface {
	GetByID(ctx context.Context, id int64) (*models.LeadResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
