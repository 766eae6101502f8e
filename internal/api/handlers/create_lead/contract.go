package create_lead

import (
	"context"

	"github.com/jals-dev/JALS-LeadService/internal/service/leads/models"
)

type LeadsService interface {
	Create(ctx context.Context, req *models.CreateLeadRequest) (*models.LeadResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
