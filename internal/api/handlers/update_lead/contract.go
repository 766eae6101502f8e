package update_lead

import (
	"context"

	"github.com/jals-dev/JALS-LeadService/internal/service/leads/models"
)

type LeadsService interface {
	Update(ctx context.Context, id int64, req *models.UpdateLeadRequest) (*models.LeadResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
