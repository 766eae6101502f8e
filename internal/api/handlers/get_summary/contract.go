package get_summary

import (
	"context"

	"github.com/jals-dev/JALS-LeadService/internal/service/leads/models"
)

type LeadsService interface {
	Summary(ctx context.Context) (*models.SummaryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
