package create_lead

import "github.com/jals-dev/JALS-LeadService/internal/service/leads/models"

// LeadEnvelope HTTP response model
type LeadEnvelope struct {
	Lead *models.LeadResponse `json:"lead"`
}
