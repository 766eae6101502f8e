package models

import (
	"time"

	"github.com/jals-dev/JALS-LeadService/internal/domain"
)

// Request модели

// CreateLeadRequest запрос на создание лида с сайта
type CreateLeadRequest struct {
	FullName           string  `json:"full_name"`
	Email              string  `json:"email"`
	Phone              string  `json:"phone"`
	PhoneCountry       *string `json:"phone_country,omitempty"`
	ServiceType        string  `json:"service_type"`
	BudgetRange        *string `json:"budget_range,omitempty"`
	Timeframe          *string `json:"timeframe,omitempty"`
	ProjectDescription *string `json:"project_description,omitempty"`
	Source             *string `json:"source,omitempty"`
}

// UpdateLeadRequest частичное обновление лида из админки
type UpdateLeadRequest struct {
	FullName           *string `json:"full_name,omitempty"`
	Email              *string `json:"email,omitempty"`
	Phone              *string `json:"phone,omitempty"`
	PhoneCountry       *string `json:"phone_country,omitempty"`
	ServiceType        *string `json:"service_type,omitempty"`
	BudgetRange        *string `json:"budget_range,omitempty"`
	Timeframe          *string `json:"timeframe,omitempty"`
	ProjectDescription *string `json:"project_description,omitempty"`
	Source             *string `json:"source,omitempty"`
	Status             *string `json:"status,omitempty"`
	AppointmentStatus  *string `json:"appointment_status,omitempty"`
	ClientTimezone     *string `json:"client_timezone,omitempty"`
}

// ListLeadsRequest запрос постраничного списка лидов
type ListLeadsRequest struct {
	Status *string
	Search *string
	Page   int
	Limit  int
}

// Response модели

// LeadResponse ответ с данными лида
type LeadResponse struct {
	ID                     int64   `json:"id"`
	FullName               string  `json:"full_name"`
	Email                  string  `json:"email"`
	Phone                  string  `json:"phone"`
	PhoneCountry           *string `json:"phone_country,omitempty"`
	ServiceType            string  `json:"service_type"`
	BudgetRange            *string `json:"budget_range,omitempty"`
	Timeframe              *string `json:"timeframe,omitempty"`
	ProjectDescription     *string `json:"project_description,omitempty"`
	Source                 *string `json:"source,omitempty"`
	Status                 string  `json:"status"`
	AppointmentTime        *string `json:"appointment_time,omitempty"` // RFC3339, UTC
	AppointmentStatus      string  `json:"appointment_status"`
	ClientTimezone         *string `json:"client_timezone,omitempty"`
	PreferredContactMethod string  `json:"preferred_contact_method"`
	CreatedAt              string  `json:"created_at"`
	UpdatedAt              string  `json:"updated_at"`
}

// LeadListResponse страница списка лидов
type LeadListResponse struct {
	Leads []*LeadResponse `json:"leads"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// SummaryResponse сводная статистика для дашборда
type SummaryResponse struct {
	TotalLeads  int64            `json:"totalLeads"`
	NewThisWeek int64            `json:"newThisWeek"`
	ByStatus    map[string]int64 `json:"byStatus"`
}

// FromDomainLead конвертирует доменного лида в response
func FromDomainLead(l *domain.Lead) *LeadResponse {
	resp := &LeadResponse{
		ID:                     l.ID,
		FullName:               l.FullName,
		Email:                  l.Email,
		Phone:                  l.Phone,
		PhoneCountry:           l.PhoneCountry,
		ServiceType:            l.ServiceType,
		BudgetRange:            l.BudgetRange,
		Timeframe:              l.Timeframe,
		ProjectDescription:     l.ProjectDescription,
		Source:                 l.Source,
		Status:                 string(l.Status),
		AppointmentStatus:      string(l.AppointmentStatus),
		ClientTimezone:         l.ClientTimezone,
		PreferredContactMethod: string(l.PreferredContactMethod),
		CreatedAt:              l.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:              l.UpdatedAt.UTC().Format(time.RFC3339),
	}

	if l.AppointmentTime != nil {
		formatted := l.AppointmentTime.UTC().Format(time.RFC3339)
		resp.AppointmentTime = &formatted
	}

	return resp
}

// FromDomainLeadList конвертирует страницу доменных лидов в response
func FromDomainLeadList(leads []*domain.Lead, total int64, page, limit int) *LeadListResponse {
	out := make([]*LeadResponse, len(leads))
	for i, l := range leads {
		out[i] = FromDomainLead(l)
	}

	return &LeadListResponse{
		Leads: out,
		Total: total,
		Page:  page,
		Limit: limit,
	}
}

// FromDomainSummary конвертирует доменную сводку в response
func FromDomainSummary(s *domain.LeadSummary) *SummaryResponse {
	byStatus := make(map[string]int64, len(s.ByStatus))
	for status, count := range s.ByStatus {
		byStatus[string(status)] = count
	}

	return &SummaryResponse{
		TotalLeads:  s.TotalLeads,
		NewThisWeek: s.NewThisWeek,
		ByStatus:    byStatus,
	}
}
