package leads

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/jals-dev/JALS-LeadService/internal/domain"
	leadRepo "github.com/jals-dev/JALS-LeadService/internal/infra/storage/lead"
	"github.com/jals-dev/JALS-LeadService/internal/service/leads/models"
	"github.com/jals-dev/JALS-LeadService/pkg/ptr"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
	summaryWeekDays  = 7
)

// Service сервис для работы с лидами
type Service struct {
	leadRepo     LeadRepository
	phones       PhoneNormalizer
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса лидов
func NewService(leadRepo LeadRepository, phones PhoneNormalizer, notifier Notifier, logger Logger) *Service {
	return &Service{
		leadRepo:     leadRepo,
		phones:       phones,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Create создает нового лида из формы на сайте
func (s *Service) Create(ctx context.Context, req *models.CreateLeadRequest) (*models.LeadResponse, error) {
	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	phone, country, err := s.phones.Normalize(req.Phone, ptr.Deref(req.PhoneCountry, ""))
	if err != nil {
		s.logger.Warn("Create: phone normalization failed: %v", err)
		return nil, fmt.Errorf("%w: invalid phone number", ErrInvalidInput)
	}

	l := &domain.Lead{
		FullName:               strings.TrimSpace(req.FullName),
		Email:                  strings.TrimSpace(req.Email),
		Phone:                  phone,
		PhoneCountry:           &country,
		ServiceType:            strings.TrimSpace(req.ServiceType),
		BudgetRange:            req.BudgetRange,
		Timeframe:              req.Timeframe,
		ProjectDescription:     req.ProjectDescription,
		Source:                 req.Source,
		Status:                 domain.LeadStatusNew,
		AppointmentStatus:      domain.AppointmentUnbooked,
		PreferredContactMethod: domain.ContactMethodCall,
	}

	created, err := s.leadRepo.Create(ctx, l)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: lead id=%d created, service=%s", created.ID, created.ServiceType)

	// Уведомление о новом лиде уходит вне запроса
	s.notifier.LeadCreated(ctx, created)

	return models.FromDomainLead(created), nil
}

// GetByID получает лида по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.LeadResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: lead id must be positive", ErrInvalidInput)
	}

	l, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, leadRepo.ErrLeadNotFound) {
			s.logger.Warn("GetByID: lead id=%d not found", id)
			return nil, ErrLeadNotFound
		}
		s.logger.Error("GetByID: repository error for lead id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainLead(l), nil
}

// List получает постраничный список лидов с фильтрацией по статусу и поиском
func (s *Service) List(ctx context.Context, req *models.ListLeadsRequest) (*models.LeadListResponse, error) {
	filter, err := buildFilter(req)
	if err != nil {
		s.logger.Warn("List: validation failed: %v", err)
		return nil, err
	}

	leads, total, err := s.leadRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: page=%d, limit=%d, total=%d", filter.Page, filter.Limit, total)

	return models.FromDomainLeadList(leads, total, filter.Page, filter.Limit), nil
}

// Update частично обновляет лида из админки
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateLeadRequest) (*models.LeadResponse, error) {
	upd, err := s.buildUpdate(id, req)
	if err != nil {
		s.logger.Warn("Update: validation failed for lead id=%d: %v", id, err)
		return nil, err
	}

	l, err := s.leadRepo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, leadRepo.ErrLeadNotFound) {
			s.logger.Warn("Update: lead id=%d not found", id)
			return nil, ErrLeadNotFound
		}
		s.logger.Error("Update: repository error for lead id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: lead id=%d updated", id)

	return models.FromDomainLead(l), nil
}

// Summary собирает сводную статистику: всего лидов, новых за неделю, по статусам
func (s *Service) Summary(ctx context.Context) (*models.SummaryResponse, error) {
	since := s.timeProvider.Now().AddDate(0, 0, -summaryWeekDays)

	summary, err := s.leadRepo.Summary(ctx, since)
	if err != nil {
		s.logger.Error("Summary: repository error: %v", err)
		return nil, fmt.Errorf("%w: Summary - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSummary(summary), nil
}

// validateCreateRequest проверяет обязательные поля формы
func validateCreateRequest(req *models.CreateLeadRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.FullName) == "" {
		return fmt.Errorf("%w: full_name is required", ErrInvalidInput)
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Phone) == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ServiceType) == "" {
		return fmt.Errorf("%w: service_type is required", ErrInvalidInput)
	}

	return nil
}

// buildFilter конвертирует запрос списка в доменный фильтр с дефолтами
func buildFilter(req *models.ListLeadsRequest) (domain.LeadFilter, error) {
	filter := domain.LeadFilter{
		Page:  1,
		Limit: defaultPageLimit,
	}

	if req == nil {
		return filter, nil
	}

	if req.Page > 0 {
		filter.Page = req.Page
	}

	if req.Limit > 0 {
		filter.Limit = req.Limit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	if req.Status != nil && *req.Status != "" {
		if !domain.IsValidLeadStatus(*req.Status) {
			return filter, fmt.Errorf("%w: %q", ErrInvalidStatus, *req.Status)
		}
		status := domain.LeadStatus(*req.Status)
		filter.Status = &status
	}

	if req.Search != nil && strings.TrimSpace(*req.Search) != "" {
		search := strings.TrimSpace(*req.Search)
		filter.Search = &search
	}

	return filter, nil
}

// buildUpdate конвертирует запрос обновления в доменное частичное обновление
func (s *Service) buildUpdate(id int64, req *models.UpdateLeadRequest) (domain.LeadUpdate, error) {
	var upd domain.LeadUpdate

	if id <= 0 {
		return upd, fmt.Errorf("%w: lead id must be positive", ErrInvalidInput)
	}

	if req == nil {
		return upd, fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if _, err := mail.ParseAddress(email); err != nil {
			return upd, fmt.Errorf("%w: invalid email address", ErrInvalidInput)
		}
		upd.Email = &email
	}

	if req.Status != nil {
		if !domain.IsValidLeadStatus(*req.Status) {
			return upd, fmt.Errorf("%w: %q", ErrInvalidStatus, *req.Status)
		}
		status := domain.LeadStatus(*req.Status)
		upd.Status = &status
	}

	if req.AppointmentStatus != nil {
		if !domain.IsValidAppointmentStatus(*req.AppointmentStatus) {
			return upd, fmt.Errorf("%w: invalid appointment status %q", ErrInvalidInput, *req.AppointmentStatus)
		}
		status := domain.AppointmentStatus(*req.AppointmentStatus)
		upd.AppointmentStatus = &status
	}

	if req.ClientTimezone != nil && *req.ClientTimezone != "" {
		upd.ClientTimezone = req.ClientTimezone
	}

	if req.Phone != nil {
		phone, country, err := s.phones.Normalize(*req.Phone, ptr.Deref(req.PhoneCountry, ""))
		if err != nil {
			return upd, fmt.Errorf("%w: invalid phone number", ErrInvalidInput)
		}
		upd.Phone = &phone
		upd.PhoneCountry = &country
	}

	upd.FullName = req.FullName
	upd.ServiceType = req.ServiceType
	upd.BudgetRange = req.BudgetRange
	upd.Timeframe = req.Timeframe
	upd.ProjectDescription = req.ProjectDescription
	upd.Source = req.Source

	if upd.IsEmpty() {
		return upd, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	return upd, nil
}
