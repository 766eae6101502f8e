package create_lead

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	leadsService "github.com/jals-dev/JALS-LeadService/internal/service/leads"
	"github.com/jals-dev/JALS-LeadService/internal/service/leads/models"
)

type stubService struct {
	resp *models.LeadResponse
	err  error
}

func (s *stubService) Create(_ context.Context, _ *models.CreateLeadRequest) (*models.LeadResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, svc LeadsService, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/leads", strings.NewReader(body))
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	svc := &stubService{
		resp: &models.LeadResponse{
			ID:                1,
			FullName:          "Jane Carter",
			Email:             "jane@example.com",
			Status:            "new",
			AppointmentStatus: "unbooked",
		},
	}

	rec := doRequest(t, svc,
		`{"full_name":"Jane Carter","email":"jane@example.com","phone":"07911 123456","service_type":"extension"}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp LeadEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.Lead)
	assert.Equal(t, int64(1), resp.Lead.ID)
	assert.Equal(t, "new", resp.Lead.Status)
}

func TestHandle_ValidationError(t *testing.T) {
	svc := &stubService{err: fmt.Errorf("%w: email is required", leadsService.ErrInvalidInput)}

	rec := doRequest(t, svc, `{"full_name":"Jane Carter"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_InternalError(t *testing.T) {
	svc := &stubService{err: errors.New("boom")}

	rec := doRequest(t, svc, `{"full_name":"Jane Carter"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandle_InvalidBody(t *testing.T) {
	rec := doRequest(t, &stubService{}, `{broken`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
