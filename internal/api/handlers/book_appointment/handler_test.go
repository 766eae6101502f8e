package book_appointment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jals-dev/JALS-LeadService/internal/domain"
	bookAppointment "github.com/jals-dev/JALS-LeadService/internal/usecase/book_appointment"
	"github.com/jals-dev/JALS-LeadService/pkg/ptr"
)

type stubUseCase struct {
	resp *bookAppointment.Response
	err  error

	gotReq *bookAppointment.Request
}

func (s *stubUseCase) Execute(_ context.Context, req *bookAppointment.Request) (*bookAppointment.Response, error) {
	s.gotReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRouter(uc BookAppointmentUseCase) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/leads/{id}/book", NewHandler(uc, nil, nopLogger{}).Handle).Methods(http.MethodPost)
	return r
}

func doRequest(t *testing.T, router *mux.Router, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	uc := &stubUseCase{
		resp: &bookAppointment.Response{
			Lead: &domain.Lead{
				ID:                     1,
				FullName:               "Jane Carter",
				Email:                  "jane@example.com",
				Phone:                  "+447911123456",
				ServiceType:            "extension",
				Status:                 domain.LeadStatusNew,
				AppointmentTime:        ptr.Ptr(time.Date(2026, 9, 14, 9, 40, 0, 0, time.UTC)),
				AppointmentStatus:      domain.AppointmentBooked,
				PreferredContactMethod: domain.ContactMethodWhatsApp,
			},
		},
	}

	rec := doRequest(t, newRouter(uc),
		"/api/leads/1/book",
		`{"appointmentTime":"2026-09-14T09:40:00Z","contactMethod":"whatsapp"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp LeadEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.Lead)
	assert.Equal(t, int64(1), resp.Lead.ID)
	assert.Equal(t, "booked", resp.Lead.AppointmentStatus)
	require.NotNil(t, resp.Lead.AppointmentTime)
	assert.Equal(t, "2026-09-14T09:40:00Z", *resp.Lead.AppointmentTime)

	require.NotNil(t, uc.gotReq)
	assert.Equal(t, int64(1), uc.gotReq.LeadID)
	require.NotNil(t, uc.gotReq.ContactMethod)
	assert.Equal(t, "whatsapp", *uc.gotReq.ContactMethod)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"lead not found", bookAppointment.ErrLeadNotFound, http.StatusNotFound},
		{"missing contact info", bookAppointment.ErrMissingContactInfo, http.StatusBadRequest},
		{"invalid phone", bookAppointment.ErrInvalidPhone, http.StatusBadRequest},
		{"invalid appointment time", bookAppointment.ErrInvalidAppointmentTime, http.StatusBadRequest},
		{"duplicate active booking", bookAppointment.ErrDuplicateActiveBooking, http.StatusConflict},
		{"slot conflict", bookAppointment.ErrSlotConflict, http.StatusConflict},
		{"internal error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, newRouter(&stubUseCase{err: tt.err}),
				"/api/leads/1/book",
				`{"appointmentTime":"2026-09-14T09:40:00Z"}`)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandle_InvalidLeadID(t *testing.T) {
	rec := doRequest(t, newRouter(&stubUseCase{}),
		"/api/leads/abc/book",
		`{"appointmentTime":"2026-09-14T09:40:00Z"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_InvalidBody(t *testing.T) {
	rec := doRequest(t, newRouter(&stubUseCase{}), "/api/leads/1/book", `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
