package scheduling

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/auth"
)

func requestWithIdentity(t *testing.T, method, target, body, userID, role string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req = req.WithContext(auth.WithIdentity(req.Context(), userID, role, "Test User"))

	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestBookAppointmentHandlerPatientBooksSelf(t *testing.T) {
	svc, repo := newTestService()
	h := NewHandler(svc)

	patientID := uuid.New()
	body := `{"patientId":"` + uuid.NewString() + `","doctorId":"` + uuid.NewString() + `",
		"scheduledAt":"2026-09-01T10:00:00Z"}`

	c, rec := requestWithIdentity(t, http.MethodPost, "/appointments", body, patientID.String(), "patient")
	if err := h.BookAppointment(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var got Appointment
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if got.PatientID != patientID {
		t.Errorf("patient id should come from the token, got %s want %s", got.PatientID, patientID)
	}
	if len(repo.appts) != 1 {
		t.Errorf("expected 1 appointment stored, got %d", len(repo.appts))
	}
}

func TestListAppointmentsHandlerDoctorScope(t *testing.T) {
	svc, repo := newTestService()
	h := NewHandler(svc)

	doctorID := uuid.New()
	for _, did := range []uuid.UUID{doctorID, uuid.New()} {
		a := &Appointment{
			PatientID:   uuid.New(),
			DoctorID:    did,
			ScheduledAt: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
			DurationMin: 30,
			Mode:        ModeInPerson,
			Status:      StatusScheduled,
		}
		if err := repo.Create(context.Background(), a); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	c, rec := requestWithIdentity(t, http.MethodGet, "/appointments", "", doctorID.String(), "doctor")
	if err := h.ListAppointments(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("doctor should only see own appointments, got total %d", resp.Total)
	}
}

func TestUpdateStatusHandlerPatientCanOnlyCancel(t *testing.T) {
	svc, repo := newTestService()
	h := NewHandler(svc)

	patientID := uuid.New()
	a := &Appointment{
		PatientID:   patientID,
		DoctorID:    uuid.New(),
		ScheduledAt: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		DurationMin: 30,
		Mode:        ModeInPerson,
		Status:      StatusScheduled,
	}
	if err := repo.Create(context.Background(), a); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	// Completing is forbidden for patients.
	c, _ := requestWithIdentity(t, http.MethodPost, "/appointments/"+a.ID.String()+"/status",
		`{"status":"Completed"}`, patientID.String(), "patient")
	c.SetParamNames("id")
	c.SetParamValues(a.ID.String())

	err := h.UpdateStatus(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403 HTTPError, got %v", err)
	}

	// Cancelling their own appointment is allowed.
	c, rec := requestWithIdentity(t, http.MethodPost, "/appointments/"+a.ID.String()+"/status",
		`{"status":"Cancelled"}`, patientID.String(), "patient")
	c.SetParamNames("id")
	c.SetParamValues(a.ID.String())

	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if repo.appts[a.ID].Status != StatusCancelled {
		t.Errorf("expected Cancelled, got %q", repo.appts[a.ID].Status)
	}
}

func TestGetAppointmentHandlerForbidsOtherPatients(t *testing.T) {
	svc, repo := newTestService()
	h := NewHandler(svc)

	a := &Appointment{
		PatientID:   uuid.New(),
		DoctorID:    uuid.New(),
		ScheduledAt: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		DurationMin: 30,
		Mode:        ModeInPerson,
		Status:      StatusScheduled,
	}
	if err := repo.Create(context.Background(), a); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	c, _ := requestWithIdentity(t, http.MethodGet, "/appointments/"+a.ID.String(), "", uuid.NewString(), "patient")
	c.SetParamNames("id")
	c.SetParamValues(a.ID.String())

	err := h.GetAppointment(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403 HTTPError, got %v", err)
	}
}
