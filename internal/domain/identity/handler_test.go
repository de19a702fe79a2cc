package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *mockDoctorRepo, *mockPatientRepo) {
	svc, doctors, patients := newTestService()
	return NewHandler(svc), doctors, patients
}

func TestCreateDoctorHandler(t *testing.T) {
	h, repo, _ := newTestHandler()
	e := echo.New()

	body := `{"firstName":"Grace","lastName":"Obi","email":"grace@hospital.org","experienceYears":12,"consultationFee":150.5}`
	req := httptest.NewRequest(http.MethodPost, "/doctors", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateDoctor(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var got Doctor
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if got.ExperienceYears == nil || *got.ExperienceYears != 12 {
		t.Errorf("experienceYears not bound: %+v", got.ExperienceYears)
	}
	if len(repo.doctors) != 1 {
		t.Errorf("expected 1 doctor stored, got %d", len(repo.doctors))
	}
}

func TestCreateDoctorHandlerBadEmail(t *testing.T) {
	h, _, _ := newTestHandler()
	e := echo.New()

	body := `{"firstName":"Grace","lastName":"Obi","email":"not-an-email"}`
	req := httptest.NewRequest(http.MethodPost, "/doctors", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CreateDoctor(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestCreatePatientHandlerNestedContact(t *testing.T) {
	h, _, repo := newTestHandler()
	e := echo.New()

	body := `{"firstName":"Tunde","lastName":"Alade","allergies":["penicillin","latex"],
		"emergencyContact":{"name":"Bisi Alade","relation":"spouse","phone":"+2348000000"}}`
	req := httptest.NewRequest(http.MethodPost, "/patients", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreatePatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var stored *Patient
	for _, p := range repo.patients {
		stored = p
	}
	if stored == nil {
		t.Fatal("patient not stored")
	}
	if stored.EmergencyContact == nil || stored.EmergencyContact.Relation != "spouse" {
		t.Errorf("nested emergency contact not bound: %+v", stored.EmergencyContact)
	}
	if len(stored.Allergies) != 2 {
		t.Errorf("allergies not bound: %v", stored.Allergies)
	}
}

func TestDeactivatePatientHandler(t *testing.T) {
	h, _, repo := newTestHandler()
	e := echo.New()

	p := &Patient{FirstName: "Tunde", LastName: "Alade", Status: "Active"}
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/patients/"+p.ID.String()+"/deactivate", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(p.ID.String())

	if err := h.DeactivatePatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if repo.patients[p.ID].Status != "Inactive" {
		t.Errorf("expected Inactive, got %q", repo.patients[p.ID].Status)
	}
}

func TestGetDoctorHandlerNotFound(t *testing.T) {
	h, _, _ := newTestHandler()
	e := echo.New()

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/doctors/"+id, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)

	err := h.GetDoctor(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404 HTTPError, got %v", err)
	}
}

func TestListPatientsHandlerStatusFilter(t *testing.T) {
	h, _, repo := newTestHandler()
	e := echo.New()

	for _, p := range []*Patient{
		{FirstName: "Tunde", LastName: "Alade", Status: "Active"},
		{FirstName: "Old", LastName: "Record", Status: "Inactive"},
	} {
		if err := repo.Create(context.Background(), p); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/patients?status=Active", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListPatients(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("expected total 1, got %d", resp.Total)
	}
}
