package clinical

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

var errNotFound = errors.New("not found")

type mockPrescriptionRepo struct {
	scripts map[uuid.UUID]*Prescription
}

func newMockPrescriptionRepo() *mockPrescriptionRepo {
	return &mockPrescriptionRepo{scripts: make(map[uuid.UUID]*Prescription)}
}

func (m *mockPrescriptionRepo) Create(_ context.Context, p *Prescription) error {
	p.ID = uuid.New()
	m.scripts[p.ID] = p
	return nil
}

func (m *mockPrescriptionRepo) GetByID(_ context.Context, id uuid.UUID) (*Prescription, error) {
	p, ok := m.scripts[id]
	if !ok {
		return nil, errNotFound
	}
	return p, nil
}

func (m *mockPrescriptionRepo) Update(_ context.Context, p *Prescription) error {
	if _, ok := m.scripts[p.ID]; !ok {
		return errNotFound
	}
	m.scripts[p.ID] = p
	return nil
}

func (m *mockPrescriptionRepo) List(_ context.Context, limit, offset int) ([]*Prescription, int, error) {
	var out []*Prescription
	for _, p := range m.scripts {
		out = append(out, p)
	}
	return out, len(out), nil
}

func (m *mockPrescriptionRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*Prescription, int, error) {
	var out []*Prescription
	for _, p := range m.scripts {
		if p.PatientID == patientID {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}

func (m *mockPrescriptionRepo) ListByDoctor(_ context.Context, doctorID uuid.UUID, limit, offset int) ([]*Prescription, int, error) {
	var out []*Prescription
	for _, p := range m.scripts {
		if p.DoctorID == doctorID {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}

func TestCreatePrescriptionValidation(t *testing.T) {
	svc := NewService(newMockPrescriptionRepo())
	ctx := context.Background()

	patientID := uuid.New()
	doctorID := uuid.New()
	zeroDays := 0

	cases := []struct {
		name   string
		script Prescription
	}{
		{"missing patient", Prescription{DoctorID: doctorID, Medication: "Amoxicillin", Dosage: "500mg"}},
		{"missing doctor", Prescription{PatientID: patientID, Medication: "Amoxicillin", Dosage: "500mg"}},
		{"missing medication", Prescription{PatientID: patientID, DoctorID: doctorID, Dosage: "500mg"}},
		{"missing dosage", Prescription{PatientID: patientID, DoctorID: doctorID, Medication: "Amoxicillin"}},
		{"non-positive duration", Prescription{PatientID: patientID, DoctorID: doctorID, Medication: "Amoxicillin", Dosage: "500mg", DurationDay: &zeroDays}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.CreatePrescription(ctx, &tc.script); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestCreatePrescriptionDefaults(t *testing.T) {
	repo := newMockPrescriptionRepo()
	svc := NewService(repo)

	p := &Prescription{
		PatientID:  uuid.New(),
		DoctorID:   uuid.New(),
		Medication: "Amoxicillin",
		Dosage:     "500mg",
	}
	if err := svc.CreatePrescription(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status != "Active" {
		t.Errorf("expected status Active, got %q", p.Status)
	}
	if p.IssuedAt.IsZero() {
		t.Error("expected issuedAt to be stamped")
	}
}

func TestCancelPrescription(t *testing.T) {
	repo := newMockPrescriptionRepo()
	svc := NewService(repo)
	ctx := context.Background()

	p := &Prescription{
		PatientID:  uuid.New(),
		DoctorID:   uuid.New(),
		Medication: "Amoxicillin",
		Dosage:     "500mg",
	}
	if err := svc.CreatePrescription(ctx, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.CancelPrescription(ctx, p.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.scripts[p.ID].Status != "Cancelled" {
		t.Errorf("expected Cancelled, got %q", repo.scripts[p.ID].Status)
	}

	if err := svc.CancelPrescription(ctx, uuid.New()); err == nil {
		t.Error("expected error for unknown prescription")
	}
}

func TestListByPatientScopesResults(t *testing.T) {
	repo := newMockPrescriptionRepo()
	svc := NewService(repo)
	ctx := context.Background()

	patientA := uuid.New()
	patientB := uuid.New()
	doctorID := uuid.New()

	for _, pid := range []uuid.UUID{patientA, patientA, patientB} {
		p := &Prescription{PatientID: pid, DoctorID: doctorID, Medication: "Ibuprofen", Dosage: "200mg"}
		if err := svc.CreatePrescription(ctx, p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	scripts, total, err := svc.ListByPatient(ctx, patientA, 50, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 || len(scripts) != 2 {
		t.Errorf("expected 2 prescriptions for patient A, got total=%d len=%d", total, len(scripts))
	}
}
