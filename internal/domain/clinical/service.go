package clinical

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	scripts PrescriptionRepository
}

func NewService(scripts PrescriptionRepository) *Service {
	return &Service{scripts: scripts}
}

func (s *Service) CreatePrescription(ctx context.Context, p *Prescription) error {
	if p.PatientID == uuid.Nil {
		return fmt.Errorf("patient is required")
	}
	if p.DoctorID == uuid.Nil {
		return fmt.Errorf("doctor is required")
	}
	if p.Medication == "" {
		return fmt.Errorf("medication is required")
	}
	if p.Dosage == "" {
		return fmt.Errorf("dosage is required")
	}
	if p.DurationDay != nil && *p.DurationDay <= 0 {
		return fmt.Errorf("duration must be positive")
	}
	if p.Status == "" {
		p.Status = "Active"
	}
	if p.IssuedAt.IsZero() {
		p.IssuedAt = time.Now().UTC()
	}
	return s.scripts.Create(ctx, p)
}

func (s *Service) GetPrescription(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	return s.scripts.GetByID(ctx, id)
}

func (s *Service) UpdatePrescription(ctx context.Context, p *Prescription) error {
	if p.Medication == "" {
		return fmt.Errorf("medication is required")
	}
	return s.scripts.Update(ctx, p)
}

// CancelPrescription marks a prescription as cancelled. Rows are never
// deleted; the record stays part of the patient's history.
func (s *Service) CancelPrescription(ctx context.Context, id uuid.UUID) error {
	p, err := s.scripts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	p.Status = "Cancelled"
	return s.scripts.Update(ctx, p)
}

func (s *Service) ListPrescriptions(ctx context.Context, limit, offset int) ([]*Prescription, int, error) {
	return s.scripts.List(ctx, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Prescription, int, error) {
	return s.scripts.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Prescription, int, error) {
	return s.scripts.ListByDoctor(ctx, doctorID, limit, offset)
}
