package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const defaultDurationMinutes = 30

type Service struct {
	appts      AppointmentRepository
	roomPrefix string
}

func NewService(appts AppointmentRepository, roomPrefix string) *Service {
	return &Service{appts: appts, roomPrefix: roomPrefix}
}

// Book validates and persists a new appointment. Telehealth visits get a
// deterministic room name derived from the appointment id, so every
// participant resolves the same room without coordination.
func (s *Service) Book(ctx context.Context, a *Appointment) error {
	if a.PatientID == uuid.Nil {
		return fmt.Errorf("patient is required")
	}
	if a.DoctorID == uuid.Nil {
		return fmt.Errorf("doctor is required")
	}
	if a.ScheduledAt.IsZero() {
		return fmt.Errorf("scheduled time is required")
	}
	if a.DurationMin <= 0 {
		a.DurationMin = defaultDurationMinutes
	}
	if a.Mode == "" {
		a.Mode = ModeInPerson
	}
	if a.Mode != ModeInPerson && a.Mode != ModeTelehealth {
		return fmt.Errorf("unknown appointment mode %q", a.Mode)
	}
	a.Status = StatusScheduled

	end := a.ScheduledAt.Add(time.Duration(a.DurationMin) * time.Minute)
	overlapping, err := s.appts.CountOverlapping(ctx, a.DoctorID, a.ScheduledAt, end)
	if err != nil {
		return fmt.Errorf("checking doctor availability: %w", err)
	}
	if overlapping > 0 {
		return fmt.Errorf("doctor is not available at the requested time")
	}

	if err := s.appts.Create(ctx, a); err != nil {
		return err
	}

	if a.Mode == ModeTelehealth {
		room := fmt.Sprintf("%s-%s", s.roomPrefix, a.ID)
		a.RoomName = &room
		return s.appts.Update(ctx, a)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.appts.GetByID(ctx, id)
}

// UpdateStatus enforces the forward-only status machine.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Appointment, error) {
	a, err := s.appts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status != StatusScheduled {
		return nil, fmt.Errorf("appointment is already %s", a.Status)
	}
	if status != StatusCompleted && status != StatusCancelled {
		return nil, fmt.Errorf("invalid status transition to %q", status)
	}
	a.Status = status
	if err := s.appts.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Appointment, int, error) {
	return s.appts.List(ctx, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	return s.appts.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	return s.appts.ListByDoctor(ctx, doctorID, limit, offset)
}
