// Package scheduling manages appointments between patients and doctors,
// including telehealth visits that carry a meeting room reference.
package scheduling

import (
	"time"

	"github.com/google/uuid"
)

// Appointment statuses move forward only: Scheduled -> Completed, or
// Scheduled -> Cancelled. Completed and Cancelled are terminal.
const (
	StatusScheduled = "Scheduled"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

const (
	ModeInPerson   = "in-person"
	ModeTelehealth = "telehealth"
)

// Appointment maps to the appointment table.
type Appointment struct {
	ID          uuid.UUID `db:"id" json:"id"`
	PatientID   uuid.UUID `db:"patient_id" json:"patientId"`
	DoctorID    uuid.UUID `db:"doctor_id" json:"doctorId"`
	ScheduledAt time.Time `db:"scheduled_at" json:"scheduledAt"`
	DurationMin int       `db:"duration_minutes" json:"durationMinutes"`
	Mode        string    `db:"mode" json:"mode"`
	RoomName    *string   `db:"room_name" json:"roomName,omitempty"`
	Reason      *string   `db:"reason" json:"reason,omitempty"`
	Notes       *string   `db:"notes" json:"notes,omitempty"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
