// Package clinical covers clinical documentation, currently limited to
// prescriptions written by doctors for patients.
package clinical

import (
	"time"

	"github.com/google/uuid"
)

// Prescription maps to the prescription table.
type Prescription struct {
	ID          uuid.UUID `db:"id" json:"id"`
	PatientID   uuid.UUID `db:"patient_id" json:"patientId"`
	DoctorID    uuid.UUID `db:"doctor_id" json:"doctorId"`
	Medication  string    `db:"medication" json:"medication"`
	Dosage      string    `db:"dosage" json:"dosage"`
	Frequency   *string   `db:"frequency" json:"frequency,omitempty"`
	DurationDay *int      `db:"duration_days" json:"durationDays,omitempty"`
	Diagnosis   *string   `db:"diagnosis" json:"diagnosis,omitempty"`
	Notes       *string   `db:"notes" json:"notes,omitempty"`
	Status      string    `db:"status" json:"status"`
	IssuedAt    time.Time `db:"issued_at" json:"issuedAt"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
