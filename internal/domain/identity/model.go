// Package identity manages the people the hospital serves and employs
// clinically: doctors and patients.
package identity

import (
	"time"

	"github.com/google/uuid"
)

// Doctor maps to the doctor table.
type Doctor struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	FirstName       string     `db:"first_name" json:"firstName"`
	LastName        string     `db:"last_name" json:"lastName"`
	Email           string     `db:"email" json:"email"`
	Phone           *string    `db:"phone" json:"phone,omitempty"`
	DepartmentID    *uuid.UUID `db:"department_id" json:"departmentId,omitempty"`
	Specialization  *string    `db:"specialization" json:"specialization,omitempty"`
	Qualification   *string    `db:"qualification" json:"qualification,omitempty"`
	ExperienceYears *int       `db:"experience_years" json:"experienceYears,omitempty"`
	ConsultationFee *float64   `db:"consultation_fee" json:"consultationFee,omitempty"`
	Status          string     `db:"status" json:"status"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// EmergencyContact is stored inline on the patient row as JSONB.
type EmergencyContact struct {
	Name     string `json:"name,omitempty"`
	Relation string `json:"relation,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// Patient maps to the patient table.
type Patient struct {
	ID               uuid.UUID         `db:"id" json:"id"`
	FirstName        string            `db:"first_name" json:"firstName"`
	LastName         string            `db:"last_name" json:"lastName"`
	Email            *string           `db:"email" json:"email,omitempty"`
	Phone            *string           `db:"phone" json:"phone,omitempty"`
	DateOfBirth      *time.Time        `db:"date_of_birth" json:"dateOfBirth,omitempty"`
	Gender           *string           `db:"gender" json:"gender,omitempty"`
	BloodGroup       *string           `db:"blood_group" json:"bloodGroup,omitempty"`
	Address          *string           `db:"address" json:"address,omitempty"`
	Allergies        []string          `db:"allergies" json:"allergies,omitempty"`
	EmergencyContact *EmergencyContact `db:"emergency_contact" json:"emergencyContact,omitempty"`
	Status           string            `db:"status" json:"status"`
	CreatedAt        time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time         `db:"updated_at" json:"updated_at"`
}
