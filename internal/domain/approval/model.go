// Package approval holds the queue of newly registered accounts waiting
// for an administrator to assign them a role.
package approval

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// PendingUser maps to the pending_user table.
type PendingUser struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	SubjectID     string     `db:"subject_id" json:"subjectId"`
	Email         string     `db:"email" json:"email"`
	Name          string     `db:"name" json:"name"`
	RequestedRole *string    `db:"requested_role" json:"requestedRole,omitempty"`
	Status        string     `db:"status" json:"status"`
	AssignedRole  *string    `db:"assigned_role" json:"assignedRole,omitempty"`
	ReviewedBy    *string    `db:"reviewed_by" json:"reviewedBy,omitempty"`
	ReviewedAt    *time.Time `db:"reviewed_at" json:"reviewedAt,omitempty"`
	SubmittedAt   time.Time  `db:"submitted_at" json:"submittedAt"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}
