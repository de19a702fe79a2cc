package approval

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var assignableRoles = map[string]bool{
	"admin":   true,
	"doctor":  true,
	"patient": true,
}

type Service struct {
	queue PendingUserRepository
}

func NewService(queue PendingUserRepository) *Service {
	return &Service{queue: queue}
}

// Register enqueues a signed-in account that has no role yet. Calling it
// twice for the same subject returns the existing entry untouched.
func (s *Service) Register(ctx context.Context, u *PendingUser) error {
	if u.SubjectID == "" {
		return fmt.Errorf("subject id is required")
	}
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		return fmt.Errorf("a valid email is required")
	}

	if existing, err := s.queue.GetBySubject(ctx, u.SubjectID); err == nil {
		*u = *existing
		return nil
	}

	u.Status = StatusPending
	if u.SubmittedAt.IsZero() {
		u.SubmittedAt = time.Now().UTC()
	}
	return s.queue.Create(ctx, u)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*PendingUser, error) {
	return s.queue.GetByID(ctx, id)
}

// Approve assigns a role and closes the queue entry. Role assignment in
// the identity provider is a separate step; this records the decision.
func (s *Service) Approve(ctx context.Context, id uuid.UUID, role, reviewerID string) (*PendingUser, error) {
	if !assignableRoles[role] {
		return nil, fmt.Errorf("role %q is not assignable", role)
	}

	u, err := s.queue.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Status != StatusPending {
		return nil, fmt.Errorf("request is already %s", u.Status)
	}

	now := time.Now().UTC()
	u.Status = StatusApproved
	u.AssignedRole = &role
	u.ReviewedBy = &reviewerID
	u.ReviewedAt = &now
	if err := s.queue.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) Reject(ctx context.Context, id uuid.UUID, reviewerID string) (*PendingUser, error) {
	u, err := s.queue.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Status != StatusPending {
		return nil, fmt.Errorf("request is already %s", u.Status)
	}

	now := time.Now().UTC()
	u.Status = StatusRejected
	u.ReviewedBy = &reviewerID
	u.ReviewedAt = &now
	if err := s.queue.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) List(ctx context.Context, status string, limit, offset int) ([]*PendingUser, int, error) {
	return s.queue.List(ctx, status, limit, offset)
}
