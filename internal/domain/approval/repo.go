package approval

import (
	"context"

	"github.com/google/uuid"
)

type PendingUserRepository interface {
	Create(ctx context.Context, u *PendingUser) error
	GetByID(ctx context.Context, id uuid.UUID) (*PendingUser, error)
	GetBySubject(ctx context.Context, subjectID string) (*PendingUser, error)
	Update(ctx context.Context, u *PendingUser) error
	List(ctx context.Context, status string, limit, offset int) ([]*PendingUser, int, error)
}
