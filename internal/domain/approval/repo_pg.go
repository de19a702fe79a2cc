package approval

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pendingUserColumns = `id, subject_id, email, name, requested_role, status,
	assigned_role, reviewed_by, reviewed_at, submitted_at, created_at, updated_at`

type pendingUserRepoPG struct {
	pool *pgxpool.Pool
}

func NewPendingUserRepo(pool *pgxpool.Pool) PendingUserRepository {
	return &pendingUserRepoPG{pool: pool}
}

func (r *pendingUserRepoPG) Create(ctx context.Context, u *PendingUser) error {
	u.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO pending_user (id, subject_id, email, name, requested_role, status, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.SubjectID, u.Email, u.Name, u.RequestedRole, u.Status, u.SubmittedAt,
	)
	return err
}

func (r *pendingUserRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*PendingUser, error) {
	return scanPendingUser(r.pool.QueryRow(ctx,
		`SELECT `+pendingUserColumns+` FROM pending_user WHERE id = $1`, id))
}

func (r *pendingUserRepoPG) GetBySubject(ctx context.Context, subjectID string) (*PendingUser, error) {
	return scanPendingUser(r.pool.QueryRow(ctx,
		`SELECT `+pendingUserColumns+` FROM pending_user WHERE subject_id = $1`, subjectID))
}

func (r *pendingUserRepoPG) Update(ctx context.Context, u *PendingUser) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE pending_user SET
			status = $2, assigned_role = $3, reviewed_by = $4, reviewed_at = $5, updated_at = NOW()
		WHERE id = $1`,
		u.ID, u.Status, u.AssignedRole, u.ReviewedBy, u.ReviewedAt,
	)
	return err
}

func (r *pendingUserRepoPG) List(ctx context.Context, status string, limit, offset int) ([]*PendingUser, int, error) {
	query := `SELECT ` + pendingUserColumns + ` FROM pending_user`
	countQuery := `SELECT COUNT(*) FROM pending_user`
	var args []interface{}
	idx := 1

	if status != "" {
		clause := fmt.Sprintf(` WHERE status = $%d`, idx)
		query += clause
		countQuery += clause
		args = append(args, status)
		idx++
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY submitted_at LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []*PendingUser
	for rows.Next() {
		u, err := scanPendingUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

func scanPendingUser(row pgx.Row) (*PendingUser, error) {
	var u PendingUser
	err := row.Scan(&u.ID, &u.SubjectID, &u.Email, &u.Name, &u.RequestedRole, &u.Status,
		&u.AssignedRole, &u.ReviewedBy, &u.ReviewedAt, &u.SubmittedAt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
