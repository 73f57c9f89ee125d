package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4"

	"github.com/avibn/lanten-sub001/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type SessionRepository interface {
	Create(ctx context.Context, s *models.Session) error

	// GetWithUser resolves a session ID to its (unexpired) session row
	// and the active user it belongs to. Returns pgx.ErrNoRows when
	// either half is missing.
	GetWithUser(ctx context.Context, id string) (*models.Session, *models.User, error)

	// Touch implements rolling expiry: every authenticated request
	// pushes the window forward.
	Touch(ctx context.Context, id string, expiresAt time.Time) error

	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type sessionRepo struct {
	db DB
}

func NewSessionRepository(db DB) SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) Create(ctx context.Context, s *models.Session) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO sessions (id, user_id, expires_at, created_at)
        VALUES ($1,$2,$3, NOW())
    `,
		s.ID,
		s.UserID,
		s.ExpiresAt,
	)
	return err
}

func (r *sessionRepo) GetWithUser(ctx context.Context, id string) (*models.Session, *models.User, error) {
	row := r.db.QueryRow(ctx, `
        SELECT
            s.id, s.user_id, s.expires_at, s.created_at,
            u.id, u.email, u.name, u.password_hash, u.user_type, u.is_active,
            u.created_at, u.updated_at
        FROM sessions s
        JOIN users u ON u.id = s.user_id
        WHERE s.id=$1 AND s.expires_at > NOW() AND u.is_active=true
    `, id)

	var (
		s models.Session
		u models.User
	)
	err := row.Scan(
		&s.ID, &s.UserID, &s.ExpiresAt, &s.CreatedAt,
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.UserType, &u.IsActive,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, nil, err
	}
	return &s, &u, nil
}

func (r *sessionRepo) Touch(ctx context.Context, id string, expiresAt time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE sessions SET expires_at=$2 WHERE id=$1`, id, expiresAt)
	return err
}

func (r *sessionRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *sessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
