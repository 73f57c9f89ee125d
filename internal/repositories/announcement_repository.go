package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/avibn/lanten-sub001/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type AnnouncementRepository interface {
	Create(ctx context.Context, a *models.Announcement) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Announcement, error)
	ListByLeaseID(ctx context.Context, leaseID uuid.UUID) ([]*models.Announcement, error)
	Update(ctx context.Context, a *models.Announcement) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type announcementRepo struct {
	db DB
}

func NewAnnouncementRepository(db DB) AnnouncementRepository {
	return &announcementRepo{db: db}
}

func (r *announcementRepo) Create(ctx context.Context, a *models.Announcement) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO announcements (
            id, lease_id, title, message, is_deleted, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,false, NOW(), NOW())
    `,
		a.ID,
		a.LeaseID,
		a.Title,
		a.Message,
	)
	return err
}

func (r *announcementRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Announcement, error) {
	row := r.db.QueryRow(ctx, baseSelectAnnouncement()+" WHERE id=$1 AND is_deleted=false", id)
	return scanAnnouncement(row)
}

func (r *announcementRepo) ListByLeaseID(ctx context.Context, leaseID uuid.UUID) ([]*models.Announcement, error) {
	rows, err := r.db.Query(ctx,
		baseSelectAnnouncement()+" WHERE lease_id=$1 AND is_deleted=false ORDER BY created_at DESC",
		leaseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Announcement
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *announcementRepo) Update(ctx context.Context, a *models.Announcement) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE announcements SET title=$2, message=$3, updated_at=NOW()
        WHERE id=$1 AND is_deleted=false
    `,
		a.ID,
		a.Title,
		a.Message,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *announcementRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE announcements SET is_deleted=true, updated_at=NOW() WHERE id=$1 AND is_deleted=false`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectAnnouncement() string {
	return `
        SELECT id, lease_id, title, message, is_deleted, created_at, updated_at
        FROM announcements
    `
}

func scanAnnouncement(row pgx.Row) (*models.Announcement, error) {
	var a models.Announcement
	err := row.Scan(
		&a.ID,
		&a.LeaseID,
		&a.Title,
		&a.Message,
		&a.IsDeleted,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
