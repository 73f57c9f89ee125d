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

type DocumentRepository interface {
	Create(ctx context.Context, d *models.Document) error

	// GetByID includes the author display projection.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error)

	ListByLeaseID(ctx context.Context, leaseID uuid.UUID) ([]*models.Document, error)
	CountByAuthor(ctx context.Context, leaseID, authorID uuid.UUID) (int, error)
	UpdateName(ctx context.Context, id uuid.UUID, name string) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type documentRepo struct {
	db DB
}

func NewDocumentRepository(db DB) DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, d *models.Document) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO documents (
            id, lease_id, author_id, name, file_name, file_type, type,
            is_deleted, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,false, NOW(), NOW())
    `,
		d.ID,
		d.LeaseID,
		d.AuthorID,
		d.Name,
		d.FileName,
		d.FileType,
		d.Type,
	)
	return err
}

func (r *documentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	row := r.db.QueryRow(ctx, `
        SELECT d.id, d.lease_id, d.author_id, d.name, d.file_name, d.file_type,
               d.type, d.is_deleted, d.created_at, d.updated_at,
               u.id, u.name
        FROM documents d
        JOIN users u ON u.id = d.author_id
        WHERE d.id=$1 AND d.is_deleted=false
    `, id)

	var (
		d models.Document
		p models.UserProjection
	)
	err := row.Scan(
		&d.ID, &d.LeaseID, &d.AuthorID, &d.Name, &d.FileName, &d.FileType,
		&d.Type, &d.IsDeleted, &d.CreatedAt, &d.UpdatedAt,
		&p.ID, &p.Name,
	)
	if err != nil {
		return nil, err
	}
	d.Author = &p
	return &d, nil
}

func (r *documentRepo) ListByLeaseID(ctx context.Context, leaseID uuid.UUID) ([]*models.Document, error) {
	rows, err := r.db.Query(ctx, `
        SELECT d.id, d.lease_id, d.author_id, d.name, d.file_name, d.file_type,
               d.type, d.is_deleted, d.created_at, d.updated_at,
               u.id, u.name
        FROM documents d
        JOIN users u ON u.id = d.author_id
        WHERE d.lease_id=$1 AND d.is_deleted=false
        ORDER BY d.created_at DESC
    `, leaseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Document
	for rows.Next() {
		var (
			d models.Document
			p models.UserProjection
		)
		err := rows.Scan(
			&d.ID, &d.LeaseID, &d.AuthorID, &d.Name, &d.FileName, &d.FileType,
			&d.Type, &d.IsDeleted, &d.CreatedAt, &d.UpdatedAt,
			&p.ID, &p.Name,
		)
		if err != nil {
			return nil, err
		}
		d.Author = &p
		out = append(out, &d)
	}
	return out, rows.Err()
}

func (r *documentRepo) CountByAuthor(ctx context.Context, leaseID, authorID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
        SELECT COUNT(*) FROM documents
        WHERE lease_id=$1 AND author_id=$2 AND is_deleted=false
    `, leaseID, authorID).Scan(&count)
	return count, err
}

func (r *documentRepo) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE documents SET name=$2, updated_at=NOW() WHERE id=$1 AND is_deleted=false`,
		id, name,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *documentRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE documents SET is_deleted=true, updated_at=NOW() WHERE id=$1 AND is_deleted=false`,
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
