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

type PropertyRepository interface {
	Create(ctx context.Context, p *models.Property) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	ListByLandlordID(ctx context.Context, landlordID uuid.UUID) ([]*models.Property, error)
	Update(ctx context.Context, p *models.Property) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type propertyRepo struct {
	db DB
}

func NewPropertyRepository(db DB) PropertyRepository {
	return &propertyRepo{db: db}
}

func (r *propertyRepo) Create(ctx context.Context, p *models.Property) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO properties (
            id, landlord_id, name, description, address,
            image_name, image_type, is_deleted, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,false, NOW(), NOW())
    `,
		p.ID,
		p.LandlordID,
		p.Name,
		p.Description,
		p.Address,
		p.ImageName,
		p.ImageType,
	)
	return err
}

func (r *propertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	row := r.db.QueryRow(ctx, baseSelectProperty()+" WHERE id=$1 AND is_deleted=false", id)
	return scanProperty(row)
}

func (r *propertyRepo) ListByLandlordID(ctx context.Context, landlordID uuid.UUID) ([]*models.Property, error) {
	rows, err := r.db.Query(ctx,
		baseSelectProperty()+" WHERE landlord_id=$1 AND is_deleted=false ORDER BY updated_at DESC",
		landlordID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *propertyRepo) Update(ctx context.Context, p *models.Property) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE properties SET
            name=$2, description=$3, address=$4,
            image_name=$5, image_type=$6, updated_at=NOW()
        WHERE id=$1 AND is_deleted=false
    `,
		p.ID,
		p.Name,
		p.Description,
		p.Address,
		p.ImageName,
		p.ImageType,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *propertyRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE properties SET is_deleted=true, updated_at=NOW() WHERE id=$1 AND is_deleted=false`,
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

func baseSelectProperty() string {
	return `
        SELECT
            id, landlord_id, name, description, address,
            image_name, image_type, is_deleted, created_at, updated_at
        FROM properties
    `
}

func scanProperty(row pgx.Row) (*models.Property, error) {
	var p models.Property
	err := row.Scan(
		&p.ID,
		&p.LandlordID,
		&p.Name,
		&p.Description,
		&p.Address,
		&p.ImageName,
		&p.ImageType,
		&p.IsDeleted,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
