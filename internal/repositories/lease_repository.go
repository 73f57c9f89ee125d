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

type LeaseRepository interface {
	Create(ctx context.Context, l *models.Lease) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Lease, error)
	GetByInviteCode(ctx context.Context, code string) (*models.Lease, error)

	// ListForUser returns every lease the user can see: leases on the
	// user's properties plus leases the user is an active tenant of.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.Lease, error)

	// LandlordID resolves the owning landlord through the property,
	// the pivot of almost every authorization decision.
	LandlordID(ctx context.Context, leaseID uuid.UUID) (uuid.UUID, error)

	Update(ctx context.Context, l *models.Lease) error
	UpdateDescription(ctx context.Context, id uuid.UUID, description string) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type leaseRepo struct {
	db DB
}

func NewLeaseRepository(db DB) LeaseRepository {
	return &leaseRepo{db: db}
}

func (r *leaseRepo) Create(ctx context.Context, l *models.Lease) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO leases (
            id, property_id, start_date, end_date, total_rent,
            description, invite_code, is_deleted, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,false, NOW(), NOW())
    `,
		l.ID,
		l.PropertyID,
		l.StartDate,
		l.EndDate,
		l.TotalRent,
		l.Description,
		l.InviteCode,
	)
	return err
}

func (r *leaseRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Lease, error) {
	row := r.db.QueryRow(ctx, baseSelectLease()+" WHERE l.id=$1 AND l.is_deleted=false", id)
	return scanLease(row)
}

func (r *leaseRepo) GetByInviteCode(ctx context.Context, code string) (*models.Lease, error) {
	row := r.db.QueryRow(ctx, baseSelectLease()+" WHERE l.invite_code=$1 AND l.is_deleted=false", code)
	return scanLease(row)
}

func (r *leaseRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.Lease, error) {
	rows, err := r.db.Query(ctx, baseSelectLease()+`
        WHERE l.is_deleted=false AND (
            p.landlord_id=$1
            OR EXISTS (
                SELECT 1 FROM lease_tenants lt
                WHERE lt.lease_id=l.id AND lt.tenant_id=$1 AND lt.is_deleted=false
            )
        )
        ORDER BY l.created_at
    `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Lease
	for rows.Next() {
		l, err := scanLease(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *leaseRepo) LandlordID(ctx context.Context, leaseID uuid.UUID) (uuid.UUID, error) {
	var landlordID uuid.UUID
	err := r.db.QueryRow(ctx, `
        SELECT p.landlord_id
        FROM leases l
        JOIN properties p ON p.id = l.property_id
        WHERE l.id=$1 AND l.is_deleted=false
    `, leaseID).Scan(&landlordID)
	return landlordID, err
}

func (r *leaseRepo) Update(ctx context.Context, l *models.Lease) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE leases SET
            start_date=$2, end_date=$3, total_rent=$4, description=$5, updated_at=NOW()
        WHERE id=$1 AND is_deleted=false
    `,
		l.ID,
		l.StartDate,
		l.EndDate,
		l.TotalRent,
		l.Description,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *leaseRepo) UpdateDescription(ctx context.Context, id uuid.UUID, description string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE leases SET description=$2, updated_at=NOW() WHERE id=$1 AND is_deleted=false`,
		id, description,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *leaseRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE leases SET is_deleted=true, updated_at=NOW() WHERE id=$1 AND is_deleted=false`,
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

func baseSelectLease() string {
	return `
        SELECT
            l.id, l.property_id, l.start_date, l.end_date, l.total_rent,
            l.description, l.invite_code, l.is_deleted, l.created_at, l.updated_at,
            p.name, p.address,
            (SELECT COUNT(*) FROM lease_tenants lt
                WHERE lt.lease_id=l.id AND lt.is_deleted=false),
            (SELECT COUNT(*) FROM payments pay
                WHERE pay.lease_id=l.id AND pay.is_deleted=false)
        FROM leases l
        JOIN properties p ON p.id = l.property_id
    `
}

func scanLease(row pgx.Row) (*models.Lease, error) {
	var l models.Lease
	err := row.Scan(
		&l.ID,
		&l.PropertyID,
		&l.StartDate,
		&l.EndDate,
		&l.TotalRent,
		&l.Description,
		&l.InviteCode,
		&l.IsDeleted,
		&l.CreatedAt,
		&l.UpdatedAt,
		&l.PropertyName,
		&l.PropertyAddress,
		&l.TenantCount,
		&l.PaymentCount,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
