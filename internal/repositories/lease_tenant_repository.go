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

type LeaseTenantRepository interface {
	Add(ctx context.Context, lt *models.LeaseTenant) error
	ListByLeaseID(ctx context.Context, leaseID uuid.UUID) ([]*models.LeaseTenant, error)
	IsTenant(ctx context.Context, leaseID, tenantID uuid.UUID) (bool, error)
	HasTenantWithEmail(ctx context.Context, leaseID uuid.UUID, email string) (bool, error)

	// IsLandlordTenantPair reports whether the tenant is an active
	// member of any live lease on one of the landlord's properties.
	IsLandlordTenantPair(ctx context.Context, landlordID, tenantID uuid.UUID) (bool, error)

	// Leave soft-deletes the caller's own membership; Remove is the
	// landlord removing a membership by its row ID.
	Leave(ctx context.Context, leaseID, tenantID uuid.UUID) error
	Remove(ctx context.Context, leaseTenantID uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type leaseTenantRepo struct {
	db DB
}

func NewLeaseTenantRepository(db DB) LeaseTenantRepository {
	return &leaseTenantRepo{db: db}
}

func (r *leaseTenantRepo) Add(ctx context.Context, lt *models.LeaseTenant) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO lease_tenants (id, lease_id, tenant_id, is_deleted, created_at)
        VALUES ($1,$2,$3,false, NOW())
    `,
		lt.ID,
		lt.LeaseID,
		lt.TenantID,
	)
	return err
}

func (r *leaseTenantRepo) ListByLeaseID(ctx context.Context, leaseID uuid.UUID) ([]*models.LeaseTenant, error) {
	rows, err := r.db.Query(ctx, `
        SELECT lt.id, lt.lease_id, lt.tenant_id, lt.is_deleted, lt.created_at,
               u.id, u.name, u.email
        FROM lease_tenants lt
        JOIN users u ON u.id = lt.tenant_id
        WHERE lt.lease_id=$1 AND lt.is_deleted=false
        ORDER BY lt.created_at
    `, leaseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.LeaseTenant
	for rows.Next() {
		var (
			lt models.LeaseTenant
			p  models.UserProjection
		)
		err := rows.Scan(
			&lt.ID, &lt.LeaseID, &lt.TenantID, &lt.IsDeleted, &lt.CreatedAt,
			&p.ID, &p.Name, &p.Email,
		)
		if err != nil {
			return nil, err
		}
		lt.Tenant = &p
		out = append(out, &lt)
	}
	return out, rows.Err()
}

func (r *leaseTenantRepo) IsTenant(ctx context.Context, leaseID, tenantID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
        SELECT EXISTS(
            SELECT 1 FROM lease_tenants
            WHERE lease_id=$1 AND tenant_id=$2 AND is_deleted=false
        )
    `, leaseID, tenantID).Scan(&exists)
	return exists, err
}

func (r *leaseTenantRepo) HasTenantWithEmail(ctx context.Context, leaseID uuid.UUID, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
        SELECT EXISTS(
            SELECT 1 FROM lease_tenants lt
            JOIN users u ON u.id = lt.tenant_id
            WHERE lt.lease_id=$1 AND u.email=$2 AND lt.is_deleted=false
        )
    `, leaseID, email).Scan(&exists)
	return exists, err
}

func (r *leaseTenantRepo) IsLandlordTenantPair(ctx context.Context, landlordID, tenantID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
        SELECT EXISTS(
            SELECT 1 FROM lease_tenants lt
            JOIN leases l ON l.id = lt.lease_id AND l.is_deleted=false
            JOIN properties p ON p.id = l.property_id AND p.is_deleted=false
            WHERE p.landlord_id=$1 AND lt.tenant_id=$2 AND lt.is_deleted=false
        )
    `, landlordID, tenantID).Scan(&exists)
	return exists, err
}

func (r *leaseTenantRepo) Leave(ctx context.Context, leaseID, tenantID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE lease_tenants SET is_deleted=true
        WHERE lease_id=$1 AND tenant_id=$2 AND is_deleted=false
    `, leaseID, tenantID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *leaseTenantRepo) Remove(ctx context.Context, leaseTenantID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE lease_tenants SET is_deleted=true
        WHERE id=$1 AND is_deleted=false
    `, leaseTenantID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
