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

type PaymentRepository interface {
	// CreateWithReminders inserts the payment and its reminder schedule
	// in one transaction; either everything lands or nothing does.
	CreateWithReminders(ctx context.Context, p *models.Payment, reminders []*models.Reminder) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	ListByLeaseID(ctx context.Context, leaseID uuid.UUID) ([]*models.Payment, error)
	Update(ctx context.Context, p *models.Payment) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type paymentRepo struct {
	db DB
}

func NewPaymentRepository(db DB) PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) CreateWithReminders(ctx context.Context, p *models.Payment, reminders []*models.Reminder) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
        INSERT INTO payments (
            id, lease_id, name, description, amount, type,
            payment_date, recurring_interval, is_deleted, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,false, NOW(), NOW())
    `,
		p.ID,
		p.LeaseID,
		p.Name,
		p.Description,
		p.Amount,
		p.Type,
		p.PaymentDate,
		p.RecurringInterval,
	)
	if err != nil {
		return err
	}

	for _, rem := range reminders {
		_, err = tx.Exec(ctx, `
            INSERT INTO reminders (id, payment_id, days_before, created_at)
            VALUES ($1,$2,$3, NOW())
        `,
			rem.ID,
			rem.PaymentID,
			rem.DaysBefore,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *paymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	row := r.db.QueryRow(ctx, baseSelectPayment()+" WHERE id=$1 AND is_deleted=false", id)
	return scanPayment(row)
}

func (r *paymentRepo) ListByLeaseID(ctx context.Context, leaseID uuid.UUID) ([]*models.Payment, error) {
	rows, err := r.db.Query(ctx,
		baseSelectPayment()+" WHERE lease_id=$1 AND is_deleted=false ORDER BY payment_date",
		leaseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *paymentRepo) Update(ctx context.Context, p *models.Payment) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE payments SET
            name=$2, description=$3, amount=$4, type=$5,
            payment_date=$6, recurring_interval=$7, updated_at=NOW()
        WHERE id=$1 AND is_deleted=false
    `,
		p.ID,
		p.Name,
		p.Description,
		p.Amount,
		p.Type,
		p.PaymentDate,
		p.RecurringInterval,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *paymentRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE payments SET is_deleted=true, updated_at=NOW() WHERE id=$1 AND is_deleted=false`,
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

func baseSelectPayment() string {
	return `
        SELECT
            id, lease_id, name, description, amount, type,
            payment_date, recurring_interval, is_deleted, created_at, updated_at
        FROM payments
    `
}

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var p models.Payment
	err := row.Scan(
		&p.ID,
		&p.LeaseID,
		&p.Name,
		&p.Description,
		&p.Amount,
		&p.Type,
		&p.PaymentDate,
		&p.RecurringInterval,
		&p.IsDeleted,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
