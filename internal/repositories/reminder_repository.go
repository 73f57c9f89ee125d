package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/avibn/lanten-sub001/internal/models"
)

// DueReminder is one (tenant, payment) pair whose reminder fires
// today. The digest job groups rows by tenant email.
type DueReminder struct {
	TenantEmail        string
	TenantName         string
	PaymentName        string
	PaymentDescription string
	Amount             float64
	DueDate            time.Time
}

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type ReminderRepository interface {
	Create(ctx context.Context, rem *models.Reminder) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Reminder, error)
	ListByPaymentID(ctx context.Context, paymentID uuid.UUID) ([]*models.Reminder, error)
	ExistsForPayment(ctx context.Context, paymentID uuid.UUID, daysBefore int) (bool, error)
	Update(ctx context.Context, rem *models.Reminder) error

	// Reminders are hard-deleted; there is nothing to display once the
	// schedule entry is gone.
	Delete(ctx context.Context, id uuid.UUID) error

	// DueToday expands recurring payment schedules and returns every
	// (tenant, payment) reminder firing today.
	DueToday(ctx context.Context) ([]*DueReminder, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type reminderRepo struct {
	db DB
}

func NewReminderRepository(db DB) ReminderRepository {
	return &reminderRepo{db: db}
}

func (r *reminderRepo) Create(ctx context.Context, rem *models.Reminder) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO reminders (id, payment_id, days_before, created_at)
        VALUES ($1,$2,$3, NOW())
    `,
		rem.ID,
		rem.PaymentID,
		rem.DaysBefore,
	)
	return err
}

func (r *reminderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Reminder, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, payment_id, days_before, created_at FROM reminders WHERE id=$1`, id)
	return scanReminder(row)
}

func (r *reminderRepo) ListByPaymentID(ctx context.Context, paymentID uuid.UUID) ([]*models.Reminder, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, payment_id, days_before, created_at
         FROM reminders WHERE payment_id=$1 ORDER BY days_before`,
		paymentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Reminder
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rem)
	}
	return out, rows.Err()
}

func (r *reminderRepo) ExistsForPayment(ctx context.Context, paymentID uuid.UUID, daysBefore int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM reminders WHERE payment_id=$1 AND days_before=$2)`,
		paymentID, daysBefore,
	).Scan(&exists)
	return exists, err
}

func (r *reminderRepo) Update(ctx context.Context, rem *models.Reminder) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE reminders SET days_before=$2 WHERE id=$1`,
		rem.ID, rem.DaysBefore,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reminderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reminders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reminderRepo) DueToday(ctx context.Context) ([]*DueReminder, error) {
	rows, err := r.db.Query(ctx, `
        WITH recurring_dates AS (
            SELECT p.id, g.date::date
            FROM payments p
            CROSS JOIN LATERAL generate_series(
                p.payment_date,
                (CURRENT_DATE AT TIME ZONE 'UTC') + INTERVAL '10 days',
                CASE
                    WHEN p.recurring_interval = 'DAILY'   THEN '1 day'::interval
                    WHEN p.recurring_interval = 'WEEKLY'  THEN '7 days'::interval
                    WHEN p.recurring_interval = 'MONTHLY' THEN '1 month'::interval
                    WHEN p.recurring_interval = 'YEARLY'  THEN '1 year'::interval
                END
            ) g(date)
            WHERE p.recurring_interval <> 'NONE' AND p.is_deleted=false
        ),
        due AS (
            SELECT rd.id AS payment_id, rd.date AS due_date
            FROM recurring_dates rd
            JOIN reminders r ON r.payment_id = rd.id
            WHERE rd.date - r.days_before = CURRENT_DATE

            UNION

            SELECT p.id, DATE(p.payment_date)
            FROM payments p
            JOIN reminders r ON r.payment_id = p.id
            WHERE p.is_deleted=false
              AND DATE(p.payment_date) - r.days_before = CURRENT_DATE
        )
        SELECT u.email, u.name, p.name, COALESCE(p.description, ''), p.amount, d.due_date
        FROM due d
        JOIN payments p ON p.id = d.payment_id
        JOIN leases l ON l.id = p.lease_id AND l.is_deleted=false
        JOIN lease_tenants lt ON lt.lease_id = l.id AND lt.is_deleted=false
        JOIN users u ON u.id = lt.tenant_id AND u.is_active=true
        ORDER BY u.email, d.due_date
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*DueReminder
	for rows.Next() {
		var d DueReminder
		err := rows.Scan(
			&d.TenantEmail,
			&d.TenantName,
			&d.PaymentName,
			&d.PaymentDescription,
			&d.Amount,
			&d.DueDate,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

func scanReminder(row pgx.Row) (*models.Reminder, error) {
	var rem models.Reminder
	err := row.Scan(
		&rem.ID,
		&rem.PaymentID,
		&rem.DaysBefore,
		&rem.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rem, nil
}
