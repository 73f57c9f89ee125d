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

type MessageRepository interface {
	Create(ctx context.Context, m *models.Message) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Message, error)

	// ListBetween returns the conversation between two users in
	// ascending creation order, optionally resuming after the `from`
	// cursor, capped at `max` rows. Soft-deleted rows never appear.
	ListBetween(ctx context.Context, userA, userB uuid.UUID, from *uuid.UUID, max int) ([]*models.Message, error)

	// Channels derives the conversation summaries for a user: one row
	// per counterparty, most recently messaged first.
	Channels(ctx context.Context, userID uuid.UUID) ([]*models.MessageChannel, error)

	SoftDelete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type messageRepo struct {
	db DB
}

func NewMessageRepository(db DB) MessageRepository {
	return &messageRepo{db: db}
}

func (r *messageRepo) Create(ctx context.Context, m *models.Message) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO messages (
            id, message, author_id, recipient_id, is_deleted, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,false, NOW(), NOW())
    `,
		m.ID,
		m.Message,
		m.AuthorID,
		m.RecipientID,
	)
	return err
}

func (r *messageRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Message, error) {
	row := r.db.QueryRow(ctx, baseSelectMessage()+" WHERE id=$1 AND is_deleted=false", id)
	return scanMessage(row)
}

func (r *messageRepo) ListBetween(ctx context.Context, userA, userB uuid.UUID, from *uuid.UUID, max int) ([]*models.Message, error) {
	rows, err := r.db.Query(ctx, baseSelectMessage()+`
        WHERE is_deleted=false
          AND ((author_id=$1 AND recipient_id=$2) OR (author_id=$2 AND recipient_id=$1))
          AND ($3::uuid IS NULL OR created_at > (
              SELECT created_at FROM messages WHERE id=$3
          ))
        ORDER BY created_at
        LIMIT $4
    `, userA, userB, from, max)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *messageRepo) Channels(ctx context.Context, userID uuid.UUID) ([]*models.MessageChannel, error) {
	rows, err := r.db.Query(ctx, `
        SELECT u.id, u.email, u.name, MAX(m.created_at) AS last_messaged
        FROM messages m
        JOIN users u ON u.id = CASE
            WHEN m.author_id=$1 THEN m.recipient_id
            ELSE m.author_id
        END
        WHERE (m.author_id=$1 OR m.recipient_id=$1) AND m.is_deleted=false
        GROUP BY u.id, u.email, u.name
        ORDER BY last_messaged DESC
    `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.MessageChannel
	for rows.Next() {
		var c models.MessageChannel
		if err := rows.Scan(&c.ID, &c.Email, &c.Name, &c.LastMessaged); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *messageRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE messages SET is_deleted=true, updated_at=NOW() WHERE id=$1 AND is_deleted=false`,
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

func baseSelectMessage() string {
	return `
        SELECT id, message, author_id, recipient_id, is_deleted, created_at, updated_at
        FROM messages
    `
}

func scanMessage(row pgx.Row) (*models.Message, error) {
	var m models.Message
	err := row.Scan(
		&m.ID,
		&m.Message,
		&m.AuthorID,
		&m.RecipientID,
		&m.IsDeleted,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
