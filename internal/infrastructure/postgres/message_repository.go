package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rishusinha26/portfolio-backend/internal/domain/entity"
	"github.com/rishusinha26/portfolio-backend/internal/domain/repository"
)

const messageColumns = `id, name, email, subject, body, read, status, created_at, updated_at`

type MessageRepository struct {
	pool *pgxpool.Pool
}

func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

func scanMessage(row pgx.Row) (*entity.Message, error) {
	m := &entity.Message{}
	var status string
	if err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body, &m.Read, &status, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	m.Status = entity.MessageStatus(status)
	return m, nil
}

func (r *MessageRepository) Create(ctx context.Context, m *entity.Message) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO messages (name, email, subject, body, read, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, m.Name, m.Email, m.Subject, m.Body, m.Read, string(m.Status))
	return mapErr(row.Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt))
}

func (r *MessageRepository) List(ctx context.Context) ([]entity.Message, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+messageColumns+` FROM messages ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Message, 0)
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (r *MessageRepository) UpdateStatus(ctx context.Context, id string, status entity.MessageStatus) error {
	if !validID(id) {
		return repository.ErrNotFound
	}
	res, err := r.pool.Exec(ctx, `
		UPDATE messages SET status = $1, updated_at = now() WHERE id = $2
	`, string(status), id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MessageRepository) MarkRead(ctx context.Context, id string) (*entity.Message, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE messages SET read = TRUE, updated_at = now()
		WHERE id = $1
		RETURNING `+messageColumns, id)
	return scanMessage(row)
}

func (r *MessageRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return repository.ErrNotFound
	}
	res, err := r.pool.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.MessageRepository = (*MessageRepository)(nil)
