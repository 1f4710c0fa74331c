package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rishusinha26/portfolio-backend/internal/domain/entity"
	"github.com/rishusinha26/portfolio-backend/internal/domain/repository"
)

const experienceColumns = `id, type, title, organization, location, start_date, end_date, current,
	description, skills, certificate_url, sort_order, created_at, updated_at`

type ExperienceRepository struct {
	pool *pgxpool.Pool
}

func NewExperienceRepository(pool *pgxpool.Pool) *ExperienceRepository {
	return &ExperienceRepository{pool: pool}
}

func scanExperience(row pgx.Row) (*entity.Experience, error) {
	e := &entity.Experience{}
	var typ string
	if err := row.Scan(&e.ID, &typ, &e.Title, &e.Organization, &e.Location, &e.StartDate, &e.EndDate,
		&e.Current, &e.Description, &e.Skills, &e.CertificateURL, &e.Order, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	e.Type = entity.ExperienceType(typ)
	if e.Skills == nil {
		e.Skills = []string{}
	}
	return e, nil
}

func (r *ExperienceRepository) List(ctx context.Context, f entity.ExperienceFilter) ([]entity.Experience, error) {
	var (
		rows pgx.Rows
		err  error
	)
	const order = ` ORDER BY start_date DESC, sort_order ASC`
	if f.Type != "" {
		rows, err = r.pool.Query(ctx, `SELECT `+experienceColumns+` FROM experiences WHERE type = $1`+order, string(f.Type))
	} else {
		rows, err = r.pool.Query(ctx, `SELECT `+experienceColumns+` FROM experiences`+order)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Experience, 0)
	for rows.Next() {
		e, err := scanExperience(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (r *ExperienceRepository) Get(ctx context.Context, id string) (*entity.Experience, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	return scanExperience(r.pool.QueryRow(ctx, `SELECT `+experienceColumns+` FROM experiences WHERE id = $1`, id))
}

func (r *ExperienceRepository) Create(ctx context.Context, e *entity.Experience) error {
	if e.Skills == nil {
		e.Skills = []string{}
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO experiences (type, title, organization, location, start_date, end_date, current,
		                         description, skills, certificate_url, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`, string(e.Type), e.Title, e.Organization, e.Location, e.StartDate, e.EndDate, e.Current,
		e.Description, e.Skills, e.CertificateURL, e.Order)
	return mapErr(row.Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt))
}

// Update applies patch inside a transaction holding a row lock.
func (r *ExperienceRepository) Update(ctx context.Context, id string, patch entity.ExperiencePatch) (*entity.Experience, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	var out *entity.Experience
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		e, err := scanExperience(tx.QueryRow(ctx, `SELECT `+experienceColumns+` FROM experiences WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return err
		}
		patch.Apply(e)
		out, err = scanExperience(tx.QueryRow(ctx, `
			UPDATE experiences
			SET type = $1, title = $2, organization = $3, location = $4, start_date = $5, end_date = $6,
			    current = $7, description = $8, skills = $9, certificate_url = $10, sort_order = $11,
			    updated_at = now()
			WHERE id = $12
			RETURNING `+experienceColumns,
			string(e.Type), e.Title, e.Organization, e.Location, e.StartDate, e.EndDate, e.Current,
			e.Description, e.Skills, e.CertificateURL, e.Order, id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ExperienceRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return repository.ErrNotFound
	}
	res, err := r.pool.Exec(ctx, `DELETE FROM experiences WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ExperienceRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.pool.Exec(ctx, `DELETE FROM experiences`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected(), nil
}

var _ repository.ExperienceRepository = (*ExperienceRepository)(nil)
