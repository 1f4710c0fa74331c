package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rishusinha26/portfolio-backend/internal/domain/entity"
	"github.com/rishusinha26/portfolio-backend/internal/domain/repository"
)

const projectColumns = `id, title, description, tech_stack, github_url, live_url, image_url, featured, sort_order, created_at, updated_at`

type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

func scanProject(row pgx.Row) (*entity.Project, error) {
	p := &entity.Project{}
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.TechStack, &p.GithubURL, &p.LiveURL,
		&p.ImageURL, &p.Featured, &p.Order, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	if p.TechStack == nil {
		p.TechStack = []string{}
	}
	return p, nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]entity.Project, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY sort_order ASC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *ProjectRepository) Get(ctx context.Context, id string) (*entity.Project, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	return scanProject(r.pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
}

func (r *ProjectRepository) Create(ctx context.Context, p *entity.Project) error {
	if p.TechStack == nil {
		p.TechStack = []string{}
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO projects (title, description, tech_stack, github_url, live_url, image_url, featured, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, p.Title, p.Description, p.TechStack, p.GithubURL, p.LiveURL, p.ImageURL, p.Featured, p.Order)
	return mapErr(row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt))
}

// Update applies patch inside a transaction holding a row lock.
func (r *ProjectRepository) Update(ctx context.Context, id string, patch entity.ProjectPatch) (*entity.Project, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	var out *entity.Project
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		p, err := scanProject(tx.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return err
		}
		patch.Apply(p)
		out, err = scanProject(tx.QueryRow(ctx, `
			UPDATE projects
			SET title = $1, description = $2, tech_stack = $3, github_url = $4, live_url = $5,
			    image_url = $6, featured = $7, sort_order = $8, updated_at = now()
			WHERE id = $9
			RETURNING `+projectColumns,
			p.Title, p.Description, p.TechStack, p.GithubURL, p.LiveURL, p.ImageURL, p.Featured, p.Order, id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return repository.ErrNotFound
	}
	res, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.pool.Exec(ctx, `DELETE FROM projects`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected(), nil
}

var _ repository.ProjectRepository = (*ProjectRepository)(nil)
