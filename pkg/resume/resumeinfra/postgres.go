package resumeinfra

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Abraxas-365/resumeforge/pkg/errx"
	"github.com/Abraxas-365/resumeforge/pkg/kernel"
	"github.com/Abraxas-365/resumeforge/pkg/resume"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS resume_enhancements (
	id                TEXT PRIMARY KEY,
	original_filename TEXT NOT NULL,
	enhanced_filename TEXT NOT NULL,
	original_score    INTEGER NOT NULL,
	enhanced_score    INTEGER NOT NULL,
	source            TEXT NOT NULL,
	model             TEXT,
	client_ip         TEXT,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_resume_enhancements_created_at ON resume_enhancements (created_at DESC);`

// PostgresRepository stores enhancement history in Postgres.
type PostgresRepository struct {
	db *sqlx.DB
}

var _ resume.Repository = (*PostgresRepository)(nil)

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the table and index when missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return errx.Wrap(err, "failed to create resume_enhancements table", errx.TypeInternal)
	}
	return nil
}

func (r *PostgresRepository) Save(ctx context.Context, e resume.Enhancement) error {
	query := `
		INSERT INTO resume_enhancements (
			id, original_filename, enhanced_filename, original_score, enhanced_score,
			source, model, client_ip, created_at
		) VALUES (
			:id, :original_filename, :enhanced_filename, :original_score, :enhanced_score,
			:source, :model, :client_ip, :created_at
		)
		ON CONFLICT (id) DO UPDATE SET
			enhanced_filename = EXCLUDED.enhanced_filename,
			enhanced_score    = EXCLUDED.enhanced_score,
			source            = EXCLUDED.source,
			model             = EXCLUDED.model`

	if _, err := r.db.NamedExecContext(ctx, query, toPersistence(e)); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return errx.Wrap(err, "failed to save enhancement", errx.TypeInternal).
				WithDetail("id", e.ID.String()).
				WithDetail("pg_code", string(pqErr.Code))
		}
		return errx.Wrap(err, "failed to save enhancement", errx.TypeInternal).WithDetail("id", e.ID.String())
	}
	return nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id kernel.EnhancementID) (*resume.Enhancement, error) {
	var row enhancementPersistence
	err := r.db.GetContext(ctx, &row, `SELECT * FROM resume_enhancements WHERE id = $1`, id.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, resume.ErrEnhancementNotFound().WithDetail("id", id.String())
		}
		return nil, errx.Wrap(err, "failed to find enhancement", errx.TypeInternal)
	}
	e := toDomain(row)
	return &e, nil
}

func (r *PostgresRepository) List(ctx context.Context, opts kernel.PaginationOptions) (kernel.Paginated[resume.Enhancement], error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM resume_enhancements`); err != nil {
		return kernel.Paginated[resume.Enhancement]{}, errx.Wrap(err, "failed to count enhancements", errx.TypeInternal)
	}

	var rows []enhancementPersistence
	query := `SELECT * FROM resume_enhancements ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &rows, query, opts.PageSize, opts.Offset()); err != nil {
		return kernel.Paginated[resume.Enhancement]{}, errx.Wrap(err, "failed to list enhancements", errx.TypeInternal)
	}

	items := make([]resume.Enhancement, len(rows))
	for i, row := range rows {
		items[i] = toDomain(row)
	}
	return kernel.NewPaginated(items, opts.Page, opts.PageSize, total), nil
}

// Ping checks the connection for the health endpoint.
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

type enhancementPersistence struct {
	ID               string         `db:"id"`
	OriginalFilename string         `db:"original_filename"`
	EnhancedFilename string         `db:"enhanced_filename"`
	OriginalScore    int            `db:"original_score"`
	EnhancedScore    int            `db:"enhanced_score"`
	Source           string         `db:"source"`
	Model            sql.NullString `db:"model"`
	ClientIP         sql.NullString `db:"client_ip"`
	CreatedAt        time.Time      `db:"created_at"`
}

func toPersistence(e resume.Enhancement) enhancementPersistence {
	return enhancementPersistence{
		ID:               e.ID.String(),
		OriginalFilename: e.OriginalFilename,
		EnhancedFilename: e.EnhancedFilename,
		OriginalScore:    e.OriginalScore,
		EnhancedScore:    e.EnhancedScore,
		Source:           string(e.Source),
		Model:            sql.NullString{String: e.Model, Valid: e.Model != ""},
		ClientIP:         sql.NullString{String: e.ClientIP, Valid: e.ClientIP != ""},
		CreatedAt:        e.CreatedAt,
	}
}

func toDomain(p enhancementPersistence) resume.Enhancement {
	return resume.Enhancement{
		ID:               kernel.EnhancementID(p.ID),
		OriginalFilename: p.OriginalFilename,
		EnhancedFilename: p.EnhancedFilename,
		OriginalScore:    p.OriginalScore,
		EnhancedScore:    p.EnhancedScore,
		Source:           resume.Source(p.Source),
		Model:            p.Model.String,
		ClientIP:         p.ClientIP.String,
		CreatedAt:        p.CreatedAt,
	}
}
