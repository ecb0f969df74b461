package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/prospect-cli/internal/model"
)

// pgPool is the subset of pgxpool.Pool the store uses. pgxmock's
// PgxPoolIface satisfies it, which keeps the Postgres store testable
// without a live database.
type pgPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool pgPool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS prospects (
	id           TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	dedup_key    TEXT NOT NULL UNIQUE,
	name         TEXT NOT NULL,
	title        TEXT NOT NULL DEFAULT '',
	organization TEXT NOT NULL DEFAULT '',
	specialties  JSONB NOT NULL DEFAULT '[]',
	location     TEXT NOT NULL DEFAULT '',
	email        TEXT NOT NULL DEFAULT '',
	phone        TEXT NOT NULL DEFAULT '',
	website      TEXT NOT NULL DEFAULT '',
	source_url   TEXT NOT NULL,
	source_type  TEXT NOT NULL,
	bio_excerpt  TEXT NOT NULL DEFAULT '',
	fit_score    INTEGER NOT NULL DEFAULT 0,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_prospects_source_type ON prospects(source_type);
CREATE INDEX IF NOT EXISTS idx_prospects_fit_score ON prospects(fit_score);
CREATE INDEX IF NOT EXISTS idx_prospects_created_at ON prospects(created_at);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveProspect(ctx context.Context, p model.Prospect) (SaveResult, error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	tagsJSON, err := json.Marshal(p.SpecialtyTags)
	if err != nil {
		return "", eris.Wrap(err, "postgres: marshal specialties")
	}

	tag, err := s.pool.Exec(ctx,
		`INSERT INTO prospects
		 (id, dedup_key, name, title, organization, specialties, location, email, phone, website, source_url, source_type, bio_excerpt, fit_score, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		 ON CONFLICT (dedup_key) DO NOTHING`,
		p.ID, identityKey(p), p.Name, p.Title, p.Organization, tagsJSON,
		p.Location, p.Contact.Email, p.Contact.Phone, p.Contact.Website,
		p.SourceURL, string(p.SourceType), p.BioExcerpt, p.FitScore, p.CreatedAt,
	)
	if err != nil {
		return "", eris.Wrapf(err, "postgres: insert prospect %s", p.Name)
	}
	if tag.RowsAffected() == 0 {
		return SaveResultDuplicate, nil
	}
	return SaveResultSaved, nil
}

func (s *PostgresStore) ListProspects(ctx context.Context, filter ProspectFilter) ([]model.Prospect, error) {
	query := `SELECT id, name, title, organization, specialties, location, email, phone, website, source_url, source_type, bio_excerpt, fit_score, created_at
	          FROM prospects WHERE true`
	args := []any{}
	argIdx := 1

	if filter.SourceType != "" {
		query += fmt.Sprintf(` AND source_type = $%d`, argIdx)
		args = append(args, string(filter.SourceType))
		argIdx++
	}
	if filter.MinScore > 0 {
		query += fmt.Sprintf(` AND fit_score >= $%d`, argIdx)
		args = append(args, filter.MinScore)
		argIdx++
	}
	query += ` ORDER BY fit_score DESC, created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, limit)
	argIdx++

	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argIdx)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list prospects")
	}
	defer rows.Close()

	var prospects []model.Prospect
	for rows.Next() {
		var p model.Prospect
		var tagsJSON []byte
		var srcType string
		if err := rows.Scan(&p.ID, &p.Name, &p.Title, &p.Organization, &tagsJSON,
			&p.Location, &p.Contact.Email, &p.Contact.Phone, &p.Contact.Website,
			&p.SourceURL, &srcType, &p.BioExcerpt, &p.FitScore, &p.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan prospect")
		}
		if err := json.Unmarshal(tagsJSON, &p.SpecialtyTags); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal specialties")
		}
		p.SourceType = model.SourceType(srcType)
		prospects = append(prospects, p)
	}
	return prospects, eris.Wrap(rows.Err(), "postgres: list prospects iterate")
}

func (s *PostgresStore) CountProspects(ctx context.Context) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM prospects`).Scan(&count)
	return count, eris.Wrap(err, "postgres: count prospects")
}
