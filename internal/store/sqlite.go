package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/prospect-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS prospects (
	id           TEXT PRIMARY KEY,
	dedup_key    TEXT NOT NULL UNIQUE,
	name         TEXT NOT NULL,
	title        TEXT NOT NULL DEFAULT '',
	organization TEXT NOT NULL DEFAULT '',
	specialties  TEXT NOT NULL DEFAULT '[]',
	location     TEXT NOT NULL DEFAULT '',
	email        TEXT NOT NULL DEFAULT '',
	phone        TEXT NOT NULL DEFAULT '',
	website      TEXT NOT NULL DEFAULT '',
	source_url   TEXT NOT NULL,
	source_type  TEXT NOT NULL,
	bio_excerpt  TEXT NOT NULL DEFAULT '',
	fit_score    INTEGER NOT NULL DEFAULT 0,
	created_at   DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_prospects_source_type ON prospects(source_type);
CREATE INDEX IF NOT EXISTS idx_prospects_fit_score ON prospects(fit_score);
CREATE INDEX IF NOT EXISTS idx_prospects_created_at ON prospects(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveProspect(ctx context.Context, p model.Prospect) (SaveResult, error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	tagsJSON, err := json.Marshal(p.SpecialtyTags)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: marshal specialties")
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO prospects
		 (id, dedup_key, name, title, organization, specialties, location, email, phone, website, source_url, source_type, bio_excerpt, fit_score, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (dedup_key) DO NOTHING`,
		p.ID, identityKey(p), p.Name, p.Title, p.Organization, string(tagsJSON),
		p.Location, p.Contact.Email, p.Contact.Phone, p.Contact.Website,
		p.SourceURL, string(p.SourceType), p.BioExcerpt, p.FitScore, p.CreatedAt,
	)
	if err != nil {
		return "", eris.Wrapf(err, "sqlite: insert prospect %s", p.Name)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return "", eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return SaveResultDuplicate, nil
	}
	return SaveResultSaved, nil
}

func (s *SQLiteStore) ListProspects(ctx context.Context, filter ProspectFilter) ([]model.Prospect, error) {
	query := `SELECT id, name, title, organization, specialties, location, email, phone, website, source_url, source_type, bio_excerpt, fit_score, created_at
	          FROM prospects WHERE 1=1`
	var args []any

	if filter.SourceType != "" {
		query += ` AND source_type = ?`
		args = append(args, string(filter.SourceType))
	}
	if filter.MinScore > 0 {
		query += ` AND fit_score >= ?`
		args = append(args, filter.MinScore)
	}
	query += ` ORDER BY fit_score DESC, created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list prospects")
	}
	defer rows.Close()

	var prospects []model.Prospect
	for rows.Next() {
		var p model.Prospect
		var tagsJSON string
		var srcType string
		if err := rows.Scan(&p.ID, &p.Name, &p.Title, &p.Organization, &tagsJSON,
			&p.Location, &p.Contact.Email, &p.Contact.Phone, &p.Contact.Website,
			&p.SourceURL, &srcType, &p.BioExcerpt, &p.FitScore, &p.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan prospect")
		}
		if err := json.Unmarshal([]byte(tagsJSON), &p.SpecialtyTags); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal specialties")
		}
		p.SourceType = model.SourceType(srcType)
		prospects = append(prospects, p)
	}
	return prospects, eris.Wrap(rows.Err(), "sqlite: list prospects iterate")
}

func (s *SQLiteStore) CountProspects(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM prospects`).Scan(&count)
	return count, eris.Wrap(err, "sqlite: count prospects")
}
