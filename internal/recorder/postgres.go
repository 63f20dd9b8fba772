package recorder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/phuslu/log"

	"ValueSentinel/internal/model"
)

const pgTimeout = 10 * time.Second

// PostgresRecorder persists analysis history to Postgres, keeping reports
// and verdicts in JSONB columns.
type PostgresRecorder struct {
	pool *pgxpool.Pool
}

// NewPostgresRecorder connects to databaseURL and runs migrations.
func NewPostgresRecorder(ctx context.Context, databaseURL string) (*PostgresRecorder, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	r := &PostgresRecorder{pool: pool}
	if err := r.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	log.Info().Str("host", config.ConnConfig.Host).Str("database", config.ConnConfig.Database).Msg("postgres recorder opened")
	return r, nil
}

func (r *PostgresRecorder) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id               UUID PRIMARY KEY,
			ticker           TEXT NOT NULL,
			signal           TEXT NOT NULL,
			score            DOUBLE PRECISION NOT NULL,
			max_score        DOUBLE PRECISION NOT NULL,
			margin_of_safety DOUBLE PRECISION,
			report           JSONB NOT NULL,
			verdict          JSONB,
			created_at       TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_ticker_ts ON analyses(ticker, created_at DESC)`,
	}
	for _, s := range stmts {
		if _, err := r.pool.Exec(ctx, s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *PostgresRecorder) RecordAnalysis(rec *AnalysisRecord) error {
	report, verdict, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), pgTimeout)
	defer cancel()

	_, err = r.pool.Exec(ctx, `INSERT INTO analyses
		(id, ticker, signal, score, max_score, margin_of_safety, report, verdict, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		rec.ID, strings.ToUpper(rec.Ticker), string(rec.Signal), rec.Score, rec.MaxScore,
		rec.MarginOfSafety, report, verdict, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}
	return nil
}

const pgSelectColumns = `id::text, ticker, signal, score, max_score, margin_of_safety, report, verdict, created_at`

func (r *PostgresRecorder) Get(id string) (*AnalysisRecord, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	ctx, cancel := context.WithTimeout(context.Background(), pgTimeout)
	defer cancel()

	rec, err := scanPostgres(r.pool.QueryRow(ctx, `SELECT `+pgSelectColumns+` FROM analyses WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return rec, err
}

func (r *PostgresRecorder) History(ticker string, limit int) ([]*AnalysisRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	ctx, cancel := context.WithTimeout(context.Background(), pgTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, `SELECT `+pgSelectColumns+` FROM analyses
		WHERE ticker = $1 ORDER BY created_at DESC LIMIT $2`, strings.ToUpper(ticker), limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []*AnalysisRecord
	for rows.Next() {
		rec, err := scanPostgres(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *PostgresRecorder) Delete(id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	ctx, cancel := context.WithTimeout(context.Background(), pgTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `DELETE FROM analyses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete analysis: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRecorder) Close() error {
	log.Info().Msg("closing postgres recorder")
	r.pool.Close()
	return nil
}

func scanPostgres(row pgx.Row) (*AnalysisRecord, error) {
	var (
		rec     AnalysisRecord
		signal  string
		report  []byte
		verdict []byte
	)
	if err := row.Scan(&rec.ID, &rec.Ticker, &signal, &rec.Score, &rec.MaxScore, &rec.MarginOfSafety, &report, &verdict, &rec.CreatedAt); err != nil {
		return nil, err
	}
	if err := decodeRecord(&rec, report, verdict); err != nil {
		return nil, err
	}
	rec.Signal = model.Signal(signal)
	rec.CreatedAt = rec.CreatedAt.UTC()
	return &rec, nil
}
