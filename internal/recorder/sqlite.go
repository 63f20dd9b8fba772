package recorder

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/phuslu/log"
	_ "modernc.org/sqlite"

	"ValueSentinel/internal/model"
	"ValueSentinel/internal/narrative"
)

// SQLiteRecorder persists analysis history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets history queries read while the scheduler writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id               TEXT PRIMARY KEY,
			ticker           TEXT NOT NULL,
			signal           TEXT NOT NULL,
			score            REAL NOT NULL,
			max_score        REAL NOT NULL,
			margin_of_safety REAL,
			report           TEXT NOT NULL,
			verdict          TEXT,
			created_at       INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_ticker_ts ON analyses(ticker, created_at)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordAnalysis(rec *AnalysisRecord) error {
	report, verdict, err := encodeRecord(rec)
	if err != nil {
		return err
	}

	var verdictCol any
	if verdict != nil {
		verdictCol = string(verdict)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, err = r.db.Exec(`INSERT INTO analyses
		(id, ticker, signal, score, max_score, margin_of_safety, report, verdict, created_at)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		rec.ID, strings.ToUpper(rec.Ticker), string(rec.Signal), rec.Score, rec.MaxScore,
		rec.MarginOfSafety, string(report), verdictCol, rec.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}
	return nil
}

const selectColumns = `id, ticker, signal, score, max_score, margin_of_safety, report, verdict, created_at`

func (r *SQLiteRecorder) Get(id string) (*AnalysisRecord, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	row := r.db.QueryRow(`SELECT `+selectColumns+` FROM analyses WHERE id = ?`, id)
	rec, err := scanSQLite(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return rec, err
}

func (r *SQLiteRecorder) History(ticker string, limit int) ([]*AnalysisRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Query(`SELECT `+selectColumns+` FROM analyses
		WHERE ticker = ? ORDER BY created_at DESC LIMIT ?`, strings.ToUpper(ticker), limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []*AnalysisRecord
	for rows.Next() {
		rec, err := scanSQLite(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Delete(id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.Exec(`DELETE FROM analyses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete analysis: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLite(row rowScanner) (*AnalysisRecord, error) {
	var (
		rec       AnalysisRecord
		signal    string
		mos       sql.NullFloat64
		report    string
		verdict   sql.NullString
		createdAt int64
	)
	if err := row.Scan(&rec.ID, &rec.Ticker, &signal, &rec.Score, &rec.MaxScore, &mos, &report, &verdict, &createdAt); err != nil {
		return nil, err
	}
	var verdictJSON []byte
	if verdict.Valid {
		verdictJSON = []byte(verdict.String)
	}
	if err := decodeRecord(&rec, []byte(report), verdictJSON); err != nil {
		return nil, err
	}
	rec.Signal = model.Signal(signal)
	if mos.Valid {
		v := mos.Float64
		rec.MarginOfSafety = &v
	}
	rec.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &rec, nil
}

// encodeRecord marshals the JSON columns. verdict is nil when absent so
// it is stored as NULL.
func encodeRecord(rec *AnalysisRecord) (report []byte, verdict []byte, err error) {
	report, err = json.Marshal(rec.Report)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal report: %w", err)
	}
	if rec.Verdict != nil {
		verdict, err = json.Marshal(rec.Verdict)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal verdict: %w", err)
		}
	}
	return report, verdict, nil
}

func decodeRecord(rec *AnalysisRecord, report, verdict []byte) error {
	if err := json.Unmarshal(report, &rec.Report); err != nil {
		return fmt.Errorf("unmarshal report %s: %w", rec.ID, err)
	}
	if len(verdict) > 0 {
		var v narrative.Verdict
		if err := json.Unmarshal(verdict, &v); err != nil {
			return fmt.Errorf("unmarshal verdict %s: %w", rec.ID, err)
		}
		rec.Verdict = &v
	}
	return nil
}
