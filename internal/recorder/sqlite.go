package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists evaluation history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the scheduler writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS evaluations (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			ticker      TEXT NOT NULL,
			price       REAL,
			signal      TEXT,
			stop_loss   REAL,
			total_score REAL,
			label       TEXT,
			pc_ratio    REAL,
			pc_source   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_eval_ts ON evaluations(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_eval_ticker ON evaluations(ticker)`,

		`CREATE TABLE IF NOT EXISTS scan_runs (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			universe  INTEGER,
			buy       INTEGER,
			hold      INTEGER,
			sell      INTEGER,
			failures  INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scan_ts ON scan_runs(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordEvaluation(ev *Evaluation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO evaluations
		(timestamp, ticker, price, signal, stop_loss, total_score, label, pc_ratio, pc_source)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), ev.Ticker, ev.Price, ev.Signal,
		ev.StopLoss, ev.TotalScore, ev.Label, ev.PCRatio, ev.PCSource,
	)
	return err
}

func (r *SQLiteRecorder) RecordScan(run *ScanRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO scan_runs
		(timestamp, universe, buy, hold, sell, failures)
		VALUES (?,?,?,?,?,?)`,
		time.Now().Unix(), run.Universe, run.Buy, run.Hold, run.Sell, run.Failures,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
