// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/verte-zerg/readscore/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout keeps nanoseconds at a fixed width so stored times sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for recorded runs.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			file TEXT NOT NULL,
			title TEXT NOT NULL,
			analyzed_at TEXT NOT NULL,
			grade REAL NOT NULL,
			ease REAL NOT NULL,
			asl REAL NOT NULL,
			asw REAL NOT NULL,
			passive REAL NOT NULL,
			sentences INTEGER NOT NULL,
			words INTEGER NOT NULL,
			flags INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS run_sections (
			run_id INTEGER NOT NULL,
			heading TEXT NOT NULL,
			grade REAL NOT NULL,
			ease REAL NOT NULL,
			asl REAL NOT NULL,
			asw REAL NOT NULL,
			passive REAL NOT NULL,
			sentences INTEGER NOT NULL,
			words INTEGER NOT NULL,
			PRIMARY KEY (run_id, heading)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_file_analyzed_at ON runs(file, analyzed_at);`,
		`CREATE INDEX IF NOT EXISTS idx_run_sections_heading ON run_sections(heading);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores a recorded run and its per-section metrics.
func (s *Store) InsertRun(ctx context.Context, run model.Run) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	m := run.Overall
	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (file, title, analyzed_at, grade, ease, asl, asw, passive, sentences, words, flags)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.File,
		run.Title,
		run.AnalyzedAt.UTC().Format(timeLayout),
		m.FleschKincaidGrade,
		m.FleschReadingEase,
		m.AvgSentenceLength,
		m.AvgWordSyllables,
		m.PassiveVoicePct,
		m.SentenceCount,
		m.WordCount,
		run.FlagCount,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(run.Sections) > 0 {
		var stmt *sql.Stmt
		stmt, err = tx.PrepareContext(ctx,
			`INSERT INTO run_sections (run_id, heading, grade, ease, asl, asw, passive, sentences, words)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		headings := make([]string, 0, len(run.Sections))
		for heading := range run.Sections {
			headings = append(headings, heading)
		}
		sort.Strings(headings)
		for _, heading := range headings {
			sm := run.Sections[heading]
			if _, err = stmt.ExecContext(ctx, id, heading,
				sm.FleschKincaidGrade, sm.FleschReadingEase, sm.AvgSentenceLength,
				sm.AvgWordSyllables, sm.PassiveVoicePct, sm.SentenceCount, sm.WordCount); err != nil {
				return 0, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListRuns returns recorded runs, oldest first, filtered by history config.
// With a section filter the metrics come from that section and runs
// without it are skipped.
func (s *Store) ListRuns(ctx context.Context, cfg model.HistoryConfig) ([]model.RunAggregate, error) {
	source := "r"
	join := ""
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Section != "" {
		source = "rs"
		join = "JOIN run_sections rs ON rs.run_id = r.id"
		clauses = append(clauses, "rs.heading = ?")
		args = append(args, cfg.Section)
	}
	if cfg.File != "" {
		clauses = append(clauses, "r.file = ?")
		args = append(args, cfg.File)
	}
	query := fmt.Sprintf(`SELECT r.id, r.file, r.title, r.analyzed_at, r.flags,
		%[1]s.grade, %[1]s.ease, %[1]s.asl, %[1]s.asw, %[1]s.passive, %[1]s.sentences, %[1]s.words
		FROM runs r
		%[2]s
		WHERE %[3]s
		ORDER BY r.analyzed_at ASC, r.id ASC`, source, join, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.RunAggregate
	for rows.Next() {
		var agg model.RunAggregate
		var analyzedAt string
		m := &agg.Metrics
		if err := rows.Scan(&agg.RunID, &agg.File, &agg.Title, &analyzedAt, &agg.FlagCount,
			&m.FleschKincaidGrade, &m.FleschReadingEase, &m.AvgSentenceLength,
			&m.AvgWordSyllables, &m.PassiveVoicePct, &m.SentenceCount, &m.WordCount); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, analyzedAt)
		if err != nil {
			return nil, err
		}
		agg.AnalyzedAt = parsed
		runs = append(runs, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// ListSectionHeadings returns the distinct section headings stored for a file.
func (s *Store) ListSectionHeadings(ctx context.Context, file string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT rs.heading
		 FROM run_sections rs
		 JOIN runs r ON r.id = rs.run_id
		 WHERE (? = '' OR r.file = ?)
		 ORDER BY rs.heading`, file, file)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var headings []string
	for rows.Next() {
		var heading string
		if err := rows.Scan(&heading); err != nil {
			return nil, err
		}
		headings = append(headings, heading)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return headings, nil
}
