// Package persistence provides SQLite-based storage for civilizations, their
// historical events and archived chronicles.
package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/chronicler/internal/chronicle"
	"github.com/talgya/chronicler/internal/history"
)

// DB wraps a SQLite connection.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS civilizations (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		founded_year INTEGER NOT NULL DEFAULT 0,
		description TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		civilization_id TEXT NOT NULL,
		year INTEGER NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		type TEXT NOT NULL,
		category TEXT NOT NULL,
		significance REAL NOT NULL,
		loc_x REAL NOT NULL,
		loc_y REAL NOT NULL,
		loc_z REAL NOT NULL,
		related_figures_json TEXT NOT NULL,
		related_civilizations_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS chronicles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		civilization_id TEXT NOT NULL,
		fingerprint TEXT NOT NULL,
		title TEXT NOT NULL,
		subtitle TEXT NOT NULL,
		body TEXT NOT NULL,
		total_entries INTEGER NOT NULL,
		dramatic_intensity REAL NOT NULL,
		historical_significance REAL NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS world_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_civ_year ON events(civilization_id, year);
	CREATE INDEX IF NOT EXISTS idx_chronicles_civ ON chronicles(civilization_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveCivilization inserts or replaces a civilization's metadata.
func (db *DB) SaveCivilization(ctx context.Context, civ history.Civilization) error {
	_, err := db.conn.NamedExecContext(ctx, `INSERT OR REPLACE INTO civilizations
		(id, name, founded_year, description)
		VALUES (:id, :name, :founded_year, :description)`, civ)
	if err != nil {
		return fmt.Errorf("save civilization %s: %w", civ.ID, err)
	}
	return nil
}

// SaveEvents upserts events for a civilization. Events without an ID are
// assigned a fresh UUID; the assigned IDs are returned in input order.
func (db *DB) SaveEvents(ctx context.Context, civID string, events []history.Event) ([]string, error) {
	if len(events) == 0 {
		return nil, nil
	}

	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `INSERT OR REPLACE INTO events
		(id, civilization_id, year, title, description, type, category, significance,
		 loc_x, loc_y, loc_z, related_figures_json, related_civilizations_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	ids := make([]string, len(events))
	for i, e := range events {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		ids[i] = e.ID

		figuresJSON, _ := json.Marshal(nonNil(e.RelatedFigures))
		civsJSON, _ := json.Marshal(nonNil(e.RelatedCivilizations))

		_, err := stmt.ExecContext(ctx,
			e.ID, civID, e.Year, e.Title, e.Description, string(e.Type), string(e.Category),
			e.Significance, e.Location.X, e.Location.Y, e.Location.Z,
			string(figuresJSON), string(civsJSON),
		)
		if err != nil {
			return nil, fmt.Errorf("insert event %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return ids, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Civilization returns a civilization's metadata.
func (db *DB) Civilization(ctx context.Context, civID string) (history.Civilization, error) {
	var civ history.Civilization
	err := db.conn.GetContext(ctx, &civ,
		"SELECT id, name, founded_year, description FROM civilizations WHERE id = ?", civID)
	if errors.Is(err, sql.ErrNoRows) {
		return civ, chronicle.ErrCivilizationNotFound
	}
	return civ, err
}

// Civilizations lists every stored civilization ordered by ID.
func (db *DB) Civilizations(ctx context.Context) ([]history.Civilization, error) {
	var civs []history.Civilization
	err := db.conn.SelectContext(ctx, &civs,
		"SELECT id, name, founded_year, description FROM civilizations ORDER BY id")
	return civs, err
}

type eventRow struct {
	ID                   string  `db:"id"`
	CivilizationID       string  `db:"civilization_id"`
	Year                 int     `db:"year"`
	Title                string  `db:"title"`
	Description          string  `db:"description"`
	Type                 string  `db:"type"`
	Category             string  `db:"category"`
	Significance         float64 `db:"significance"`
	LocX                 float64 `db:"loc_x"`
	LocY                 float64 `db:"loc_y"`
	LocZ                 float64 `db:"loc_z"`
	RelatedFigures       string  `db:"related_figures_json"`
	RelatedCivilizations string  `db:"related_civilizations_json"`
}

// Events returns a snapshot of a civilization's events ordered by year.
func (db *DB) Events(ctx context.Context, civID string) ([]history.Event, error) {
	var rows []eventRow
	err := db.conn.SelectContext(ctx, &rows,
		"SELECT * FROM events WHERE civilization_id = ? ORDER BY year, id", civID)
	if err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}

	events := make([]history.Event, 0, len(rows))
	for _, r := range rows {
		e := history.Event{
			ID:             r.ID,
			Year:           r.Year,
			Title:          r.Title,
			Description:    r.Description,
			Type:           history.EventType(r.Type),
			Category:       history.Category(r.Category),
			Significance:   r.Significance,
			Location:       history.Vec3{X: r.LocX, Y: r.LocY, Z: r.LocZ},
			CivilizationID: r.CivilizationID,
		}
		if err := json.Unmarshal([]byte(r.RelatedFigures), &e.RelatedFigures); err != nil {
			return nil, fmt.Errorf("decode figures of event %s: %w", r.ID, err)
		}
		if err := json.Unmarshal([]byte(r.RelatedCivilizations), &e.RelatedCivilizations); err != nil {
			return nil, fmt.Errorf("decode civilizations of event %s: %w", r.ID, err)
		}
		events = append(events, e)
	}
	return events, nil
}

// EventCount returns the number of stored events across all civilizations.
func (db *DB) EventCount(ctx context.Context) (int, error) {
	var n int
	err := db.conn.GetContext(ctx, &n, "SELECT COUNT(*) FROM events")
	return n, err
}

// ArchivedChronicle is a chronicle exported to the archive.
type ArchivedChronicle struct {
	ID                     int64     `db:"id" json:"id"`
	CivilizationID         string    `db:"civilization_id" json:"civilization_id"`
	Fingerprint            string    `db:"fingerprint" json:"fingerprint"`
	Title                  string    `db:"title" json:"title"`
	Subtitle               string    `db:"subtitle" json:"subtitle"`
	Body                   string    `db:"body" json:"text"`
	TotalEntries           int       `db:"total_entries" json:"total_entries"`
	DramaticIntensity      float64   `db:"dramatic_intensity" json:"dramatic_intensity"`
	HistoricalSignificance float64   `db:"historical_significance" json:"historical_significance"`
	CreatedAt              time.Time `db:"created_at" json:"created_at"`
}

// SaveChronicle archives a compiled chronicle's text and metrics.
func (db *DB) SaveChronicle(ctx context.Context, cc *chronicle.CompiledChronicle) error {
	_, err := db.conn.ExecContext(ctx, `INSERT INTO chronicles
		(civilization_id, fingerprint, title, subtitle, body, total_entries,
		 dramatic_intensity, historical_significance, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		cc.CivilizationID, cc.Fingerprint, cc.Title, cc.Subtitle, cc.Text, cc.TotalEntries,
		cc.DramaticIntensity, cc.HistoricalSignificance, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("archive chronicle %s: %w", cc.CivilizationID, err)
	}
	return nil
}

// LatestChronicle returns the most recently archived chronicle for a civilization.
func (db *DB) LatestChronicle(ctx context.Context, civID string) (*ArchivedChronicle, error) {
	var ac ArchivedChronicle
	err := db.conn.GetContext(ctx, &ac,
		"SELECT * FROM chronicles WHERE civilization_id = ? ORDER BY id DESC LIMIT 1", civID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, chronicle.ErrCivilizationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ac, nil
}

// SaveMeta stores a key-value pair in metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO world_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM world_meta WHERE key = ?", key)
	return value, err
}

// Import stores a civilization together with its events and returns the
// event IDs in input order.
func (db *DB) Import(ctx context.Context, rec history.Record) ([]string, error) {
	civ := rec.Civilization
	if err := db.SaveCivilization(ctx, civ); err != nil {
		return nil, err
	}
	ids, err := db.SaveEvents(ctx, civ.ID, rec.Events)
	if err != nil {
		return nil, fmt.Errorf("save events: %w", err)
	}
	slog.Info("history imported", "civ", civ.ID, "name", civ.Name, "events", len(ids))
	return ids, nil
}
