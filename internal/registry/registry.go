// Package registry persists the set of tournaments the scanner knows
// about in a local SQLite database.
package registry

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a named tournament does not exist.
var ErrNotFound = errors.New("tournament not found")

// Tournament is one stored scan target. Inactive tournaments stay in the
// registry but are excluded from scans.
type Tournament struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Update carries a partial change to a stored tournament; nil fields are
// left unchanged.
type Update struct {
	Name   *string
	URL    *string
	Active *bool
}

// Registry is a SQLite-backed tournament store.
type Registry struct {
	db *sql.DB
}

// Open opens (creating if needed) the registry database at dbPath. A
// leading ~/ is expanded to the user's home directory.
func Open(dbPath string) (*Registry, error) {
	if strings.HasPrefix(dbPath, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[2:])
	}
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" && dbPath != ":memory:" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating registry directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening registry database: %w", err)
	}

	r := &Registry{db: db}
	if err := r.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing registry database: %w", err)
	}
	return r, nil
}

func (r *Registry) Close() error {
	return r.db.Close()
}

func (r *Registry) init() error {
	_, err := r.db.Exec(`CREATE TABLE IF NOT EXISTS tournaments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT UNIQUE NOT NULL,
		url TEXT NOT NULL,
		active INTEGER NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	return err
}

// Add stores a new tournament. Names are unique; adding an existing name
// fails.
func (r *Registry) Add(name, url string) (*Tournament, error) {
	name = strings.TrimSpace(name)
	url = strings.TrimSpace(url)
	if name == "" || url == "" {
		return nil, fmt.Errorf("tournament name and url are required")
	}

	res, err := r.db.Exec(
		`INSERT INTO tournaments (name, url) VALUES (?, ?)`,
		name, url,
	)
	if err != nil {
		return nil, fmt.Errorf("adding tournament %q: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("adding tournament %q: %w", name, err)
	}
	return r.byID(id)
}

// Get returns the tournament with the given name, or ErrNotFound.
func (r *Registry) Get(name string) (*Tournament, error) {
	row := r.db.QueryRow(
		`SELECT id, name, url, active, created_at, updated_at
		 FROM tournaments WHERE name = ?`, name,
	)
	return scanTournament(row)
}

// All returns every stored tournament, active or not, ordered by name.
func (r *Registry) All() ([]Tournament, error) {
	return r.list(`SELECT id, name, url, active, created_at, updated_at
		FROM tournaments ORDER BY name`)
}

// Active returns the tournaments that should be scanned, ordered by name.
func (r *Registry) Active() ([]Tournament, error) {
	return r.list(`SELECT id, name, url, active, created_at, updated_at
		FROM tournaments WHERE active = 1 ORDER BY name`)
}

// Apply updates the named tournament with the non-nil fields of upd.
func (r *Registry) Apply(name string, upd Update) (*Tournament, error) {
	existing, err := r.Get(name)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		existing.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.URL != nil {
		existing.URL = strings.TrimSpace(*upd.URL)
	}
	if upd.Active != nil {
		existing.Active = *upd.Active
	}
	if existing.Name == "" || existing.URL == "" {
		return nil, fmt.Errorf("tournament name and url are required")
	}

	_, err = r.db.Exec(
		`UPDATE tournaments
		 SET name = ?, url = ?, active = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		existing.Name, existing.URL, boolToInt(existing.Active), existing.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating tournament %q: %w", name, err)
	}
	return r.byID(existing.ID)
}

// Delete removes the named tournament. Deleting a missing name returns
// ErrNotFound.
func (r *Registry) Delete(name string) error {
	res, err := r.db.Exec(`DELETE FROM tournaments WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting tournament %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting tournament %q: %w", name, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Registry) byID(id int64) (*Tournament, error) {
	row := r.db.QueryRow(
		`SELECT id, name, url, active, created_at, updated_at
		 FROM tournaments WHERE id = ?`, id,
	)
	return scanTournament(row)
}

func (r *Registry) list(query string) ([]Tournament, error) {
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("listing tournaments: %w", err)
	}
	defer rows.Close()

	var out []Tournament
	for rows.Next() {
		var t Tournament
		var active int
		if err := rows.Scan(&t.ID, &t.Name, &t.URL, &active, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("reading tournament row: %w", err)
		}
		t.Active = active != 0
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing tournaments: %w", err)
	}
	return out, nil
}

func scanTournament(row *sql.Row) (*Tournament, error) {
	var t Tournament
	var active int
	err := row.Scan(&t.ID, &t.Name, &t.URL, &active, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading tournament row: %w", err)
	}
	t.Active = active != 0
	return &t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
