package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/mentorlab/tutor-cli/internal/core/domain"
	"github.com/mentorlab/tutor-cli/internal/core/ports/driven"
)

const schema = `
CREATE TABLE IF NOT EXISTS learner_profile (
	id         INTEGER PRIMARY KEY CHECK (id = 1),
	data       TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`

// Ensure ProfileStore implements the interface.
var _ driven.ProfileStore = (*ProfileStore)(nil)

// ProfileStore is a SQLite-backed implementation of
// driven.ProfileStore. The profile is stored as a single JSON row.
type ProfileStore struct {
	db   *sql.DB
	path string
}

// NewProfileStore creates a profile store at the given data
// directory. An empty dataDir defaults to ~/.tutor/data.
func NewProfileStore(dataDir string) (*ProfileStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".tutor", "data")
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "profile.db")

	// WAL keeps concurrent reads cheap; busy_timeout covers the rare
	// writer overlap from a second process.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &ProfileStore{db: db, path: dbPath}, nil
}

// Load retrieves the stored profile, or domain.ErrNotFound when no
// profile has been saved yet.
func (s *ProfileStore) Load(ctx context.Context) (*domain.LearnerProfile, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		"SELECT data FROM learner_profile WHERE id = 1").Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}

	var profile domain.LearnerProfile
	if err := json.Unmarshal([]byte(data), &profile); err != nil {
		return nil, fmt.Errorf("decoding profile: %w", err)
	}
	return &profile, nil
}

// Save stores or replaces the profile.
func (s *ProfileStore) Save(ctx context.Context, profile *domain.LearnerProfile) error {
	if profile == nil {
		return domain.ErrInvalidInput
	}

	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO learner_profile (id, data, updated_at) VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		string(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *ProfileStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *ProfileStore) Path() string {
	return s.path
}
