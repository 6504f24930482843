package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteDB implements the DB interface using SQLite.
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB opens (or creates) a SQLite database at path.
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL for better concurrency under the HTTP server.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// Migrate creates the schema.
func (s *SQLiteDB) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			seed_code TEXT NOT NULL UNIQUE,
			genre TEXT NOT NULL DEFAULT '',
			lead_verb TEXT NOT NULL DEFAULT '',
			chaos_level INTEGER NOT NULL DEFAULT 0,
			internal_seed INTEGER NOT NULL DEFAULT 0,
			payload_json TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_games_genre ON games(genre)`,
		`CREATE INDEX IF NOT EXISTS idx_games_lead_verb ON games(lead_verb)`,
		`CREATE INDEX IF NOT EXISTS idx_games_created_at ON games(created_at)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// SaveGame inserts a generated game. The seed code is the unique shareable
// key; saving the same code twice replaces the stored payload, since a seed
// code fully determines its configuration.
func (s *SQLiteDB) SaveGame(game *GameRecord) error {
	if game.ID == "" {
		game.ID = uuid.New().String()
	}
	if game.CreatedAt.IsZero() {
		game.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO games (
		id, seed_code, genre, lead_verb, chaos_level, internal_seed, payload_json, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(seed_code) DO UPDATE SET
		genre = excluded.genre,
		lead_verb = excluded.lead_verb,
		chaos_level = excluded.chaos_level,
		internal_seed = excluded.internal_seed,
		payload_json = excluded.payload_json`

	_, err := s.db.Exec(query,
		game.ID, game.SeedCode, game.Genre, game.LeadVerb,
		game.ChaosLevel, game.InternalSeed, game.PayloadJSON, game.CreatedAt,
	)
	return err
}

// GetGame retrieves a game by seed code.
func (s *SQLiteDB) GetGame(seedCode string) (*GameRecord, error) {
	query := `SELECT id, seed_code, genre, lead_verb, chaos_level, internal_seed, payload_json, created_at
		FROM games WHERE seed_code = ?`

	var game GameRecord
	err := s.db.QueryRow(query, seedCode).Scan(
		&game.ID, &game.SeedCode, &game.Genre, &game.LeadVerb,
		&game.ChaosLevel, &game.InternalSeed, &game.PayloadJSON, &game.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return &game, nil
}

// ListGames returns a filtered, paginated listing.
func (s *SQLiteDB) ListGames(query GamesQuery) (*GamesList, error) {
	var conditions []string
	args := []interface{}{}

	if query.Genre != "" {
		conditions = append(conditions, "genre = ?")
		args = append(args, query.Genre)
	}
	if query.Verb != "" {
		conditions = append(conditions, "lead_verb = ?")
		args = append(args, query.Verb)
	}
	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT COUNT(*) FROM games " + whereClause
	var totalCount int
	if err := s.db.QueryRow(countQuery, args...).Scan(&totalCount); err != nil {
		return nil, fmt.Errorf("failed to get total count: %w", err)
	}

	if query.PerPage <= 0 {
		query.PerPage = 50
	}
	if query.Page <= 0 {
		query.Page = 1
	}
	totalPages := (totalCount + query.PerPage - 1) / query.PerPage
	offset := (query.Page - 1) * query.PerPage

	mainQuery := `SELECT id, seed_code, genre, lead_verb, chaos_level, internal_seed, payload_json, created_at
		FROM games ` + whereClause + `
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`
	args = append(args, query.PerPage, offset)

	rows, err := s.db.Query(mainQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		var game GameRecord
		if err := rows.Scan(
			&game.ID, &game.SeedCode, &game.Genre, &game.LeadVerb,
			&game.ChaosLevel, &game.InternalSeed, &game.PayloadJSON, &game.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration failed: %w", err)
	}

	return &GamesList{
		Games:      games,
		TotalCount: totalCount,
		Page:       query.Page,
		PerPage:    query.PerPage,
		TotalPages: totalPages,
	}, nil
}

// DeleteGame removes a game by seed code. Deleting a missing game is not an
// error.
func (s *SQLiteDB) DeleteGame(seedCode string) error {
	_, err := s.db.Exec("DELETE FROM games WHERE seed_code = ?", seedCode)
	return err
}
