// Package store persists generated games, keyed by their seed code.
package store

import (
	"errors"
	"time"
)

// ErrNotFound is returned when no game matches the requested seed code.
var ErrNotFound = errors.New("store: game not found")

// DB is the persistence interface the API server depends on.
type DB interface {
	Close() error
	Migrate() error
	SaveGame(game *GameRecord) error
	GetGame(seedCode string) (*GameRecord, error)
	ListGames(query GamesQuery) (*GamesList, error)
	DeleteGame(seedCode string) error
}

// GameRecord is one persisted generated game. PayloadJSON is the full
// generated configuration (rules, chaos config, loops) stored as an opaque
// JSON document; the indexed columns exist for listing and lookup.
type GameRecord struct {
	ID           string    `json:"id" db:"id"`
	SeedCode     string    `json:"seed_code" db:"seed_code"`
	Genre        string    `json:"genre" db:"genre"`
	LeadVerb     string    `json:"lead_verb" db:"lead_verb"`
	ChaosLevel   int       `json:"chaos_level" db:"chaos_level"`
	InternalSeed int64     `json:"internal_seed" db:"internal_seed"`
	PayloadJSON  string    `json:"payload_json" db:"payload_json"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// GamesQuery filters and paginates game listings.
type GamesQuery struct {
	Genre   string `json:"genre,omitempty"`
	Verb    string `json:"verb,omitempty"`
	Page    int    `json:"page"`
	PerPage int    `json:"perPage"`
}

// GamesList is a paginated listing response.
type GamesList struct {
	Games      []GameRecord `json:"games"`
	TotalCount int          `json:"totalCount"`
	Page       int          `json:"page"`
	PerPage    int          `json:"perPage"`
	TotalPages int          `json:"totalPages"`
}
