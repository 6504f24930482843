package api

import (
	"github.com/gamesmith/gamesmith-go/internal/chaos"
	"github.com/gamesmith/gamesmith-go/internal/dna"
	"github.com/gamesmith/gamesmith-go/internal/feedback"
	"github.com/gamesmith/gamesmith-go/internal/rules"
	"github.com/gamesmith/gamesmith-go/internal/seedcode"
)

// EngineVersion identifies the generative core build in responses.
const EngineVersion = "1.2.0"

// EngineError is a structured error response with context.
type EngineError struct {
	Type      string                 `json:"type"`
	Message   string                 `json:"message"`
	Context   map[string]interface{} `json:"context,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	Timestamp string                 `json:"timestamp,omitempty"`
}

// Error implements the error interface.
func (e EngineError) Error() string {
	return e.Message
}

// Error types.
const (
	ErrTypeValidation   = "validation_error"
	ErrTypeGameNotFound = "game_not_found"
	ErrTypeSessionNotFound = "session_not_found"
	ErrTypeInternal     = "internal_error"
)

/// GenerateRequest is the POST /api/v1/games body: a full wizard record and
// an optional internal seed. A zero/absent seed means "draw a fresh one".
type GenerateRequest struct {
	DNA          dna.GameDNA `json:"dna"`
	InternalSeed int64       `json:"internal_seed,omitempty"`
	SaveGame     bool        `json:"save"`
}

// GenerateResponse echoes the generated configuration.
type GenerateResponse struct {
	ID            string          `json:"id"`
	SeedCode      string          `json:"seed_code"`
	DNA           dna.GameDNA     `json:"dna"`
	InternalSeed  int64           `json:"internal_seed"`
	Rules         []rules.RuleDef `json:"rules"`
	Chaos         chaos.Config    `json:"chaos"`
	PositiveLoops []feedback.Loop `json:"positive_loops"`
	NegativeLoops []feedback.Loop `json:"negative_loops"`
	Diagnostics   []rules.Diagnostic `json:"diagnostics,omitempty"`
	EngineVersion string          `json:"engine_version"`
}

// DecodeRequest is the POST /api/v1/seed/decode body.
type DecodeRequest struct {
	Code string `json:"code"`
}

// DecodeResponse wraps the decoded seed code fields.
type DecodeResponse struct {
	Code    string           `json:"code"`
	Decoded seedcode.Decoded `json:"decoded"`
}

// SessionStartRequest starts a live session from a seed code.
type SessionStartRequest struct {
	SeedCode string `json:"seed_code"`
	Script   string `json:"script,omitempty"`
}

// SessionStartResponse returns the new session's identity and initial view.
type SessionStartResponse struct {
	SessionID string `json:"session_id"`
	SeedCode  string `json:"seed_code"`
	ChaosTier string `json:"chaos_tier"`
}

// VerbsResponse lists the verbs the composer knows, with their bundles.
type VerbsResponse struct {
	Verbs   []string                   `json:"verbs"`
	Bundles map[string][]rules.RuleDef `json:"bundles"`
}
