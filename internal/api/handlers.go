package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gamesmith/gamesmith-go/internal/compose"
	"github.com/gamesmith/gamesmith-go/internal/dna"
	"github.com/gamesmith/gamesmith-go/internal/generate"
	"github.com/gamesmith/gamesmith-go/internal/rules"
	"github.com/gamesmith/gamesmith-go/internal/seedcode"
	"github.com/gamesmith/gamesmith-go/internal/store"
)

// handleGenerate builds a full game configuration from a wizard record.
// Generation itself is total; only an unreadable body is an error.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorHandler.HandleValidationError(w, r, "body", "invalid JSON body")
		return
	}

	seed := req.InternalSeed
	if seed == 0 {
		seed = generate.NewInternalSeed()
	}
	game := generate.FromDNA(req.DNA, seed)

	if req.SaveGame && s.db != nil {
		if err := s.saveGame(game); err != nil {
			s.errorHandler.HandleError(w, r, err, http.StatusInternalServerError)
			return
		}
	}

	s.writeJSON(w, http.StatusOK, GenerateResponse{
		ID:            game.ID,
		SeedCode:      game.SeedCode,
		DNA:           game.DNA,
		InternalSeed:  game.InternalSeed,
		Rules:         game.Rules,
		Chaos:         game.Chaos,
		PositiveLoops: game.PositiveLoops,
		NegativeLoops: game.NegativeLoops,
		Diagnostics:   rules.Lint(game.Rules),
		EngineVersion: EngineVersion,
	})
}

func (s *Server) saveGame(game *generate.Game) error {
	payload, err := json.Marshal(game)
	if err != nil {
		return err
	}
	return s.db.SaveGame(&store.GameRecord{
		ID:           game.ID,
		SeedCode:     game.SeedCode,
		Genre:        game.DNA.Genre,
		LeadVerb:     game.DNA.LeadVerb(),
		ChaosLevel:   game.DNA.ChaosLevel,
		InternalSeed: game.InternalSeed,
		PayloadJSON:  string(payload),
		CreatedAt:    game.CreatedAt,
	})
}

// handleGetGame retrieves a saved game by seed code. A code that decodes but
// was never saved regenerates on the fly: a shared code is always playable.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	if s.db != nil {
		rec, err := s.db.GetGame(code)
		if err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Engine-Version", EngineVersion)
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(rec.PayloadJSON))
			return
		}
		if err != store.ErrNotFound {
			s.errorHandler.HandleError(w, r, err, http.StatusInternalServerError)
			return
		}
	}

	game := generate.FromSeedCode(code)
	s.writeJSON(w, http.StatusOK, game)
}

// handleListGames lists saved games.
func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorHandler.HandleError(w, r,
			NewError(ErrTypeInternal, "persistence is not configured").Build(),
			http.StatusServiceUnavailable)
		return
	}
	q := store.GamesQuery{
		Genre: r.URL.Query().Get("genre"),
		Verb:  r.URL.Query().Get("verb"),
	}
	q.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	q.PerPage, _ = strconv.Atoi(r.URL.Query().Get("perPage"))
	list, err := s.db.ListGames(q)
	if err != nil {
		s.errorHandler.HandleError(w, r, err, http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, list)
}

// handleDecode decodes a seed code. Decoding is total, so this endpoint
// never fails on content: a garbage code yields unknown fields.
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	var req DecodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorHandler.HandleValidationError(w, r, "body", "invalid JSON body")
		return
	}
	s.writeJSON(w, http.StatusOK, DecodeResponse{
		Code:    req.Code,
		Decoded: seedcode.Decode(req.Code),
	})
}

// handleVerbs lists the known verbs and their rule bundles.
func (s *Server) handleVerbs(w http.ResponseWriter, r *http.Request) {
	resp := VerbsResponse{
		Verbs:   dna.KnownVerbs(),
		Bundles: make(map[string][]rules.RuleDef),
	}
	for _, v := range resp.Verbs {
		resp.Bundles[v] = compose.BundleFor(v)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// handleStartSession starts a live session from a seed code.
func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req SessionStartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorHandler.HandleValidationError(w, r, "body", "invalid JSON body")
		return
	}
	if req.SeedCode == "" {
		s.errorHandler.HandleValidationError(w, r, "seed_code", "seed_code is required")
		return
	}

	game := generate.FromSeedCode(req.SeedCode)
	sess := s.sessions.Start(game)
	if req.Script != "" {
		if err := sess.LoadScript(req.Script); err != nil {
			s.sessions.End(sess.ID)
			s.errorHandler.HandleValidationError(w, r, "script", err.Error())
			return
		}
	}

	s.writeJSON(w, http.StatusOK, SessionStartResponse{
		SessionID: sess.ID,
		SeedCode:  game.SeedCode,
		ChaosTier: game.Chaos.TierName,
	})
}

// handleEndSession discards a live session.
func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	s.sessions.End(chi.URLParam(r, "id"))
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ended"})
}

// handleSessionWS upgrades to the live session websocket.
func (s *Server) handleSessionWS(w http.ResponseWriter, r *http.Request) {
	s.ws.ServeSession(w, r, chi.URLParam(r, "id"))
}
