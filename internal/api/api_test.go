package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gamesmith/gamesmith-go/internal/dna"
	"github.com/gamesmith/gamesmith-go/internal/store"
)

// mockDB is a simple in-memory implementation of store.DB for testing
type mockDB struct {
	games map[string]*store.GameRecord
}

func newMockDB() *mockDB {
	return &mockDB{games: make(map[string]*store.GameRecord)}
}

func (m *mockDB) Close() error   { return nil }
func (m *mockDB) Migrate() error { return nil }

func (m *mockDB) SaveGame(game *store.GameRecord) error {
	m.games[game.SeedCode] = game
	return nil
}

func (m *mockDB) GetGame(seedCode string) (*store.GameRecord, error) {
	rec, ok := m.games[seedCode]
	if !ok {
		return nil, store.ErrNotFound
	}
	return rec, nil
}

func (m *mockDB) ListGames(query store.GamesQuery) (*store.GamesList, error) {
	list := &store.GamesList{Page: 1, PerPage: 50}
	for _, rec := range m.games {
		list.Games = append(list.Games, *rec)
	}
	list.TotalCount = len(list.Games)
	return list, nil
}

func (m *mockDB) DeleteGame(seedCode string) error {
	delete(m.games, seedCode)
	return nil
}

func TestHealthEndpoint(t *testing.T) {
	server := NewServer(newMockDB(), nil)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	server.Routes().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response HealthCheckResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response.Status != HealthStatusHealthy {
		t.Errorf("Expected healthy status, got %s", response.Status)
	}

	if response.EngineVersion == "" {
		t.Error("Expected engine version in response")
	}
}

func TestGenerateEndpoint(t *testing.T) {
	server := NewServer(newMockDB(), nil)

	reqBody := GenerateRequest{
		DNA: dna.GameDNA{
			Genre:       "platformer",
			Verbs:       []string{"jump", "collect"},
			GravityMode: dna.GravityLow,
			ChaosLevel:  40,
			Difficulty:  dna.DifficultyBalanced,
		},
		InternalSeed: 12345,
	}

	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("POST", "/api/v1/games", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	server.Routes().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response GenerateResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response.SeedCode == "" {
		t.Error("Expected seed code in response")
	}
	if !strings.HasPrefix(response.SeedCode, "JUMP-") {
		t.Errorf("Expected lead verb group JUMP, got %q", response.SeedCode)
	}
	if response.InternalSeed != 12345 {
		t.Errorf("Expected internal seed 12345, got %d", response.InternalSeed)
	}
	if len(response.Rules) == 0 {
		t.Error("Expected composed rules in response")
	}
	if response.Chaos.TierName == "" {
		t.Error("Expected chaos config in response")
	}
	if response.EngineVersion == "" {
		t.Error("Expected engine version in response")
	}
}

func TestGenerateEndpointDrawsSeed(t *testing.T) {
	server := NewServer(newMockDB(), nil)

	body, _ := json.Marshal(GenerateRequest{
		DNA: dna.GameDNA{Verbs: []string{"dash"}},
	})
	req := httptest.NewRequest("POST", "/api/v1/games", bytes.NewReader(body))
	w := httptest.NewRecorder()

	server.Routes().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response GenerateResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.InternalSeed < 0 {
		t.Errorf("Expected non-negative drawn seed, got %d", response.InternalSeed)
	}
}

func TestGenerateEndpointInvalidBody(t *testing.T) {
	server := NewServer(newMockDB(), nil)

	req := httptest.NewRequest("POST", "/api/v1/games", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	server.Routes().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestGenerateDecodeRoundTrip(t *testing.T) {
	server := NewServer(newMockDB(), nil)

	body, _ := json.Marshal(GenerateRequest{
		DNA: dna.GameDNA{
			Verbs:       []string{"shoot"},
			GravityMode: dna.GravityFlipped,
			ChaosLevel:  66,
		},
		InternalSeed: 424242,
	})
	req := httptest.NewRequest("POST", "/api/v1/games", bytes.NewReader(body))
	w := httptest.NewRecorder()
	server.Routes().ServeHTTP(w, req)

	var genResp GenerateResponse
	if err := json.NewDecoder(w.Body).Decode(&genResp); err != nil {
		t.Fatalf("Failed to decode generate response: %v", err)
	}

	body, _ = json.Marshal(DecodeRequest{Code: genResp.SeedCode})
	req = httptest.NewRequest("POST", "/api/v1/seed/decode", bytes.NewReader(body))
	w = httptest.NewRecorder()
	server.Routes().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var decResp DecodeResponse
	if err := json.NewDecoder(w.Body).Decode(&decResp); err != nil {
		t.Fatalf("Failed to decode decode response: %v", err)
	}

	if decResp.Decoded.Verb != "shoot" {
		t.Errorf("Expected verb shoot, got %q", decResp.Decoded.Verb)
	}
	if decResp.Decoded.Gravity != dna.GravityFlipped {
		t.Errorf("Expected flipped gravity, got %q", decResp.Decoded.Gravity)
	}
	if decResp.Decoded.InternalSeed != 424242 {
		t.Errorf("Expected internal seed 424242, got %d", decResp.Decoded.InternalSeed)
	}
}

func TestGetGameSavedAndRegenerated(t *testing.T) {
	db := newMockDB()
	server := NewServer(db, nil)

	// Generate and save
	body, _ := json.Marshal(GenerateRequest{
		DNA:          dna.GameDNA{Verbs: []string{"build"}, ChaosLevel: 10},
		InternalSeed: 777,
		SaveGame:     true,
	})
	req := httptest.NewRequest("POST", "/api/v1/games", bytes.NewReader(body))
	w := httptest.NewRecorder()
	server.Routes().ServeHTTP(w, req)

	var genResp GenerateResponse
	if err := json.NewDecoder(w.Body).Decode(&genResp); err != nil {
		t.Fatalf("Failed to decode generate response: %v", err)
	}
	if _, err := db.GetGame(genResp.SeedCode); err != nil {
		t.Fatalf("Expected game saved under %s: %v", genResp.SeedCode, err)
	}

	// Saved code returns the stored payload
	req = httptest.NewRequest("GET", "/api/v1/games/"+genResp.SeedCode, nil)
	w = httptest.NewRecorder()
	server.Routes().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200 for saved game, got %d", w.Code)
	}

	// An unsaved but well-formed code regenerates instead of 404ing
	req = httptest.NewRequest("GET", "/api/v1/games/DASH-NORM-PLNE5-2345", nil)
	w = httptest.NewRecorder()
	server.Routes().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200 for regenerated game, got %d", w.Code)
	}
}

func TestVerbsEndpoint(t *testing.T) {
	server := NewServer(newMockDB(), nil)

	req := httptest.NewRequest("GET", "/api/v1/verbs", nil)
	w := httptest.NewRecorder()

	server.Routes().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response VerbsResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if len(response.Verbs) == 0 {
		t.Error("Expected at least one verb in response")
	}
	for _, v := range response.Verbs {
		if len(response.Bundles[v]) == 0 {
			t.Errorf("Expected a rule bundle for verb %q", v)
		}
	}
}

func TestSessionLifecycle(t *testing.T) {
	server := NewServer(newMockDB(), nil)

	body, _ := json.Marshal(SessionStartRequest{SeedCode: "JUMP-LOWG-ICEW4-2345"})
	req := httptest.NewRequest("POST", "/api/v1/sessions", bytes.NewReader(body))
	w := httptest.NewRecorder()
	server.Routes().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response SessionStartResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.SessionID == "" {
		t.Fatal("Expected session id in response")
	}
	if response.ChaosTier == "" {
		t.Error("Expected chaos tier in response")
	}

	req = httptest.NewRequest("DELETE", "/api/v1/sessions/"+response.SessionID, nil)
	w = httptest.NewRecorder()
	server.Routes().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200 ending session, got %d", w.Code)
	}
}

func TestSessionMissingSeedCode(t *testing.T) {
	server := NewServer(newMockDB(), nil)

	req := httptest.NewRequest("POST", "/api/v1/sessions", strings.NewReader("{}"))
	w := httptest.NewRecorder()
	server.Routes().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestSessionBadScript(t *testing.T) {
	server := NewServer(newMockDB(), nil)

	body, _ := json.Marshal(SessionStartRequest{
		SeedCode: "JUMP-NORM-PLNE0-2345",
		Script:   "this is not javascript ((",
	})
	req := httptest.NewRequest("POST", "/api/v1/sessions", bytes.NewReader(body))
	w := httptest.NewRecorder()
	server.Routes().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for bad script, got %d", w.Code)
	}
}
