package api

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/gamesmith/gamesmith-go/internal/compose"
	"github.com/gamesmith/gamesmith-go/internal/dna"
)

// HealthStatus represents the overall health status
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// HealthCheckResponse represents a comprehensive health check response
type HealthCheckResponse struct {
	Status        HealthStatus           `json:"status"`
	Timestamp     string                 `json:"timestamp"`
	EngineVersion string                 `json:"engine_version"`
	Uptime        string                 `json:"uptime"`
	Checks        map[string]HealthCheck `json:"checks"`
	System        SystemInfo             `json:"system"`
	RequestID     string                 `json:"request_id,omitempty"`
}

// HealthCheck represents an individual health check
type HealthCheck struct {
	Status      HealthStatus `json:"status"`
	Message     string       `json:"message,omitempty"`
	LastChecked string       `json:"last_checked"`
	Duration    string       `json:"duration,omitempty"`
}

// SystemInfo contains system information
type SystemInfo struct {
	GoVersion     string `json:"go_version"`
	NumGoroutines int    `json:"num_goroutines"`
	NumCPU        int    `json:"num_cpu"`
	GOMAXPROCS    int    `json:"gomaxprocs"`
	MemoryAlloc   uint64 `json:"memory_alloc_bytes"`
	MemoryTotal   uint64 `json:"memory_total_bytes"`
	MemorySys     uint64 `json:"memory_sys_bytes"`
	GCCycles      uint32 `json:"gc_cycles"`
}

// handleHealthCheck provides comprehensive health check endpoint
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetReqID(r.Context())
	start := time.Now()

	checks := make(map[string]HealthCheck)
	overallStatus := HealthStatusHealthy

	// Check rule bundle availability
	bundleCheck := s.checkBundlesHealth()
	checks["bundles"] = bundleCheck
	if bundleCheck.Status != HealthStatusHealthy {
		overallStatus = HealthStatusDegraded
	}

	// Check database connectivity
	dbCheck := s.checkDatabaseHealth()
	checks["database"] = dbCheck
	if dbCheck.Status == HealthStatusUnhealthy {
		overallStatus = HealthStatusUnhealthy
	} else if dbCheck.Status == HealthStatusDegraded && overallStatus == HealthStatusHealthy {
		overallStatus = HealthStatusDegraded
	}

	// Check live session manager
	sessionCheck := s.checkSessionsHealth()
	checks["sessions"] = sessionCheck
	if sessionCheck.Status == HealthStatusUnhealthy {
		overallStatus = HealthStatusUnhealthy
	} else if sessionCheck.Status != HealthStatusHealthy && overallStatus == HealthStatusHealthy {
		overallStatus = HealthStatusDegraded
	}

	response := HealthCheckResponse{
		Status:        overallStatus,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		EngineVersion: EngineVersion,
		Uptime:        time.Since(s.startTime).String(),
		Checks:        checks,
		System:        getSystemInfo(),
		RequestID:     requestID,
	}

	statusCode := http.StatusOK
	if overallStatus == HealthStatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	s.logger.Info("health check",
		zap.String("request_id", requestID),
		zap.String("status", string(overallStatus)),
		zap.Int("checks", len(checks)),
		zap.Duration("duration", time.Since(start)),
	)

	s.writeJSON(w, statusCode, response)
}

// handleReadiness provides readiness probe endpoint
func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetReqID(r.Context())

	ready := true
	message := "Ready"

	verbs := dna.KnownVerbs()
	if len(verbs) == 0 {
		ready = false
		message = "No verbs registered"
	}
	if s.sessions == nil {
		ready = false
		message = "Session manager not initialized"
	}

	response := map[string]interface{}{
		"ready":          ready,
		"message":        message,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"engine_version": EngineVersion,
		"request_id":     requestID,
	}

	statusCode := http.StatusOK
	if !ready {
		statusCode = http.StatusServiceUnavailable
	}

	s.writeJSON(w, statusCode, response)
}

// handleLiveness provides liveness probe endpoint
func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetReqID(r.Context())

	response := map[string]interface{}{
		"alive":          true,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"engine_version": EngineVersion,
		"uptime":         time.Since(s.startTime).String(),
		"request_id":     requestID,
	}

	s.writeJSON(w, http.StatusOK, response)
}

// checkBundlesHealth checks that rule bundles exist for every known verb
func (s *Server) checkBundlesHealth() HealthCheck {
	start := time.Now()

	verbs := dna.KnownVerbs()
	missing := 0
	for _, v := range verbs {
		if len(compose.BundleFor(v)) == 0 {
			missing++
		}
	}

	status := HealthStatusHealthy
	message := fmt.Sprintf("%d verb bundles available", len(verbs))
	if len(verbs) == 0 {
		status = HealthStatusUnhealthy
		message = "No verbs registered"
	} else if missing > 0 {
		status = HealthStatusDegraded
		message = fmt.Sprintf("%d of %d verbs have no rule bundle", missing, len(verbs))
	}

	return HealthCheck{
		Status:      status,
		Message:     message,
		LastChecked: time.Now().UTC().Format(time.RFC3339),
		Duration:    time.Since(start).String(),
	}
}

// checkDatabaseHealth checks database connectivity
func (s *Server) checkDatabaseHealth() HealthCheck {
	start := time.Now()

	status := HealthStatusHealthy
	message := "Database connection healthy"

	// The server runs without persistence; a missing database degrades the
	// library endpoints but generation and sessions still work.
	if s.db == nil {
		status = HealthStatusDegraded
		message = "Persistence not configured"
	}

	return HealthCheck{
		Status:      status,
		Message:     message,
		LastChecked: time.Now().UTC().Format(time.RFC3339),
		Duration:    time.Since(start).String(),
	}
}

// checkSessionsHealth checks the live session manager
func (s *Server) checkSessionsHealth() HealthCheck {
	start := time.Now()

	status := HealthStatusHealthy
	message := "Session manager healthy"

	if s.sessions == nil {
		status = HealthStatusUnhealthy
		message = "Session manager not initialized"
	} else {
		message = fmt.Sprintf("%d active sessions", s.sessions.Count())
	}

	return HealthCheck{
		Status:      status,
		Message:     message,
		LastChecked: time.Now().UTC().Format(time.RFC3339),
		Duration:    time.Since(start).String(),
	}
}

// getSystemInfo collects system information
func getSystemInfo() SystemInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return SystemInfo{
		GoVersion:     runtime.Version(),
		NumGoroutines: runtime.NumGoroutine(),
		NumCPU:        runtime.NumCPU(),
		GOMAXPROCS:    runtime.GOMAXPROCS(0),
		MemoryAlloc:   m.Alloc,
		MemoryTotal:   m.TotalAlloc,
		MemorySys:     m.Sys,
		GCCycles:      m.NumGC,
	}
}
