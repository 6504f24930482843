// Package scripting runs author-written JavaScript hooks for custom effects.
// The rule language deliberately passes unrecognized effect expressions
// through as opaque custom signals; a game author can attach a JS handler to
// such a payload here. Handlers return effect expressions in the same tiny
// language, which the session applies through the interpreter, so scripts
// never touch game state directly.
package scripting

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dop251/goja"

	"github.com/gamesmith/gamesmith-go/internal/rules"
)

// LogEntry is one log line emitted by an author script.
type LogEntry struct {
	Time    time.Time `json:"time"`
	Message string    `json:"message"`
}

const (
	scriptLoadTimeout = 2 * time.Second
	scriptCallTimeout = 1 * time.Second
)

// Sandbox wraps a goja runtime with the dangerous globals removed and an
// on(payload, fn) registration API injected.
type Sandbox struct {
	runtime *goja.Runtime
	mu      sync.Mutex

	handlers map[string]goja.Callable

	logs    []LogEntry
	logsMu  sync.Mutex
	maxLogs int
}

// NewSandbox creates an empty sandbox ready to load author scripts.
func NewSandbox() *Sandbox {
	s := &Sandbox{
		runtime:  goja.New(),
		handlers: make(map[string]goja.Callable),
		maxLogs:  500,
	}
	s.injectGlobals()
	return s
}

func (s *Sandbox) injectGlobals() {
	// log(...args) — appends to the log buffer shown in authoring tools.
	s.runtime.Set("log", func(call goja.FunctionCall) goja.Value {
		parts := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			parts[i] = arg.String()
		}
		msg := strings.Join(parts, " ")

		s.logsMu.Lock()
		if len(s.logs) >= s.maxLogs {
			s.logs = s.logs[1:]
		}
		s.logs = append(s.logs, LogEntry{Time: time.Now(), Message: msg})
		s.logsMu.Unlock()

		return goja.Undefined()
	})

	console := s.runtime.NewObject()
	console.Set("log", s.runtime.Get("log"))
	s.runtime.Set("console", console)

	// on(payload, fn) — registers fn as the handler for a custom effect payload.
	s.runtime.Set("on", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 2 {
			return goja.Undefined()
		}
		payload := call.Arguments[0].String()
		if fn, ok := goja.AssertFunction(call.Arguments[1]); ok {
			s.handlers[payload] = fn
		}
		return goja.Undefined()
	})

	// Block escape hatches. Math and JSON stay available.
	s.runtime.Set("require", goja.Undefined())
	s.runtime.Set("fetch", goja.Undefined())
	s.runtime.Set("XMLHttpRequest", goja.Undefined())
	s.runtime.Set("eval", goja.Undefined())
	s.runtime.Set("Function", goja.Undefined())
}

// Load executes an author script, letting it register handlers via on().
func (s *Sandbox) Load(source string) error {
	return s.runWithTimeout(scriptLoadTimeout, func() error {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, err := s.runtime.RunString(source); err != nil {
			return fmt.Errorf("script load error: %w", err)
		}
		return nil
	})
}

// Handles reports whether a handler is registered for a payload.
func (s *Sandbox) Handles(payload string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.handlers[payload]
	return ok
}

// HandleCustom invokes the handler for a custom effect, passing a read-only
// snapshot of the state. The handler returns effect expressions (a string or
// an array of strings) in the rule language; the caller applies them through
// the interpreter. A missing handler or a script error yields no effects.
func (s *Sandbox) HandleCustom(eff rules.ParsedEffect, state *rules.GameState) ([]string, error) {
	s.mu.Lock()
	handler, ok := s.handlers[eff.Payload]
	s.mu.Unlock()
	if !ok {
		return nil, nil
	}

	snapshot := map[string]any{
		"score":   state.Score,
		"health":  state.Health,
		"combo":   state.Combo,
		"level":   state.Level,
		"elapsed": state.Elapsed,
		"flags":   state.Flags,
	}

	var result goja.Value
	err := s.runWithTimeout(scriptCallTimeout, func() error {
		s.mu.Lock()
		defer s.mu.Unlock()
		var callErr error
		result, callErr = handler(goja.Undefined(), s.runtime.ToValue(eff.Payload), s.runtime.ToValue(snapshot))
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("custom effect handler %q: %w", eff.Payload, err)
	}
	return exportEffects(result), nil
}

// exportEffects accepts a string, an array of strings, or anything else
// (ignored) from a handler return value.
func exportEffects(v goja.Value) []string {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	switch exported := v.Export().(type) {
	case string:
		return []string{exported}
	case []any:
		var out []string
		for _, item := range exported {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	default:
		return nil
	}
}

// Logs returns the captured script log buffer.
func (s *Sandbox) Logs() []LogEntry {
	s.logsMu.Lock()
	defer s.logsMu.Unlock()
	out := make([]LogEntry, len(s.logs))
	copy(out, s.logs)
	return out
}

// runWithTimeout interrupts the runtime if fn exceeds the deadline.
func (s *Sandbox) runWithTimeout(d time.Duration, fn func() error) error {
	timer := time.AfterFunc(d, func() {
		s.runtime.Interrupt("script timeout")
	})
	defer func() {
		timer.Stop()
		s.runtime.ClearInterrupt()
	}()
	return fn()
}
