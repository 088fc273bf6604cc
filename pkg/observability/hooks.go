// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup to
// receive events about propagation passes, history changes, render cache
// operations and preview server requests.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the core packages stay
// free of observability frameworks and import cycles.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPropagationHooks(&myPropagationHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Propagation().OnPropagateStart(len(seeds))
//	// ... recompute ...
//	observability.Propagation().OnPropagateComplete(processed, failed, cycle, duration)
//
// Propagation and history hooks carry no context: the editor core runs
// synchronously on the caller's goroutine and never blocks.
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Propagation Hooks
// =============================================================================

// PropagationHooks receives events from the propagation engine.
type PropagationHooks interface {
	// OnPropagateStart is called before a pass with the number of seed nodes.
	OnPropagateStart(seeds int)

	// OnPropagateComplete is called after a pass.
	OnPropagateComplete(processed, failed int, cycle bool, duration time.Duration)

	// OnNodeError is called for every node whose computation failed.
	OnNodeError(nodeID, nodeType string, err error)
}

// =============================================================================
// History Hooks
// =============================================================================

// HistoryHooks receives events from the undo/redo recorder.
type HistoryHooks interface {
	// OnRecord records a new forward event.
	OnRecord(eventType string, undoDepth int)

	// OnUndo records an undone event.
	OnUndo(eventType string)

	// OnRedo records a redone event.
	OnRedo(eventType string)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// Server Hooks
// =============================================================================

// ServerHooks receives events from the preview HTTP server.
type ServerHooks interface {
	// OnRequest records a served request.
	OnRequest(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPropagationHooks is a no-op implementation of PropagationHooks.
type NoopPropagationHooks struct{}

func (NoopPropagationHooks) OnPropagateStart(int)                              {}
func (NoopPropagationHooks) OnPropagateComplete(int, int, bool, time.Duration) {}
func (NoopPropagationHooks) OnNodeError(string, string, error)                 {}

// NoopHistoryHooks is a no-op implementation of HistoryHooks.
type NoopHistoryHooks struct{}

func (NoopHistoryHooks) OnRecord(string, int) {}
func (NoopHistoryHooks) OnUndo(string)        {}
func (NoopHistoryHooks) OnRedo(string)        {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopServerHooks is a no-op implementation of ServerHooks.
type NoopServerHooks struct{}

func (NoopServerHooks) OnRequest(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	propagationHooks PropagationHooks = NoopPropagationHooks{}
	historyHooks     HistoryHooks     = NoopHistoryHooks{}
	cacheHooks       CacheHooks       = NoopCacheHooks{}
	serverHooks      ServerHooks      = NoopServerHooks{}
	hooksMu          sync.RWMutex
)

// SetPropagationHooks registers custom propagation hooks.
// This should be called once at application startup before any editing.
func SetPropagationHooks(h PropagationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		propagationHooks = h
	}
}

// SetHistoryHooks registers custom history hooks.
func SetHistoryHooks(h HistoryHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		historyHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetServerHooks registers custom server hooks.
func SetServerHooks(h ServerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		serverHooks = h
	}
}

// Propagation returns the registered propagation hooks.
func Propagation() PropagationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return propagationHooks
}

// History returns the registered history hooks.
func History() HistoryHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return historyHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Server returns the registered server hooks.
func Server() ServerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return serverHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	propagationHooks = NoopPropagationHooks{}
	historyHooks = NoopHistoryHooks{}
	cacheHooks = NoopCacheHooks{}
	serverHooks = NoopServerHooks{}
}
