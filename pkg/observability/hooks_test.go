package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Propagation hooks
	p := NoopPropagationHooks{}
	p.OnPropagateStart(3)
	p.OnPropagateComplete(3, 1, false, time.Millisecond)
	p.OnNodeError("node-1", "sum", errors.New("boom"))

	// History hooks
	h := NoopHistoryHooks{}
	h.OnRecord("createNode", 1)
	h.OnUndo("createNode")
	h.OnRedo("createNode")

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "render")
	c.OnCacheMiss(ctx, "render")
	c.OnCacheSet(ctx, "render", 1024)

	// Server hooks
	s := NoopServerHooks{}
	s.OnRequest(ctx, "GET", "/diagram", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Propagation().(NoopPropagationHooks); !ok {
		t.Error("Propagation() should return NoopPropagationHooks by default")
	}
	if _, ok := History().(NoopHistoryHooks); !ok {
		t.Error("History() should return NoopHistoryHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Error("Server() should return NoopServerHooks by default")
	}

	// Set custom hooks
	customPropagation := &testPropagationHooks{}
	SetPropagationHooks(customPropagation)
	if Propagation() != customPropagation {
		t.Error("SetPropagationHooks should set custom hooks")
	}

	customHistory := &testHistoryHooks{}
	SetHistoryHooks(customHistory)
	if History() != customHistory {
		t.Error("SetHistoryHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customServer := &testServerHooks{}
	SetServerHooks(customServer)
	if Server() != customServer {
		t.Error("SetServerHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Propagation().(NoopPropagationHooks); !ok {
		t.Error("Reset() should restore NoopPropagationHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testPropagationHooks{}
	SetPropagationHooks(custom)

	// Setting nil should be ignored
	SetPropagationHooks(nil)

	if Propagation() != custom {
		t.Error("SetPropagationHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testPropagationHooks struct{ NoopPropagationHooks }
type testHistoryHooks struct{ NoopHistoryHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testServerHooks struct{ NoopServerHooks }
