// Package observability lets an application watch session, render, and
// cache activity without coupling the library to a metrics backend.
//
// The library calls the registered hooks inline at each event site and
// ships no-op defaults, so instrumentation costs nothing until a main
// wires something in:
//
//	observability.SetSessionHooks(promSessionHooks{})
//	observability.SetCacheHooks(promCacheHooks{})
//
// Registration is meant to happen once at startup. Hook implementations
// run on the emitting goroutine and must not call back into the
// component that emitted the event.
package observability

import (
	"context"
	"sync"
	"time"
)

// SessionHooks receives events from the session lifecycle.
type SessionHooks interface {
	// OnTransition records a phase change. op is the operation that
	// caused it ("initialize", "set_style", "draw", "save", "close").
	OnTransition(ctx context.Context, sessionID, op, from, to string)

	// OnSave records a completed save with the written paths.
	OnSave(ctx context.Context, sessionID string, paths []string, duration time.Duration)
}

// RenderHooks receives events from figure rendering and encoding.
type RenderHooks interface {
	// OnRenderStart records the start of a save across formats.
	OnRenderStart(ctx context.Context, formats []string)

	// OnRenderComplete records the end of a save, successful or not.
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives events from the font discovery cache. keyType
// names the lookup class so a future second cache keeps its own counts.
type CacheHooks interface {
	// OnCacheHit records a lookup served from the cache.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a lookup that had to do the real work.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a result written back, with its size in bytes.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// Noop implementations keep every call site unconditional.

type NoopSessionHooks struct{}

func (NoopSessionHooks) OnTransition(context.Context, string, string, string, string) {}
func (NoopSessionHooks) OnSave(context.Context, string, []string, time.Duration)      {}

type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopRenderHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// reg holds the registered hooks behind one lock. Reads vastly outnumber
// writes; registration is a startup concern.
var reg = struct {
	sync.RWMutex
	session SessionHooks
	render  RenderHooks
	cache   CacheHooks
}{
	session: NoopSessionHooks{},
	render:  NoopRenderHooks{},
	cache:   NoopCacheHooks{},
}

// SetSessionHooks registers session hooks. Nil is ignored.
func SetSessionHooks(h SessionHooks) {
	reg.Lock()
	defer reg.Unlock()
	if h != nil {
		reg.session = h
	}
}

// SetRenderHooks registers render hooks. Nil is ignored.
func SetRenderHooks(h RenderHooks) {
	reg.Lock()
	defer reg.Unlock()
	if h != nil {
		reg.render = h
	}
}

// SetCacheHooks registers cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	reg.Lock()
	defer reg.Unlock()
	if h != nil {
		reg.cache = h
	}
}

// Session returns the registered session hooks.
func Session() SessionHooks {
	reg.RLock()
	defer reg.RUnlock()
	return reg.session
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	reg.RLock()
	defer reg.RUnlock()
	return reg.render
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	reg.RLock()
	defer reg.RUnlock()
	return reg.cache
}

// Reset restores the no-op defaults. Tests use it to unhook probes.
func Reset() {
	reg.Lock()
	defer reg.Unlock()
	reg.session = NoopSessionHooks{}
	reg.render = NoopRenderHooks{}
	reg.cache = NoopCacheHooks{}
}
