// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks at
// startup to receive events about the project graph and about container file
// reads and writes.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetProjectHooks(&myProjectHooks{})
//	    observability.SetFileHooks(&myFileHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	// ... lay out classes ...
//	observability.Project().OnLayout(len(classes), time.Since(start))
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Project Hooks
// =============================================================================

// ProjectHooks receives events from the project graph.
type ProjectHooks interface {
	// Class membership events
	OnClassAdded(uuid, name string)
	OnClassRemoved(uuid, name string)

	// OnLayout records one global offset recomputation.
	OnLayout(classCount int, duration time.Duration)
}

// =============================================================================
// File Hooks
// =============================================================================

// FileHooks receives events from container file reads and writes.
type FileHooks interface {
	// OnWrite records a document write. skipped counts nodes left out
	// because no converter understood them.
	OnWrite(classCount, skipped int, duration time.Duration, err error)

	// OnRead records a document read. skipped counts elements that could
	// not be turned back into nodes.
	OnRead(classCount, skipped int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopProjectHooks is a no-op implementation of ProjectHooks.
type NoopProjectHooks struct{}

func (NoopProjectHooks) OnClassAdded(string, string)   {}
func (NoopProjectHooks) OnClassRemoved(string, string) {}
func (NoopProjectHooks) OnLayout(int, time.Duration)   {}

// NoopFileHooks is a no-op implementation of FileHooks.
type NoopFileHooks struct{}

func (NoopFileHooks) OnWrite(int, int, time.Duration, error) {}
func (NoopFileHooks) OnRead(int, int, time.Duration, error)  {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	projectHooks ProjectHooks = NoopProjectHooks{}
	fileHooks    FileHooks    = NoopFileHooks{}
	hooksMu      sync.RWMutex
)

// SetProjectHooks registers custom project hooks.
// This should be called once at application startup before any project is built.
func SetProjectHooks(h ProjectHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		projectHooks = h
	}
}

// SetFileHooks registers custom file hooks.
// This should be called once at application startup before any file is read or written.
func SetFileHooks(h FileHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		fileHooks = h
	}
}

// Project returns the registered project hooks.
func Project() ProjectHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return projectHooks
}

// File returns the registered file hooks.
func File() FileHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return fileHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	projectHooks = NoopProjectHooks{}
	fileHooks = NoopFileHooks{}
}
