// Package logging provides the minimal diagnostic logging interface used
// throughout Cortex, plus adapters for Go's structured logging.
//
// This logger carries operational diagnostics (model latencies, store
// failures, tool durations). It is distinct from the tracelog package, which
// persists the audit timeline of an agent run. The two never share a sink:
// diagnostics may be dropped freely, audit events are appended to a store.
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping *slog.Logger
//   - NoOpLogger for silent operation (testing, minimal setups)
package logging
