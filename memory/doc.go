// Package memory contains concrete MemoryStore implementations. The store
// interface and MemoryRecord type reside in the core package. Import
// github.com/brieflyai/cortex/core and depend on core.MemoryStore in your
// code; select an implementation (the in-memory store below, or the mongo
// subpackage) at wiring time.
//
// Rationale: keeps domain contracts centralized while allowing pluggable
// backends (vector databases, embeddings indexes, etc.) to be added without
// introducing dependency cycles.
package memory
