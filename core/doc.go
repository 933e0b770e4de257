// Package core provides the foundational domain types shared by the Cortex
// executor and its collaborators. It defines:
//
//   - Content / Part (role-tagged conversation segments as a closed sum type)
//   - ToolRequest / ToolResponse (correlated tool invocation records)
//   - ToolContext (the explicit, auditable surface handed to tool bodies)
//   - MemoryStore (long-term per-user recall and fact persistence)
//
// The package intentionally keeps implementation concerns (persistence, model
// providers, the executor itself) out of scope, exposing small interfaces so
// backends can be swapped at wiring time without dependency cycles.
package core
