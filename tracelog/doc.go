// Package tracelog implements the append-only audit trail of agent runs.
//
// Every notable lifecycle transition of an executor run produces one Event,
// tagged with the trace identifier grouping all events of that run. Events
// are persisted through a Store and later read back grouped by trace id,
// sorted by timestamp, by an observability surface.
//
// Writes go through a Recorder, which is strictly best-effort: a failing
// store must never abort the agent run it is auditing, so Record swallows
// store errors after logging them diagnostically.
package tracelog
