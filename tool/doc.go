// Package tool implements the capability subsystem the executor dispatches
// into: the Tool interface, a schema-validating FunctionTool adapter, the
// immutable Registry built once at startup, and the built-in tools (content
// generation and memory persistence).
package tool
