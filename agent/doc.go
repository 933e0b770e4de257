// Package agent implements the Executor, the bounded reasoning loop at the
// center of Cortex. One call to Execute runs a single agent invocation:
// recall long-term memory, ask the model to plan, dispatch at most one tool
// per pass, feed the observation back, and stop on a final answer, a
// successful memory save, or the loop ceiling. Every transition is appended
// to the audit trail under a fresh trace id.
package agent
