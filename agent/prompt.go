package agent

import (
	"strings"

	"github.com/brieflyai/cortex/tool"
)

// noMemoryPlaceholder stands in for the memory digest when recall returned
// nothing (or failed, which degrades to the same thing).
const noMemoryPlaceholder = "No relevant memory found for this user."

// buildInstructions assembles the system prompt for a run: the agent's role,
// its cognitive process, the available tools with one-line guidance each,
// the memory digest retrieved during perception, and the save-once rule for
// the memory tool. The prompt is built once per run; memory is not re-fetched
// between reasoning passes.
func buildInstructions(registry *tool.Registry, memoryDigest string) string {
	var sb strings.Builder

	sb.WriteString("You are Cortex, an autonomous assistant that completes content tasks for the user.\n\n")

	sb.WriteString("Work through every request in five stages:\n")
	sb.WriteString("1. Perceive: read the request and the memory of prior interactions below.\n")
	sb.WriteString("2. Plan: decide which tools, if any, the task needs.\n")
	sb.WriteString("3. Act: call one tool at a time and wait for its result.\n")
	sb.WriteString("4. Reflect: use each tool result to decide the next step.\n")
	sb.WriteString("5. Learn: when the task succeeded, optionally save one key takeaway.\n\n")

	sb.WriteString("Available tools:\n")
	for _, def := range registry.Definitions() {
		sb.WriteString("- ")
		sb.WriteString(def.Function.Name)
		sb.WriteString(": ")
		sb.WriteString(def.Function.Description)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString("Memory of prior interactions with this user:\n")
	if memoryDigest == "" {
		sb.WriteString(noMemoryPlaceholder)
	} else {
		sb.WriteString(memoryDigest)
	}
	sb.WriteString("\n\n")

	sb.WriteString("Call " + tool.SaveMemoryName + " at most once per conversation, ")
	sb.WriteString("and only as your final action after the task has succeeded. ")
	sb.WriteString("When no tool is needed, answer directly in plain text.")

	return sb.String()
}
