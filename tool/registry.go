package tool

import (
	"fmt"
	"sort"

	"github.com/brieflyai/cortex/model"
)

// Registry is the immutable name -> Tool mapping the executor dispatches
// through. It is constructed once at startup and never mutated afterwards,
// so it is safe to share across concurrent runs. An unknown name at dispatch
// time is a single-point lookup miss the executor treats as fatal.
type Registry struct {
	tools map[string]Tool
}

// NewRegistry builds a registry from the given tools. Duplicate or empty
// names are construction errors.
func NewRegistry(tools ...Tool) (*Registry, error) {
	m := make(map[string]Tool, len(tools))
	for _, t := range tools {
		name := t.Name()
		if name == "" {
			return nil, fmt.Errorf("tool with empty name")
		}
		if _, exists := m[name]; exists {
			return nil, fmt.Errorf("duplicate tool name %q", name)
		}
		m[name] = t
	}
	return &Registry{tools: m}, nil
}

// MustNewRegistry is NewRegistry panicking on error, for static wiring.
func MustNewRegistry(tools ...Tool) *Registry {
	r, err := NewRegistry(tools...)
	if err != nil {
		panic(err)
	}
	return r
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Len returns the number of registered tools.
func (r *Registry) Len() int { return len(r.tools) }

// Names returns the registered tool names sorted alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Definitions exports all tools as model.ToolDefinition values in name order,
// ready to attach to a gateway request.
func (r *Registry) Definitions() []model.ToolDefinition {
	defs := make([]model.ToolDefinition, 0, len(r.tools))
	for _, name := range r.Names() {
		t := r.tools[name]
		defs = append(defs, model.ToolDefinition{
			Type: "function",
			Function: model.FunctionDefinition{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  t.Parameters(),
			},
		})
	}
	return defs
}
