package tools

import (
	"context"
	"fmt"
	"strings"

	"planhub-be/pkg/llm"

	"github.com/google/uuid"
)

// ToolContext carries the tenant scope a tool runs under. It is built once
// per invocation from the authenticated request and passed by value so a
// tool can never widen its own scope.
type ToolContext struct {
	OrgID     uuid.UUID
	ProjectID uuid.UUID // uuid.Nil when the session has no project
	UserID    uuid.UUID // uuid.Nil when acting without a user identity
}

// Handler executes a tool call. Every outcome, including validation and
// infrastructure failures, is returned as text for the model; handlers never
// return errors.
type Handler func(ctx context.Context, tc ToolContext, args map[string]any) string

type Tool struct {
	Name        string
	Description string
	// Parameters is the JSON schema of the arguments object.
	Parameters map[string]any

	// RequiresProject / RequiresUser gate binding: a tool is not offered to
	// the model when the context it needs is absent.
	RequiresProject bool
	RequiresUser    bool

	// Mutating marks confirm-* tools. Read tools must be side-effect free.
	Mutating bool

	Handler Handler
}

// Registry holds every declared tool in registration order.
type Registry struct {
	tools  []Tool
	byName map[string]Tool
}

func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{byName: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		if _, dup := r.byName[t.Name]; dup {
			continue
		}
		r.tools = append(r.tools, t)
		r.byName[t.Name] = t
	}
	return r
}

// Bound returns the subset of tools usable under tc, pre-bound to it.
func (r *Registry) Bound(tc ToolContext) *BoundSet {
	b := &BoundSet{tc: tc, byName: make(map[string]Tool)}
	for _, t := range r.tools {
		if t.RequiresProject && tc.ProjectID == uuid.Nil {
			continue
		}
		if t.RequiresUser && tc.UserID == uuid.Nil {
			continue
		}
		b.tools = append(b.tools, t)
		b.byName[t.Name] = t
	}
	return b
}

// BoundSet is a registry filtered and pinned to one ToolContext.
type BoundSet struct {
	tc     ToolContext
	tools  []Tool
	byName map[string]Tool
}

func (b *BoundSet) Definitions() []llm.Tool {
	defs := make([]llm.Tool, 0, len(b.tools))
	for _, t := range b.tools {
		defs = append(defs, llm.Tool{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  t.Parameters,
		})
	}
	return defs
}

func (b *BoundSet) Len() int {
	return len(b.tools)
}

// Execute dispatches a tool call by name. Unknown names produce an
// explanatory string the model can recover from.
func (b *BoundSet) Execute(ctx context.Context, name string, args map[string]any) string {
	t, ok := b.byName[name]
	if !ok {
		return fmt.Sprintf("Tool %q is not available in this workspace context.", name)
	}
	if args == nil {
		args = map[string]any{}
	}
	return t.Handler(ctx, b.tc, args)
}

// --- schema helpers ---

func objectSchema(required []string, props map[string]any) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func enumProp(description string, values ...string) map[string]any {
	return map[string]any{"type": "string", "description": description, "enum": values}
}

func numberProp(description string) map[string]any {
	return map[string]any{"type": "number", "description": description}
}

// --- argument helpers ---

func stringArg(args map[string]any, key string) string {
	v, ok := args[key]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return fmt.Sprint(v)
	}
	return strings.TrimSpace(s)
}

func optionalStringArg(args map[string]any, key string) *string {
	if _, ok := args[key]; !ok {
		return nil
	}
	s := stringArg(args, key)
	if s == "" {
		return nil
	}
	return &s
}

func numberArg(args map[string]any, key string) (float64, bool) {
	v, ok := args[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

func intArg(args map[string]any, key string) (int, bool) {
	f, ok := numberArg(args, key)
	if !ok {
		return 0, false
	}
	return int(f), true
}
