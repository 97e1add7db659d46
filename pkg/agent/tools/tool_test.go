package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func noopHandler(ctx context.Context, tc ToolContext, args map[string]any) string {
	return "ok"
}

func TestNewRegistryDeduplicates(t *testing.T) {
	r := NewRegistry(
		Tool{Name: "get-thing", Handler: noopHandler},
		Tool{Name: "get-thing", Handler: noopHandler},
		Tool{Name: "list-things", Handler: noopHandler},
	)

	bound := r.Bound(ToolContext{OrgID: uuid.New()})
	if bound.Len() != 2 {
		t.Errorf("Len() = %d, want 2 after dedup", bound.Len())
	}
}

func TestBoundFiltersByContext(t *testing.T) {
	r := NewRegistry(
		Tool{Name: "org-tool", Handler: noopHandler},
		Tool{Name: "project-tool", RequiresProject: true, Handler: noopHandler},
		Tool{Name: "user-tool", RequiresUser: true, Handler: noopHandler},
	)

	tests := []struct {
		name string
		tc   ToolContext
		want []string
	}{
		{
			name: "full context offers everything",
			tc:   ToolContext{OrgID: uuid.New(), ProjectID: uuid.New(), UserID: uuid.New()},
			want: []string{"org-tool", "project-tool", "user-tool"},
		},
		{
			name: "no project hides project tools",
			tc:   ToolContext{OrgID: uuid.New(), UserID: uuid.New()},
			want: []string{"org-tool", "user-tool"},
		},
		{
			name: "no user hides mutating tools",
			tc:   ToolContext{OrgID: uuid.New(), ProjectID: uuid.New()},
			want: []string{"org-tool", "project-tool"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bound := r.Bound(tt.tc)
			defs := bound.Definitions()
			if len(defs) != len(tt.want) {
				t.Fatalf("Definitions() count = %d, want %d", len(defs), len(tt.want))
			}
			for i, name := range tt.want {
				if defs[i].Name != name {
					t.Errorf("Definitions()[%d].Name = %q, want %q", i, defs[i].Name, name)
				}
			}
		})
	}
}

func TestExecuteUnknownTool(t *testing.T) {
	bound := NewRegistry().Bound(ToolContext{OrgID: uuid.New()})

	got := bound.Execute(context.Background(), "delete-everything", nil)
	if !strings.Contains(got, "not available") {
		t.Errorf("Execute() = %q, want an explanatory unavailable message", got)
	}
}

func TestExecuteFilteredToolIsUnavailable(t *testing.T) {
	r := NewRegistry(Tool{Name: "project-tool", RequiresProject: true, Handler: noopHandler})
	bound := r.Bound(ToolContext{OrgID: uuid.New()})

	got := bound.Execute(context.Background(), "project-tool", map[string]any{})
	if !strings.Contains(got, "not available") {
		t.Errorf("Execute() = %q, want unavailable: the binding filter must also gate execution", got)
	}
}

func TestExecutePinsContext(t *testing.T) {
	orgId := uuid.New()
	r := NewRegistry(Tool{
		Name: "whoami",
		Handler: func(ctx context.Context, tc ToolContext, args map[string]any) string {
			return tc.OrgID.String()
		},
	})

	got := r.Bound(ToolContext{OrgID: orgId}).Execute(context.Background(), "whoami", nil)
	if got != orgId.String() {
		t.Errorf("Execute() = %q, want the bound org %q", got, orgId)
	}
}

func TestArgumentHelpers(t *testing.T) {
	args := map[string]any{
		"title":  "  Public beta  ",
		"count":  float64(5),
		"blank":  "",
		"number": 42,
	}

	if got := stringArg(args, "title"); got != "Public beta" {
		t.Errorf("stringArg trims: got %q", got)
	}
	if got := stringArg(args, "missing"); got != "" {
		t.Errorf("stringArg missing key: got %q", got)
	}
	if got := optionalStringArg(args, "blank"); got != nil {
		t.Errorf("optionalStringArg blank: got %v, want nil", got)
	}
	if got := optionalStringArg(args, "missing"); got != nil {
		t.Errorf("optionalStringArg missing: got %v, want nil", got)
	}
	if got, ok := numberArg(args, "count"); !ok || got != 5 {
		t.Errorf("numberArg float64: got %v, %v", got, ok)
	}
	if got, ok := intArg(args, "number"); !ok || got != 42 {
		t.Errorf("intArg int: got %v, %v", got, ok)
	}
	if _, ok := numberArg(args, "title"); ok {
		t.Error("numberArg on a string should not be ok")
	}
}
