package agent

import (
	"context"
	"errors"
	"testing"
)

func TestClassifierShouldRetrieve(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
		want  bool
	}{
		{name: "bare true", reply: "true", want: true},
		{name: "decorated true", reply: "True.", want: true},
		{name: "chatty true", reply: "The answer is TRUE, retrieval would help", want: true},
		{name: "bare false", reply: "false", want: false},
		{name: "chatty false", reply: "No, I don't think so", want: false},
		{name: "empty reply", reply: "", want: false},
		{name: "provider error fails closed", err: errors.New("connection refused"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeLLM{
				generateFn: func(ctx context.Context, prompt string) (string, error) {
					return tt.reply, tt.err
				},
			}
			c := NewClassifier(provider, "")

			if got := c.ShouldRetrieve(context.Background(), "does M-1 slip?"); got != tt.want {
				t.Errorf("ShouldRetrieve() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifierPassesModelOverride(t *testing.T) {
	provider := &fakeLLM{
		generateFn: func(ctx context.Context, prompt string) (string, error) {
			return "true", nil
		},
	}
	c := NewClassifier(provider, "llama3.2:1b")

	if !c.ShouldRetrieve(context.Background(), "anything") {
		t.Error("ShouldRetrieve() = false, want true")
	}
}
