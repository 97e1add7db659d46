package agent

import (
	"context"
	"fmt"
	"strings"

	"planhub-be/internal/constant"
	"planhub-be/pkg/llm"
)

// Classifier decides whether a user message needs document retrieval before
// answering. It fails closed: any error, timeout or unparseable reply means
// no retrieval, because a plain answer is always safe and a wasted vector
// query is not free.
type Classifier struct {
	llmProvider llm.LLMProvider
	model       string
}

func NewClassifier(llmProvider llm.LLMProvider, model string) *Classifier {
	return &Classifier{
		llmProvider: llmProvider,
		model:       model,
	}
}

func (c *Classifier) ShouldRetrieve(ctx context.Context, message string) bool {
	prompt := fmt.Sprintf(constant.DecideUseRetrievalPromptV1, message)

	opts := []llm.Option{llm.WithTemperature(0)}
	if c.model != "" {
		opts = append(opts, llm.WithModel(c.model))
	}

	reply, err := c.llmProvider.Generate(ctx, prompt, opts...)
	if err != nil {
		return false
	}

	// Substring match, not equality: small models decorate the answer.
	return strings.Contains(strings.ToLower(reply), "true")
}
