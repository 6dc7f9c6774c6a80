// Package narrator turns completed analyses into natural-language summaries.
// The OpenAI-backed narrator is optional; the template narrator is the
// always-available deterministic fallback.
package narrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/relicdev/relic/internal/contract"
	"github.com/relicdev/relic/schema"
)

// DefaultModel is the chat model used when no model is configured.
const DefaultModel = openai.GPT4oMini

// systemPrompt frames the narrator's voice.
const systemPrompt = `You are a code archaeology guide. Given repository activity metrics,
write a short, vivid narrative (3-5 sentences) about the repository's life:
its pace of change, its most-tended and most-neglected corners, and the
people behind it. Plain prose, no markdown, no bullet points.`

// OpenAINarrator narrates analyses through the OpenAI chat API.
type OpenAINarrator struct {
	client *openai.Client
	model  string
}

var _ contract.Narrator = &OpenAINarrator{} // Compile-time check

// NewOpenAINarrator creates a narrator. It fails when no API key is
// configured; callers treat that as "narrator absent" and fall back.
func NewOpenAINarrator(apiKey, model string) (*OpenAINarrator, error) {
	if apiKey == "" {
		return nil, errors.New("no API key configured for the narrator")
	}
	if model == "" {
		model = DefaultModel
	}
	return &OpenAINarrator{client: openai.NewClient(apiKey), model: model}, nil
}

// Narrate implements the Narrator interface.
func (n *OpenAINarrator) Narrate(ctx context.Context, analysis *schema.RepositoryAnalysis) (string, error) {
	resp, err := n.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: n.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: Digest(analysis),
			},
		},
		MaxTokens:   400,
		Temperature: 0.7,
	})
	if err != nil {
		return "", contract.WrapError(contract.KindNarrator, "chat completion failed", err)
	}
	if len(resp.Choices) == 0 {
		return "", contract.NewError(contract.KindNarrator, "chat completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// digestFileBatch caps how many files the digest lists per section, to keep
// prompts well under the context window even for large trees.
const digestFileBatch = 10

// Digest renders the analysis as the compact plain-text prompt payload.
func Digest(analysis *schema.RepositoryAnalysis) string {
	var b strings.Builder
	stats := analysis.Stats

	fmt.Fprintf(&b, "Repository: %s (branch %s)\n", analysis.Repository.Name, analysis.Repository.Branch)
	fmt.Fprintf(&b, "Commits: %d, files analyzed: %d, contributors: %d\n",
		stats.TotalCommits, stats.TotalFiles, stats.TotalContributors)
	if !stats.OldestCommit.IsZero() {
		fmt.Fprintf(&b, "History spans %s to %s\n",
			stats.OldestCommit.Format("2006-01-02"), stats.NewestCommit.Format("2006-01-02"))
	}

	for i, c := range analysis.Contributors {
		if i >= digestFileBatch {
			break
		}
		fmt.Fprintf(&b, "Contributor %s: %d commits, +%d/-%d lines\n",
			c.Name, c.CommitCount, c.LinesAdded, c.LinesDeleted)
	}
	for i, f := range analysis.Files {
		if i >= digestFileBatch {
			break
		}
		fmt.Fprintf(&b, "File %s: %d commits, health %d, dead=%t\n",
			f.Path, f.CommitCount, f.HealthScore, f.IsDead)
	}
	return b.String()
}

// TemplateNarrator is the deterministic fallback. It never fails and never
// leaves the process.
type TemplateNarrator struct{}

var _ contract.Narrator = TemplateNarrator{} // Compile-time check

// Narrate implements the Narrator interface.
func (TemplateNarrator) Narrate(_ context.Context, analysis *schema.RepositoryAnalysis) (string, error) {
	stats := analysis.Stats
	name := analysis.Repository.Name
	if name == "" {
		name = "This repository"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s carries %d commits across %d analyzed files, shaped by %d contributors.",
		name, stats.TotalCommits, stats.TotalFiles, stats.TotalContributors)
	if !stats.OldestCommit.IsZero() {
		fmt.Fprintf(&b, " Its recorded history runs from %s to %s.",
			stats.OldestCommit.Format("January 2006"), stats.NewestCommit.Format("January 2006"))
	}
	if len(analysis.Contributors) > 0 {
		top := analysis.Contributors[0]
		fmt.Fprintf(&b, " %s has left the deepest mark with %d commits.", top.Name, top.CommitCount)
	}
	dead := 0
	for _, f := range analysis.Files {
		if f.IsDead {
			dead++
		}
	}
	if dead > 0 {
		fmt.Fprintf(&b, " %d files lie untouched beyond the dead-code horizon.", dead)
	}
	return b.String(), nil
}
