package rag

import (
	"context"
	"fmt"
	"strings"

	"dossier-ai/internal/contextutil"
	"dossier-ai/internal/llm"
	"dossier-ai/internal/queryparse"
)

// maxHistoryExchanges bounds how many prior question/answer pairs feed the
// reformulation prompt.
const maxHistoryExchanges = 3

// historyMessageRunes truncates each history message in the reformulation
// prompt.
const historyMessageRunes = 200

// Engine runs the full question answering pipeline: history-aware
// reformulation, query parsing, filtered retrieval and attribution.
type Engine struct {
	retriever *Retriever
	generator llm.Generator
}

// NewEngine creates a question answering engine.
func NewEngine(retriever *Retriever, generator llm.Generator) *Engine {
	return &Engine{
		retriever: retriever,
		generator: generator,
	}
}

// Ask answers a question over the indexed documents. history holds prior
// conversation messages and may be empty. The reformulated question drives
// retrieval only; generation always sees the original question.
func (e *Engine) Ask(ctx context.Context, question string, history []llm.Message) (*Answer, error) {
	logger := contextutil.LoggerFromContext(ctx)

	searchQuery := question
	if len(history) > 0 {
		searchQuery = e.reformulate(ctx, question, history)
	}

	parsed := queryparse.Parse(searchQuery)
	logger.InfoContext(ctx, "parsed query", "person", parsed.Person, "doc_type", parsed.DocType)

	result, err := e.retriever.Retrieve(ctx, parsed.Clean, parsed.Person, parsed.DocType)
	if err != nil {
		return nil, err
	}

	if result.Outcome == OutcomeEmpty {
		logger.InfoContext(ctx, "no relevant passages found")
		return &Answer{
			Text:     NotFoundMessage,
			Passages: []Passage{},
			Outcome:  OutcomeEmpty,
			Person:   parsed.Person,
			DocType:  parsed.DocType,
		}, nil
	}

	prompt := BuildPrompt(question, result.Passages)
	reply, err := e.generator.ChatWithMessages(ctx, []llm.Message{{Role: "user", Content: prompt}}, llm.ChatParams{})
	if err != nil {
		return nil, fmt.Errorf("failed to generate answer: %w", err)
	}

	clean, used := ExtractUsedSources(reply, result.Passages)
	logger.InfoContext(ctx, "answer generated", "outcome", result.Outcome, "retrieved", len(result.Passages), "used", len(used))

	return &Answer{
		Text:     clean,
		Passages: used,
		Outcome:  result.Outcome,
		Person:   parsed.Person,
		DocType:  parsed.DocType,
	}, nil
}

// reformulate rewrites a follow-up question into a standalone one using the
// recent conversation. A reformulation failure falls back to the original
// question rather than failing the whole request.
func (e *Engine) reformulate(ctx context.Context, question string, history []llm.Message) string {
	logger := contextutil.LoggerFromContext(ctx)

	recent := history
	if len(recent) > maxHistoryExchanges*2 {
		recent = recent[len(recent)-maxHistoryExchanges*2:]
	}

	lines := make([]string, 0, len(recent))
	for _, msg := range recent {
		role := "Assistant"
		if msg.Role == "user" {
			role = "Utilisateur"
		}
		lines = append(lines, role+": "+truncateRunes(msg.Content, historyMessageRunes))
	}

	prompt := buildReformulationPrompt(question, strings.Join(lines, "\n"))
	reformulated, err := e.generator.ChatWithMessages(ctx, []llm.Message{{Role: "user", Content: prompt}}, llm.ChatParams{})
	if err != nil {
		logger.WarnContext(ctx, "reformulation failed, using original question", "error", err)
		return question
	}

	reformulated = strings.TrimSpace(reformulated)
	if reformulated == "" {
		return question
	}
	logger.InfoContext(ctx, "question reformulated", "original", question, "reformulated", reformulated)
	return reformulated
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
