package handlers

import (
	"encoding/json"
	"net/http"

	"dossier-ai/internal/contextutil"
	"dossier-ai/internal/llm"
	"dossier-ai/internal/rag"
)

// AskHandler handles question answering requests.
type AskHandler struct {
	engine *rag.Engine
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(engine *rag.Engine) *AskHandler {
	return &AskHandler{engine: engine}
}

// HistoryMessage is one prior conversation message in an ask request.
type HistoryMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AskRequest represents the HTTP request payload for questions.
type AskRequest struct {
	Question string           `json:"question"`
	History  []HistoryMessage `json:"history,omitempty"`
}

// SourceResponse is one passage the answer drew from.
type SourceResponse struct {
	Position int     `json:"position"`
	Source   string  `json:"source"`
	ChunkID  int     `json:"chunk_id"`
	TypeDoc  string  `json:"type_doc"`
	Score    float32 `json:"score"`
	Text     string  `json:"text"`
}

// AskResponse represents the HTTP response payload for questions.
type AskResponse struct {
	Answer  string           `json:"answer"`
	Sources []SourceResponse `json:"sources"`
	Found   bool             `json:"found"`
	Outcome string           `json:"outcome"`
	Person  string           `json:"person,omitempty"`
	DocType string           `json:"doc_type,omitempty"`
}

func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Question == "" {
		logger.WarnContext(ctx, "empty question in request")
		writeError(w, http.StatusBadRequest, "Question is required")
		return
	}

	history := make([]llm.Message, 0, len(req.History))
	for _, msg := range req.History {
		if msg.Role != "user" && msg.Role != "assistant" {
			writeError(w, http.StatusBadRequest, "History roles must be user or assistant")
			return
		}
		history = append(history, llm.Message{Role: msg.Role, Content: msg.Content})
	}

	answer, err := h.engine.Ask(ctx, req.Question, history)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to answer question")
		return
	}

	sources := make([]SourceResponse, len(answer.Passages))
	for i, passage := range answer.Passages {
		sources[i] = SourceResponse{
			Position: passage.Position,
			Source:   passage.Source,
			ChunkID:  passage.ChunkID,
			TypeDoc:  passage.TypeDoc,
			Score:    passage.Score,
			Text:     passage.Text,
		}
	}

	writeJSON(ctx, w, http.StatusOK, AskResponse{
		Answer:  answer.Text,
		Sources: sources,
		Found:   answer.Outcome != rag.OutcomeEmpty,
		Outcome: string(answer.Outcome),
		Person:  answer.Person,
		DocType: answer.DocType,
	})
}
