// Package rag answers questions over the indexed document collection:
// filtered retrieval with fallback relaxation, prompt construction,
// generation and answer-to-source attribution.
package rag

// NotFoundMessage is the fixed response returned when retrieval ends in the
// empty terminal state. It is a normal answer, not an error.
const NotFoundMessage = "Je ne trouve pas cette information dans les documents disponibles. " +
	"Veuillez vérifier que les documents pertinents ont bien été indexés."

// Passage is one retrieved chunk. Position is its 1-based ordinal in the
// retrieved set, referenced by the citation marker in the generated answer.
type Passage struct {
	Position int     `json:"position"`
	Text     string  `json:"text"`
	Score    float32 `json:"score"`
	Source   string  `json:"source"`
	ChunkID  int     `json:"chunk_id"`
	TypeDoc  string  `json:"type_doc"`
	Personne string  `json:"personne,omitempty"`
}

// Outcome identifies which retrieval state produced the passages.
type Outcome string

const (
	// OutcomeFiltered means the full filter set returned results.
	OutcomeFiltered Outcome = "filtered"
	// OutcomeRelaxed means results came from the retry with the person
	// filter removed.
	OutcomeRelaxed Outcome = "relaxed"
	// OutcomeEmpty is the terminal state with no passages at all.
	OutcomeEmpty Outcome = "empty"
)

// Answer is the result of one question.
type Answer struct {
	Text     string    `json:"answer"`
	Passages []Passage `json:"passages"`
	Outcome  Outcome   `json:"outcome"`
	Person   string    `json:"person,omitempty"`
	DocType  string    `json:"doc_type,omitempty"`
}
