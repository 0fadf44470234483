package rag

import (
	"fmt"
	"strings"
)

const answerPromptTemplate = `Vous êtes un assistant juridique interne pour un cabinet d'avocats en droit des affaires.

INSTRUCTIONS IMPORTANTES:

1. **Répondez en vous basant UNIQUEMENT sur les documents fournis ci-dessous**
   - Lisez attentivement tous les extraits fournis
   - Utilisez les informations présentes dans ces extraits pour répondre

2. **Si l'information est présente dans les documents**:
   - Répondez de manière claire et précise
   - À la fin de votre réponse, indiquez UNIQUEMENT les numéros des documents que vous avez réellement utilisés
   - Format: [Sources: 1, 3] (si vous avez utilisé les documents 1 et 3)
   - N'incluez QUE les documents dont vous avez extrait des informations pour votre réponse
   - Si plusieurs documents contiennent des informations pertinentes, synthétisez-les

3. **Si l'information n'est PAS présente dans les documents**:
   - Répondez: "Je ne trouve pas cette information dans les documents disponibles."
   - Ne générez JAMAIS d'informations qui ne sont pas dans les documents fournis

4. **Soyez précis et professionnel** dans vos réponses

---

DOCUMENTS DE RÉFÉRENCE:
%s

---

QUESTION: %s

RÉPONSE:`

const reformulationPromptTemplate = `Tu es un assistant qui reformule des questions en tenant compte du contexte de conversation.

HISTORIQUE DE CONVERSATION:
%s

QUESTION ACTUELLE: %s

TÂCHE:
Si la question actuelle contient des références implicites (comme "Et l'article 4?", "Combien ça coûte?", "Et pour Marie?"), reformule-la en une question complète et autonome en utilisant le contexte.

Si la question est déjà complète et autonome, retourne-la telle quelle.

RÈGLES:
- Sois concis, ne rajoute que le contexte nécessaire
- Garde le même sens et la même intention
- Ne réponds PAS à la question, reformule-la seulement

QUESTION REFORMULÉE:`

// BuildPrompt assembles the final generation prompt from the user question
// and the retrieved passages.
func BuildPrompt(question string, passages []Passage) string {
	return fmt.Sprintf(answerPromptTemplate, BuildContext(passages), question)
}

// BuildContext formats passages as numbered reference blocks. The numbers
// are the positions the citation marker refers back to.
func BuildContext(passages []Passage) string {
	if len(passages) == 0 {
		return "Aucun document pertinent trouvé."
	}

	parts := make([]string, len(passages))
	for i, passage := range passages {
		parts[i] = fmt.Sprintf("--- Document %d ---\nSource: %s (chunk %d)\nContenu:\n%s\n",
			passage.Position, passage.Source, passage.ChunkID, passage.Text)
	}
	return strings.Join(parts, "\n")
}

// buildReformulationPrompt assembles the prompt asking the model to rewrite
// a follow-up question into a standalone one.
func buildReformulationPrompt(question, conversationContext string) string {
	return fmt.Sprintf(reformulationPromptTemplate, conversationContext, question)
}
