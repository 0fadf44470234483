package rag

import (
	"reflect"
	"testing"
)

func testPassages(n int) []Passage {
	passages := make([]Passage, n)
	for i := range passages {
		passages[i] = Passage{
			Position: i + 1,
			Text:     "extrait",
			Source:   "contrat_client.txt",
			ChunkID:  i,
		}
	}
	return passages
}

func TestExtractUsedSources(t *testing.T) {
	tests := []struct {
		name          string
		answer        string
		passages      int
		wantAnswer    string
		wantPositions []int
	}{
		{
			name:          "marker with two sources",
			answer:        "Selon l'article 3... [Sources: 1, 2]",
			passages:      2,
			wantAnswer:    "Selon l'article 3...",
			wantPositions: []int{1, 2},
		},
		{
			name:          "no marker uses all passages",
			answer:        "Selon l'article 3, le délai est de 30 jours.",
			passages:      3,
			wantAnswer:    "Selon l'article 3, le délai est de 30 jours.",
			wantPositions: []int{1, 2, 3},
		},
		{
			name:          "out of range index dropped",
			answer:        "Réponse. [Sources: 1, 5]",
			passages:      2,
			wantAnswer:    "Réponse.",
			wantPositions: []int{1},
		},
		{
			name:          "all indices out of range fall back to all",
			answer:        "Réponse. [Sources: 5]",
			passages:      2,
			wantAnswer:    "Réponse.",
			wantPositions: []int{1, 2},
		},
		{
			name:          "duplicate indices keep first appearance",
			answer:        "Réponse. [Sources: 2, 1, 2]",
			passages:      3,
			wantAnswer:    "Réponse.",
			wantPositions: []int{2, 1},
		},
		{
			name:          "singular marker and lowercase",
			answer:        "Réponse. [source: 2]",
			passages:      2,
			wantAnswer:    "Réponse.",
			wantPositions: []int{2},
		},
		{
			name:          "compact number list",
			answer:        "Réponse. [Sources: 1,3]",
			passages:      3,
			wantAnswer:    "Réponse.",
			wantPositions: []int{1, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clean, used := ExtractUsedSources(tt.answer, testPassages(tt.passages))

			if clean != tt.wantAnswer {
				t.Errorf("clean answer = %q, want %q", clean, tt.wantAnswer)
			}

			positions := make([]int, len(used))
			for i, passage := range used {
				positions[i] = passage.Position
			}
			if !reflect.DeepEqual(positions, tt.wantPositions) {
				t.Errorf("used positions = %v, want %v", positions, tt.wantPositions)
			}
		})
	}
}

func TestExtractUsedSources_NeverModifiesOtherText(t *testing.T) {
	answer := "Première partie. [Sources: 1] Seconde partie."
	clean, _ := ExtractUsedSources(answer, testPassages(1))
	if clean != "Première partie.  Seconde partie." {
		t.Errorf("clean answer = %q, want marker removed and surrounding text intact", clean)
	}
}
