package loader

import (
	"errors"
	"strings"
	"testing"

	"dossier-ai/internal/service"
)

func TestRead_Text(t *testing.T) {
	text, err := Read("contrat.txt", []byte("Le présent contrat est conclu entre les parties."))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if text != "Le présent contrat est conclu entre les parties." {
		t.Errorf("Read() = %q", text)
	}
}

func TestRead_Text_InvalidUTF8(t *testing.T) {
	text, err := Read("contrat.txt", []byte{'a', 'b', 0xff, 'c'})
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if text != "abc" {
		t.Errorf("Read() = %q, want invalid bytes dropped", text)
	}
}

func TestRead_CSV(t *testing.T) {
	content := "client,montant,statut\nDupont,1500,impayé\nMartin,2000,payé\n"

	text, err := Read("factures.csv", []byte(content))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if !strings.Contains(text, "Colonnes: client, montant, statut") {
		t.Errorf("Read() missing header line:\n%s", text)
	}
	if !strings.Contains(text, "Ligne 1:") || !strings.Contains(text, "  - client: Dupont") {
		t.Errorf("Read() missing labeled row values:\n%s", text)
	}
	if !strings.Contains(text, "  - statut: impayé") {
		t.Errorf("Read() missing row value:\n%s", text)
	}
}

func TestRead_CSV_HeaderOnly(t *testing.T) {
	_, err := Read("vide.csv", []byte("client,montant\n"))
	if !errors.Is(err, service.ErrEmptyContent) {
		t.Errorf("Read() error = %v, want ErrEmptyContent", err)
	}
}

func TestRead_HTML(t *testing.T) {
	content := `<html><head><style>p{color:red}</style><script>alert(1)</script></head>
<body><h1>Jugement</h1><p>La cour a statué sur le litige.</p></body></html>`

	text, err := Read("jugement.html", []byte(content))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if !strings.Contains(text, "Jugement") || !strings.Contains(text, "La cour a statué sur le litige.") {
		t.Errorf("Read() missing body text:\n%s", text)
	}
	if strings.Contains(text, "alert") || strings.Contains(text, "color:red") {
		t.Errorf("Read() leaked script or style content:\n%s", text)
	}
}

func TestRead_Markdown(t *testing.T) {
	content := "# Note interne\n\nPremier paragraphe de la note.\n\n- point un\n- point deux\n"

	text, err := Read("note.md", []byte(content))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	for _, want := range []string{"Note interne", "Premier paragraphe de la note.", "point un", "point deux"} {
		if !strings.Contains(text, want) {
			t.Errorf("Read() missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "#") {
		t.Errorf("Read() kept markdown syntax:\n%s", text)
	}
}

func TestRead_UnsupportedFormat(t *testing.T) {
	_, err := Read("scan.pdf", []byte("%PDF-1.4"))
	if !errors.Is(err, service.ErrUnsupportedFormat) {
		t.Errorf("Read() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestRead_EmptyContent(t *testing.T) {
	for _, name := range []string{"vide.txt", "vide.html"} {
		if _, err := Read(name, []byte("   \n\t")); !errors.Is(err, service.ErrEmptyContent) {
			t.Errorf("Read(%s) error = %v, want ErrEmptyContent", name, err)
		}
	}
}

func TestRead_ExtensionCaseInsensitive(t *testing.T) {
	if _, err := Read("CONTRAT.TXT", []byte("contenu")); err != nil {
		t.Errorf("Read() error = %v, want upper-case extension accepted", err)
	}
}
