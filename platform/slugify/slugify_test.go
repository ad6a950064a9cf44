package slugify

import "testing"

func TestMake(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Feira de Profissões 2026", "feira-de-profissoes-2026"},
		{"  Open   Day!!  ", "open-day"},
		{"São João — Festa Junina", "sao-joao-festa-junina"},
		{"UPPER Case Title", "upper-case-title"},
		{"já-hifenizado", "ja-hifenizado"},
		{"123", "123"},
		{"***", ""},
	}

	for _, tc := range tests {
		if got := Make(tc.title); got != tc.want {
			t.Errorf("Make(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestMakeIsStable(t *testing.T) {
	// Slugging a slug must be a no-op, otherwise lookups by slug break.
	slug := Make("Feira de Profissões")
	if again := Make(slug); again != slug {
		t.Fatalf("Make not idempotent: %q -> %q", slug, again)
	}
}
