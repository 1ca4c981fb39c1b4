package template

import (
	"sort"
	"testing"
)

func TestExtractDeduplicates(t *testing.T) {
	raw := `<p>@nome_candidato assina com @razao_social. @nome_candidato presente.</p>`

	tokens := Extract(raw)
	sort.Strings(tokens)

	want := []string{"@nome_candidato", "@razao_social"}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens got %v", len(want), tokens)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Fatalf("expected %v got %v", want, tokens)
		}
	}
}

func TestExtractEmptyTemplate(t *testing.T) {
	if tokens := Extract("<p>no tags here</p>"); len(tokens) != 0 {
		t.Fatalf("expected no tokens got %v", tokens)
	}
}

func TestExtractStopsAtNonWordCharacters(t *testing.T) {
	tokens := Extract("@data_inicio.")
	if len(tokens) != 1 || tokens[0] != "@data_inicio" {
		t.Fatalf("got %v", tokens)
	}
}
