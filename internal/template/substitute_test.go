package template

import (
	"strings"
	"testing"

	"github.com/nanpeixoto/acervus/internal/domain"
	"github.com/nanpeixoto/acervus/internal/format"
)

func TestSubstituteReplacesAllOccurrences(t *testing.T) {
	raw := "<p>@nome_candidato e @nome_candidato</p>"
	defs := []domain.TagDefinition{
		{Token: "@nome_candidato", EntityKind: domain.EntityCandidate, FieldPath: "nome_completo", Active: true},
	}
	ctx := domain.DataContext{
		domain.EntityCandidate: {"nome_completo": "MARIA DA SILVA"},
	}

	out := Substitute(raw, Extract(raw), defs, ctx)
	if strings.Contains(out, "@nome_candidato") {
		t.Fatalf("token left behind: %s", out)
	}
	if strings.Count(out, "MARIA DA SILVA") != 2 {
		t.Fatalf("expected both occurrences replaced: %s", out)
	}
}

func TestSubstituteBlankValueGetsSentinel(t *testing.T) {
	raw := "<p>@razao_social / @nome_candidato</p>"
	defs := []domain.TagDefinition{
		{Token: "@razao_social", EntityKind: domain.EntityCompany, FieldPath: "razao_social", Active: true},
		{Token: "@nome_candidato", EntityKind: domain.EntityCandidate, FieldPath: "nome_completo", Active: true},
	}
	ctx := domain.DataContext{
		domain.EntityCompany:   {"razao_social": ""},
		domain.EntityCandidate: {"nome_completo": "MARIA DA SILVA"},
	}

	out := Substitute(raw, Extract(raw), defs, ctx)
	want := "<p>" + format.Sentinel + " / MARIA DA SILVA</p>"
	if out != want {
		t.Fatalf("got %q want %q", out, want)
	}
}

func TestSubstituteLeavesUnknownTokens(t *testing.T) {
	raw := "<p>@tag_sem_definicao</p>"
	out := Substitute(raw, Extract(raw), nil, domain.DataContext{})
	if out != raw {
		t.Fatalf("unknown tokens must stay untouched: %q", out)
	}
}

func TestSubstituteSkipsInactiveDefinitions(t *testing.T) {
	raw := "<p>@razao_social</p>"
	defs := []domain.TagDefinition{
		{Token: "@razao_social", EntityKind: domain.EntityCompany, FieldPath: "razao_social", Active: false},
	}
	ctx := domain.DataContext{domain.EntityCompany: {"razao_social": "ACME"}}

	if out := Substitute(raw, Extract(raw), defs, ctx); out != raw {
		t.Fatalf("inactive definition must not substitute: %q", out)
	}
}

func TestSubstituteSkipsUnresolvedEntities(t *testing.T) {
	raw := "<p>@nome_supervisor</p>"
	defs := []domain.TagDefinition{
		{Token: "@nome_supervisor", EntityKind: domain.EntitySupervisor, FieldPath: "nome", Active: true},
	}

	if out := Substitute(raw, Extract(raw), defs, domain.DataContext{}); out != raw {
		t.Fatalf("unresolved entity must leave the token: %q", out)
	}
}

func TestSubstituteLongestTokenWins(t *testing.T) {
	raw := "<p>@data_inicio_fase_basica / @data_inicio</p>"
	defs := []domain.TagDefinition{
		{Token: "@data_inicio", EntityKind: domain.EntitySystem, FieldPath: "data_inicio", Active: true},
		{Token: "@data_inicio_fase_basica", EntityKind: domain.EntitySystem, FieldPath: "data_inicio_fase_basica", Active: true},
	}
	ctx := domain.DataContext{
		domain.EntitySystem: {
			"data_inicio":             "01/02/2024",
			"data_inicio_fase_basica": "15/03/2024",
		},
	}

	out := Substitute(raw, Extract(raw), defs, ctx)
	want := "<p>15/03/2024 / 01/02/2024</p>"
	if out != want {
		t.Fatalf("prefix token clobbered the longer one: %q", out)
	}
}

func TestSubstituteNeverRescansSubstitutedValues(t *testing.T) {
	// The e-mail value contains @empresa, which is itself a catalog
	// token; a replacement pass that rescans it would mangle the
	// address.
	raw := "<p>@empresa_email / @empresa</p>"
	defs := []domain.TagDefinition{
		{Token: "@empresa_email", EntityKind: domain.EntityCompany, FieldPath: "email", Active: true},
		{Token: "@empresa", EntityKind: domain.EntityCompany, FieldPath: "razao_social", Active: true},
	}
	ctx := domain.DataContext{
		domain.EntityCompany: {
			"email":        "contato@empresa.com",
			"razao_social": "ACME LTDA",
		},
	}

	out := Substitute(raw, Extract(raw), defs, ctx)
	want := "<p>contato@empresa.com / ACME LTDA</p>"
	if out != want {
		t.Fatalf("substituted value was rewritten by a later token: %q", out)
	}
}
