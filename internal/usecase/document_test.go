package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nanpeixoto/acervus/internal/domain"
	"github.com/nanpeixoto/acervus/internal/format"
)

type mockTemplates struct {
	templates map[uint]domain.DocumentTemplate
}

func (m *mockTemplates) Get(ctx context.Context, id uint) (domain.DocumentTemplate, error) {
	tpl, ok := m.templates[id]
	if !ok {
		return domain.DocumentTemplate{}, domain.NotFoundError{Resource: "template"}
	}
	return tpl, nil
}

type mockCatalog struct {
	defs []domain.TagDefinition
}

func (m *mockCatalog) Load(ctx context.Context) ([]domain.TagDefinition, error) {
	return m.defs, nil
}

type mockEntities struct {
	snapshots map[domain.EntityKind]map[uint]domain.Snapshot
	requested []domain.EntityKind
}

func (m *mockEntities) Snapshot(ctx context.Context, kind domain.EntityKind, id uint) (domain.Snapshot, error) {
	m.requested = append(m.requested, kind)
	s, ok := m.snapshots[kind][id]
	if !ok {
		return nil, domain.NotFoundError{Resource: string(kind)}
	}
	return s, nil
}

type mockStore struct {
	saved []domain.GeneratedDocument
}

func (m *mockStore) SaveGenerated(ctx context.Context, doc domain.GeneratedDocument) error {
	m.saved = append(m.saved, doc)
	return nil
}

type mockRenderer struct {
	out []byte
	err error
}

func (m *mockRenderer) Render(ctx context.Context, markup string) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.out, nil
}

func docFixture(t *testing.T) (*DocumentUsecase, *chainRepo, *mockEntities, *mockStore) {
	t.Helper()

	repo := newChainRepo()
	templates := &mockTemplates{templates: map[uint]domain.DocumentTemplate{
		1: {
			ID:             1,
			Classification: domain.ClassContractIndirect,
			Markup:         `<html><head></head><body>@razao_social firma com @nome_candidato.</body></html>`,
		},
		2: {
			ID:             2,
			Classification: domain.ClassDirect,
			Markup:         `<html><head></head><body>Declaração: @razao_social</body></html>`,
		},
	}}
	catalog := &mockCatalog{defs: []domain.TagDefinition{
		{Token: "@razao_social", EntityKind: domain.EntityCompany, FieldPath: "razao_social", Active: true},
		{Token: "@nome_candidato", EntityKind: domain.EntityCandidate, FieldPath: "nome_completo", Active: true},
		{Token: "@nome_supervisor", EntityKind: domain.EntitySupervisor, FieldPath: "nome", Active: true},
	}}
	entities := &mockEntities{snapshots: map[domain.EntityKind]map[uint]domain.Snapshot{
		domain.EntityCompany: {
			10: {"razao_social": "ACME LTDA"},
			77: {"razao_social": ""},
		},
		domain.EntityCandidate: {
			30: {"nome_completo": "MARIA DA SILVA"},
		},
		domain.EntitySupervisor: {
			5: {"nome": "JOÃO PEREIRA"},
		},
	}}
	store := &mockStore{}

	uc := NewDocumentUsecase(repo, templates, catalog, entities, store, &mockRenderer{out: []byte("pdf")})
	uc.now = func() time.Time { return date(2024, 3, 2) }
	return uc, repo, entities, store
}

func TestGenerateContractIndirect(t *testing.T) {
	uc, repo, _, store := docFixture(t)

	id, err := repo.CreateBase(context.Background(), validBase())
	if err != nil {
		t.Fatalf("seed contract: %v", err)
	}

	out, err := uc.Generate(context.Background(), GenerateTarget{ContractID: &id}, 1)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if strings.Contains(out, "@razao_social") || strings.Contains(out, "@nome_candidato") {
		t.Fatalf("resolved tokens must be substituted: %s", out)
	}
	if !strings.Contains(out, "ACME LTDA") || !strings.Contains(out, "MARIA DA SILVA") {
		t.Fatalf("expected entity values in output: %s", out)
	}
	if !strings.Contains(out, "acervus-print-styles") {
		t.Fatalf("presentation stylesheet missing")
	}

	c, _ := repo.Get(context.Background(), id)
	if c.RenderedMarkup != out {
		t.Fatalf("generated markup must be stored on the contract")
	}
	if len(store.saved) != 1 || store.saved[0].ID == "" {
		t.Fatalf("generated document must be persisted with an id")
	}
}

func TestGenerateNullFieldRendersSentinel(t *testing.T) {
	uc, repo, _, _ := docFixture(t)

	c := validBase()
	c.CompanyID = 77 // company whose name field is blank
	id, _ := repo.CreateBase(context.Background(), c)

	out, err := uc.Generate(context.Background(), GenerateTarget{ContractID: &id}, 1)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if !strings.Contains(out, format.Sentinel) {
		t.Fatalf("blank field must render the sentinel: %s", out)
	}
	if !strings.Contains(out, "MARIA DA SILVA") {
		t.Fatalf("other tokens must still resolve: %s", out)
	}
}

func TestGenerateDirectTemplate(t *testing.T) {
	uc, _, _, _ := docFixture(t)

	entityID := uint(10)
	out, err := uc.Generate(context.Background(), GenerateTarget{EntityID: &entityID}, 2)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !strings.Contains(out, "ACME LTDA") {
		t.Fatalf("direct template must resolve against the supplied id: %s", out)
	}
}

func TestGenerateDirectTemplateRequiresEntityID(t *testing.T) {
	uc, _, _, _ := docFixture(t)

	_, err := uc.Generate(context.Background(), GenerateTarget{}, 2)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ValidationError got %v", err)
	}
}

func TestGenerateAmendmentFallsBackToOriginSupervisor(t *testing.T) {
	uc, repo, _, _ := docFixture(t)

	base := validBase()
	sup := uint(5)
	base.SupervisorID = &sup
	originID, _ := repo.CreateBase(context.Background(), base)

	amendID, _, err := repo.CreateAmendment(context.Background(), originID, domain.ContractPatch{
		ItemFlags: []string{domain.ItemPay},
	})
	if err != nil {
		t.Fatalf("seed amendment: %v", err)
	}

	uc.templates.(*mockTemplates).templates[3] = domain.DocumentTemplate{
		ID:             3,
		Classification: domain.ClassContractIndirect,
		Markup:         `<html><head></head><body>@nome_supervisor</body></html>`,
	}

	out, err := uc.Generate(context.Background(), GenerateTarget{ContractID: &amendID}, 3)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !strings.Contains(out, "JOÃO PEREIRA") {
		t.Fatalf("amendment must inherit the origin's supervisor: %s", out)
	}
}

func TestGenerateUnresolvableSupervisorLeavesToken(t *testing.T) {
	uc, repo, _, _ := docFixture(t)

	id, _ := repo.CreateBase(context.Background(), validBase()) // no supervisor anywhere

	uc.templates.(*mockTemplates).templates[3] = domain.DocumentTemplate{
		ID:             3,
		Classification: domain.ClassContractIndirect,
		Markup:         `<html><head></head><body>@nome_supervisor</body></html>`,
	}

	out, err := uc.Generate(context.Background(), GenerateTarget{ContractID: &id}, 3)
	if err != nil {
		t.Fatalf("generation must stay best-effort: %v", err)
	}
	if !strings.Contains(out, "@nome_supervisor") {
		t.Fatalf("unresolvable token must be left untouched: %s", out)
	}
}

func TestGenerateUnknownTemplate(t *testing.T) {
	uc, repo, _, _ := docFixture(t)
	id, _ := repo.CreateBase(context.Background(), validBase())

	_, err := uc.Generate(context.Background(), GenerateTarget{ContractID: &id}, 99)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected NotFoundError got %v", err)
	}
}

func TestRenderFailureIsRenderError(t *testing.T) {
	repo := newChainRepo()
	uc := NewDocumentUsecase(repo, &mockTemplates{}, &mockCatalog{}, &mockEntities{}, &mockStore{},
		&mockRenderer{err: errors.New("renderer down")})

	_, err := uc.Render(context.Background(), "<html></html>")
	if !errors.Is(err, domain.ErrRender) {
		t.Fatalf("expected RenderError got %v", err)
	}
	if errors.Is(err, domain.ErrValidation) {
		t.Fatalf("render failures must be distinguishable from validation failures")
	}
}
