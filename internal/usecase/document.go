package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/nanpeixoto/acervus/internal/domain"
	"github.com/nanpeixoto/acervus/internal/format"
	"github.com/nanpeixoto/acervus/internal/template"
)

// GenerateTarget addresses a document generation request: a contract
// for contract-indirect templates, a plain entity id for direct ones.
type GenerateTarget struct {
	ContractID *uint `json:"contractId,omitempty"`
	EntityID   *uint `json:"entityId,omitempty"`
}

type DocumentUsecase struct {
	contracts ContractRepository
	templates TemplateRepository
	catalog   TagCatalog
	entities  EntityProvider
	store     DocumentStore
	renderer  RendererGateway
	now       func() time.Time
}

func NewDocumentUsecase(
	contracts ContractRepository,
	templates TemplateRepository,
	catalog TagCatalog,
	entities EntityProvider,
	store DocumentStore,
	renderer RendererGateway,
) *DocumentUsecase {
	return &DocumentUsecase{
		contracts: contracts,
		templates: templates,
		catalog:   catalog,
		entities:  entities,
		store:     store,
		renderer:  renderer,
		now:       time.Now,
	}
}

// Generate runs the full pipeline for one document: load template and
// catalog, extract tokens, resolve the entities the tokens reference,
// assemble the data context, substitute and post-process. Generation
// is best-effort: tokens without an active definition or a resolvable
// entity stay in place.
func (uc *DocumentUsecase) Generate(ctx context.Context, target GenerateTarget, templateID uint) (string, error) {
	ctx, span := tracer.Start(ctx, "Document.Usecase.Generate")
	defer span.End()

	tpl, err := uc.templates.Get(ctx, templateID)
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	defs, err := uc.catalog.Load(ctx)
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	tokens := template.Extract(tpl.Markup)

	ids, contract, err := uc.resolve(ctx, tpl, target, tokens, defs)
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	data := uc.assemble(ctx, ids)

	markup := template.Substitute(tpl.Markup, tokens, defs, data)
	markup = template.PostProcess(markup)

	doc := domain.GeneratedDocument{
		ID:         uuid.New().String(),
		TemplateID: templateID,
		Markup:     markup,
		CreatedAt:  uc.now(),
	}
	if contract != nil {
		doc.ContractID = &contract.ID
		if err := uc.contracts.SaveRenderedMarkup(ctx, contract.ID, markup); err != nil {
			span.RecordError(err)
			return "", err
		}
	}
	if uc.store != nil {
		if err := uc.store.SaveGenerated(ctx, doc); err != nil {
			span.RecordError(err)
			return "", err
		}
	}

	return markup, nil
}

// Render hands final markup to the external rendering service. A
// failure here is fatal to this request only and never touches
// contract data.
func (uc *DocumentUsecase) Render(ctx context.Context, markup string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "Document.Usecase.Render")
	defer span.End()

	out, err := uc.renderer.Render(ctx, markup)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, domain.ErrRender) {
			return nil, err
		}
		return nil, domain.RenderError{Cause: err}
	}
	return out, nil
}

// resolve maps each entity kind referenced by the extracted tokens to
// a concrete record id.
func (uc *DocumentUsecase) resolve(
	ctx context.Context,
	tpl domain.DocumentTemplate,
	target GenerateTarget,
	tokens []string,
	defs []domain.TagDefinition,
) (map[domain.EntityKind]uint, *domain.Contract, error) {

	kinds := referencedKinds(tokens, defs)
	ids := make(map[domain.EntityKind]uint, len(kinds))

	if tpl.Classification == domain.ClassDirect {
		if target.EntityID == nil {
			return nil, nil, domain.ValidationError{Reference: "entityId", Reason: "required for direct templates"}
		}
		for kind := range kinds {
			if kind == domain.EntitySystem {
				continue
			}
			ids[kind] = *target.EntityID
		}
		return ids, nil, nil
	}

	if target.ContractID == nil {
		return nil, nil, domain.ValidationError{Reference: "contractId", Reason: "required for contract templates"}
	}

	contract, err := uc.contracts.Get(ctx, *target.ContractID)
	if err != nil {
		return nil, nil, err
	}

	var origin *domain.Contract
	if contract.IsAmendment && contract.OriginID != nil {
		o, err := uc.contracts.Get(ctx, *contract.OriginID)
		if err != nil {
			return nil, nil, err
		}
		origin = &o
	}

	for kind := range kinds {
		switch kind {
		case domain.EntityCompany:
			ids[kind] = contract.CompanyID
		case domain.EntityInstitution:
			ids[kind] = contract.InstitutionID
		case domain.EntityCandidate:
			ids[kind] = contract.CandidateID
		case domain.EntitySupervisor:
			if id := contract.ResolveSupervisorID(origin); id != nil {
				ids[kind] = *id
			}
		case domain.EntitySector:
			if id := contract.ResolveSectorID(origin); id != nil {
				ids[kind] = *id
			}
		case domain.EntityContract:
			ids[kind] = contract.ID
		case domain.EntitySystem:
			// synthesized in assemble, no id needed
		}
	}

	return ids, &contract, nil
}

// assemble fetches one snapshot per resolved entity and merges them
// into the substitution context. A snapshot that cannot be fetched
// drops its kind from the context; its tokens stay untouched.
func (uc *DocumentUsecase) assemble(ctx context.Context, ids map[domain.EntityKind]uint) domain.DataContext {
	data := domain.DataContext{
		domain.EntitySystem: uc.systemSnapshot(),
	}

	for kind, id := range ids {
		snapshot, err := uc.entities.Snapshot(ctx, kind, id)
		if err != nil {
			slog.WarnContext(
				ctx, "entity snapshot unavailable",
				slog.String("kind", string(kind)),
				slog.String("error", err.Error()),
				slog.String("module", "document"),
			)
			continue
		}
		data[kind] = snapshot
	}

	return data
}

func (uc *DocumentUsecase) systemSnapshot() domain.Snapshot {
	now := uc.now()
	return domain.Snapshot{
		"dia":        fmt.Sprintf("%02d", now.Day()),
		"mes":        format.MonthName(now.Month()),
		"ano":        strconv.Itoa(now.Year()),
		"data_atual": format.Date(now),
	}
}

func referencedKinds(tokens []string, defs []domain.TagDefinition) map[domain.EntityKind]bool {
	byToken := make(map[string]domain.TagDefinition, len(defs))
	for _, d := range defs {
		if d.Active {
			byToken[d.Token] = d
		}
	}

	kinds := map[domain.EntityKind]bool{}
	for _, tok := range tokens {
		if d, ok := byToken[tok]; ok {
			kinds[d.EntityKind] = true
		}
	}
	return kinds
}
