package usecase

import (
	"context"
	"time"

	"github.com/nanpeixoto/acervus/internal/domain"
)

// ContractRepository defines the transactional storage operations of
// the amendment chain. Implementations must run each mutate inside one
// atomic unit of work: the validity check and the row insert/update
// commit or fail together, and amendment sequence numbers are assigned
// under a lock on the chain.
type ContractRepository interface {
	CreateBase(ctx context.Context, c domain.Contract) (uint, error)
	CreateAmendment(ctx context.Context, originID uint, patch domain.ContractPatch) (uint, int, error)
	Update(ctx context.Context, id uint, patch domain.ContractPatch) error
	SetStatus(ctx context.Context, id uint, status domain.ContractStatus, when *time.Time) error
	Get(ctx context.Context, id uint) (domain.Contract, error)
	GetChain(ctx context.Context, originID uint) ([]domain.Contract, error)
	SaveRenderedMarkup(ctx context.Context, id uint, markup string) error
}

// EntityProvider reads one normalized field snapshot per entity.
type EntityProvider interface {
	Snapshot(ctx context.Context, kind domain.EntityKind, id uint) (domain.Snapshot, error)
}

// TagCatalog loads the active token definitions. The catalog is
// administered externally; implementations may cache one generation
// but must expose a fresh load per refresh boundary.
type TagCatalog interface {
	Load(ctx context.Context) ([]domain.TagDefinition, error)
}

// TemplateRepository reads document templates.
type TemplateRepository interface {
	Get(ctx context.Context, id uint) (domain.DocumentTemplate, error)
}

// DocumentStore persists generation results.
type DocumentStore interface {
	SaveGenerated(ctx context.Context, doc domain.GeneratedDocument) error
}

// RendererGateway turns final markup into a binary document via the
// external headless-rendering service. Calls are timeout-bounded and
// independent of any data-store transaction.
type RendererGateway interface {
	Render(ctx context.Context, markup string) ([]byte, error)
}

// SignalPublisher broadcasts chain lifecycle events.
type SignalPublisher interface {
	Publish(ctx context.Context, channel string, event domain.Event) error
}
