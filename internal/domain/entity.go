package domain

// EntityKind names the record families a document template can draw
// fields from. The system kind is synthetic and carries the current
// date; it never resolves to a stored record.
type EntityKind string

const (
	EntityCompany     EntityKind = "empresa"
	EntityInstitution EntityKind = "instituicao"
	EntityCandidate   EntityKind = "candidato"
	EntitySupervisor  EntityKind = "supervisor"
	EntitySector      EntityKind = "setor"
	EntityContract    EntityKind = "contrato"
	EntitySystem      EntityKind = "sistema"
)

// Snapshot is the normalized, display-formatted projection of one
// entity's fields: text upper-cased, dates as dd/mm/yyyy, currency with
// two decimals, plus derived presentation fields.
type Snapshot map[string]string

// DataContext is the merged substitution context for one document,
// keyed by entity kind name.
type DataContext map[EntityKind]Snapshot
