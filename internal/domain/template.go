package domain

// TemplateClassification tells the resolver how to interpret a
// generation target.
type TemplateClassification string

const (
	// ClassContractIndirect templates address a contract; entity ids are
	// taken from the contract's references.
	ClassContractIndirect TemplateClassification = "contract-indirect"
	// ClassDirect templates address one record straight by its id; every
	// entity kind resolves to that same id.
	ClassDirect TemplateClassification = "direct"
)

// DocumentTemplate is raw HTML markup administered outside the core and
// loaded read-only.
type DocumentTemplate struct {
	ID             uint                   `json:"id"`
	Name           string                 `json:"name"`
	Classification TemplateClassification `json:"classification"`
	Markup         string                 `json:"markup"`
}

// TagDefinition maps one symbolic token to an entity field. Only active
// definitions take part in substitution.
type TagDefinition struct {
	Token      string     `json:"token"`
	EntityKind EntityKind `json:"entityKind"`
	FieldPath  string     `json:"fieldPath"`
	Active     bool       `json:"active"`
}
