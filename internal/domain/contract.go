package domain

import "time"

// ContractKind distinguishes the two contract families managed by the
// institution. They share the amendment mechanics but carry different
// required references and amendment flags.
type ContractKind string

const (
	KindInternship     ContractKind = "internship"
	KindApprenticeship ContractKind = "apprenticeship"
)

// ContractStatus is the lifecycle state. Terminated and Cancelled are
// terminal; there is no transition back to Active.
type ContractStatus string

const (
	StatusActive     ContractStatus = "active"
	StatusTerminated ContractStatus = "terminated"
	StatusCancelled  ContractStatus = "cancelled"
)

// ScheduleKind selects how working hours are recorded for a contract.
type ScheduleKind string

const (
	ScheduleFixedWeekly ScheduleKind = "fixed-weekly"
	ScheduleFlexible    ScheduleKind = "flexible"
)

// Amendment item flags. An amendment records which clauses of the base
// contract it touches; the flags drive both validation and the wording
// of the generated addendum.
const (
	ItemActivities  = "activities"
	ItemBenefits    = "benefits"
	ItemBankAccount = "bank-account"
	ItemSchedule    = "schedule"
	ItemLocation    = "location"
	ItemModality    = "modality"
	ItemRecesses    = "recesses"
	ItemPay         = "pay"
	ItemInsurer     = "insurer"
	ItemSupervisor  = "supervisor"
	ItemSector      = "sector"
	ItemPregnancy   = "pregnancy"
	ItemTaxIDChange = "tax-id-change"
	ItemValidity    = "validity"
	ItemAll         = "all"
)

// Contract is a base contract (Sequence 0, no origin) or an amendment
// chained to a base contract. Amendments are append-only: Sequence and
// OriginID never change after creation.
type Contract struct {
	ID          uint           `json:"id"`
	Kind        ContractKind   `json:"kind"`
	IsAmendment bool           `json:"isAmendment"`
	OriginID    *uint          `json:"originId,omitempty"`
	Sequence    int            `json:"sequence"`
	Status      ContractStatus `json:"status"`

	CompanyID       uint  `json:"companyId"`
	InstitutionID   uint  `json:"institutionId"`
	CandidateID     uint  `json:"candidateId"`
	SupervisorID    *uint `json:"supervisorId,omitempty"`
	SectorID        *uint `json:"sectorId,omitempty"`
	CourseID        *uint `json:"courseId,omitempty"`
	CohortID        *uint `json:"cohortId,omitempty"`
	PaymentPlanID   uint  `json:"paymentPlanId"`
	DocumentModelID uint  `json:"documentModelId"`

	ValidityStart   time.Time  `json:"validityStart"`
	ValidityEnd     time.Time  `json:"validityEnd"`
	TerminationDate *time.Time `json:"terminationDate,omitempty"`

	PayAmount    *float64     `json:"payAmount,omitempty"`
	ScheduleKind ScheduleKind `json:"scheduleKind"`
	Schedule     []ScheduleEntry `json:"schedule,omitempty"`

	ItemFlags []string `json:"itemFlags,omitempty"`

	RenderedMarkup string `json:"renderedMarkup,omitempty"`
}

// ScheduleEntry is one weekly working-hours row of a fixed-weekly
// schedule contract.
type ScheduleEntry struct {
	Weekday   time.Weekday `json:"weekday"`
	StartTime string       `json:"startTime"` // HH:MM
	EndTime   string       `json:"endTime"`   // HH:MM
}

// HasFlag reports whether the amendment declares the given item flag.
// The "all" flag implies every other item.
func (c *Contract) HasFlag(flag string) bool {
	for _, f := range c.ItemFlags {
		if f == flag || f == ItemAll {
			return true
		}
	}
	return false
}

// ResolveSupervisorID returns the contract's own supervisor when set;
// for an amendment with no supervisor of its own, the origin contract's
// supervisor applies. Inheritance is a single-level walk: amendments
// always point at the base contract, never at another amendment.
func (c *Contract) ResolveSupervisorID(origin *Contract) *uint {
	if c.SupervisorID != nil {
		return c.SupervisorID
	}
	if c.IsAmendment && origin != nil {
		return origin.SupervisorID
	}
	return nil
}

// ResolveSectorID mirrors ResolveSupervisorID for the sector reference.
func (c *Contract) ResolveSectorID(origin *Contract) *uint {
	if c.SectorID != nil {
		return c.SectorID
	}
	if c.IsAmendment && origin != nil {
		return origin.SectorID
	}
	return nil
}

// Event is published on the signal bus when a chain changes.
type Event struct {
	Type       string    `json:"type"`
	ContractID uint      `json:"contractId"`
	OriginID   *uint     `json:"originId,omitempty"`
	Sequence   int       `json:"sequence"`
	Timestamp  time.Time `json:"timestamp"`
}

const (
	EventContractCreated    = "contract.created"
	EventAmendmentCreated   = "amendment.created"
	EventContractUpdated    = "contract.updated"
	EventContractTerminated = "contract.terminated"
	EventContractCancelled  = "contract.cancelled"
)
