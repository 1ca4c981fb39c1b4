package domain

import "time"

// ContractPatch carries the changed fields of an amendment or update.
// Nil means the field was not touched. Schedule distinguishes nil
// (untouched) from an empty slice (clear all rows).
type ContractPatch struct {
	CompanyID       *uint `json:"companyId,omitempty"`
	InstitutionID   *uint `json:"institutionId,omitempty"`
	CandidateID     *uint `json:"candidateId,omitempty"`
	SupervisorID    *uint `json:"supervisorId,omitempty"`
	SectorID        *uint `json:"sectorId,omitempty"`
	CourseID        *uint `json:"courseId,omitempty"`
	CohortID        *uint `json:"cohortId,omitempty"`
	PaymentPlanID   *uint `json:"paymentPlanId,omitempty"`
	DocumentModelID *uint `json:"documentModelId,omitempty"`

	ValidityStart *time.Time `json:"validityStart,omitempty"`
	ValidityEnd   *time.Time `json:"validityEnd,omitempty"`

	PayAmount    *float64         `json:"payAmount,omitempty"`
	ScheduleKind *ScheduleKind    `json:"scheduleKind,omitempty"`
	Schedule     *[]ScheduleEntry `json:"schedule,omitempty"`

	ItemFlags []string `json:"itemFlags,omitempty"`
}

// TouchesValidity reports whether the patch requires the chain-wide
// validity recheck: either an explicit date change or the validity
// item flag.
func (p ContractPatch) TouchesValidity() bool {
	if p.ValidityStart != nil || p.ValidityEnd != nil {
		return true
	}
	for _, f := range p.ItemFlags {
		if f == ItemValidity || f == ItemAll {
			return true
		}
	}
	return false
}

// TouchesSchedule reports whether schedule rows must be rebuilt.
func (p ContractPatch) TouchesSchedule() bool {
	return p.ScheduleKind != nil || p.Schedule != nil
}

// GeneratedDocument is the stored result of one document generation.
type GeneratedDocument struct {
	ID         string    `json:"id"`
	ContractID *uint     `json:"contractId,omitempty"`
	TemplateID uint      `json:"templateId"`
	Markup     string    `json:"markup"`
	CreatedAt  time.Time `json:"createdAt"`
}
