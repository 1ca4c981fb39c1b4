package models

import (
	"time"

	"github.com/lib/pq"
)

// Contract is a base contract or an amendment. The (origin_id,
// sequence) pair is unique so two amendments can never share a number
// within one chain.
type Contract struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Kind        string `json:"kind" gorm:"type:text;not null"`
	IsAmendment bool   `json:"isAmendment" gorm:"not null;default:false"`
	OriginID    *uint  `json:"originId" gorm:"uniqueIndex:idx_chain_sequence"`
	Origin      *Contract
	Sequence    int    `json:"sequence" gorm:"not null;default:0;uniqueIndex:idx_chain_sequence"`
	Status      string `json:"status" gorm:"type:text;not null;default:'active';index"`

	CompanyID       uint  `json:"companyId" gorm:"not null;index"`
	InstitutionID   uint  `json:"institutionId" gorm:"not null"`
	CandidateID     uint  `json:"candidateId" gorm:"not null;index"`
	SupervisorID    *uint `json:"supervisorId"`
	SectorID        *uint `json:"sectorId"`
	CourseID        *uint `json:"courseId"`
	CohortID        *uint `json:"cohortId"`
	PaymentPlanID   uint  `json:"paymentPlanId" gorm:"not null"`
	DocumentModelID uint  `json:"documentModelId" gorm:"not null"`

	ValidityStart   time.Time  `json:"validityStart" gorm:"type:date;not null"`
	ValidityEnd     time.Time  `json:"validityEnd" gorm:"type:date;not null"`
	TerminationDate *time.Time `json:"terminationDate" gorm:"type:date"`

	PayAmount    *float64 `json:"payAmount"`
	ScheduleKind string   `json:"scheduleKind" gorm:"type:text"`

	ItemFlags pq.StringArray `json:"itemFlags" gorm:"type:text[]"`

	RenderedMarkup string `json:"renderedMarkup" gorm:"type:text"`

	CDate time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate time.Time `json:"mdate" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
}

// ScheduleRow is one weekly working-hours row of a fixed-weekly
// schedule contract. Rows are always rebuilt wholesale on update.
type ScheduleRow struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	ContractID uint     `json:"contractId" gorm:"not null;index"`
	Contract   Contract `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	Weekday    int      `json:"weekday" gorm:"not null"`
	StartTime  string   `json:"startTime" gorm:"type:text;not null"`
	EndTime    string   `json:"endTime" gorm:"type:text;not null"`
}

// GeneratedDocument stores the final markup of one generation run.
type GeneratedDocument struct {
	ID         string    `json:"id" gorm:"primaryKey;type:text"`
	ContractID *uint     `json:"contractId" gorm:"index"`
	TemplateID uint      `json:"templateId" gorm:"not null"`
	Markup     string    `json:"markup" gorm:"type:text"`
	CDate      time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}
