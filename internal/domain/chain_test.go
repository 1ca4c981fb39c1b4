package domain

import (
	"errors"
	"testing"
	"time"
)

func baseContract() Contract {
	return Contract{
		ID:              1,
		Kind:            KindInternship,
		Status:          StatusActive,
		CompanyID:       10,
		InstitutionID:   20,
		CandidateID:     30,
		PaymentPlanID:   40,
		DocumentModelID: 50,
		ValidityStart:   date(2024, 1, 1),
		ValidityEnd:     date(2024, 6, 1),
		ScheduleKind:    ScheduleFixedWeekly,
		Schedule: []ScheduleEntry{
			{Weekday: time.Monday, StartTime: "08:00", EndTime: "12:00"},
		},
	}
}

func TestCheckChainValidityAcceptsWithinCap(t *testing.T) {
	base := baseContract()
	end := date(2025, 12, 31)
	patch := ContractPatch{ValidityEnd: &end, ItemFlags: []string{ItemValidity}}

	if err := CheckChainValidity([]Contract{base}, patch); err != nil {
		t.Fatalf("expected acceptance, got %v", err)
	}
}

func TestCheckChainValidityRejectsPastCap(t *testing.T) {
	base := baseContract()
	end := date(2026, 1, 15)
	patch := ContractPatch{ValidityEnd: &end, ItemFlags: []string{ItemValidity}}

	err := CheckChainValidity([]Contract{base}, patch)
	var ve ValidityExceededError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidityExceededError got %v", err)
	}
	if ve.TotalMonths < 24 {
		t.Fatalf("expected at least 24 months got %d", ve.TotalMonths)
	}
	if !ve.ChainStart.Equal(date(2024, 1, 1)) {
		t.Fatalf("chain start must come from the existing rows: %v", ve.ChainStart)
	}
}

func TestCheckChainValiditySkippedWhenUntouched(t *testing.T) {
	base := baseContract()
	base.ValidityEnd = date(2030, 1, 1) // already past cap; untouched patches don't recheck

	patch := ContractPatch{ItemFlags: []string{ItemPay}}
	if err := CheckChainValidity([]Contract{base}, patch); err != nil {
		t.Fatalf("patch without validity must skip the check, got %v", err)
	}
}

func TestBuildAmendmentInheritsMandatoryReferences(t *testing.T) {
	origin := baseContract()
	a := BuildAmendment(origin, ContractPatch{ItemFlags: []string{ItemPay}})

	if !a.IsAmendment || a.OriginID == nil || *a.OriginID != origin.ID {
		t.Fatalf("amendment must point at its origin")
	}
	if a.CompanyID != origin.CompanyID || a.CandidateID != origin.CandidateID {
		t.Fatalf("mandatory references must default to the origin's")
	}
	if a.SupervisorID != nil || a.SectorID != nil {
		t.Fatalf("unset supervisor/sector must stay null, not materialize the origin's")
	}
}

func TestBuildAmendmentCopiesFixedWeeklySchedule(t *testing.T) {
	origin := baseContract()
	a := BuildAmendment(origin, ContractPatch{ItemFlags: []string{ItemSchedule}})

	if len(a.Schedule) != len(origin.Schedule) {
		t.Fatalf("fixed-weekly amendment without payload must copy origin rows")
	}

	explicit := []ScheduleEntry{
		{Weekday: time.Friday, StartTime: "14:00", EndTime: "18:00"},
	}
	b := BuildAmendment(origin, ContractPatch{Schedule: &explicit, ItemFlags: []string{ItemSchedule}})
	if len(b.Schedule) != 1 || b.Schedule[0].Weekday != time.Friday {
		t.Fatalf("explicit payload must be persisted as given")
	}

	empty := []ScheduleEntry{}
	c := BuildAmendment(origin, ContractPatch{Schedule: &empty, ItemFlags: []string{ItemSchedule}})
	if len(c.Schedule) != 0 {
		t.Fatalf("explicit empty payload means zero rows")
	}
}

func TestBuildAmendmentOverrides(t *testing.T) {
	origin := baseContract()
	sup := uint(77)
	pay := 950.0
	end := date(2025, 1, 1)
	patch := ContractPatch{
		SupervisorID: &sup,
		PayAmount:    &pay,
		ValidityEnd:  &end,
		ItemFlags:    []string{ItemSupervisor, ItemPay, ItemValidity},
	}

	a := BuildAmendment(origin, patch)
	if a.SupervisorID == nil || *a.SupervisorID != sup {
		t.Fatalf("patch supervisor must be stored")
	}
	if a.PayAmount == nil || *a.PayAmount != pay {
		t.Fatalf("patch pay must be stored")
	}
	if !a.ValidityEnd.Equal(end) {
		t.Fatalf("patch validity end must be stored")
	}
	if !a.ValidityStart.Equal(origin.ValidityStart) {
		t.Fatalf("untouched validity start defaults to the origin's")
	}
}
