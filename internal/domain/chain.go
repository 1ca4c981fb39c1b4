package domain

// CheckChainValidity enforces the cumulative validity cap for a
// candidate amendment or update against the already-loaded chain. It
// only fires when the patch touches validity; the window is computed
// over the active rows of the chain widened by the candidate dates.
func CheckChainValidity(chain []Contract, patch ContractPatch) error {
	if !patch.TouchesValidity() {
		return nil
	}
	w := ChainWindow(chain, patch.ValidityStart, patch.ValidityEnd)
	if w.Exceeds() {
		return NewValidityExceeded(w)
	}
	return nil
}

// BuildAmendment materializes the stored row of a new amendment. The
// mandatory references default to the origin's values unless the patch
// overrides them. Supervisor and sector deliberately stay null when
// unset: inheritance from the origin is resolved at read time, never
// written back (invariant I3).
func BuildAmendment(origin Contract, patch ContractPatch) Contract {
	a := Contract{
		Kind:        origin.Kind,
		IsAmendment: true,
		OriginID:    &origin.ID,
		Status:      StatusActive,

		CompanyID:       origin.CompanyID,
		InstitutionID:   origin.InstitutionID,
		CandidateID:     origin.CandidateID,
		PaymentPlanID:   origin.PaymentPlanID,
		DocumentModelID: origin.DocumentModelID,
		CourseID:        origin.CourseID,
		CohortID:        origin.CohortID,

		ValidityStart: origin.ValidityStart,
		ValidityEnd:   origin.ValidityEnd,

		PayAmount:    origin.PayAmount,
		ScheduleKind: origin.ScheduleKind,

		ItemFlags: patch.ItemFlags,

		SupervisorID: patch.SupervisorID,
		SectorID:     patch.SectorID,
	}

	if patch.CompanyID != nil {
		a.CompanyID = *patch.CompanyID
	}
	if patch.InstitutionID != nil {
		a.InstitutionID = *patch.InstitutionID
	}
	if patch.CandidateID != nil {
		a.CandidateID = *patch.CandidateID
	}
	if patch.PaymentPlanID != nil {
		a.PaymentPlanID = *patch.PaymentPlanID
	}
	if patch.DocumentModelID != nil {
		a.DocumentModelID = *patch.DocumentModelID
	}
	if patch.CourseID != nil {
		a.CourseID = patch.CourseID
	}
	if patch.CohortID != nil {
		a.CohortID = patch.CohortID
	}
	if patch.ValidityStart != nil {
		a.ValidityStart = *patch.ValidityStart
	}
	if patch.ValidityEnd != nil {
		a.ValidityEnd = *patch.ValidityEnd
	}
	if patch.PayAmount != nil {
		a.PayAmount = patch.PayAmount
	}
	if patch.ScheduleKind != nil {
		a.ScheduleKind = *patch.ScheduleKind
	}

	// A fixed-weekly amendment without an explicit payload carries the
	// origin's schedule rows verbatim.
	if patch.Schedule != nil {
		a.Schedule = append([]ScheduleEntry(nil), (*patch.Schedule)...)
	} else if a.ScheduleKind == ScheduleFixedWeekly {
		a.Schedule = append([]ScheduleEntry(nil), origin.Schedule...)
	}

	return a
}
