package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/nanpeixoto/acervus/internal/domain"
)

var tracer = otel.Tracer("usecase")

// EventChannel is the signal bus channel for one chain.
func EventChannel(originID uint) string {
	return fmt.Sprintf("contract:%d", originID)
}

type ContractUsecase struct {
	repo   ContractRepository
	signal SignalPublisher
}

func NewContractUsecase(repo ContractRepository, signal SignalPublisher) *ContractUsecase {
	return &ContractUsecase{repo: repo, signal: signal}
}

// CreateBase validates the required references of a new base contract
// and inserts it with sequence 0.
func (uc *ContractUsecase) CreateBase(ctx context.Context, c domain.Contract) (uint, error) {
	ctx, span := tracer.Start(ctx, "Contract.Usecase.CreateBase")
	defer span.End()

	if err := validateBase(c); err != nil {
		span.RecordError(err)
		return 0, err
	}

	c.IsAmendment = false
	c.OriginID = nil
	c.Sequence = 0
	c.Status = domain.StatusActive

	id, err := uc.repo.CreateBase(ctx, c)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}

	uc.emit(ctx, domain.Event{
		Type:       domain.EventContractCreated,
		ContractID: id,
		Timestamp:  time.Now(),
	}, id)

	return id, nil
}

func validateBase(c domain.Contract) error {
	switch {
	case c.CompanyID == 0:
		return domain.ValidationError{Reference: "companyId", Reason: "required"}
	case c.InstitutionID == 0:
		return domain.ValidationError{Reference: "institutionId", Reason: "required"}
	case c.CandidateID == 0:
		return domain.ValidationError{Reference: "candidateId", Reason: "required"}
	case c.PaymentPlanID == 0:
		return domain.ValidationError{Reference: "paymentPlanId", Reason: "required"}
	case c.DocumentModelID == 0:
		return domain.ValidationError{Reference: "documentModelId", Reason: "required"}
	case c.ValidityStart.IsZero() || c.ValidityEnd.IsZero():
		return domain.ValidationError{Reference: "validity", Reason: "start and end are required"}
	case c.ValidityEnd.Before(c.ValidityStart):
		return domain.ValidationError{Reference: "validity", Reason: "end precedes start"}
	}

	// Apprenticeship contracts are tied to a course and a cohort of
	// that course; internship contracts are not.
	if c.Kind == domain.KindApprenticeship {
		if c.CourseID == nil {
			return domain.ValidationError{Reference: "courseId", Reason: "required for apprenticeship"}
		}
		if c.CohortID == nil {
			return domain.ValidationError{Reference: "cohortId", Reason: "required for apprenticeship"}
		}
	}

	w := domain.ValidityWindow{Start: c.ValidityStart, End: c.ValidityEnd}
	if w.Exceeds() {
		return domain.NewValidityExceeded(w)
	}

	return nil
}

// CreateAmendment appends an amendment to the chain of originID. The
// repository assigns the sequence number under lock and enforces the
// cumulative validity cap atomically with the insert.
func (uc *ContractUsecase) CreateAmendment(ctx context.Context, originID uint, patch domain.ContractPatch) (uint, int, error) {
	ctx, span := tracer.Start(ctx, "Contract.Usecase.CreateAmendment")
	defer span.End()

	if len(patch.ItemFlags) == 0 {
		err := domain.ValidationError{Reference: "itemFlags", Reason: "an amendment must declare at least one item"}
		span.RecordError(err)
		return 0, 0, err
	}

	id, sequence, err := uc.repo.CreateAmendment(ctx, originID, patch)
	if err != nil {
		span.RecordError(err)
		return 0, 0, err
	}

	uc.emit(ctx, domain.Event{
		Type:       domain.EventAmendmentCreated,
		ContractID: id,
		OriginID:   &originID,
		Sequence:   sequence,
		Timestamp:  time.Now(),
	}, originID)

	return id, sequence, nil
}

// Update applies changed fields to an existing contract, rechecking
// the chain validity window whenever validity is touched and
// rebuilding schedule rows whenever the schedule is touched.
func (uc *ContractUsecase) Update(ctx context.Context, id uint, patch domain.ContractPatch) error {
	ctx, span := tracer.Start(ctx, "Contract.Usecase.Update")
	defer span.End()

	if err := uc.repo.Update(ctx, id, patch); err != nil {
		span.RecordError(err)
		return err
	}

	uc.emit(ctx, domain.Event{
		Type:       domain.EventContractUpdated,
		ContractID: id,
		Timestamp:  time.Now(),
	}, id)

	return nil
}

// Terminate moves a contract to its terminal Terminated state.
func (uc *ContractUsecase) Terminate(ctx context.Context, id uint, date time.Time) error {
	ctx, span := tracer.Start(ctx, "Contract.Usecase.Terminate")
	defer span.End()

	if err := uc.repo.SetStatus(ctx, id, domain.StatusTerminated, &date); err != nil {
		span.RecordError(err)
		return err
	}

	uc.emit(ctx, domain.Event{
		Type:       domain.EventContractTerminated,
		ContractID: id,
		Timestamp:  time.Now(),
	}, id)

	return nil
}

// Cancel moves a contract to its terminal Cancelled state.
func (uc *ContractUsecase) Cancel(ctx context.Context, id uint) error {
	ctx, span := tracer.Start(ctx, "Contract.Usecase.Cancel")
	defer span.End()

	if err := uc.repo.SetStatus(ctx, id, domain.StatusCancelled, nil); err != nil {
		span.RecordError(err)
		return err
	}

	uc.emit(ctx, domain.Event{
		Type:       domain.EventContractCancelled,
		ContractID: id,
		Timestamp:  time.Now(),
	}, id)

	return nil
}

// Get returns one contract.
func (uc *ContractUsecase) Get(ctx context.Context, id uint) (domain.Contract, error) {
	return uc.repo.Get(ctx, id)
}

// GetChain returns the base contract and its amendments ordered by
// sequence.
func (uc *ContractUsecase) GetChain(ctx context.Context, originID uint) ([]domain.Contract, error) {
	return uc.repo.GetChain(ctx, originID)
}

func (uc *ContractUsecase) emit(ctx context.Context, event domain.Event, chainID uint) {
	if uc.signal == nil {
		return
	}
	if err := uc.signal.Publish(ctx, EventChannel(chainID), event); err != nil {
		slog.ErrorContext(
			ctx, "failed to publish contract event",
			slog.String("error", err.Error()),
			slog.String("module", "contract"),
		)
	}
}
