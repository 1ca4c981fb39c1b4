package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nanpeixoto/acervus/internal/domain"
	"github.com/nanpeixoto/acervus/internal/infrastructure/database/models"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

// CreateBase validates every referenced foreign key inside the same
// transaction as the insert.
func (r *ContractRepository) CreateBase(ctx context.Context, c domain.Contract) (uint, error) {
	var id uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkBaseReferences(tx, c); err != nil {
			return err
		}

		row := contractToModel(c)
		if err := tx.Create(&row).Error; err != nil {
			return translateError(err, "contract")
		}

		if err := insertScheduleRows(tx, row.ID, c.Schedule); err != nil {
			return err
		}

		id = row.ID
		return nil
	})
	return id, err
}

// CreateAmendment appends the next amendment of a chain. The origin
// row is locked for update first, which serializes concurrent
// amendment requests for the same chain and makes the max-sequence
// read collision-free. The validity check and the insert commit or
// fail together.
func (r *ContractRepository) CreateAmendment(ctx context.Context, originID uint, patch domain.ContractPatch) (uint, int, error) {
	var (
		id       uint
		sequence int
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var originRow models.Contract
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Take(&originRow, "id = ?", originID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NotFoundError{Resource: "origin contract"}
		}
		if err != nil {
			return err
		}
		if originRow.IsAmendment {
			return domain.ValidationError{Reference: "originId", Reason: "amendments chain to the base contract"}
		}

		if err := checkPatchReferences(tx, patch); err != nil {
			return err
		}

		chain, err := loadChain(tx, originID)
		if err != nil {
			return err
		}
		if err := domain.CheckChainValidity(chain, patch); err != nil {
			return err
		}

		var maxSeq int
		err = tx.Model(&models.Contract{}).
			Where("origin_id = ?", originID).
			Select("COALESCE(MAX(sequence), 0)").
			Scan(&maxSeq).Error
		if err != nil {
			return err
		}

		origin, err := r.contractFromRow(tx, originRow)
		if err != nil {
			return err
		}

		amendment := domain.BuildAmendment(origin, patch)
		amendment.Sequence = maxSeq + 1

		row := contractToModel(amendment)
		if err := tx.Create(&row).Error; err != nil {
			return translateError(err, "amendment")
		}

		if err := insertScheduleRows(tx, row.ID, amendment.Schedule); err != nil {
			return err
		}

		id = row.ID
		sequence = row.Sequence
		return nil
	})
	return id, sequence, err
}

// Update applies changed fields. Whenever the patch touches validity
// the chain-wide window is rechecked; whenever it touches the schedule
// the rows are deleted and recreated from the payload, so an empty
// payload leaves zero rows even for fixed-weekly contracts.
func (r *ContractRepository) Update(ctx context.Context, id uint, patch domain.ContractPatch) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.Contract
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Take(&row, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NotFoundError{Resource: "contract"}
		}
		if err != nil {
			return err
		}

		if err := checkPatchReferences(tx, patch); err != nil {
			return err
		}

		chainID := row.ID
		if row.OriginID != nil {
			chainID = *row.OriginID
		}
		chain, err := loadChain(tx, chainID)
		if err != nil {
			return err
		}

		// The row being updated contributes its candidate dates, not
		// its stored ones.
		if patch.TouchesValidity() {
			remaining := chain[:0]
			for _, c := range chain {
				if c.ID != row.ID {
					remaining = append(remaining, c)
				}
			}
			start, end := row.ValidityStart, row.ValidityEnd
			if patch.ValidityStart != nil {
				start = *patch.ValidityStart
			}
			if patch.ValidityEnd != nil {
				end = *patch.ValidityEnd
			}
			candidate := domain.ContractPatch{
				ValidityStart: &start,
				ValidityEnd:   &end,
				ItemFlags:     []string{domain.ItemValidity},
			}
			if err := domain.CheckChainValidity(remaining, candidate); err != nil {
				return err
			}
		}

		updates := patchAssignments(patch)
		if len(updates) > 0 {
			updates["m_date"] = time.Now()
			if err := tx.Model(&models.Contract{}).Where("id = ?", id).
				Updates(updates).Error; err != nil {
				return translateError(err, "contract")
			}
		}

		if patch.TouchesSchedule() {
			if err := tx.Delete(&models.ScheduleRow{}, "contract_id = ?", id).Error; err != nil {
				return err
			}
			if patch.Schedule != nil {
				if err := insertScheduleRows(tx, id, *patch.Schedule); err != nil {
					return err
				}
			}
		}

		return nil
	})
}

// SetStatus moves a contract into a terminal state.
func (r *ContractRepository) SetStatus(ctx context.Context, id uint, status domain.ContractStatus, when *time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.Contract
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Take(&row, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NotFoundError{Resource: "contract"}
		}
		if err != nil {
			return err
		}
		if row.Status != string(domain.StatusActive) {
			return domain.ValidationError{Reference: "status", Reason: "contract is no longer active"}
		}

		updates := map[string]any{"status": string(status), "m_date": time.Now()}
		if when != nil {
			updates["termination_date"] = *when
		}
		return tx.Model(&models.Contract{}).Where("id = ?", id).Updates(updates).Error
	})
}

func (r *ContractRepository) Get(ctx context.Context, id uint) (domain.Contract, error) {
	var row models.Contract
	err := r.db.WithContext(ctx).Take(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Contract{}, domain.NotFoundError{Resource: "contract"}
	}
	if err != nil {
		return domain.Contract{}, err
	}
	return r.contractFromRow(r.db.WithContext(ctx), row)
}

func (r *ContractRepository) GetChain(ctx context.Context, originID uint) ([]domain.Contract, error) {
	chain, err := loadChain(r.db.WithContext(ctx), originID)
	if err != nil {
		return nil, err
	}
	if len(chain) == 0 {
		return nil, domain.NotFoundError{Resource: "contract chain"}
	}
	return chain, nil
}

func (r *ContractRepository) SaveRenderedMarkup(ctx context.Context, id uint, markup string) error {
	res := r.db.WithContext(ctx).Model(&models.Contract{}).Where("id = ?", id).
		Updates(map[string]any{"rendered_markup": markup, "m_date": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "contract"}
	}
	return nil
}

// loadChain returns the base contract and all of its amendments
// ordered by sequence, schedule rows included.
func loadChain(tx *gorm.DB, originID uint) ([]domain.Contract, error) {
	var rows []models.Contract
	err := tx.
		Where("id = ? OR origin_id = ?", originID, originID).
		Order("sequence ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	chain := make([]domain.Contract, 0, len(rows))
	for _, row := range rows {
		c, err := contractFromModel(tx, row)
		if err != nil {
			return nil, err
		}
		chain = append(chain, c)
	}
	return chain, nil
}

func (r *ContractRepository) contractFromRow(tx *gorm.DB, row models.Contract) (domain.Contract, error) {
	return contractFromModel(tx, row)
}

func contractFromModel(tx *gorm.DB, row models.Contract) (domain.Contract, error) {
	var scheduleRows []models.ScheduleRow
	if err := tx.Where("contract_id = ?", row.ID).Order("weekday ASC").
		Find(&scheduleRows).Error; err != nil {
		return domain.Contract{}, err
	}

	schedule := make([]domain.ScheduleEntry, 0, len(scheduleRows))
	for _, s := range scheduleRows {
		schedule = append(schedule, domain.ScheduleEntry{
			Weekday:   time.Weekday(s.Weekday),
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		})
	}

	return domain.Contract{
		ID:              row.ID,
		Kind:            domain.ContractKind(row.Kind),
		IsAmendment:     row.IsAmendment,
		OriginID:        row.OriginID,
		Sequence:        row.Sequence,
		Status:          domain.ContractStatus(row.Status),
		CompanyID:       row.CompanyID,
		InstitutionID:   row.InstitutionID,
		CandidateID:     row.CandidateID,
		SupervisorID:    row.SupervisorID,
		SectorID:        row.SectorID,
		CourseID:        row.CourseID,
		CohortID:        row.CohortID,
		PaymentPlanID:   row.PaymentPlanID,
		DocumentModelID: row.DocumentModelID,
		ValidityStart:   row.ValidityStart,
		ValidityEnd:     row.ValidityEnd,
		TerminationDate: row.TerminationDate,
		PayAmount:       row.PayAmount,
		ScheduleKind:    domain.ScheduleKind(row.ScheduleKind),
		Schedule:        schedule,
		ItemFlags:       row.ItemFlags,
		RenderedMarkup:  row.RenderedMarkup,
	}, nil
}

func contractToModel(c domain.Contract) models.Contract {
	return models.Contract{
		Kind:            string(c.Kind),
		IsAmendment:     c.IsAmendment,
		OriginID:        c.OriginID,
		Sequence:        c.Sequence,
		Status:          string(c.Status),
		CompanyID:       c.CompanyID,
		InstitutionID:   c.InstitutionID,
		CandidateID:     c.CandidateID,
		SupervisorID:    c.SupervisorID,
		SectorID:        c.SectorID,
		CourseID:        c.CourseID,
		CohortID:        c.CohortID,
		PaymentPlanID:   c.PaymentPlanID,
		DocumentModelID: c.DocumentModelID,
		ValidityStart:   c.ValidityStart,
		ValidityEnd:     c.ValidityEnd,
		TerminationDate: c.TerminationDate,
		PayAmount:       c.PayAmount,
		ScheduleKind:    string(c.ScheduleKind),
		ItemFlags:       c.ItemFlags,
		RenderedMarkup:  c.RenderedMarkup,
	}
}

func insertScheduleRows(tx *gorm.DB, contractID uint, schedule []domain.ScheduleEntry) error {
	for _, e := range schedule {
		row := models.ScheduleRow{
			ContractID: contractID,
			Weekday:    int(e.Weekday),
			StartTime:  e.StartTime,
			EndTime:    e.EndTime,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func patchAssignments(p domain.ContractPatch) map[string]any {
	updates := map[string]any{}
	if p.CompanyID != nil {
		updates["company_id"] = *p.CompanyID
	}
	if p.InstitutionID != nil {
		updates["institution_id"] = *p.InstitutionID
	}
	if p.CandidateID != nil {
		updates["candidate_id"] = *p.CandidateID
	}
	if p.SupervisorID != nil {
		updates["supervisor_id"] = *p.SupervisorID
	}
	if p.SectorID != nil {
		updates["sector_id"] = *p.SectorID
	}
	if p.CourseID != nil {
		updates["course_id"] = *p.CourseID
	}
	if p.CohortID != nil {
		updates["cohort_id"] = *p.CohortID
	}
	if p.PaymentPlanID != nil {
		updates["payment_plan_id"] = *p.PaymentPlanID
	}
	if p.DocumentModelID != nil {
		updates["document_model_id"] = *p.DocumentModelID
	}
	if p.ValidityStart != nil {
		updates["validity_start"] = *p.ValidityStart
	}
	if p.ValidityEnd != nil {
		updates["validity_end"] = *p.ValidityEnd
	}
	if p.PayAmount != nil {
		updates["pay_amount"] = *p.PayAmount
	}
	if p.ScheduleKind != nil {
		updates["schedule_kind"] = string(*p.ScheduleKind)
	}
	if len(p.ItemFlags) > 0 {
		updates["item_flags"] = pqStringArray(p.ItemFlags)
	}
	return updates
}
