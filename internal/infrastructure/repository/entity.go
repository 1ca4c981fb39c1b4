package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/nanpeixoto/acervus/internal/domain"
	"github.com/nanpeixoto/acervus/internal/format"
	"github.com/nanpeixoto/acervus/internal/infrastructure/database/models"
)

// EntityRepository is the entity data provider: one normalized
// snapshot per (kind, id), with the display formatting applied here so
// the substitution engine only ever sees final strings.
type EntityRepository struct {
	db *gorm.DB
}

func NewEntityRepository(db *gorm.DB) *EntityRepository {
	return &EntityRepository{db: db}
}

func (r *EntityRepository) Snapshot(ctx context.Context, kind domain.EntityKind, id uint) (domain.Snapshot, error) {
	switch kind {
	case domain.EntityCompany:
		return r.companySnapshot(ctx, id)
	case domain.EntityInstitution:
		return r.institutionSnapshot(ctx, id)
	case domain.EntityCandidate:
		return r.candidateSnapshot(ctx, id)
	case domain.EntitySupervisor:
		return r.supervisorSnapshot(ctx, id)
	case domain.EntitySector:
		return r.sectorSnapshot(ctx, id)
	case domain.EntityContract:
		return r.contractSnapshot(ctx, id)
	default:
		return nil, domain.NotFoundError{Resource: string(kind)}
	}
}

func (r *EntityRepository) companySnapshot(ctx context.Context, id uint) (domain.Snapshot, error) {
	var row models.Company
	err := r.db.WithContext(ctx).Take(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFoundError{Resource: "company"}
	}
	if err != nil {
		return nil, err
	}

	return domain.Snapshot{
		"razao_social":        format.Text(row.RazaoSocial),
		"nome_fantasia":       format.Text(row.NomeFantasia),
		"cnpj":                row.CNPJ,
		"inscricao_estadual":  row.InscricaoEstadual,
		"endereco_completo":   format.Address(row.Street, row.Number, row.Neighborhood, row.City, row.State),
		"telefone":            row.Phone,
		"email":               format.Text(row.Email),
		"representante_legal": format.Text(row.LegalRepresentative),
	}, nil
}

func (r *EntityRepository) institutionSnapshot(ctx context.Context, id uint) (domain.Snapshot, error) {
	var row models.Institution
	err := r.db.WithContext(ctx).Take(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFoundError{Resource: "institution"}
	}
	if err != nil {
		return nil, err
	}

	return domain.Snapshot{
		"razao_social":      format.Text(row.RazaoSocial),
		"cnpj":              row.CNPJ,
		"endereco_completo": format.Address(row.Street, row.Number, row.Neighborhood, row.City, row.State),
		"telefone":          row.Phone,
		"email":             format.Text(row.Email),
		"diretor":           format.Text(row.Director),
	}, nil
}

func (r *EntityRepository) candidateSnapshot(ctx context.Context, id uint) (domain.Snapshot, error) {
	var row models.Candidate
	err := r.db.WithContext(ctx).Take(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFoundError{Resource: "candidate"}
	}
	if err != nil {
		return nil, err
	}

	snapshot := domain.Snapshot{
		"nome_completo":     format.Text(row.FullName),
		"cpf":               row.CPF,
		"rg":                row.RG,
		"endereco_completo": format.Address(row.Street, row.Number, row.Neighborhood, row.City, row.State),
		"telefone":          row.Phone,
		"email":             format.Text(row.Email),
	}
	if row.BirthDate != nil {
		snapshot["data_nascimento"] = format.Date(*row.BirthDate)
	}
	return snapshot, nil
}

func (r *EntityRepository) supervisorSnapshot(ctx context.Context, id uint) (domain.Snapshot, error) {
	var row models.Supervisor
	err := r.db.WithContext(ctx).Take(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFoundError{Resource: "supervisor"}
	}
	if err != nil {
		return nil, err
	}

	return domain.Snapshot{
		"nome":                  format.Text(row.Name),
		"cargo":                 format.Text(row.Role),
		"registro_profissional": row.ProfessionalRegistration,
	}, nil
}

func (r *EntityRepository) sectorSnapshot(ctx context.Context, id uint) (domain.Snapshot, error) {
	var row models.Sector
	err := r.db.WithContext(ctx).Take(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFoundError{Resource: "sector"}
	}
	if err != nil {
		return nil, err
	}

	return domain.Snapshot{
		"nome":      format.Text(row.Name),
		"descricao": format.Text(row.Description),
	}, nil
}

// contractSnapshot exposes the contract's own display fields,
// including the derived presentation values the pay and schedule
// clauses need.
func (r *EntityRepository) contractSnapshot(ctx context.Context, id uint) (domain.Snapshot, error) {
	var row models.Contract
	err := r.db.WithContext(ctx).Take(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFoundError{Resource: "contract"}
	}
	if err != nil {
		return nil, err
	}

	var scheduleRows []models.ScheduleRow
	if err := r.db.WithContext(ctx).Where("contract_id = ?", id).
		Order("weekday ASC").Find(&scheduleRows).Error; err != nil {
		return nil, err
	}
	schedule := make([]domain.ScheduleEntry, 0, len(scheduleRows))
	for _, s := range scheduleRows {
		schedule = append(schedule, domain.ScheduleEntry{
			Weekday:   time.Weekday(s.Weekday),
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		})
	}

	snapshot := domain.Snapshot{
		"numero":            strconv.FormatUint(uint64(row.ID), 10),
		"numero_aditivo":    strconv.Itoa(row.Sequence),
		"data_inicio":       format.Date(row.ValidityStart),
		"data_fim":          format.Date(row.ValidityEnd),
		"horario_descricao": format.ScheduleDescription(schedule),
	}
	if row.PayAmount != nil {
		snapshot["valor_bolsa"] = format.Currency(*row.PayAmount)
		snapshot["valor_bolsa_extenso"] = format.AmountInWords(*row.PayAmount)
	}
	if row.TerminationDate != nil {
		snapshot["data_rescisao"] = format.Date(*row.TerminationDate)
	}
	return snapshot, nil
}
