package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/nanpeixoto/acervus/internal/domain"
	"github.com/nanpeixoto/acervus/internal/infrastructure/database/models"
)

type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) Get(ctx context.Context, id uint) (domain.DocumentTemplate, error) {
	var row models.DocumentTemplate
	err := r.db.WithContext(ctx).Take(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.DocumentTemplate{}, domain.NotFoundError{Resource: "template"}
	}
	if err != nil {
		return domain.DocumentTemplate{}, err
	}

	return domain.DocumentTemplate{
		ID:             row.ID,
		Name:           row.Name,
		Classification: domain.TemplateClassification(row.Classification),
		Markup:         row.Markup,
	}, nil
}
