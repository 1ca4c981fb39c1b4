package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nanpeixoto/acervus/internal/domain"
	"github.com/nanpeixoto/acervus/internal/infrastructure/database/models"
)

// DocumentRepository persists generation results.
type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) SaveGenerated(ctx context.Context, doc domain.GeneratedDocument) error {
	row := models.GeneratedDocument{
		ID:         doc.ID,
		ContractID: doc.ContractID,
		TemplateID: doc.TemplateID,
		Markup:     doc.Markup,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}
