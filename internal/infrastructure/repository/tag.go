package repository

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"github.com/nanpeixoto/acervus/internal/domain"
	"github.com/nanpeixoto/acervus/internal/infrastructure/database/models"
)

const tagCatalogKey = "tag-catalog"

// TagRepository loads the active token catalog. The catalog is
// read-only reference data administered outside the core; one loaded
// generation is cached briefly so a burst of generations does not
// re-read the table, while edits still show up at the next cache
// boundary.
type TagRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{
		db:    db,
		cache: cache.New(30*time.Second, time.Minute),
	}
}

func (r *TagRepository) Load(ctx context.Context) ([]domain.TagDefinition, error) {
	if x, found := r.cache.Get(tagCatalogKey); found {
		if defs, ok := x.([]domain.TagDefinition); ok {
			return defs, nil
		}
	}

	var rows []models.TagDefinition
	if err := r.db.WithContext(ctx).Where("active = ?", true).Find(&rows).Error; err != nil {
		return nil, err
	}

	defs := make([]domain.TagDefinition, 0, len(rows))
	for _, row := range rows {
		defs = append(defs, domain.TagDefinition{
			Token:      row.Token,
			EntityKind: domain.EntityKind(row.EntityKind),
			FieldPath:  row.FieldPath,
			Active:     row.Active,
		})
	}

	r.cache.Set(tagCatalogKey, defs, cache.DefaultExpiration)
	return defs, nil
}

// Refresh drops the cached generation so the next load hits the table.
func (r *TagRepository) Refresh() {
	r.cache.Delete(tagCatalogKey)
}
