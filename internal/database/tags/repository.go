// Package tags provides database operations for the tag table.
//
// # Usage
//
//	repo := tags.NewRepository(db)
//	id, err := repo.Insert(ctx, entities.Tag{Name: "coffee", Color: 9590460})
package tags

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/sleeptracker/internal/database"
	"github.com/mrlokans/sleeptracker/internal/entities"
)

// Repository handles all tag database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new tags repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Insert creates a new tag and returns its id. Any id on the input is ignored.
func (r *Repository) Insert(ctx context.Context, tag entities.Tag) (int64, error) {
	tag.ID = 0
	if err := r.db.WithContext(ctx).Create(&tag).Error; err != nil {
		return 0, database.Classify(err)
	}
	return tag.ID, nil
}

// SelectOne retrieves a tag by id.
func (r *Repository) SelectOne(ctx context.Context, id int64) (*entities.Tag, error) {
	var tag entities.Tag
	if err := r.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		return nil, database.Classify(err)
	}
	return &tag, nil
}

// SelectAll retrieves every tag ordered by id.
func (r *Repository) SelectAll(ctx context.Context) ([]entities.Tag, error) {
	var tags []entities.Tag
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&tags).Error; err != nil {
		return nil, database.Classify(err)
	}
	return tags, nil
}

// SearchByName searches tags by name (case-insensitive partial match).
func (r *Repository) SearchByName(ctx context.Context, query string) ([]entities.Tag, error) {
	var tags []entities.Tag
	searchPattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE LOWER(?)", searchPattern).
		Order("id ASC").
		Find(&tags).Error
	if err != nil {
		return nil, database.Classify(err)
	}
	return tags, nil
}

// UpdateName renames a tag. It reports whether a row changed.
func (r *Repository) UpdateName(ctx context.Context, id int64, name string) (bool, error) {
	return r.update(ctx, id, "name", name)
}

// UpdateColor recolors a tag. It reports whether a row changed.
func (r *Repository) UpdateColor(ctx context.Context, id int64, color int64) (bool, error) {
	return r.update(ctx, id, "color", color)
}

func (r *Repository) update(ctx context.Context, id int64, column string, value any) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.Tag{}).
		Where("id = ?", id).
		Updates(map[string]any{
			column:       value,
			"updated_on": gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if result.Error != nil {
		return false, database.Classify(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Delete deletes a tag. Its sleep_tags rows cascade when foreign keys are
// enforced.
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&entities.Tag{}, id)
	if result.Error != nil {
		return false, database.Classify(result.Error)
	}
	return result.RowsAffected > 0, nil
}
