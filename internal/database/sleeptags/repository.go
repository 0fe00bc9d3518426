// Package sleeptags provides database operations for the sleep_tags join
// table. Rows are addressed by their (sleep, tag) pair rather than by id.
package sleeptags

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/sleeptracker/internal/database"
	"github.com/mrlokans/sleeptracker/internal/entities"
)

// Repository handles all sleep_tags database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new sleep tags repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Insert links a tag to a sleep. Both must exist when foreign keys are
// enforced; otherwise database.ErrConstraintViolation is returned.
func (r *Repository) Insert(ctx context.Context, sleepID, tagID int64) (int64, error) {
	link := entities.SleepTag{SleepID: sleepID, TagID: tagID}
	if err := r.db.WithContext(ctx).Create(&link).Error; err != nil {
		return 0, database.Classify(err)
	}
	return link.ID, nil
}

// SelectOne retrieves a link by id. A missing row is reported as
// database.ErrNotFound.
func (r *Repository) SelectOne(ctx context.Context, id int64) (*entities.SleepTag, error) {
	var link entities.SleepTag
	if err := r.db.WithContext(ctx).First(&link, id).Error; err != nil {
		return nil, database.Classify(err)
	}
	return &link, nil
}

// SelectAll retrieves every link ordered by id.
func (r *Repository) SelectAll(ctx context.Context) ([]entities.SleepTag, error) {
	var links []entities.SleepTag
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&links).Error; err != nil {
		return nil, database.Classify(err)
	}
	return links, nil
}

// SelectBySleepID retrieves the links of one sleep in insertion order.
func (r *Repository) SelectBySleepID(ctx context.Context, sleepID int64) ([]entities.SleepTag, error) {
	return r.selectWhere(ctx, "sleep_id = ?", sleepID)
}

// SelectByTagID retrieves the links of one tag in insertion order.
func (r *Repository) SelectByTagID(ctx context.Context, tagID int64) ([]entities.SleepTag, error) {
	return r.selectWhere(ctx, "tag_id = ?", tagID)
}

func (r *Repository) selectWhere(ctx context.Context, query string, arg int64) ([]entities.SleepTag, error) {
	var links []entities.SleepTag
	if err := r.db.WithContext(ctx).Where(query, arg).Order("id ASC").Find(&links).Error; err != nil {
		return nil, database.Classify(err)
	}
	return links, nil
}

// Delete removes every link between the given sleep and tag. It reports
// whether any row was removed.
func (r *Repository) Delete(ctx context.Context, sleepID, tagID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("sleep_id = ? AND tag_id = ?", sleepID, tagID).
		Delete(&entities.SleepTag{})
	if result.Error != nil {
		return false, database.Classify(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// DeleteBySleepID removes all links of a sleep and returns how many went.
func (r *Repository) DeleteBySleepID(ctx context.Context, sleepID int64) (int64, error) {
	return r.deleteWhere(ctx, "sleep_id = ?", sleepID)
}

// DeleteByTagID removes all links of a tag and returns how many went.
func (r *Repository) DeleteByTagID(ctx context.Context, tagID int64) (int64, error) {
	return r.deleteWhere(ctx, "tag_id = ?", tagID)
}

func (r *Repository) deleteWhere(ctx context.Context, query string, arg int64) (int64, error) {
	result := r.db.WithContext(ctx).Where(query, arg).Delete(&entities.SleepTag{})
	if result.Error != nil {
		return 0, database.Classify(result.Error)
	}
	return result.RowsAffected, nil
}
