// Package sleeps provides database operations for the sleep table.
//
// # Usage
//
//	repo := sleeps.NewRepository(db)
//	id, err := repo.Insert(ctx, entities.Sleep{Night: "2022-11-24", Amount: 7.5, Quality: 4})
package sleeps

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/sleeptracker/internal/database"
	"github.com/mrlokans/sleeptracker/internal/entities"
)

// Repository handles all sleep database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new sleeps repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Insert stores a new sleep and returns its id. Any id on the input is ignored.
func (r *Repository) Insert(ctx context.Context, sleep entities.Sleep) (int64, error) {
	sleep.ID = 0
	if err := r.db.WithContext(ctx).Create(&sleep).Error; err != nil {
		return 0, database.Classify(err)
	}
	return sleep.ID, nil
}

// SelectOne retrieves a sleep by id. A missing row is reported as
// database.ErrNotFound.
func (r *Repository) SelectOne(ctx context.Context, id int64) (*entities.Sleep, error) {
	var sleep entities.Sleep
	if err := r.db.WithContext(ctx).First(&sleep, id).Error; err != nil {
		return nil, database.Classify(err)
	}
	return &sleep, nil
}

// SelectAll retrieves every sleep ordered by id.
func (r *Repository) SelectAll(ctx context.Context) ([]entities.Sleep, error) {
	var sleeps []entities.Sleep
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&sleeps).Error; err != nil {
		return nil, database.Classify(err)
	}
	return sleeps, nil
}

// SelectByMonth retrieves sleeps whose night falls in the given month.
func (r *Repository) SelectByMonth(ctx context.Context, month, year int) ([]entities.Sleep, error) {
	var sleeps []entities.Sleep
	err := r.db.WithContext(ctx).
		Where("night LIKE ?", MonthPattern(month, year)).
		Order("id ASC").
		Find(&sleeps).Error
	if err != nil {
		return nil, database.Classify(err)
	}
	return sleeps, nil
}

// MonthPattern builds the LIKE pattern matching every night of a month.
// Example: (5, 2023) -> "2023-05-%"
func MonthPattern(month, year int) string {
	return fmt.Sprintf("%04d-%02d-%%", year, month)
}

// UpdateAmount sets the amount of one sleep. It reports whether a row changed.
func (r *Repository) UpdateAmount(ctx context.Context, id int64, amount float64) (bool, error) {
	return r.update(ctx, id, "amount", amount)
}

// UpdateQuality sets the quality of one sleep. It reports whether a row changed.
func (r *Repository) UpdateQuality(ctx context.Context, id int64, quality int64) (bool, error) {
	return r.update(ctx, id, "quality", quality)
}

func (r *Repository) update(ctx context.Context, id int64, column string, value any) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.Sleep{}).
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

// Delete removes a sleep. Its sleep_tags and comment rows go with it through
// ON DELETE CASCADE when foreign keys are enforced.
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&entities.Sleep{}, id)
	if result.Error != nil {
		return false, database.Classify(result.Error)
	}
	return result.RowsAffected > 0, nil
}
