// Package comments provides database operations for the comment table.
package comments

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/sleeptracker/internal/database"
	"github.com/mrlokans/sleeptracker/internal/entities"
)

// Repository handles all comment database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new comments repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Insert attaches a comment to a sleep and returns the comment id.
func (r *Repository) Insert(ctx context.Context, sleepID int64, text string) (int64, error) {
	comment := entities.Comment{SleepID: sleepID, Comment: text}
	if err := r.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return 0, database.Classify(err)
	}
	return comment.ID, nil
}

// SelectOne retrieves a comment by id.
func (r *Repository) SelectOne(ctx context.Context, id int64) (*entities.Comment, error) {
	var comment entities.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, database.Classify(err)
	}
	return &comment, nil
}

// SelectAll retrieves every comment ordered by id.
func (r *Repository) SelectAll(ctx context.Context) ([]entities.Comment, error) {
	var comments []entities.Comment
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&comments).Error; err != nil {
		return nil, database.Classify(err)
	}
	return comments, nil
}

// SelectBySleepID retrieves the comments of a sleep in insertion order.
func (r *Repository) SelectBySleepID(ctx context.Context, sleepID int64) ([]entities.Comment, error) {
	var comments []entities.Comment
	err := r.db.WithContext(ctx).Where("sleep_id = ?", sleepID).Order("id ASC").Find(&comments).Error
	if err != nil {
		return nil, database.Classify(err)
	}
	return comments, nil
}

// UpdateComment replaces the text of a comment.
func (r *Repository) UpdateComment(ctx context.Context, id int64, text string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.Comment{}).
		Where("id = ?", id).
		Update("comment", text)
	if result.Error != nil {
		return false, database.Classify(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&entities.Comment{}, id)
	if result.Error != nil {
		return false, database.Classify(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// DeleteBySleepID removes every comment of a sleep.
func (r *Repository) DeleteBySleepID(ctx context.Context, sleepID int64) (int64, error) {
	result := r.db.WithContext(ctx).Where("sleep_id = ?", sleepID).Delete(&entities.Comment{})
	if result.Error != nil {
		return 0, database.Classify(result.Error)
	}
	return result.RowsAffected, nil
}
