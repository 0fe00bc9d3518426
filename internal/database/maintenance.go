package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RepairReport counts the rows removed by RepairDanglingRows.
type RepairReport struct {
	SleepTags int64 `json:"sleep_tags"`
	Comments  int64 `json:"comments"`
}

func (r RepairReport) Total() int64 {
	return r.SleepTags + r.Comments
}

// RepairDanglingRows deletes sleep_tags and comment rows whose parent sleep
// or tag no longer exists. Such rows only appear when the store was written
// with foreign keys disabled.
func (d *Database) RepairDanglingRows(ctx context.Context) (RepairReport, error) {
	var report RepairReport

	err := d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Exec(`
			DELETE FROM sleep_tags
			WHERE sleep_id NOT IN (SELECT id FROM sleep)
			   OR tag_id NOT IN (SELECT id FROM tag)
		`)
		if result.Error != nil {
			return fmt.Errorf("failed to delete dangling sleep tags: %w", result.Error)
		}
		report.SleepTags = result.RowsAffected

		result = tx.Exec(`DELETE FROM comment WHERE sleep_id NOT IN (SELECT id FROM sleep)`)
		if result.Error != nil {
			return fmt.Errorf("failed to delete dangling comments: %w", result.Error)
		}
		report.Comments = result.RowsAffected
		return nil
	})
	if err != nil {
		return RepairReport{}, Classify(err)
	}

	if report.Total() > 0 {
		d.log.Info("Removed dangling rows",
			zap.Int64("sleep_tags", report.SleepTags),
			zap.Int64("comments", report.Comments))
	}
	return report, nil
}
