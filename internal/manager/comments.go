package manager

import (
	"context"

	"github.com/mrlokans/sleeptracker/internal/entities"
)

func (m *Manager) GetComment(ctx context.Context, id int64) (*entities.Comment, error) {
	comment, err := m.stores.Comments.SelectOne(ctx, id)
	if err != nil {
		return nil, absent(err)
	}
	return comment, nil
}

func (m *Manager) GetCommentsBySleep(ctx context.Context, sleepID int64) ([]entities.Comment, error) {
	comments, err := m.stores.Comments.SelectBySleepID(ctx, sleepID)
	if err != nil {
		return nil, err
	}
	return orEmpty(comments), nil
}

// InsertComment attaches a comment to an existing sleep.
func (m *Manager) InsertComment(ctx context.Context, sleepID int64, text string) (int64, error) {
	if err := validateStruct(commentInput{SleepID: sleepID}); err != nil {
		return InvalidID, err
	}
	id, err := m.stores.Comments.Insert(ctx, sleepID, text)
	if err != nil {
		return InvalidID, err
	}
	return id, nil
}

func (m *Manager) UpdateComment(ctx context.Context, id int64, text string) (bool, error) {
	return m.stores.Comments.UpdateComment(ctx, id, text)
}

func (m *Manager) DeleteComment(ctx context.Context, id int64) (bool, error) {
	return m.stores.Comments.Delete(ctx, id)
}
