package manager

import (
	"context"

	"go.uber.org/zap"

	"github.com/mrlokans/sleeptracker/internal/entities"
)

func (m *Manager) GetTag(ctx context.Context, id int64) (*entities.Tag, error) {
	tag, err := m.stores.Tags.SelectOne(ctx, id)
	if err != nil {
		return nil, absent(err)
	}
	return tag, nil
}

func (m *Manager) GetAllTags(ctx context.Context) ([]entities.Tag, error) {
	tags, err := m.stores.Tags.SelectAll(ctx)
	if err != nil {
		return nil, err
	}
	return orEmpty(tags), nil
}

// SearchTags matches tag names case-insensitively.
func (m *Manager) SearchTags(ctx context.Context, query string) ([]entities.Tag, error) {
	tags, err := m.stores.Tags.SearchByName(ctx, query)
	if err != nil {
		return nil, err
	}
	return orEmpty(tags), nil
}

// GetMultipleTags returns the tags whose id is in ids, in id order.
func (m *Manager) GetMultipleTags(ctx context.Context, ids []int64) ([]entities.Tag, error) {
	tags, err := m.stores.Tags.SelectAll(ctx)
	if err != nil {
		return nil, err
	}
	return FilterByIDs(tags, tagKey, ids), nil
}

// GetTagsBySleep returns the tags attached to a sleep. Each tag appears once
// even if it was attached more than once.
func (m *Manager) GetTagsBySleep(ctx context.Context, sleepID int64) ([]entities.Tag, error) {
	links, err := m.stores.SleepTags.SelectBySleepID(ctx, sleepID)
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return []entities.Tag{}, nil
	}
	return m.GetMultipleTags(ctx, linkedTagIDs(links))
}

// InsertTag stores a new tag. The name must not be empty.
func (m *Manager) InsertTag(ctx context.Context, name string, color int64) (int64, error) {
	if err := validateStruct(tagInput{Name: name}); err != nil {
		return InvalidID, err
	}
	id, err := m.stores.Tags.Insert(ctx, entities.Tag{Name: name, Color: color})
	if err != nil {
		return InvalidID, err
	}
	return id, nil
}

func (m *Manager) UpdateTagName(ctx context.Context, id int64, name string) (bool, error) {
	return m.stores.Tags.UpdateName(ctx, id, name)
}

func (m *Manager) UpdateTagColor(ctx context.Context, id int64, color int64) (bool, error) {
	return m.stores.Tags.UpdateColor(ctx, id, color)
}

// DeleteTag removes a tag and detaches it from every sleep.
func (m *Manager) DeleteTag(ctx context.Context, id int64) (bool, error) {
	if m.runTx == nil {
		return m.stores.Tags.Delete(ctx, id)
	}

	var deleted bool
	err := m.runTx(ctx, func(s Stores) error {
		links, err := s.SleepTags.DeleteByTagID(ctx, id)
		if err != nil {
			return err
		}
		deleted, err = s.Tags.Delete(ctx, id)
		if err != nil {
			return err
		}
		m.log.Debug("Cascaded tag delete", zap.Int64("tag_id", id), zap.Int64("sleep_tags", links))
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}
