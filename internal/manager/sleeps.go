package manager

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mrlokans/sleeptracker/internal/entities"
)

// GetSleep returns one sleep. Tags are loaded only when includeTags is set;
// a failure at any step fails the whole call.
func (m *Manager) GetSleep(ctx context.Context, id int64, includeTags bool) (*entities.SleepAggregate, error) {
	sleep, err := m.stores.Sleeps.SelectOne(ctx, id)
	if err != nil {
		return nil, absent(err)
	}

	agg := entities.SleepAggregate{Sleep: *sleep}
	if !includeTags {
		return &agg, nil
	}

	tags, err := m.GetTagsBySleep(ctx, id)
	if err != nil {
		return nil, err
	}
	agg = agg.WithTags(tags)
	return &agg, nil
}

// GetAllSleeps returns every sleep without tags.
func (m *Manager) GetAllSleeps(ctx context.Context) ([]entities.SleepAggregate, error) {
	sleeps, err := m.stores.Sleeps.SelectAll(ctx)
	if err != nil {
		return nil, err
	}
	return aggregates(sleeps), nil
}

// GetMultipleSleeps returns the sleeps whose id is in ids, in id order.
// Unknown ids are skipped.
func (m *Manager) GetMultipleSleeps(ctx context.Context, ids []int64) ([]entities.SleepAggregate, error) {
	sleeps, err := m.stores.Sleeps.SelectAll(ctx)
	if err != nil {
		return nil, err
	}
	return aggregates(FilterByIDs(sleeps, sleepKey, ids)), nil
}

// GetSleepsByTag returns the sleeps a tag is attached to. A tag with no
// sleeps, or an unknown tag, yields an empty list.
func (m *Manager) GetSleepsByTag(ctx context.Context, tagID int64) ([]entities.SleepAggregate, error) {
	links, err := m.stores.SleepTags.SelectByTagID(ctx, tagID)
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return []entities.SleepAggregate{}, nil
	}

	ids := make([]int64, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.SleepID)
	}
	return m.GetMultipleSleeps(ctx, ids)
}

// GetSleepsByMonth returns the sleeps whose night falls in month/year.
func (m *Manager) GetSleepsByMonth(ctx context.Context, month, year int) ([]entities.SleepAggregate, error) {
	if err := validateStruct(monthInput{Month: month, Year: year}); err != nil {
		return nil, err
	}
	sleeps, err := m.stores.Sleeps.SelectByMonth(ctx, month, year)
	if err != nil {
		return nil, err
	}
	return aggregates(sleeps), nil
}

// GetSleepsInRange returns the sleeps between start and end, inclusive. Day
// precision applies only when both bounds carry a day.
func (m *Manager) GetSleepsInRange(ctx context.Context, start, end entities.RangeBound) ([]entities.Sleep, error) {
	sleeps, err := m.stores.Sleeps.SelectAll(ctx)
	if err != nil {
		return nil, err
	}

	inRange := make([]entities.Sleep, 0, len(sleeps))
	for _, sleep := range sleeps {
		night, err := entities.ParseNight(sleep.Night)
		if err != nil {
			return nil, fmt.Errorf("%w: sleep %d: %w", ErrValidation, sleep.ID, err)
		}
		if night.InRange(start, end) {
			inRange = append(inRange, sleep)
		}
	}
	return inRange, nil
}

// GetSleepsWithTags returns the requested sleeps with their tags folded on.
// An empty ids slice selects every sleep.
func (m *Manager) GetSleepsWithTags(ctx context.Context, ids []int64) ([]entities.SleepAggregate, error) {
	sleeps, err := m.stores.Sleeps.SelectAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) > 0 {
		sleeps = FilterByIDs(sleeps, sleepKey, ids)
	}

	links, err := m.stores.SleepTags.SelectAll(ctx)
	if err != nil {
		return nil, err
	}
	allTags, err := m.stores.Tags.SelectAll(ctx)
	if err != nil {
		return nil, err
	}

	return JoinByKey(
		sleeps, sleepKey,
		links, func(l entities.SleepTag) int64 { return l.SleepID },
		func(s entities.Sleep, own []entities.SleepTag) entities.SleepAggregate {
			return entities.SleepAggregate{Sleep: s}.WithTags(FilterByIDs(allTags, tagKey, linkedTagIDs(own)))
		},
	), nil
}

// InsertSleep stores a new sleep. The night must be a valid yyyy-mm-dd date
// and amount must not be negative.
func (m *Manager) InsertSleep(ctx context.Context, night string, amount float64, quality int64) (int64, error) {
	if err := validateStruct(sleepInput{Night: night, Amount: amount}); err != nil {
		return InvalidID, err
	}
	id, err := m.stores.Sleeps.Insert(ctx, entities.Sleep{Night: night, Amount: amount, Quality: quality})
	if err != nil {
		return InvalidID, err
	}
	return id, nil
}

func (m *Manager) UpdateSleepAmount(ctx context.Context, id int64, amount float64) (bool, error) {
	return m.stores.Sleeps.UpdateAmount(ctx, id, amount)
}

func (m *Manager) UpdateSleepQuality(ctx context.Context, id int64, quality int64) (bool, error) {
	return m.stores.Sleeps.UpdateQuality(ctx, id, quality)
}

// DeleteSleep removes a sleep together with its tag links and comments.
func (m *Manager) DeleteSleep(ctx context.Context, id int64) (bool, error) {
	if m.runTx == nil {
		return m.stores.Sleeps.Delete(ctx, id)
	}

	var deleted bool
	err := m.runTx(ctx, func(s Stores) error {
		links, err := s.SleepTags.DeleteBySleepID(ctx, id)
		if err != nil {
			return err
		}
		notes, err := s.Comments.DeleteBySleepID(ctx, id)
		if err != nil {
			return err
		}
		deleted, err = s.Sleeps.Delete(ctx, id)
		if err != nil {
			return err
		}
		m.log.Debug("Cascaded sleep delete",
			zap.Int64("sleep_id", id),
			zap.Int64("sleep_tags", links),
			zap.Int64("comments", notes))
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// AddTagsToSleep links each tag to the sleep in order. It stops at the first
// failing insert and reports false; links made before the failure stay.
func (m *Manager) AddTagsToSleep(ctx context.Context, sleepID int64, tagIDs []int64) (bool, error) {
	for i, tagID := range tagIDs {
		if _, err := m.stores.SleepTags.Insert(ctx, sleepID, tagID); err != nil {
			m.log.Warn("Stopped attaching tags",
				zap.Int64("sleep_id", sleepID),
				zap.Int64("tag_id", tagID),
				zap.Int("attached", i),
				zap.Error(err))
			return false, fmt.Errorf("attach tag %d to sleep %d: %w", tagID, sleepID, err)
		}
	}
	return true, nil
}

func (m *Manager) RemoveTagFromSleep(ctx context.Context, sleepID, tagID int64) (bool, error) {
	return m.stores.SleepTags.Delete(ctx, sleepID, tagID)
}

func aggregates(sleeps []entities.Sleep) []entities.SleepAggregate {
	aggs := make([]entities.SleepAggregate, 0, len(sleeps))
	for _, s := range sleeps {
		aggs = append(aggs, entities.SleepAggregate{Sleep: s})
	}
	return aggs
}

func sleepKey(s entities.Sleep) int64 { return s.ID }

func tagKey(t entities.Tag) int64 { return t.ID }

func linkedTagIDs(links []entities.SleepTag) []int64 {
	ids := make([]int64, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.TagID)
	}
	return ids
}
