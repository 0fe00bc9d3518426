package http

import (
	"github.com/mrlokans/sleeptracker/internal/entities"
	"github.com/mrlokans/sleeptracker/internal/utils"
)

// NightResponse is the calendar breakdown of a sleep's night.
type NightResponse struct {
	Day   int    `json:"day"`
	Month int    `json:"month"`
	Year  int    `json:"year"`
	Date  string `json:"date"`
}

type TagResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color int64  `json:"color"`
	Hex   string `json:"hex"`
}

// SleepResponse carries a sleep. Tags and Comments are omitted unless they
// were resolved; an empty slice means resolved and none attached.
type SleepResponse struct {
	ID       int64               `json:"id"`
	Night    string              `json:"night"`
	Amount   float64             `json:"amount"`
	Quality  int64               `json:"quality"`
	Date     *NightResponse      `json:"date,omitempty"`
	Tags     *[]TagResponse      `json:"tags,omitempty"`
	Comments *[]entities.Comment `json:"comments,omitempty"`
}

func newTagResponse(tag entities.Tag) TagResponse {
	return TagResponse{ID: tag.ID, Name: tag.Name, Color: tag.Color, Hex: utils.ColorToHex(tag.Color)}
}

func newTagResponses(tags []entities.Tag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for _, tag := range tags {
		out = append(out, newTagResponse(tag))
	}
	return out
}

func newSleepResponse(sleep entities.Sleep) SleepResponse {
	resp := SleepResponse{
		ID:      sleep.ID,
		Night:   sleep.Night,
		Amount:  sleep.Amount,
		Quality: sleep.Quality,
	}
	// A stored night that does not parse is still returned, just without a breakdown.
	if night, err := entities.ParseNight(sleep.Night); err == nil {
		resp.Date = &NightResponse{Day: night.Day, Month: night.Month, Year: night.Year, Date: night.Date}
	}
	return resp
}

func newAggregateResponse(agg entities.SleepAggregate) SleepResponse {
	resp := newSleepResponse(agg.Sleep)
	if agg.HasTags() {
		resp.withTags(agg.TagList())
	}
	return resp
}

func (r *SleepResponse) withTags(tags []entities.Tag) {
	out := newTagResponses(tags)
	r.Tags = &out
}

func (r *SleepResponse) withComments(comments []entities.Comment) {
	if comments == nil {
		comments = []entities.Comment{}
	}
	r.Comments = &comments
}

func newSleepResponses(sleeps []entities.Sleep) []SleepResponse {
	out := make([]SleepResponse, 0, len(sleeps))
	for _, s := range sleeps {
		out = append(out, newSleepResponse(s))
	}
	return out
}

func newAggregateResponses(aggs []entities.SleepAggregate) []SleepResponse {
	out := make([]SleepResponse, 0, len(aggs))
	for _, agg := range aggs {
		out = append(out, newAggregateResponse(agg))
	}
	return out
}
