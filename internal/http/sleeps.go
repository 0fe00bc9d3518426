package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/sleeptracker/internal/entities"
)

type SleepsController struct {
	service SleepService
}

func NewSleepsController(service SleepService) *SleepsController {
	return &SleepsController{service: service}
}

// ListSleeps returns sleeps, optionally narrowed to a month or an id list.
// GET /api/sleeps?month=11&year=2022
// GET /api/sleeps?ids=1,2,3
// Add include_tags=true to fold each sleep's tags into the response.
func (sc *SleepsController) ListSleeps(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		aggs []entities.SleepAggregate
		err  error
	)
	switch {
	case c.Query("month") != "" || c.Query("year") != "":
		month, mErr := strconv.Atoi(c.Query("month"))
		year, yErr := strconv.Atoi(c.Query("year"))
		if mErr != nil || yErr != nil {
			respondBadRequest(c, "month and year must both be numbers")
			return
		}
		aggs, err = sc.service.GetSleepsByMonth(ctx, month, year)
	case c.Query("ids") != "":
		ids, parseErr := parseIDList(c.Query("ids"))
		if parseErr != nil {
			respondBadRequest(c, "invalid ids")
			return
		}
		aggs, err = sc.service.GetMultipleSleeps(ctx, ids)
	default:
		aggs, err = sc.service.GetAllSleeps(ctx)
	}
	if err != nil {
		respondServiceError(c, err, "sleeps", "list sleeps")
		return
	}

	if parseBoolQuery(c, "include_tags") && len(aggs) > 0 {
		ids := make([]int64, 0, len(aggs))
		for _, agg := range aggs {
			ids = append(ids, agg.Sleep.ID)
		}
		if aggs, err = sc.service.GetSleepsWithTags(ctx, ids); err != nil {
			respondServiceError(c, err, "sleeps", "list sleeps with tags")
			return
		}
	}

	c.JSON(http.StatusOK, newAggregateResponses(aggs))
}

// ListSleepsInRange returns sleeps between two inclusive bounds, each given
// as yyyy-mm or yyyy-mm-dd.
// GET /api/sleeps/range?start=2022-11-20&end=2022-12
func (sc *SleepsController) ListSleepsInRange(c *gin.Context) {
	start, err := entities.ParseRangeBound(c.Query("start"))
	if err != nil {
		respondBadRequest(c, "invalid start: "+err.Error())
		return
	}
	end, err := entities.ParseRangeBound(c.Query("end"))
	if err != nil {
		respondBadRequest(c, "invalid end: "+err.Error())
		return
	}

	sleeps, err := sc.service.GetSleepsInRange(c.Request.Context(), start, end)
	if err != nil {
		respondServiceError(c, err, "sleeps", "list sleeps in range")
		return
	}
	c.JSON(http.StatusOK, newSleepResponses(sleeps))
}

// GetSleep returns one sleep with its tags and comments.
// GET /api/sleeps/:id
func (sc *SleepsController) GetSleep(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	agg, err := sc.service.GetSleep(ctx, id, true)
	if err != nil {
		respondServiceError(c, err, "sleep", "get sleep")
		return
	}
	if agg == nil {
		respondNotFound(c, "sleep")
		return
	}

	comments, err := sc.service.GetCommentsBySleep(ctx, id)
	if err != nil {
		respondServiceError(c, err, "sleep", "get sleep comments")
		return
	}

	resp := newAggregateResponse(*agg)
	resp.withComments(comments)
	c.JSON(http.StatusOK, resp)
}

// GetSleepTags returns the tags attached to a sleep.
// GET /api/sleeps/:id/tags
func (sc *SleepsController) GetSleepTags(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tags, err := sc.service.GetTagsBySleep(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "sleep", "get sleep tags")
		return
	}
	c.JSON(http.StatusOK, newTagResponses(tags))
}

// GetSleepComments returns the comments of a sleep in insertion order.
// GET /api/sleeps/:id/comments
func (sc *SleepsController) GetSleepComments(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	comments, err := sc.service.GetCommentsBySleep(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "sleep", "get sleep comments")
		return
	}
	c.JSON(http.StatusOK, comments)
}

type createSleepRequest struct {
	Night    string   `json:"night" binding:"required"`
	Amount   *float64 `json:"amount" binding:"required"`
	Quality  *int64   `json:"quality" binding:"required"`
	TagIDs   []int64  `json:"tag_ids"`
	Comments []string `json:"comments"`
}

// CreateSleep stores a sleep, then attaches the given tags and comments.
// Attachment stops at the first failure; the sleep and anything attached
// before the failure are kept and the error names the new sleep id.
// POST /api/sleeps
func (sc *SleepsController) CreateSleep(c *gin.Context) {
	var req createSleepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "night, amount and quality are required")
		return
	}
	ctx := c.Request.Context()

	id, err := sc.service.InsertSleep(ctx, req.Night, *req.Amount, *req.Quality)
	if err != nil {
		respondServiceError(c, err, "sleep", "create sleep")
		return
	}

	if len(req.TagIDs) > 0 {
		if _, err := sc.service.AddTagsToSleep(ctx, id, req.TagIDs); err != nil {
			sc.respondPartial(c, id, err)
			return
		}
	}
	for _, text := range req.Comments {
		if _, err := sc.service.InsertComment(ctx, id, text); err != nil {
			sc.respondPartial(c, id, err)
			return
		}
	}

	agg, err := sc.service.GetSleep(ctx, id, true)
	if err != nil || agg == nil {
		respondCreated(c, gin.H{"id": id})
		return
	}
	respondCreated(c, newAggregateResponse(*agg))
}

func (sc *SleepsController) respondPartial(c *gin.Context, id int64, err error) {
	c.Header("Location", "/api/sleeps/"+strconv.FormatInt(id, 10))
	respondServiceError(c, err, "sleep attachment", "create sleep attachments")
}

type updateSleepRequest struct {
	Amount  *float64 `json:"amount"`
	Quality *int64   `json:"quality"`
}

// UpdateSleep changes the amount and/or quality of a sleep.
// PATCH /api/sleeps/:id
func (sc *SleepsController) UpdateSleep(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateSleepRequest
	if err := c.ShouldBindJSON(&req); err != nil || (req.Amount == nil && req.Quality == nil) {
		respondBadRequest(c, "amount or quality is required")
		return
	}
	ctx := c.Request.Context()

	if req.Amount != nil {
		updated, err := sc.service.UpdateSleepAmount(ctx, id, *req.Amount)
		if err != nil {
			respondServiceError(c, err, "sleep", "update sleep amount")
			return
		}
		if !updated {
			respondNotFound(c, "sleep")
			return
		}
	}
	if req.Quality != nil {
		updated, err := sc.service.UpdateSleepQuality(ctx, id, *req.Quality)
		if err != nil {
			respondServiceError(c, err, "sleep", "update sleep quality")
			return
		}
		if !updated {
			respondNotFound(c, "sleep")
			return
		}
	}

	respondSuccess(c, "sleep updated")
}

// DeleteSleep removes a sleep with its tag links and comments.
// DELETE /api/sleeps/:id
func (sc *SleepsController) DeleteSleep(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	deleted, err := sc.service.DeleteSleep(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "sleep", "delete sleep")
		return
	}
	if !deleted {
		respondNotFound(c, "sleep")
		return
	}
	respondSuccess(c, "sleep deleted")
}

// AddTags attaches tags to a sleep in the given order.
// POST /api/sleeps/:id/tags
func (sc *SleepsController) AddTags(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		TagIDs []int64 `json:"tag_ids" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "tag_ids is required")
		return
	}

	if _, err := sc.service.AddTagsToSleep(c.Request.Context(), id, req.TagIDs); err != nil {
		respondServiceError(c, err, "tag", "add tags to sleep")
		return
	}
	respondSuccess(c, "tags added")
}

// RemoveTag detaches a tag from a sleep.
// DELETE /api/sleeps/:id/tags/:tag_id
func (sc *SleepsController) RemoveTag(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	tagID, ok := parseIDParam(c, "tag_id")
	if !ok {
		return
	}

	removed, err := sc.service.RemoveTagFromSleep(c.Request.Context(), id, tagID)
	if err != nil {
		respondServiceError(c, err, "tag", "remove tag from sleep")
		return
	}
	if !removed {
		respondNotFound(c, "tag on sleep")
		return
	}
	respondSuccess(c, "tag removed")
}

// AddComment attaches a comment to a sleep.
// POST /api/sleeps/:id/comments
func (sc *SleepsController) AddComment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Comment string `json:"comment" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "comment is required")
		return
	}

	commentID, err := sc.service.InsertComment(c.Request.Context(), id, req.Comment)
	if err != nil {
		respondServiceError(c, err, "comment", "add comment")
		return
	}
	respondCreated(c, entities.Comment{ID: commentID, SleepID: id, Comment: req.Comment})
}
