package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/sleeptracker/internal/utils"
)

type TagsController struct {
	service TagService
}

func NewTagsController(service TagService) *TagsController {
	return &TagsController{service: service}
}

// tagRequest accepts the color either packed (color) or as "#RRGGBB" (hex).
type tagRequest struct {
	Name  *string `json:"name"`
	Color *int64  `json:"color"`
	Hex   *string `json:"hex"`
}

func (r tagRequest) resolveColor() (*int64, error) {
	if r.Hex != nil {
		color, err := utils.HexToColor(*r.Hex)
		if err != nil {
			return nil, err
		}
		return &color, nil
	}
	return r.Color, nil
}

// ListTags returns all tags, or those whose name contains q.
// GET /api/tags?q=scr
func (tc *TagsController) ListTags(c *gin.Context) {
	ctx := c.Request.Context()

	var err error
	tags := []TagResponse{}
	if q := c.Query("q"); q != "" {
		found, searchErr := tc.service.SearchTags(ctx, q)
		tags, err = newTagResponses(found), searchErr
	} else {
		all, listErr := tc.service.GetAllTags(ctx)
		tags, err = newTagResponses(all), listErr
	}
	if err != nil {
		respondServiceError(c, err, "tags", "list tags")
		return
	}
	c.JSON(http.StatusOK, tags)
}

// GetTag returns a single tag.
// GET /api/tags/:id
func (tc *TagsController) GetTag(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tag, err := tc.service.GetTag(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "tag", "get tag")
		return
	}
	if tag == nil {
		respondNotFound(c, "tag")
		return
	}
	c.JSON(http.StatusOK, newTagResponse(*tag))
}

// CreateTag stores a new tag.
// POST /api/tags {"name": "screen", "hex": "#9256BC"}
func (tc *TagsController) CreateTag(c *gin.Context) {
	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == nil {
		respondBadRequest(c, "name is required")
		return
	}
	color, err := req.resolveColor()
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	if color == nil {
		respondBadRequest(c, "color or hex is required")
		return
	}

	id, err := tc.service.InsertTag(c.Request.Context(), *req.Name, *color)
	if err != nil {
		respondServiceError(c, err, "tag", "create tag")
		return
	}
	tag, err := tc.service.GetTag(c.Request.Context(), id)
	if err != nil || tag == nil {
		respondCreated(c, gin.H{"id": id})
		return
	}
	respondCreated(c, newTagResponse(*tag))
}

// UpdateTag renames and/or recolors a tag.
// PATCH /api/tags/:id
func (tc *TagsController) UpdateTag(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	color, err := req.resolveColor()
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	if req.Name == nil && color == nil {
		respondBadRequest(c, "name, color or hex is required")
		return
	}
	ctx := c.Request.Context()

	if req.Name != nil {
		updated, err := tc.service.UpdateTagName(ctx, id, *req.Name)
		if err != nil {
			respondServiceError(c, err, "tag", "update tag name")
			return
		}
		if !updated {
			respondNotFound(c, "tag")
			return
		}
	}
	if color != nil {
		updated, err := tc.service.UpdateTagColor(ctx, id, *color)
		if err != nil {
			respondServiceError(c, err, "tag", "update tag color")
			return
		}
		if !updated {
			respondNotFound(c, "tag")
			return
		}
	}

	respondSuccess(c, "tag updated")
}

// DeleteTag removes a tag and its sleep links.
// DELETE /api/tags/:id
func (tc *TagsController) DeleteTag(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	deleted, err := tc.service.DeleteTag(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "tag", "delete tag")
		return
	}
	if !deleted {
		respondNotFound(c, "tag")
		return
	}
	respondSuccess(c, "tag deleted")
}

// GetTagSleeps returns every sleep carrying the tag.
// GET /api/tags/:id/sleeps
func (tc *TagsController) GetTagSleeps(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	sleeps, err := tc.service.GetSleepsByTag(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "tag", "get tag sleeps")
		return
	}
	c.JSON(http.StatusOK, newAggregateResponses(sleeps))
}
