package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mrlokans/sleeptracker/internal/database"
	"github.com/mrlokans/sleeptracker/internal/manager"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *manager.Manager, *database.Database) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := filepath.Join(t.TempDir(), "http.db")
	db, err := database.NewDatabase(context.Background(), dbPath, database.Options{}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	m := manager.NewFromDatabase(db, zaptest.NewLogger(t))
	router := NewRouter(RouterConfig{
		Sleeps:   m,
		Tags:     m,
		Comments: m,
		Store:    db,
		Repairer: db,
		Logger:   zaptest.NewLogger(t),
		Version:  "test",
	})
	return router, m, db
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestSleepsAPI_CreateAndGet(t *testing.T) {
	router, m, _ := setupTestRouter(t)
	ctx := context.Background()

	tagID, err := m.InsertTag(ctx, "screen", 9590460)
	require.NoError(t, err)

	w := doRequest(t, router, http.MethodPost, "/api/sleeps", gin.H{
		"night":    "2022-11-24",
		"amount":   7.5,
		"quality":  4,
		"tag_ids":  []int64{tagID},
		"comments": []string{"woke up once"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[SleepResponse](t, w)
	assert.Equal(t, "2022-11-24", created.Night)
	require.NotNil(t, created.Tags)
	assert.Len(t, *created.Tags, 1)

	w = doRequest(t, router, http.MethodGet, "/api/sleeps/"+itoa(created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[SleepResponse](t, w)

	require.NotNil(t, got.Date)
	assert.Equal(t, NightResponse{Day: 24, Month: 11, Year: 2022, Date: "2022-11-24"}, *got.Date)
	assert.Equal(t, 7.5, got.Amount)
	assert.Equal(t, int64(4), got.Quality)
	require.NotNil(t, got.Tags)
	require.Len(t, *got.Tags, 1)
	assert.Equal(t, "screen", (*got.Tags)[0].Name)
	assert.Equal(t, "#9256BC", (*got.Tags)[0].Hex)
	require.NotNil(t, got.Comments)
	require.Len(t, *got.Comments, 1)
	assert.Equal(t, "woke up once", (*got.Comments)[0].Comment)
}

func TestSleepsAPI_GetWithoutAttachments(t *testing.T) {
	router, m, _ := setupTestRouter(t)

	id, err := m.InsertSleep(context.Background(), "2022-11-24", 6, 2)
	require.NoError(t, err)

	w := doRequest(t, router, http.MethodGet, "/api/sleeps/"+itoa(id), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.Equal(t, []any{}, raw["tags"])
	assert.Equal(t, []any{}, raw["comments"])
}

func TestSleepsAPI_CreateRejectsInvalidInput(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	t.Run("missing fields", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/sleeps", gin.H{"night": "2022-11-24"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed night", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/sleeps", gin.H{"night": "24/11/2022", "amount": 7, "quality": 3})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "validation", decode[ErrorResponse](t, w).Code)
	})

	t.Run("negative amount", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/sleeps", gin.H{"night": "2022-11-24", "amount": -1, "quality": 3})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSleepsAPI_CreateWithUnknownTag(t *testing.T) {
	router, m, _ := setupTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/sleeps", gin.H{
		"night":   "2022-11-24",
		"amount":  7,
		"quality": 3,
		"tag_ids": []int64{999},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.NotEmpty(t, w.Header().Get("Location"))

	// The sleep itself is kept.
	all, err := m.GetAllSleeps(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSleepsAPI_List(t *testing.T) {
	router, m, _ := setupTestRouter(t)
	ctx := context.Background()

	nov, err := m.InsertSleep(ctx, "2022-11-24", 7, 3)
	require.NoError(t, err)
	dec, err := m.InsertSleep(ctx, "2022-12-01", 8, 4)
	require.NoError(t, err)
	tagID, err := m.InsertTag(ctx, "late", 255)
	require.NoError(t, err)
	_, err = m.AddTagsToSleep(ctx, dec, []int64{tagID})
	require.NoError(t, err)

	t.Run("all", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/api/sleeps", nil)
		require.Equal(t, http.StatusOK, w.Code)
		sleeps := decode[[]SleepResponse](t, w)
		require.Len(t, sleeps, 2)
		assert.Nil(t, sleeps[0].Tags)
	})

	t.Run("by month", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/api/sleeps?month=11&year=2022", nil)
		require.Equal(t, http.StatusOK, w.Code)
		sleeps := decode[[]SleepResponse](t, w)
		require.Len(t, sleeps, 1)
		assert.Equal(t, nov, sleeps[0].ID)
	})

	t.Run("by month rejects bad month", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/api/sleeps?month=13&year=2022", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("by month requires numbers", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/api/sleeps?month=nov&year=2022", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("by ids with tags", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/api/sleeps?ids="+itoa(dec)+"&include_tags=true", nil)
		require.Equal(t, http.StatusOK, w.Code)
		sleeps := decode[[]SleepResponse](t, w)
		require.Len(t, sleeps, 1)
		require.NotNil(t, sleeps[0].Tags)
		require.Len(t, *sleeps[0].Tags, 1)
		assert.Equal(t, "late", (*sleeps[0].Tags)[0].Name)
	})

	t.Run("bad ids", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/api/sleeps?ids=1,x", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("range", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/api/sleeps/range?start=2022-11-25&end=2022-12-31", nil)
		require.Equal(t, http.StatusOK, w.Code)
		sleeps := decode[[]SleepResponse](t, w)
		require.Len(t, sleeps, 1)
		assert.Equal(t, dec, sleeps[0].ID)
	})

	t.Run("range rejects bad bound", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/api/sleeps/range?start=2022&end=2022-12", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSleepsAPI_UpdateAndDelete(t *testing.T) {
	router, m, _ := setupTestRouter(t)
	ctx := context.Background()

	id, err := m.InsertSleep(ctx, "2022-11-24", 7, 3)
	require.NoError(t, err)

	w := doRequest(t, router, http.MethodPatch, "/api/sleeps/"+itoa(id), gin.H{"amount": 8.25, "quality": 5})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	agg, err := m.GetSleep(ctx, id, false)
	require.NoError(t, err)
	require.NotNil(t, agg)
	assert.Equal(t, 8.25, agg.Sleep.Amount)
	assert.Equal(t, int64(5), agg.Sleep.Quality)

	w = doRequest(t, router, http.MethodPatch, "/api/sleeps/"+itoa(id), gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodPatch, "/api/sleeps/999", gin.H{"amount": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, router, http.MethodDelete, "/api/sleeps/"+itoa(id), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodDelete, "/api/sleeps/"+itoa(id), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/sleeps/"+itoa(id), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSleepsAPI_InvalidID(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	for _, path := range []string{"/api/sleeps/abc", "/api/sleeps/0", "/api/sleeps/-3"} {
		w := doRequest(t, router, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestSleepsAPI_TagsAndComments(t *testing.T) {
	router, m, _ := setupTestRouter(t)
	ctx := context.Background()

	sleepID, err := m.InsertSleep(ctx, "2022-11-24", 7, 3)
	require.NoError(t, err)
	tagA, err := m.InsertTag(ctx, "coffee", 0)
	require.NoError(t, err)
	tagB, err := m.InsertTag(ctx, "screen", 0)
	require.NoError(t, err)

	w := doRequest(t, router, http.MethodPost, "/api/sleeps/"+itoa(sleepID)+"/tags", gin.H{"tag_ids": []int64{tagA, tagB}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(t, router, http.MethodGet, "/api/sleeps/"+itoa(sleepID)+"/tags", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]TagResponse](t, w), 2)

	w = doRequest(t, router, http.MethodDelete, "/api/sleeps/"+itoa(sleepID)+"/tags/"+itoa(tagA), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodDelete, "/api/sleeps/"+itoa(sleepID)+"/tags/"+itoa(tagA), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/sleeps/"+itoa(sleepID)+"/tags", gin.H{"tag_ids": []int64{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/sleeps/"+itoa(sleepID)+"/comments", gin.H{"comment": "restless"})
	require.Equal(t, http.StatusCreated, w.Code)
	comment := decode[map[string]any](t, w)
	assert.Equal(t, "restless", comment["comment"])

	w = doRequest(t, router, http.MethodGet, "/api/sleeps/"+itoa(sleepID)+"/comments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 1)

	w = doRequest(t, router, http.MethodPost, "/api/sleeps/999/comments", gin.H{"comment": "orphan"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestTagsAPI(t *testing.T) {
	router, m, _ := setupTestRouter(t)
	ctx := context.Background()

	w := doRequest(t, router, http.MethodPost, "/api/tags", gin.H{"name": "Screen time", "hex": "#9256BC"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[TagResponse](t, w)
	assert.Equal(t, int64(9590460), created.Color)

	w = doRequest(t, router, http.MethodPost, "/api/tags", gin.H{"name": "coffee", "color": 255})
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("create requires color", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/tags", gin.H{"name": "x"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("create rejects bad hex", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/tags", gin.H{"name": "x", "hex": "#FFF"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("create rejects empty name", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPost, "/api/tags", gin.H{"name": "", "color": 1})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("list and search", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/api/tags", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]TagResponse](t, w), 2)

		w = doRequest(t, router, http.MethodGet, "/api/tags?q=screen", nil)
		require.Equal(t, http.StatusOK, w.Code)
		found := decode[[]TagResponse](t, w)
		require.Len(t, found, 1)
		assert.Equal(t, created.ID, found[0].ID)
	})

	t.Run("update", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPatch, "/api/tags/"+itoa(created.ID), gin.H{"name": "screens", "hex": "FF0000"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		tag, err := m.GetTag(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, tag)
		assert.Equal(t, "screens", tag.Name)
		assert.Equal(t, int64(16711680), tag.Color)

		w = doRequest(t, router, http.MethodPatch, "/api/tags/999", gin.H{"name": "ghost"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("sleeps by tag and delete", func(t *testing.T) {
		sleepID, err := m.InsertSleep(ctx, "2022-11-24", 7, 3)
		require.NoError(t, err)
		_, err = m.AddTagsToSleep(ctx, sleepID, []int64{created.ID})
		require.NoError(t, err)

		w := doRequest(t, router, http.MethodGet, "/api/tags/"+itoa(created.ID)+"/sleeps", nil)
		require.Equal(t, http.StatusOK, w.Code)
		sleeps := decode[[]SleepResponse](t, w)
		require.Len(t, sleeps, 1)
		assert.Equal(t, sleepID, sleeps[0].ID)

		w = doRequest(t, router, http.MethodDelete, "/api/tags/"+itoa(created.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = doRequest(t, router, http.MethodGet, "/api/tags/"+itoa(created.ID), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		tags, err := m.GetTagsBySleep(ctx, sleepID)
		require.NoError(t, err)
		assert.Empty(t, tags)
	})
}

func TestCommentsAPI(t *testing.T) {
	router, m, _ := setupTestRouter(t)
	ctx := context.Background()

	sleepID, err := m.InsertSleep(ctx, "2022-11-24", 7, 3)
	require.NoError(t, err)
	commentID, err := m.InsertComment(ctx, sleepID, "first")
	require.NoError(t, err)

	w := doRequest(t, router, http.MethodGet, "/api/comments/"+itoa(commentID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "first", decode[map[string]any](t, w)["comment"])

	w = doRequest(t, router, http.MethodPatch, "/api/comments/"+itoa(commentID), gin.H{"comment": "edited"})
	require.Equal(t, http.StatusOK, w.Code)

	comment, err := m.GetComment(ctx, commentID)
	require.NoError(t, err)
	require.NotNil(t, comment)
	assert.Equal(t, "edited", comment.Comment)

	w = doRequest(t, router, http.MethodPatch, "/api/comments/"+itoa(commentID), gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodDelete, "/api/comments/"+itoa(commentID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/comments/"+itoa(commentID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, router, http.MethodDelete, "/api/comments/"+itoa(commentID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_ClosedStore(t *testing.T) {
	router, _, db := setupTestRouter(t)
	require.NoError(t, db.Close())

	w := doRequest(t, router, http.MethodGet, "/api/sleeps", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "unavailable", decode[ErrorResponse](t, w).Code)

	w = doRequest(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	health := decode[HealthResponse](t, w)
	assert.Equal(t, "unhealthy", health.Status)
}

func TestRouter_Health(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	health := decode[HealthResponse](t, w)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "test", health.Version)
	assert.Equal(t, "ok", health.Checks["database"])

	w = doRequest(t, router, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_ReadOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)

	dbPath := filepath.Join(t.TempDir(), "readonly.db")
	db, err := database.NewDatabase(context.Background(), dbPath, database.Options{}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	m := manager.NewFromDatabase(db, zaptest.NewLogger(t))
	router := NewRouter(RouterConfig{Sleeps: m, Tags: m, Comments: m, Store: db, ReadOnly: true})

	w := doRequest(t, router, http.MethodPost, "/api/tags", gin.H{"name": "coffee", "color": 1})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/tags", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]TagResponse](t, w))
}
