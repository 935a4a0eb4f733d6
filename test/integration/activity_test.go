package integration

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/curator/internal/core/domain"
)

// TestActivityFlow covers the §-free happy path: record -> classify ->
// enrich -> publish, plus the watchlist lifecycle against the real unique
// constraint.
func TestActivityFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)
	userID := uuid.New()

	// Rating without review classifies as rating_added.
	resp := postJSON(t, app.Client, app.HistoryServer.URL+"/history", map[string]any{
		"user_id": userID, "content_id": "m1", "rating": 9,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var record domain.HistoryRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&record))
	resp.Body.Close()
	assert.Equal(t, "m1", record.ContentID)

	var count int
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM watch_history WHERE user_id = $1", userID).Scan(&count))
	assert.Equal(t, 1, count)

	events := app.Publisher.Events()
	require.Len(t, events, 1)
	activity := events[0].Event.(domain.ActivityEvent)
	assert.Equal(t, "user.activity", events[0].RoutingKey)
	assert.Equal(t, domain.EventRatingAdded, activity.Type)
	assert.Equal(t, "Blade Runner", activity.ContentTitle)
	assert.Contains(t, activity.SynthesizedDescription, "rated 'Blade Runner' (id m1) 9 out of 10")

	// Watchlist add, duplicate add, remove, re-remove.
	resp = postJSON(t, app.Client, app.HistoryServer.URL+"/watchlist", map[string]any{
		"user_id": userID, "content_id": "m1",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app.Client, app.HistoryServer.URL+"/watchlist", map[string]any{
		"user_id": userID, "content_id": "m1",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	req, err := http.NewRequest(http.MethodDelete, app.HistoryServer.URL+"/watchlist/"+userID.String()+"/m1", nil)
	require.NoError(t, err)
	resp, err = app.Client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = app.Client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	// One rating event plus added/removed watchlist events.
	events = app.Publisher.Events()
	require.Len(t, events, 3)
	assert.Equal(t, domain.EventWatchlistAdded, events[1].Event.(domain.ActivityEvent).Type)
	assert.Equal(t, domain.EventWatchlistRemoved, events[2].Event.(domain.ActivityEvent).Type)

	// History endpoint returns the committed record.
	getResp, err := app.Client.Get(app.HistoryServer.URL + "/history/" + userID.String())
	require.NoError(t, err)
	var records []domain.HistoryRecord
	require.NoError(t, json.NewDecoder(getResp.Body).Decode(&records))
	getResp.Body.Close()
	require.Len(t, records, 1)
	assert.Equal(t, "m1", records[0].ContentID)
}

// TestActivitySurvivesContentOutage shuts the content stub down: the primary
// write still succeeds and the published event carries fallback metadata.
func TestActivitySurvivesContentOutage(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)
	app.ContentServer.Close()

	userID := uuid.New()
	resp := postJSON(t, app.Client, app.HistoryServer.URL+"/history", map[string]any{
		"user_id": userID, "content_id": "m9", "rating": 4, "review_text": "so boring",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var count int
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM watch_history WHERE user_id = $1", userID).Scan(&count))
	assert.Equal(t, 1, count)

	events := app.Publisher.Events()
	require.Len(t, events, 1)
	activity := events[0].Event.(domain.ActivityEvent)
	assert.Equal(t, domain.EventReviewAdded, activity.Type)
	assert.Equal(t, "Unknown Movie", activity.ContentTitle)
	assert.Contains(t, activity.SynthesizedDescription, "(negative sentiment detected)")
}
