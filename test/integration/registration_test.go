package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/curator/internal/core/domain"
)

func postJSON(t *testing.T, client *http.Client, url string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := client.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	return resp
}

// TestRegistrationFlow covers register -> duplicate conflict -> async
// provisioning -> login -> validate against real SQL constraints.
func TestRegistrationFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)
	ctx := context.Background()

	// 1. Register
	resp := postJSON(t, app.Client, app.AuthServer.URL+"/auth/register", map[string]string{
		"username": "alice", "email": "a@x.com", "password": "secret1",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// 2. Same username, different email
	resp = postJSON(t, app.Client, app.AuthServer.URL+"/auth/register", map[string]string{
		"username": "alice", "email": "b@x.com", "password": "secret2",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// 3. Same email, different username
	resp = postJSON(t, app.Client, app.AuthServer.URL+"/auth/register", map[string]string{
		"username": "bob", "email": "a@x.com", "password": "secret3",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Exactly one credential row and one published event
	var count int
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM user_credentials").Scan(&count))
	assert.Equal(t, 1, count)

	events := app.Publisher.Events()
	require.Len(t, events, 1)
	registered, ok := events[0].Event.(domain.UserRegisteredEvent)
	require.True(t, ok)
	assert.Equal(t, "user.registered", events[0].RoutingKey)
	assert.Equal(t, "alice", registered.Username)

	// 4. Login before provisioning fails: the profile fetch is strict.
	resp = postJSON(t, app.Client, app.AuthServer.URL+"/auth/login", map[string]string{
		"username": "alice", "password": "secret1",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)

	// 5. Deliver the registration event more than once; provisioning is
	// idempotent under at-least-once delivery.
	require.NoError(t, app.ProfileSvc.CreateFromEvent(ctx, registered))
	require.NoError(t, app.ProfileSvc.CreateFromEvent(ctx, registered))
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM user_profiles").Scan(&count))
	assert.Equal(t, 1, count)

	// 6. Login now succeeds and returns a display name seeded from the
	// username.
	resp = postJSON(t, app.Client, app.AuthServer.URL+"/auth/login", map[string]string{
		"username": "alice", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login struct {
		AccessToken string `json:"access_token"`
		DisplayName string `json:"display_name"`
		UserID      string `json:"user_id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))
	resp.Body.Close()
	assert.NotEmpty(t, login.AccessToken)
	assert.Equal(t, "alice", login.DisplayName)
	assert.Equal(t, registered.UserID.String(), login.UserID)

	// 7. Wrong password
	resp = postJSON(t, app.Client, app.AuthServer.URL+"/auth/login", map[string]string{
		"username": "alice", "password": "wrong",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// 8. Validate the issued token
	resp, err := app.Client.Post(app.AuthServer.URL+"/auth/validate", "text/plain", strings.NewReader(login.AccessToken))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, login.UserID, resp.Header.Get("X-User-Id"))

	resp, err = app.Client.Post(app.AuthServer.URL+"/auth/validate", "text/plain", strings.NewReader("garbage"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// 9. Profile lookup over HTTP
	getResp, err := app.Client.Get(app.UserServer.URL + "/users/" + login.UserID)
	require.NoError(t, err)
	var profile domain.Profile
	require.NoError(t, json.NewDecoder(getResp.Body).Decode(&profile))
	getResp.Body.Close()
	assert.Equal(t, "alice", profile.DisplayName)
	assert.Equal(t, "a@x.com", profile.Email)
}

// TestProfileCreationRace exercises the primary-key guard directly: two
// concurrent provisioning attempts cannot both insert.
func TestProfileCreationRace(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)
	ctx := context.Background()

	resp := postJSON(t, app.Client, app.AuthServer.URL+"/auth/register", map[string]string{
		"username": "carol", "email": "c@x.com", "password": "secret1",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	events := app.Publisher.Events()
	require.Len(t, events, 1)
	registered := events[0].Event.(domain.UserRegisteredEvent)

	done := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			done <- app.ProfileSvc.CreateFromEvent(ctx, registered)
		}()
	}
	require.NoError(t, <-done)
	require.NoError(t, <-done)

	var count int
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM user_profiles WHERE id = $1", registered.UserID).Scan(&count))
	assert.Equal(t, 1, count)
}
