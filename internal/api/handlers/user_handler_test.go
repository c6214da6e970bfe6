package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KCCPMG/ReadingList/internal/api"
	"github.com/KCCPMG/ReadingList/internal/config"
	"github.com/KCCPMG/ReadingList/internal/database"
	"github.com/KCCPMG/ReadingList/internal/services"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := database.New(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	svc := services.NewUserService(db, config.Test())
	srv := httptest.NewServer(api.NewRouter(svc))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, client *http.Client, url, token string, body interface{}) *http.Response {
	t.Helper()

	buf, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(buf))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestRegisterLoginAuthenticateFlow(t *testing.T) {
	srv := newTestServer(t)
	client := srv.Client()

	// register
	resp := postJSON(t, client, srv.URL+"/api/v1/register", "", map[string]string{
		"username": "alice", "email": "alice@example.com", "password": "pw1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	registered := decodeBody(t, resp)
	assert.Equal(t, "alice", registered["username"])
	assert.NotContains(t, registered, "passwordHash")

	// duplicate username
	resp = postJSON(t, client, srv.URL+"/api/v1/register", "", map[string]string{
		"username": "alice", "email": "alice2@example.com", "password": "pw2",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	dup := decodeBody(t, resp)
	assert.Contains(t, dup["error"], "username already exists")

	// wrong password
	resp = postJSON(t, client, srv.URL+"/api/v1/login", "", map[string]string{
		"username": "alice", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	bad := decodeBody(t, resp)
	assert.Equal(t, "Invalid Credentials", bad["error"])

	// correct login
	resp = postJSON(t, client, srv.URL+"/api/v1/login", "", map[string]string{
		"username": "alice", "password": "pw1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	loggedIn := decodeBody(t, resp)
	token, _ := loggedIn["token"].(string)
	require.NotEmpty(t, token)
	user, _ := loggedIn["user"].(map[string]interface{})
	require.NotNil(t, user)
	assert.Equal(t, "alice", user["username"])
	assert.NotContains(t, user, "passwordHash")

	// authenticated /me
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	meResp, err := client.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, meResp.StatusCode)
	me := decodeBody(t, meResp)
	assert.Equal(t, "alice", me["username"])
}

func TestAuthenticatedRoutesRejectBadTokens(t *testing.T) {
	srv := newTestServer(t)
	client := srv.Client()

	// no token at all
	resp, err := client.Get(srv.URL + "/api/v1/me")
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// garbage token
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err = client.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Invalid Token", body["error"])
}

func TestTagAndLinkEndpoints(t *testing.T) {
	srv := newTestServer(t)
	client := srv.Client()

	resp := postJSON(t, client, srv.URL+"/api/v1/register", "", map[string]string{
		"username": "bob", "email": "bob@example.com", "password": "pw",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, client, srv.URL+"/api/v1/login", "", map[string]string{
		"username": "bob", "password": "pw",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := decodeBody(t, resp)["token"].(string)
	require.NotEmpty(t, token)

	// create a tag
	resp = postJSON(t, client, srv.URL+"/api/v1/me/tags", token, map[string]string{"tagText": "golang"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// duplicate tag
	resp = postJSON(t, client, srv.URL+"/api/v1/me/tags", token, map[string]string{"tagText": "golang"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	dup := decodeBody(t, resp)
	assert.Equal(t, "A tag with this text already exists", dup["error"])

	// invalid tag
	resp = postJSON(t, client, srv.URL+"/api/v1/me/tags", token, map[string]string{"tagText": "bad tag!"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// create a link referencing the tag
	resp = postJSON(t, client, srv.URL+"/api/v1/me/links", token, map[string]interface{}{
		"url": "https://example.com/post", "title": "A Post", "tags": []string{"golang"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	withLink := decodeBody(t, resp)
	links, _ := withLink["links"].([]interface{})
	require.Len(t, links, 1)

	// duplicate link url
	resp = postJSON(t, client, srv.URL+"/api/v1/me/links", token, map[string]interface{}{
		"url": "https://example.com/post",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	dupLink := decodeBody(t, resp)
	assert.Equal(t, "You already have a link saved with this url", dupLink["error"])

	// remove the tag
	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/v1/me/tags/golang", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = client.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	afterRemove := decodeBody(t, resp)
	tags, _ := afterRemove["tags"].([]interface{})
	assert.Empty(t, tags)
}
