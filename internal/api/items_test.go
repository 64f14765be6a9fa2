// ABOUTME: Tests for the items HTTP API handlers
// ABOUTME: Covers CRUD round trips, merge patches, and error status mapping

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duowu/to-do-tutorial/internal/store"
)

func newTestServer(t *testing.T) (*store.MockStore, http.Handler) {
	t.Helper()

	mock := store.NewMockStore()
	return mock, New(mock).Handler()
}

func doRequest(handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeItem(t *testing.T, rec *httptest.ResponseRecorder) store.Item {
	t.Helper()

	var item store.Item
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&item))
	return item
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body["message"]
}

func TestCreateAndGetItem_RoundTrip(t *testing.T) {
	_, handler := newTestServer(t)

	rec := doRequest(handler, http.MethodPost, "/items",
		`{"name": "Create API", "description": "Create a To-Do API"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decodeItem(t, rec)
	assert.NotZero(t, created.UID)
	assert.Equal(t, "Create API", created.Name)
	require.NotNil(t, created.Description)
	assert.Equal(t, "Create a To-Do API", *created.Description)
	assert.False(t, created.Completed)

	rec = doRequest(handler, http.MethodGet, fmt.Sprintf("/items/%d", created.UID), "")
	require.Equal(t, http.StatusOK, rec.Code)

	fetched := decodeItem(t, rec)
	assert.Equal(t, created, fetched)
}

func TestCreateItem_MissingName(t *testing.T) {
	_, handler := newTestServer(t)

	rec := doRequest(handler, http.MethodPost, "/items", `{"description": "nameless"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "name is required", decodeMessage(t, rec))

	// Nothing was persisted
	rec = doRequest(handler, http.MethodGet, "/items", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestCreateItem_MalformedBody(t *testing.T) {
	_, handler := newTestServer(t)

	// A malformed body is an empty candidate, which fails the name check
	rec := doRequest(handler, http.MethodPost, "/items", `this is not json`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "name is required", decodeMessage(t, rec))

	// Same for a non-object body
	rec = doRequest(handler, http.MethodPost, "/items", `[1, 2, 3]`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "name is required", decodeMessage(t, rec))
}

func TestCreateItem_CompletedExplicit(t *testing.T) {
	_, handler := newTestServer(t)

	rec := doRequest(handler, http.MethodPost, "/items", `{"name": "done already", "completed": true}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, decodeItem(t, rec).Completed)
}

func TestGetItem_NotFound(t *testing.T) {
	_, handler := newTestServer(t)

	rec := doRequest(handler, http.MethodGet, "/items/12345", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "item not found", decodeMessage(t, rec))
}

func TestListItems_IncludesAllCreated(t *testing.T) {
	_, handler := newTestServer(t)

	uids := make(map[int64]string)
	for i := 0; i < 3; i++ {
		name := fmt.Sprintf("task %d", i)
		rec := doRequest(handler, http.MethodPost, "/items", fmt.Sprintf(`{"name": %q}`, name))
		require.Equal(t, http.StatusCreated, rec.Code)
		uids[decodeItem(t, rec).UID] = name
	}

	rec := doRequest(handler, http.MethodGet, "/items", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var items []store.Item
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&items))
	require.Len(t, items, 3)
	for _, item := range items {
		assert.Equal(t, uids[item.UID], item.Name)
	}
}

func TestUpdateItem_FullReplace(t *testing.T) {
	_, handler := newTestServer(t)

	rec := doRequest(handler, http.MethodPost, "/items",
		`{"name": "Create API", "description": "Create a To-Do API", "completed": true}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	uid := decodeItem(t, rec).UID

	// completed absent from the replacement body resets it to false
	rec = doRequest(handler, http.MethodPut, fmt.Sprintf("/items/%d", uid),
		`{"name": "Update API", "description": "Update the To-Do API"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	updated := decodeItem(t, rec)
	assert.Equal(t, "Update API", updated.Name)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "Update the To-Do API", *updated.Description)
	assert.False(t, updated.Completed)
}

func TestUpdateItem_MissingName(t *testing.T) {
	_, handler := newTestServer(t)

	rec := doRequest(handler, http.MethodPost, "/items", `{"name": "task"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	uid := decodeItem(t, rec).UID

	rec = doRequest(handler, http.MethodPut, fmt.Sprintf("/items/%d", uid), `{"completed": true}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "name is required", decodeMessage(t, rec))
}

func TestUpdateItem_NotFound(t *testing.T) {
	_, handler := newTestServer(t)

	rec := doRequest(handler, http.MethodPut, "/items/999", `{"name": "ghost"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "item not found", decodeMessage(t, rec))
}

func TestPatchItem_PreservesUnspecifiedFields(t *testing.T) {
	_, handler := newTestServer(t)

	rec := doRequest(handler, http.MethodPost, "/items",
		`{"name": "Create API", "description": "Create a To-Do API"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	uid := decodeItem(t, rec).UID

	rec = doRequest(handler, http.MethodPatch, fmt.Sprintf("/items/%d", uid), `{"completed": true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	patched := decodeItem(t, rec)
	assert.Equal(t, "Create API", patched.Name)
	require.NotNil(t, patched.Description)
	assert.Equal(t, "Create a To-Do API", *patched.Description)
	assert.True(t, patched.Completed)
}

func TestPatchItem_EmptyBody(t *testing.T) {
	_, handler := newTestServer(t)

	rec := doRequest(handler, http.MethodPost, "/items", `{"name": "task"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	uid := decodeItem(t, rec).UID

	// PATCH requires no fields; an empty patch is a no-op merge
	rec = doRequest(handler, http.MethodPatch, fmt.Sprintf("/items/%d", uid), `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "task", decodeItem(t, rec).Name)
}

func TestPatchItem_NotFound(t *testing.T) {
	_, handler := newTestServer(t)

	rec := doRequest(handler, http.MethodPatch, "/items/999", `{"completed": true}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "item not found", decodeMessage(t, rec))
}

func TestDeleteItem(t *testing.T) {
	_, handler := newTestServer(t)

	rec := doRequest(handler, http.MethodPost, "/items", `{"name": "to delete"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	uid := decodeItem(t, rec).UID

	rec = doRequest(handler, http.MethodDelete, fmt.Sprintf("/items/%d", uid), "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	// Delete-then-fetch always reports not found
	rec = doRequest(handler, http.MethodGet, fmt.Sprintf("/items/%d", uid), "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(handler, http.MethodDelete, fmt.Sprintf("/items/%d", uid), "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "item not found", decodeMessage(t, rec))
}

func TestInvalidUID(t *testing.T) {
	_, handler := newTestServer(t)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		rec := doRequest(handler, method, "/items/abc", `{"name": "x"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "method %s", method)
		assert.Equal(t, "invalid item uid", decodeMessage(t, rec), "method %s", method)
	}
}

func TestStoreFailure_MapsTo400(t *testing.T) {
	mock, handler := newTestServer(t)
	mock.Err = errors.New("database is locked")

	rec := doRequest(handler, http.MethodGet, "/items", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "database is locked", decodeMessage(t, rec))
}
