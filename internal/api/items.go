// ABOUTME: HTTP handlers for the /items collection and single-item routes
// ABOUTME: Maps verbs onto store operations with merge semantics for PATCH

package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/duowu/to-do-tutorial/internal/store"
)

// itemPayload is the JSON request body for POST, PUT, and PATCH.
// All fields are pointers so a present field can be told apart from
// an absent one, which is what gives PATCH its merge semantics.
type itemPayload struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// decodeItemPayload parses a request body into an itemPayload.
// A malformed or non-object body is treated as an empty payload: all
// fields absent. For POST and PUT that fails the required-name check;
// for PATCH it is a no-op merge.
func decodeItemPayload(r io.Reader) itemPayload {
	var payload itemPayload
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return itemPayload{}
	}
	return payload
}

// parseUID extracts and parses the {uid} path segment.
func parseUID(r *http.Request) (int64, error) {
	uid, err := strconv.ParseInt(r.PathValue("uid"), 10, 64)
	if err != nil {
		return 0, errInvalidUID
	}
	return uid, nil
}

// handleListItems handles GET /items.
// It returns a JSON array of every stored item.
func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListItems(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}

	// An empty collection serializes as [], not null
	if items == nil {
		items = []*store.Item{}
	}
	s.respondJSON(w, http.StatusOK, items)
}

// handleGetItem handles GET /items/{uid}.
func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	uid, err := parseUID(r)
	if err != nil {
		s.respondError(w, err)
		return
	}

	item, err := s.store.GetItem(r.Context(), uid)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, item)
}

// handleCreateItem handles POST /items.
// The body must carry a name; description and completed are optional,
// with completed defaulting to false. Responds 201 with the created
// item including its assigned uid.
func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	payload := decodeItemPayload(r.Body)
	if payload.Name == nil {
		s.respondError(w, errNameRequired)
		return
	}

	item := &store.Item{
		Name:        *payload.Name,
		Description: payload.Description,
		Completed:   payload.Completed != nil && *payload.Completed,
	}

	if err := s.store.CreateItem(r.Context(), item); err != nil {
		s.respondError(w, err)
		return
	}

	s.logger.Info("created item", "uid", item.UID)
	s.respondJSON(w, http.StatusCreated, item)
}

// handleUpdateItem handles PUT /items/{uid}.
// All mutable fields are replaced: an absent description or completed
// resets to null and false respectively.
func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	uid, err := parseUID(r)
	if err != nil {
		s.respondError(w, err)
		return
	}

	payload := decodeItemPayload(r.Body)
	if payload.Name == nil {
		s.respondError(w, errNameRequired)
		return
	}

	item := &store.Item{
		UID:         uid,
		Name:        *payload.Name,
		Description: payload.Description,
		Completed:   payload.Completed != nil && *payload.Completed,
	}

	if err := s.store.UpdateItem(r.Context(), item); err != nil {
		s.respondError(w, err)
		return
	}

	s.logger.Info("updated item", "uid", uid)
	s.respondJSON(w, http.StatusOK, item)
}

// handlePatchItem handles PATCH /items/{uid}.
// Only the fields present in the body are applied over the stored
// item; everything else keeps its current value.
func (s *Server) handlePatchItem(w http.ResponseWriter, r *http.Request) {
	uid, err := parseUID(r)
	if err != nil {
		s.respondError(w, err)
		return
	}

	payload := decodeItemPayload(r.Body)
	patch := store.ItemPatch{
		Name:        payload.Name,
		Description: payload.Description,
		Completed:   payload.Completed,
	}

	item, err := s.store.PatchItem(r.Context(), uid, patch)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.logger.Info("patched item", "uid", uid)
	s.respondJSON(w, http.StatusOK, item)
}

// handleDeleteItem handles DELETE /items/{uid}.
// Responds 204 with an empty body on success.
func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	uid, err := parseUID(r)
	if err != nil {
		s.respondError(w, err)
		return
	}

	if err := s.store.DeleteItem(r.Context(), uid); err != nil {
		s.respondError(w, err)
		return
	}

	s.logger.Info("deleted item", "uid", uid)
	w.WriteHeader(http.StatusNoContent)
}
