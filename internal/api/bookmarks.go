package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/thinkful-ei-heron/Zac-bookmarks-server/internal/logger"
	"github.com/thinkful-ei-heron/Zac-bookmarks-server/internal/metrics"
	"github.com/thinkful-ei-heron/Zac-bookmarks-server/internal/store"
)

const msgBookmarkNotFound = "Bookmark doesn't exist"

// bookmarksHandler provides REST handlers for the bookmark resource.
type bookmarksHandler struct {
	store      store.BookmarkStoreIface
	log        logger.Logger
	basePath   string
	production bool
}

func registerBookmarkRoutes(r chi.Router, h *bookmarksHandler) {
	r.Get("/bookmarks", h.List)
	r.Post("/bookmarks", h.Create)
	r.Get("/bookmarks/{id}", h.Get)
	r.Patch("/bookmarks/{id}", h.Update)
	r.Delete("/bookmarks/{id}", h.Delete)
}

// List returns every bookmark, serialized.
// GET /bookmarks
//
// @Summary      List bookmarks
// @Description  Returns all bookmarks in insertion order.
// @Tags         Bookmarks
// @Produce      json
// @Success      200  {array}   BookmarkResponse
// @Failure      500  {object}  errorBody
// @Router       /bookmarks [get]
func (h *bookmarksHandler) List(w http.ResponseWriter, r *http.Request) {
	bookmarks, err := h.store.ListAll(r.Context())
	if err != nil {
		h.log.Error("list bookmarks", logger.Error(err))
		writeServerError(w, h.production, err)
		return
	}

	resp := make([]BookmarkResponse, 0, len(bookmarks))
	for _, b := range bookmarks {
		resp = append(resp, serializeBookmark(b))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns a single bookmark by id.
// GET /bookmarks/{id}
//
// @Summary      Get a bookmark
// @Tags         Bookmarks
// @Produce      json
// @Param        id   path      int  true  "Bookmark ID"
// @Success      200  {object}  BookmarkResponse
// @Failure      404  {object}  errorBody
// @Failure      500  {object}  errorBody
// @Router       /bookmarks/{id} [get]
func (h *bookmarksHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, serializeBookmark(b))
}

// Create validates a new bookmark payload, persists it, and returns the
// stored row with its assigned id.
// POST /bookmarks
//
// @Summary      Create a bookmark
// @Tags         Bookmarks
// @Accept       json
// @Produce      json
// @Success      201  {object}  BookmarkResponse
// @Failure      400  {object}  errorBody
// @Failure      500  {object}  errorBody
// @Router       /bookmarks [post]
func (h *bookmarksHandler) Create(w http.ResponseWriter, r *http.Request) {
	fields, ok := decodeFields(w, r)
	if !ok {
		return
	}

	record, err := store.ValidateCreate(fields)
	if err != nil {
		h.log.Warn("create bookmark rejected", logger.String("reason", err.Error()))
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	b, err := h.store.Insert(r.Context(), record)
	if err != nil {
		h.log.Error("insert bookmark", logger.Error(err))
		writeServerError(w, h.production, err)
		return
	}

	metrics.BookmarksCreatedTotal.Inc()
	h.log.Info("bookmark created", logger.Int64("id", b.ID))

	w.Header().Set("Location", fmt.Sprintf("%s/bookmarks/%d", h.basePath, b.ID))
	writeJSON(w, http.StatusCreated, serializeBookmark(b))
}

// Update merges a partial payload onto an existing bookmark. Fields absent
// from the payload keep their stored value.
// PATCH /bookmarks/{id}
//
// @Summary      Update a bookmark
// @Tags         Bookmarks
// @Accept       json
// @Param        id  path  int  true  "Bookmark ID"
// @Success      204  "No Content"
// @Failure      400  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Failure      500  {object}  errorBody
// @Router       /bookmarks/{id} [patch]
func (h *bookmarksHandler) Update(w http.ResponseWriter, r *http.Request) {
	b, ok := h.lookup(w, r)
	if !ok {
		return
	}

	fields, ok := decodeFields(w, r)
	if !ok {
		return
	}

	patch, err := store.ValidateUpdate(fields)
	if err != nil {
		h.log.Warn("update bookmark rejected",
			logger.Int64("id", b.ID),
			logger.String("reason", err.Error()),
		)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.Update(r.Context(), b.ID, patch); err != nil {
		h.log.Error("update bookmark", logger.Int64("id", b.ID), logger.Error(err))
		writeServerError(w, h.production, err)
		return
	}

	metrics.BookmarksUpdatedTotal.Inc()
	h.log.Info("bookmark updated", logger.Int64("id", b.ID))
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a bookmark.
// DELETE /bookmarks/{id}
//
// @Summary      Delete a bookmark
// @Tags         Bookmarks
// @Param        id  path  int  true  "Bookmark ID"
// @Success      204  "No Content"
// @Failure      404  {object}  errorBody
// @Failure      500  {object}  errorBody
// @Router       /bookmarks/{id} [delete]
func (h *bookmarksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	b, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if err := h.store.Delete(r.Context(), b.ID); err != nil {
		// The row can vanish between lookup and delete; that race still
		// reads as not-found to the caller.
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, msgBookmarkNotFound)
			return
		}
		h.log.Error("delete bookmark", logger.Int64("id", b.ID), logger.Error(err))
		writeServerError(w, h.production, err)
		return
	}

	metrics.BookmarksDeletedTotal.Inc()
	h.log.Info("bookmark deleted", logger.Int64("id", b.ID))
	w.WriteHeader(http.StatusNoContent)
}

// lookup resolves the {id} path parameter to a stored bookmark, writing the
// 404 response itself when the id doesn't parse or doesn't exist. Every
// single-item operation starts here.
func (h *bookmarksHandler) lookup(w http.ResponseWriter, r *http.Request) (*store.Bookmark, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// No row can have a non-integer id.
		writeError(w, http.StatusNotFound, msgBookmarkNotFound)
		return nil, false
	}

	b, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.log.Warn("bookmark not found", logger.Int64("id", id))
			writeError(w, http.StatusNotFound, msgBookmarkNotFound)
			return nil, false
		}
		h.log.Error("get bookmark", logger.Int64("id", id), logger.Error(err))
		writeServerError(w, h.production, err)
		return nil, false
	}
	return b, true
}

// decodeFields reads the request body as a loose field map so validation
// can inspect raw values. An empty body decodes to an empty map; malformed
// JSON is rejected outright.
func decodeFields(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	fields := map[string]any{}
	err := json.NewDecoder(r.Body).Decode(&fields)
	if err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}
	return fields, true
}
