package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/thinkful-ei-heron/Zac-bookmarks-server/internal/api"
	"github.com/thinkful-ei-heron/Zac-bookmarks-server/internal/store"
)

func doJSON(t *testing.T, env *testEnv, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		r.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, r)
	return rec
}

func decodeErrorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error.Message
}

func TestBookmarks_List_Empty(t *testing.T) {
	env := newTestEnv(t)
	rec := doJSON(t, env, "GET", "/api/bookmarks", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("body = %q, want []", got)
	}
}

func TestBookmarks_List_All(t *testing.T) {
	env := newTestEnv(t)
	a := seedBookmark(t, env, &store.NewBookmark{Title: "Google", URL: "http://www.google.com", Description: "search", Rating: 4})
	b := seedBookmark(t, env, &store.NewBookmark{Title: "Netflix", URL: "http://www.netflix.com", Description: "streaming", Rating: 5})

	rec := doJSON(t, env, "GET", "/api/bookmarks", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp []api.BookmarkResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("len = %d, want 2", len(resp))
	}
	if resp[0].ID != a.ID || resp[0].Title != "Google" || resp[0].Rating != 4 {
		t.Errorf("first = %+v", resp[0])
	}
	if resp[1].ID != b.ID || resp[1].Title != "Netflix" {
		t.Errorf("second = %+v", resp[1])
	}
}

func TestBookmarks_List_SanitizesContent(t *testing.T) {
	env := newTestEnv(t)
	seedBookmark(t, env, maliciousBookmark())

	rec := doJSON(t, env, "GET", "/api/bookmarks", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", rec.Code, rec.Body.String())
	}

	var resp []api.BookmarkResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if want := `L337 H4x0rz &lt;script&gt;alert("xss");&lt;/script&gt;`; resp[0].Title != want {
		t.Errorf("title = %q, want %q", resp[0].Title, want)
	}
	if want := `Bad <img src="https://url.to.file.which/does-not.exist"> but not <strong>all</strong> bad.`; resp[0].Description != want {
		t.Errorf("description = %q, want %q", resp[0].Description, want)
	}
}

func TestBookmarks_Get_Found(t *testing.T) {
	env := newTestEnv(t)
	b := seedBookmark(t, env, &store.NewBookmark{Title: "Google", URL: "http://www.google.com", Description: "search", Rating: 4})

	rec := doJSON(t, env, "GET", fmt.Sprintf("/api/bookmarks/%d", b.ID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp api.BookmarkResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ID != b.ID || resp.Title != "Google" || resp.URL != "http://www.google.com" ||
		resp.Description != "search" || resp.Rating != 4 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestBookmarks_Get_NotFound(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/api/bookmarks/1234", "/api/bookmarks/not-a-number"} {
		rec := doJSON(t, env, "GET", path, "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("GET %s status = %d, want %d", path, rec.Code, http.StatusNotFound)
			continue
		}
		if msg := decodeErrorMessage(t, rec); msg != "Bookmark doesn't exist" {
			t.Errorf("GET %s message = %q, want %q", path, msg, "Bookmark doesn't exist")
		}
	}
}

func TestBookmarks_Create_Created(t *testing.T) {
	env := newTestEnv(t)

	body := `{"title":"Google","url":"http://www.google.com","description":"search","rating":4}`
	rec := doJSON(t, env, "POST", "/api/bookmarks", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var resp api.BookmarkResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ID == 0 {
		t.Fatalf("id = 0, want store-assigned")
	}
	if want := fmt.Sprintf("/api/bookmarks/%d", resp.ID); rec.Header().Get("Location") != want {
		t.Errorf("Location = %q, want %q", rec.Header().Get("Location"), want)
	}

	// A follow-up read returns identical content.
	rec2 := doJSON(t, env, "GET", fmt.Sprintf("/api/bookmarks/%d", resp.ID), "")
	if rec2.Code != http.StatusOK {
		t.Fatalf("follow-up status = %d", rec2.Code)
	}
	var resp2 api.BookmarkResponse
	if err := json.NewDecoder(rec2.Body).Decode(&resp2); err != nil {
		t.Fatalf("decode follow-up: %v", err)
	}
	if resp != resp2 {
		t.Errorf("follow-up = %+v, want %+v", resp2, resp)
	}
}

func TestBookmarks_Create_MissingFields(t *testing.T) {
	payloads := map[string]string{
		"title":  `{"url":"http://a.com","rating":3}`,
		"url":    `{"title":"A","rating":3}`,
		"rating": `{"title":"A","url":"http://a.com"}`,
	}

	for field, body := range payloads {
		t.Run(field, func(t *testing.T) {
			env := newTestEnv(t)
			rec := doJSON(t, env, "POST", "/api/bookmarks", body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusBadRequest, rec.Body.String())
			}
			if msg := decodeErrorMessage(t, rec); msg != field+" is required" {
				t.Errorf("message = %q, want %q", msg, field+" is required")
			}

			// Nothing was persisted.
			list, err := env.Bookmarks.ListAll(context.Background())
			if err != nil {
				t.Fatalf("ListAll: %v", err)
			}
			if len(list) != 0 {
				t.Errorf("persisted %d rows, want 0", len(list))
			}
		})
	}
}

func TestBookmarks_Create_InvalidRating(t *testing.T) {
	for _, rating := range []string{"-1", "6", "3.5", `"invalid"`} {
		t.Run(rating, func(t *testing.T) {
			env := newTestEnv(t)
			body := fmt.Sprintf(`{"title":"A","url":"http://a.com","rating":%s}`, rating)
			rec := doJSON(t, env, "POST", "/api/bookmarks", body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusBadRequest, rec.Body.String())
			}
			if msg := decodeErrorMessage(t, rec); msg != "rating must be a number between 0 and 5" {
				t.Errorf("message = %q", msg)
			}
		})
	}
}

func TestBookmarks_Create_SanitizesResponse(t *testing.T) {
	env := newTestEnv(t)
	m := maliciousBookmark()
	payload, err := json.Marshal(map[string]any{
		"title":       m.Title,
		"url":         m.URL,
		"description": m.Description,
		"rating":      m.Rating,
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	rec := doJSON(t, env, "POST", "/api/bookmarks", string(payload))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d; body: %s", rec.Code, rec.Body.String())
	}

	var resp api.BookmarkResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if want := `L337 H4x0rz &lt;script&gt;alert("xss");&lt;/script&gt;`; resp.Title != want {
		t.Errorf("title = %q, want %q", resp.Title, want)
	}
	if want := `Bad <img src="https://url.to.file.which/does-not.exist"> but not <strong>all</strong> bad.`; resp.Description != want {
		t.Errorf("description = %q, want %q", resp.Description, want)
	}

	// The stored row keeps the raw text; sanitization is serialization-only.
	stored, err := env.Bookmarks.GetByID(context.Background(), resp.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Title != m.Title || stored.Description != m.Description {
		t.Errorf("stored row was sanitized: %+v", stored)
	}
}

func TestBookmarks_Update_PartialMerge(t *testing.T) {
	env := newTestEnv(t)
	b := seedBookmark(t, env, &store.NewBookmark{Title: "Google", URL: "http://www.google.com", Description: "search", Rating: 4})

	rec := doJSON(t, env, "PATCH", fmt.Sprintf("/api/bookmarks/%d", b.ID), `{"title":"Updated title"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusNoContent, rec.Body.String())
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rec.Body.String())
	}

	got, err := env.Bookmarks.GetByID(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "Updated title" {
		t.Errorf("title = %q, want %q", got.Title, "Updated title")
	}
	if got.URL != b.URL || got.Description != b.Description || got.Rating != b.Rating {
		t.Errorf("unpatched fields changed: %+v", got)
	}
}

func TestBookmarks_Update_EmptyBody(t *testing.T) {
	env := newTestEnv(t)
	b := seedBookmark(t, env, &store.NewBookmark{Title: "Google", URL: "http://www.google.com", Description: "search", Rating: 4})

	for _, body := range []string{"", "{}", `{"title":"","rating":0}`} {
		rec := doJSON(t, env, "PATCH", fmt.Sprintf("/api/bookmarks/%d", b.ID), body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want %d", body, rec.Code, http.StatusBadRequest)
			continue
		}
		if msg := decodeErrorMessage(t, rec); msg != "Request body must contain content" {
			t.Errorf("body %q: message = %q", body, msg)
		}
	}

	// The stored record is unchanged.
	got, err := env.Bookmarks.GetByID(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if *got != *b {
		t.Errorf("record changed: got %+v, want %+v", got, b)
	}
}

func TestBookmarks_Update_NotFound(t *testing.T) {
	env := newTestEnv(t)
	rec := doJSON(t, env, "PATCH", "/api/bookmarks/999", `{"title":"ghost"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if msg := decodeErrorMessage(t, rec); msg != "Bookmark doesn't exist" {
		t.Errorf("message = %q", msg)
	}
}

func TestBookmarks_Delete(t *testing.T) {
	env := newTestEnv(t)
	ids := make([]int64, 0, 3)
	for _, title := range []string{"Google", "Facebook", "Netflix"} {
		b := seedBookmark(t, env, &store.NewBookmark{Title: title, URL: "http://example.com", Rating: 2})
		ids = append(ids, b.ID)
	}

	rec := doJSON(t, env, "DELETE", fmt.Sprintf("/api/bookmarks/%d", ids[1]), "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusNoContent, rec.Body.String())
	}

	listRec := doJSON(t, env, "GET", "/api/bookmarks", "")
	var resp []api.BookmarkResponse
	if err := json.NewDecoder(listRec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("len = %d, want 2", len(resp))
	}
	if resp[0].ID != ids[0] || resp[1].ID != ids[2] {
		t.Errorf("remaining ids = [%d, %d], want [%d, %d]", resp[0].ID, resp[1].ID, ids[0], ids[2])
	}
}

func TestBookmarks_Delete_NotFound(t *testing.T) {
	env := newTestEnv(t)
	rec := doJSON(t, env, "DELETE", "/api/bookmarks/999", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if msg := decodeErrorMessage(t, rec); msg != "Bookmark doesn't exist" {
		t.Errorf("message = %q", msg)
	}
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)
	rec := doJSON(t, env, "GET", "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "ok" {
		t.Errorf("status = %q, want ok", body.Status)
	}
}
