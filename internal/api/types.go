package api

import (
	"github.com/thinkful-ei-heron/Zac-bookmarks-server/internal/sanitize"
	"github.com/thinkful-ei-heron/Zac-bookmarks-server/internal/store"
)

// BookmarkResponse is the JSON representation of a single bookmark. Text
// fields are sanitized copies of the stored values; the row itself keeps
// the raw text.
type BookmarkResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Rating      int64  `json:"rating"`
}

// serializeBookmark shapes a stored row for the wire. Pure function of its
// input: same row in, byte-identical body out.
func serializeBookmark(b *store.Bookmark) BookmarkResponse {
	return BookmarkResponse{
		ID:          b.ID,
		Title:       sanitize.Clean(b.Title),
		URL:         sanitize.Clean(b.URL),
		Description: sanitize.Clean(b.Description),
		Rating:      b.Rating,
	}
}
