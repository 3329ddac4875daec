package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/thinkful-ei-heron/Zac-bookmarks-server/internal/api"
	"github.com/thinkful-ei-heron/Zac-bookmarks-server/internal/logger"
	"github.com/thinkful-ei-heron/Zac-bookmarks-server/internal/store"
	"github.com/thinkful-ei-heron/Zac-bookmarks-server/internal/testutil"
)

// testEnv holds the router and store needed for API integration tests.
type testEnv struct {
	Router    http.Handler
	Bookmarks *store.BookmarkStore
}

// newTestEnv creates an in-memory SQLite test database, runs migrations,
// and wires up the full API router with a real store.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)
	bookmarks := store.NewBookmarkStore(db, "sqlite3")

	router := api.NewRouter(api.Deps{
		Bookmarks: bookmarks,
		Log:       logger.NewNop(),
		BasePath:  "/api",
	})

	return &testEnv{Router: router, Bookmarks: bookmarks}
}

// seedBookmark inserts a bookmark directly through the store.
func seedBookmark(t *testing.T, env *testEnv, n *store.NewBookmark) *store.Bookmark {
	t.Helper()
	b, err := env.Bookmarks.Insert(context.Background(), n)
	if err != nil {
		t.Fatalf("seed bookmark: %v", err)
	}
	return b
}

// maliciousBookmark carries a script injection in the title and an event
// handler in the description.
func maliciousBookmark() *store.NewBookmark {
	return &store.NewBookmark{
		Title:       `L337 H4x0rz <script>alert("xss");</script>`,
		URL:         "http://example.com",
		Description: `Bad <img src="https://url.to.file.which/does-not.exist" onerror="alert(document.cookie);"> but not <strong>all</strong> bad.`,
		Rating:      1,
	}
}
