package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested bookmark does not exist.
var ErrNotFound = errors.New("not found")

// Bookmark represents a row in the bookmarks table. Title and description
// are stored raw; sanitization happens at serialization time.
type Bookmark struct {
	ID          int64  `db:"id"`
	Title       string `db:"title"`
	URL         string `db:"url"`
	Description string `db:"description"`
	Rating      int64  `db:"rating"`
}

// BookmarkStoreIface exposes all bookmark data operations.
// No handler MAY query the DB directly; all access goes through this interface.
type BookmarkStoreIface interface {
	ListAll(ctx context.Context) ([]*Bookmark, error)
	GetByID(ctx context.Context, id int64) (*Bookmark, error)
	Insert(ctx context.Context, n *NewBookmark) (*Bookmark, error)
	Update(ctx context.Context, id int64, patch *BookmarkPatch) error
	Delete(ctx context.Context, id int64) error
}
