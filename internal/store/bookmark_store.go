package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// BookmarkStore is the sqlx-backed implementation of BookmarkStoreIface.
// The driver name is needed because PostgreSQL has no LastInsertId; inserts
// use RETURNING there.
type BookmarkStore struct {
	db     *sqlx.DB
	driver string
}

func NewBookmarkStore(db *sqlx.DB, driver string) *BookmarkStore {
	return &BookmarkStore{db: db, driver: driver}
}

// q rebinds ? placeholders to the driver's native format ($1,$2,... for PostgreSQL).
func (s *BookmarkStore) q(query string) string { return s.db.Rebind(query) }

// ListAll returns every bookmark in insertion order.
func (s *BookmarkStore) ListAll(ctx context.Context) ([]*Bookmark, error) {
	bookmarks := []*Bookmark{}
	err := s.db.SelectContext(ctx, &bookmarks, `SELECT * FROM bookmarks ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	return bookmarks, nil
}

// GetByID returns the bookmark matching id, or ErrNotFound.
func (s *BookmarkStore) GetByID(ctx context.Context, id int64) (*Bookmark, error) {
	var b Bookmark
	err := s.db.GetContext(ctx, &b, s.q(`SELECT * FROM bookmarks WHERE id = ?`), id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Insert persists a validated record and returns the stored row including
// its assigned id. The database is the sole source of id assignment.
func (s *BookmarkStore) Insert(ctx context.Context, n *NewBookmark) (*Bookmark, error) {
	var id int64
	if s.driver == "postgres" {
		err := s.db.QueryRowxContext(ctx, s.q(`
			INSERT INTO bookmarks (title, url, description, rating) VALUES (?, ?, ?, ?) RETURNING id
		`), n.Title, n.URL, n.Description, n.Rating).Scan(&id)
		if err != nil {
			return nil, err
		}
	} else {
		res, err := s.db.ExecContext(ctx, s.q(`
			INSERT INTO bookmarks (title, url, description, rating) VALUES (?, ?, ?, ?)
		`), n.Title, n.URL, n.Description, n.Rating)
		if err != nil {
			return nil, err
		}
		id, err = res.LastInsertId()
		if err != nil {
			return nil, err
		}
	}
	return s.GetByID(ctx, id)
}

// Update merges the supplied fields onto the stored row. Fields absent from
// the patch keep their prior value. A missing id affects zero rows and is
// not an error; callers establish existence with a prior GetByID. Zero
// affected rows can't signal not-found here anyway: MySQL reports changed
// rows, so a no-op update also affects zero.
func (s *BookmarkStore) Update(ctx context.Context, id int64, patch *BookmarkPatch) error {
	if patch.IsEmpty() {
		return fmt.Errorf("empty bookmark patch for id %d", id)
	}

	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)
	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.URL != nil {
		sets = append(sets, "url = ?")
		args = append(args, *patch.URL)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Rating != nil {
		sets = append(sets, "rating = ?")
		args = append(args, *patch.Rating)
	}
	args = append(args, id)

	_, err := s.db.ExecContext(ctx, s.q(
		`UPDATE bookmarks SET `+strings.Join(sets, ", ")+` WHERE id = ?`,
	), args...)
	return err
}

// Delete removes a bookmark by id, or returns ErrNotFound.
func (s *BookmarkStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM bookmarks WHERE id = ?`), id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
