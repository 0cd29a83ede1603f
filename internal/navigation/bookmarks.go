package navigation

import (
	"context"
	"errors"
	"os"
	"sort"
	"time"

	"github.com/jaytechpal/FileOrbit/internal/filestore"
)

var (
	// ErrBookmarkExists is returned when adding a name already in use
	ErrBookmarkExists = errors.New("bookmark already exists")
	// ErrBookmarkNotFound is returned when removing an unknown bookmark
	ErrBookmarkNotFound = errors.New("bookmark not found")
)

// Bookmark is a named shortcut to a directory.
type Bookmark struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	AddedAt time.Time `json:"added_at"`
}

type bookmarkState struct {
	Bookmarks []Bookmark `json:"bookmarks"`
}

// Bookmarks persists the user's bookmarks to a JSON file, safe against
// concurrent writers through the store's lock and compare-and-swap.
type Bookmarks struct {
	path  string
	store *filestore.Store[bookmarkState]
}

// NewBookmarks creates a bookmark collection backed by the file at path.
func NewBookmarks(path string) *Bookmarks {
	return &Bookmarks{path: path, store: filestore.NewStore[bookmarkState]()}
}

// Add saves a bookmark. Names are unique.
func (b *Bookmarks) Add(ctx context.Context, name, dir string) error {
	return b.store.Update(ctx, b.path, func(state *bookmarkState) error {
		for _, bm := range state.Bookmarks {
			if bm.Name == name {
				return ErrBookmarkExists
			}
		}
		state.Bookmarks = append(state.Bookmarks, Bookmark{
			Name:    name,
			Path:    dir,
			AddedAt: time.Now().UTC(),
		})
		return nil
	})
}

// Remove deletes the bookmark with the given name.
func (b *Bookmarks) Remove(ctx context.Context, name string) error {
	return b.store.Update(ctx, b.path, func(state *bookmarkState) error {
		for i, bm := range state.Bookmarks {
			if bm.Name == name {
				state.Bookmarks = append(state.Bookmarks[:i], state.Bookmarks[i+1:]...)
				return nil
			}
		}
		return ErrBookmarkNotFound
	})
}

// List returns all bookmarks sorted by name. A missing file means no
// bookmarks yet.
func (b *Bookmarks) List(ctx context.Context) ([]Bookmark, error) {
	state, _, err := b.store.Read(ctx, b.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	out := make([]Bookmark, len(state.Bookmarks))
	copy(out, state.Bookmarks)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Resolve returns the path a bookmark points at.
func (b *Bookmarks) Resolve(ctx context.Context, name string) (string, error) {
	bookmarks, err := b.List(ctx)
	if err != nil {
		return "", err
	}
	for _, bm := range bookmarks {
		if bm.Name == name {
			return bm.Path, nil
		}
	}
	return "", ErrBookmarkNotFound
}
