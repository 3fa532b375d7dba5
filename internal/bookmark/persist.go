package bookmark

import (
	"strings"

	"github.com/gerunddev/linkmark/internal/vault"
)

// Store is the vault surface the bookmarker writes through
type Store interface {
	Mkdir(path string) error
	Lookup(path string) (*vault.Entry, error)
	Create(path, body string) (*vault.Entry, error)
	Read(path string) (string, error)
}

// File is a persisted bookmark
type File struct {
	Title string
	Path  string
	// Created is false when an existing bookmark was reused
	Created bool
}

// Persist stores r in folder unless a bookmark file for it already exists.
//
// The folder is created first. An existing regular file at the derived path
// is reused untouched; anything else at that path does not prevent creation.
// Lookup and create are not atomic against other writers of the folder.
func Persist(store Store, folder string, r Record) (*File, error) {
	folder = strings.TrimSuffix(folder, "/")
	if err := store.Mkdir(folder); err != nil {
		return nil, persistError("failed to create bookmark folder "+folder, err)
	}

	path := folder + "/" + Filename(r)

	existing, err := store.Lookup(path)
	if err != nil {
		return nil, persistError("failed to look up "+path, err)
	}
	if existing.IsFile() {
		return &File{Title: r.Title, Path: existing.Path, Created: false}, nil
	}

	created, err := store.Create(path, r.Content)
	if err != nil {
		return nil, persistError("failed to create "+path, err)
	}

	return &File{Title: r.Title, Path: created.Path, Created: true}, nil
}
