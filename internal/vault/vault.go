package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"time"
)

// ErrOutsideVault is returned for paths that resolve outside the vault root
var ErrOutsideVault = errors.New("path escapes the vault")

// EntryKind tells files apart from everything else in the vault
type EntryKind int

const (
	KindFile EntryKind = iota + 1
	KindOther
)

// Entry is something found at a vault path
type Entry struct {
	Path    string // vault-relative, slash separated
	Kind    EntryKind
	Size    int64
	ModTime time.Time
}

// IsFile reports whether the entry is a regular file
func (e *Entry) IsFile() bool {
	return e != nil && e.Kind == KindFile
}

// Name returns the last element of the entry path
func (e *Entry) Name() string {
	return path.Base(e.Path)
}

// Vault is a folder of notes addressed by vault-relative paths
type Vault struct {
	root string
}

// Open returns a Vault rooted at dir, which must exist
func Open(dir string) (*Vault, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve vault path: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open vault: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault %s is not a directory", root)
	}

	return &Vault{root: root}, nil
}

// Root returns the absolute vault directory
func (v *Vault) Root() string {
	return v.root
}

// resolve maps a vault-relative path to an absolute one
func (v *Vault) resolve(p string) (string, error) {
	clean := path.Clean(filepath.ToSlash(p))
	if clean == "." {
		return v.root, nil
	}
	local := filepath.FromSlash(clean)
	if !filepath.IsLocal(local) {
		return "", fmt.Errorf("%w: %s", ErrOutsideVault, p)
	}
	return filepath.Join(v.root, local), nil
}

// Mkdir creates the folder and its parents; an existing folder is not an error
func (v *Vault) Mkdir(p string) error {
	full, err := v.resolve(p)
	if err != nil {
		return err
	}
	return os.MkdirAll(full, 0755)
}

// Lookup returns the entry at p, or nil when nothing is there
func (v *Vault) Lookup(p string) (*Entry, error) {
	full, err := v.resolve(p)
	if err != nil {
		return nil, err
	}

	info, err := os.Lstat(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	return v.entry(p, info), nil
}

// Create writes a new file at p with the given body.
// It fails if anything already exists at p.
func (v *Vault) Create(p, body string) (*Entry, error) {
	full, err := v.resolve(p)
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, err
	}
	if _, err := f.WriteString(body); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	info, err := os.Stat(full)
	if err != nil {
		return nil, err
	}
	return v.entry(p, info), nil
}

// Read returns the contents of the file at p
func (v *Vault) Read(p string) (string, error) {
	full, err := v.resolve(p)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// List returns the entries of a folder sorted by name.
// A missing folder yields no entries.
func (v *Vault) List(dir string) ([]Entry, error) {
	full, err := v.resolve(dir)
	if err != nil {
		return nil, err
	}

	items, err := os.ReadDir(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		info, err := item.Info()
		if err != nil {
			continue
		}
		entries = append(entries, *v.entry(path.Join(filepath.ToSlash(dir), item.Name()), info))
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

func (v *Vault) entry(p string, info fs.FileInfo) *Entry {
	kind := KindOther
	if info.Mode().IsRegular() {
		kind = KindFile
	}
	return &Entry{
		Path:    filepath.ToSlash(p),
		Kind:    kind,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
}
