package bookmark

import (
	"context"
	"errors"
	"io/fs"
	"sync"

	"github.com/gerunddev/linkmark/internal/fetch"
	"github.com/gerunddev/linkmark/internal/vault"
)

// memStore is an in-memory Store
type memStore struct {
	dirs   map[string]bool
	files  map[string]string
	others map[string]bool

	createErr map[string]error
	mkdirErr  error
	lookupErr error

	creates int
	mkdirs  int
}

func newMemStore() *memStore {
	return &memStore{
		dirs:      map[string]bool{},
		files:     map[string]string{},
		others:    map[string]bool{},
		createErr: map[string]error{},
	}
}

func (s *memStore) Mkdir(path string) error {
	s.mkdirs++
	if s.mkdirErr != nil {
		return s.mkdirErr
	}
	s.dirs[path] = true
	return nil
}

func (s *memStore) Lookup(path string) (*vault.Entry, error) {
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	if _, ok := s.files[path]; ok {
		return &vault.Entry{Path: path, Kind: vault.KindFile}, nil
	}
	if s.others[path] {
		return &vault.Entry{Path: path, Kind: vault.KindOther}, nil
	}
	return nil, nil
}

func (s *memStore) Create(path, body string) (*vault.Entry, error) {
	s.creates++
	if err := s.createErr[path]; err != nil {
		return nil, err
	}
	if _, ok := s.files[path]; ok || s.others[path] {
		return nil, fs.ErrExist
	}
	s.files[path] = body
	return &vault.Entry{Path: path, Kind: vault.KindFile, Size: int64(len(body))}, nil
}

func (s *memStore) Read(path string) (string, error) {
	body, ok := s.files[path]
	if !ok {
		return "", fs.ErrNotExist
	}
	return body, nil
}

// stubFetcher serves canned pages; unknown URLs fail
type stubFetcher struct {
	pages map[string]string
	calls []string
}

var errUnreachable = errors.New("dial tcp: no such host")

func (f *stubFetcher) Fetch(_ context.Context, url string) (fetch.Page, error) {
	f.calls = append(f.calls, url)
	body, ok := f.pages[url]
	if !ok {
		return fetch.Page{}, &fetch.Error{URL: url, Err: errUnreachable}
	}
	return fetch.Page{URL: url, ContentType: "text/html", Body: []byte(body)}, nil
}

type noticeRecorder struct {
	mu      sync.Mutex
	notices []string
}

func (r *noticeRecorder) Notice(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, msg)
}

type staticWorkspace struct {
	doc *vault.Document
}

func (w staticWorkspace) ActiveDocument() (*vault.Document, bool) {
	return w.doc, w.doc != nil
}
