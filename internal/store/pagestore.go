package store

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"pokedex/catalog/internal/domain"

	log "github.com/sirupsen/logrus"
)

// PageStore owns the cached catalog: pages of records keyed by the offset
// they were fetched at, plus the last total count the server reported. Every
// mutation schedules a best-effort write of the whole snapshot to disk;
// persistence failures are logged and swallowed, the in-memory state stays
// authoritative.
type PageStore interface {
	GetPage(offset int) ([]domain.Pokemon, bool)
	PutPage(offset int, items []domain.Pokemon, totalCount *int)
	AllItems() []domain.Pokemon
	TotalCount() (int, bool)
	Clear()
	LoadFromDisk()
	Close() error
}

type pageStore struct {
	path string

	mu    sync.RWMutex
	pages map[int][]domain.Pokemon
	total *int
	seq   uint64

	// persistMu serializes disk writes; persistSeq is the newest snapshot
	// already attempted, so writes queued behind a fresher one are skipped.
	persistMu  sync.Mutex
	persistSeq uint64
	wg         sync.WaitGroup
}

type persistOp struct {
	seq    uint64
	data   []byte
	remove bool
}

// NewPageStore creates a store backed by the given snapshot file. The parent
// directory is created up front; if that fails the store runs memory-only.
func NewPageStore(path string) PageStore {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Warnf("⚠️ Cache directory %s unavailable, running memory-only: %v", dir, err)
		}
	}
	return &pageStore{
		path:  path,
		pages: make(map[int][]domain.Pokemon),
	}
}

func (s *pageStore) GetPage(offset int) ([]domain.Pokemon, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items, ok := s.pages[offset]
	if !ok {
		return nil, false
	}
	return slices.Clone(items), true
}

func (s *pageStore) PutPage(offset int, items []domain.Pokemon, totalCount *int) {
	s.mu.Lock()
	s.pages[offset] = slices.Clone(items)
	if totalCount != nil {
		// Last write wins, even when the new value disagrees.
		count := *totalCount
		s.total = &count
	}
	s.seq++
	op := s.encodeLocked()
	s.mu.Unlock()

	s.schedulePersist(op)
}

// AllItems returns every cached record, pages in ascending offset order.
func (s *pageStore) AllItems() []domain.Pokemon {
	s.mu.RLock()
	defer s.mu.RUnlock()

	offsets := make([]int, 0, len(s.pages))
	for offset := range s.pages {
		offsets = append(offsets, offset)
	}
	slices.Sort(offsets)

	items := make([]domain.Pokemon, 0)
	for _, offset := range offsets {
		items = append(items, s.pages[offset]...)
	}
	return items
}

func (s *pageStore) TotalCount() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.total == nil {
		return 0, false
	}
	return *s.total, true
}

// Clear drops all cached state and schedules removal of the snapshot file.
func (s *pageStore) Clear() {
	s.mu.Lock()
	s.pages = make(map[int][]domain.Pokemon)
	s.total = nil
	s.seq++
	op := persistOp{seq: s.seq, remove: true}
	s.mu.Unlock()

	s.schedulePersist(op)
}

// LoadFromDisk replaces the in-memory state with the snapshot file, if one
// exists and decodes cleanly. A missing or corrupt file leaves the current
// state untouched.
func (s *pageStore) LoadFromDisk() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warnf("⚠️ Cache file %s not readable: %v", s.path, err)
		}
		return
	}

	pages, total, err := decodeSnapshot(data)
	if err != nil {
		log.Warnf("⚠️ Ignoring corrupt cache file %s: %v", s.path, err)
		return
	}

	s.mu.Lock()
	s.pages = pages
	s.total = total
	s.mu.Unlock()

	log.Infof("✅ Restored %d cached pages from %s", len(pages), s.path)
}

// Close waits until every scheduled persist has finished. The store must not
// be used afterwards.
func (s *pageStore) Close() error {
	s.wg.Wait()
	return nil
}

// encodeLocked captures the current state as a persist op. Callers must hold
// mu so the encoded bytes correspond to exactly one mutation.
func (s *pageStore) encodeLocked() persistOp {
	data, err := encodeSnapshot(s.pages, s.total)
	if err != nil {
		log.Warnf("⚠️ Failed to encode cache snapshot: %v", err)
		return persistOp{seq: s.seq}
	}
	return persistOp{seq: s.seq, data: data}
}

func (s *pageStore) schedulePersist(op persistOp) {
	if op.data == nil && !op.remove {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		s.persistMu.Lock()
		defer s.persistMu.Unlock()

		if op.seq <= s.persistSeq {
			// A fresher snapshot already reached disk.
			return
		}
		s.persistSeq = op.seq

		var err error
		if op.remove {
			err = os.Remove(s.path)
			if errors.Is(err, fs.ErrNotExist) {
				err = nil
			}
		} else {
			err = writeFileAtomic(s.path, op.data)
		}
		if err != nil {
			// Best effort: the next mutation writes a full snapshot anyway.
			log.Warnf("⚠️ Failed to persist cache to %s: %v", s.path, err)
		}
	}()
}
