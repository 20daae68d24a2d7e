package dataset

import (
	"time"

	"github.com/entrhq/fillforge/pkg/fingerprint"
	"github.com/entrhq/fillforge/pkg/storage"
)

// DefaultFlushWindow is the debounce window for pool persistence.
const DefaultFlushWindow = 2 * time.Second

// Pool layers a round-robin selection strategy and debounced persistence over
// a Store. It honors the same rotation contract as Store.Select, but walks
// the catalogue from just past the last used index instead of sampling
// uniformly, and coalesces ledger writes instead of persisting on every call.
// Suited to large catalogues filled at high frequency.
type Pool struct {
	store *Store
	flush *storage.Debouncer
}

// NewPool wraps a store. A non-positive window uses DefaultFlushWindow.
func NewPool(store *Store, window time.Duration) *Pool {
	if window <= 0 {
		window = DefaultFlushWindow
	}
	p := &Pool{store: store}
	if store.persist != nil {
		p.flush = storage.NewDebouncer(window, func() {
			if err := store.persistUsage(); err != nil {
				store.log.Warnf("dataset: persist pool ledger: %v", err)
			}
		})
	}
	return p
}

// Select picks the next dataset for the fingerprinted form in round-robin
// order, resetting the used set on staleness or pool exhaustion exactly like
// Store.Select.
func (p *Pool) Select(fp fingerprint.Fingerprint) (Dataset, error) {
	s := p.store

	s.mu.Lock()
	if len(s.datasets) == 0 {
		s.mu.Unlock()
		return Dataset{}, ErrEmptyStore
	}

	rec := s.recordLocked(fp.Hash)
	s.resetIfStaleLocked(rec)

	if len(s.availableLocked(rec)) == 0 {
		rec.UsedDatasetIDs = rec.UsedDatasetIDs[:0]
	}

	// Walk forward from just past the last used slot; the used-set check
	// keeps the walk correct when deletions shifted indices.
	n := len(s.datasets)
	idx := (rec.LastUsedIndex + 1) % n
	if rec.LastUsedIndex < 0 {
		idx = 0
	}
	for i := 0; i < n; i++ {
		candidate := (idx + i) % n
		if !rec.used(s.datasets[candidate].ID) {
			idx = candidate
			break
		}
	}

	pick := s.datasets[idx].clone()
	rec.LastUsedIndex = idx
	s.markUsedLocked(rec, pick.ID)
	s.mu.Unlock()

	if p.flush != nil {
		p.flush.Trigger()
	}
	return pick, nil
}

// Close flushes any coalesced ledger write.
func (p *Pool) Close() {
	if p.flush != nil {
		p.flush.Flush()
	}
}
