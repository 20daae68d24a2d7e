package dataset

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/entrhq/fillforge/pkg/fingerprint"
	"github.com/entrhq/fillforge/pkg/logging"
	"github.com/entrhq/fillforge/pkg/storage"
)

var (
	// ErrNotFound is returned when no dataset has the requested id.
	ErrNotFound = errors.New("dataset: not found")

	// ErrDuplicateID is returned when adding a dataset whose id is taken.
	ErrDuplicateID = errors.New("dataset: duplicate id")

	// ErrLastDataset is returned when deleting the only remaining dataset.
	ErrLastDataset = errors.New("dataset: cannot delete the last dataset")

	// ErrEmptyStore is returned by Select when the store holds no datasets.
	ErrEmptyStore = errors.New("dataset: store has no datasets")
)

// Persisted blob keys and schema versions. A version mismatch on load makes
// the store regenerate its state deterministically instead of migrating.
const (
	catalogueKey     = "datasets"
	usageKey         = "usage"
	catalogueVersion = 1
	usageVersion     = 1
)

// staleAfter is how long a usage record stays live without a fill before its
// used set is cleared.
const staleAfter = 24 * time.Hour

// StoreOptions configures a Store.
type StoreOptions struct {
	// Persist is the blob store backing the catalogue and usage ledger.
	// Nil keeps everything in memory.
	Persist storage.BlobStore

	// Logger receives persistence failures and load diagnostics.
	Logger *logging.Logger

	// Seed is the catalogue installed when nothing usable is persisted.
	// Nil seeds the built-in persona catalogue.
	Seed []Dataset
}

// Store is the persona catalogue plus the per-fingerprint rotation ledger.
// In-memory mutation is synchronous and authoritative; persistence happens in
// the background and its failures never affect selection correctness.
type Store struct {
	mu       sync.Mutex
	datasets []Dataset
	usage    map[string]*UsageRecord

	persist storage.BlobStore
	log     *logging.Logger
	now     func() time.Time
	rng     *rand.Rand
}

// NewStore loads the catalogue and usage ledger from opts.Persist, seeding
// defaults when nothing usable is stored.
func NewStore(opts StoreOptions) *Store {
	s := &Store{
		usage:   make(map[string]*UsageRecord),
		persist: opts.Persist,
		log:     opts.Logger,
		now:     time.Now,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	seed := opts.Seed
	if seed == nil {
		seed = BuiltinPersonas()
	}

	if s.persist != nil {
		var catalogue []Dataset
		err := storage.GetJSON(s.persist, catalogueKey, catalogueVersion, &catalogue)
		switch {
		case err == nil && len(catalogue) > 0:
			s.datasets = catalogue
		case errors.Is(err, storage.ErrNoBlob):
			s.datasets = cloneAll(seed)
		default:
			// Corrupt or version-mismatched blob: regenerate.
			s.log.Warnf("dataset: regenerating catalogue: %v", err)
			s.datasets = cloneAll(seed)
		}

		var usage map[string]*UsageRecord
		if err := storage.GetJSON(s.persist, usageKey, usageVersion, &usage); err == nil && usage != nil {
			s.usage = usage
		} else if err != nil && !errors.Is(err, storage.ErrNoBlob) {
			s.log.Warnf("dataset: regenerating usage ledger: %v", err)
		}
	} else {
		s.datasets = cloneAll(seed)
	}

	s.pruneUsageLocked()
	return s
}

// SetNow overrides the store's clock. Intended for tests.
func (s *Store) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// SetRand overrides the store's sampling source. Intended for tests.
func (s *Store) SetRand(rng *rand.Rand) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng = rng
}

// Len returns the number of datasets in the catalogue.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.datasets)
}

// List returns a copy of the catalogue in stable order.
func (s *Store) List() []Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Dataset, 0, len(s.datasets))
	for _, d := range s.datasets {
		out = append(out, d.clone())
	}
	return out
}

// Get returns the dataset with the given id.
func (s *Store) Get(id string) (Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.datasets {
		if d.ID == id {
			return d.clone(), nil
		}
	}
	return Dataset{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Add appends a dataset to the catalogue. An empty id is assigned a fresh
// UUID; a taken id is rejected with ErrDuplicateID.
func (s *Store) Add(d Dataset) (Dataset, error) {
	s.mu.Lock()
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	for _, existing := range s.datasets {
		if existing.ID == d.ID {
			s.mu.Unlock()
			return Dataset{}, fmt.Errorf("%w: %s", ErrDuplicateID, d.ID)
		}
	}
	d = d.clone()
	s.datasets = append(s.datasets, d)
	s.mu.Unlock()

	s.persistCatalogueAsync()
	return d.clone(), nil
}

// Update replaces the dataset with the same id.
func (s *Store) Update(d Dataset) error {
	s.mu.Lock()
	found := false
	for i, existing := range s.datasets {
		if existing.ID == d.ID {
			s.datasets[i] = d.clone()
			found = true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		return fmt.Errorf("%w: %s", ErrNotFound, d.ID)
	}
	s.persistCatalogueAsync()
	return nil
}

// Delete removes a dataset from the catalogue. Deleting the last remaining
// dataset is a precondition violation. The deleted id is purged from every
// usage record so used sets only ever reference live datasets.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	if len(s.datasets) <= 1 {
		s.mu.Unlock()
		return ErrLastDataset
	}
	idx := -1
	for i, d := range s.datasets {
		if d.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.datasets = append(s.datasets[:idx], s.datasets[idx+1:]...)
	for _, rec := range s.usage {
		rec.purge(id)
	}
	s.mu.Unlock()

	s.persistCatalogueAsync()
	s.persistUsageAsync()
	return nil
}

// Select picks the dataset to use for one fill of the fingerprinted form,
// guaranteeing no dataset id repeats for that fingerprint until the whole
// pool has been used once since the last reset. It never fails while the
// store is non-empty.
func (s *Store) Select(fp fingerprint.Fingerprint) (Dataset, error) {
	s.mu.Lock()
	if len(s.datasets) == 0 {
		s.mu.Unlock()
		return Dataset{}, ErrEmptyStore
	}

	rec := s.recordLocked(fp.Hash)
	s.resetIfStaleLocked(rec)

	available := s.availableLocked(rec)
	if len(available) == 0 {
		// Pool exhausted: a normal cycle boundary, not an error.
		rec.UsedDatasetIDs = rec.UsedDatasetIDs[:0]
		available = s.availableLocked(rec)
	}

	pick := available[s.rng.Intn(len(available))].clone()
	s.markUsedLocked(rec, pick.ID)
	s.mu.Unlock()

	s.persistUsageAsync()
	return pick, nil
}

// Usage returns a copy of the usage record for a form hash, if one exists.
func (s *Store) Usage(formHash string) (UsageRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.usage[formHash]
	if !ok {
		return UsageRecord{}, false
	}
	out := *rec
	out.UsedDatasetIDs = append([]string(nil), rec.UsedDatasetIDs...)
	return out, true
}

// Flush writes the catalogue and usage ledger synchronously. Used on
// shutdown; errors are returned rather than swallowed.
func (s *Store) Flush() error {
	if s.persist == nil {
		return nil
	}
	if err := s.persistCatalogue(); err != nil {
		return err
	}
	return s.persistUsage()
}

// recordLocked returns the usage record for a hash, creating it lazily.
func (s *Store) recordLocked(formHash string) *UsageRecord {
	rec, ok := s.usage[formHash]
	if !ok {
		rec = &UsageRecord{FormHash: formHash, LastUsedIndex: -1}
		s.usage[formHash] = rec
	}
	return rec
}

// resetIfStaleLocked clears the used set when the record has been idle past
// the staleness window. The timestamp baseline itself is only advanced by
// fills, never by the reset.
func (s *Store) resetIfStaleLocked(rec *UsageRecord) {
	if rec.LastFillTimestamp.IsZero() {
		return
	}
	if s.now().Sub(rec.LastFillTimestamp) > staleAfter {
		rec.UsedDatasetIDs = rec.UsedDatasetIDs[:0]
	}
}

func (s *Store) availableLocked(rec *UsageRecord) []Dataset {
	out := make([]Dataset, 0, len(s.datasets))
	for _, d := range s.datasets {
		if !rec.used(d.ID) {
			out = append(out, d)
		}
	}
	return out
}

func (s *Store) markUsedLocked(rec *UsageRecord, id string) {
	rec.UsedDatasetIDs = append(rec.UsedDatasetIDs, id)
	rec.LastFillTimestamp = s.now()
	rec.FillCount++
}

// pruneUsageLocked drops used ids that no longer reference live datasets,
// repairing ledgers persisted against an older catalogue.
func (s *Store) pruneUsageLocked() {
	live := make(map[string]bool, len(s.datasets))
	for _, d := range s.datasets {
		live[d.ID] = true
	}
	for _, rec := range s.usage {
		kept := rec.UsedDatasetIDs[:0]
		for _, id := range rec.UsedDatasetIDs {
			if live[id] {
				kept = append(kept, id)
			}
		}
		rec.UsedDatasetIDs = kept
	}
}

func (s *Store) persistCatalogue() error {
	s.mu.Lock()
	snapshot := make([]Dataset, 0, len(s.datasets))
	for _, d := range s.datasets {
		snapshot = append(snapshot, d.clone())
	}
	s.mu.Unlock()
	return storage.PutJSON(s.persist, catalogueKey, catalogueVersion, snapshot)
}

func (s *Store) persistUsage() error {
	s.mu.Lock()
	snapshot := make(map[string]UsageRecord, len(s.usage))
	for k, rec := range s.usage {
		cp := *rec
		cp.UsedDatasetIDs = append([]string(nil), rec.UsedDatasetIDs...)
		snapshot[k] = cp
	}
	s.mu.Unlock()
	return storage.PutJSON(s.persist, usageKey, usageVersion, snapshot)
}

// persistCatalogueAsync schedules a best-effort background write. Failures
// are logged and swallowed: durable state is eventually consistent, session
// state is always correct.
func (s *Store) persistCatalogueAsync() {
	if s.persist == nil {
		return
	}
	go func() {
		if err := s.persistCatalogue(); err != nil {
			s.log.Warnf("dataset: persist catalogue: %v", err)
		}
	}()
}

func (s *Store) persistUsageAsync() {
	if s.persist == nil {
		return
	}
	go func() {
		if err := s.persistUsage(); err != nil {
			s.log.Warnf("dataset: persist usage ledger: %v", err)
		}
	}()
}

func cloneAll(in []Dataset) []Dataset {
	out := make([]Dataset, 0, len(in))
	for _, d := range in {
		out = append(out, d.clone())
	}
	return out
}
