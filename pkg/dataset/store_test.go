package dataset

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/fillforge/pkg/field"
	"github.com/entrhq/fillforge/pkg/fingerprint"
	"github.com/entrhq/fillforge/pkg/storage"
)

func testFingerprint(host string) fingerprint.Fingerprint {
	return fingerprint.Compute(host, []field.Descriptor{
		{Kind: field.KindText, Type: "email", Name: "email"},
		{Kind: field.KindText, Name: "first_name"},
	})
}

func seedN(n int) []Dataset {
	out := make([]Dataset, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Dataset{
			ID:   string(rune('a' + i)),
			Name: "Persona " + string(rune('A'+i)),
			Data: map[field.SemanticType]string{field.TypeEmail: "x@example.com"},
		})
	}
	return out
}

func deterministicStore(seed []Dataset) *Store {
	s := NewStore(StoreOptions{Seed: seed})
	s.SetRand(rand.New(rand.NewSource(1)))
	return s
}

func TestSelectRotationExhaustion(t *testing.T) {
	const n = 5
	s := deterministicStore(seedN(n))
	fp := testFingerprint("example.com")

	seen := make(map[string]bool)
	for i := 0; i < n; i++ {
		d, err := s.Select(fp)
		require.NoError(t, err)
		assert.False(t, seen[d.ID], "dataset %s repeated before pool exhaustion", d.ID)
		seen[d.ID] = true
	}
	// Set equality: all n ids used exactly once.
	assert.Len(t, seen, n)

	rec, ok := s.Usage(fp.Hash)
	require.True(t, ok)
	assert.Equal(t, n, rec.FillCount)
}

func TestSelectResetsAfterExhaustion(t *testing.T) {
	const n = 3
	s := deterministicStore(seedN(n))
	fp := testFingerprint("example.com")

	for i := 0; i < n; i++ {
		_, err := s.Select(fp)
		require.NoError(t, err)
	}

	// The (n+1)-th call starts a fresh cycle and may repeat an id.
	d, err := s.Select(fp)
	require.NoError(t, err)
	assert.NotEmpty(t, d.ID)

	rec, ok := s.Usage(fp.Hash)
	require.True(t, ok)
	assert.Equal(t, []string{d.ID}, rec.UsedDatasetIDs)
	assert.Equal(t, n+1, rec.FillCount)
}

func TestSelectStaleSessionReset(t *testing.T) {
	s := deterministicStore(seedN(4))
	fp := testFingerprint("example.com")

	now := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	s.SetNow(func() time.Time { return now })

	first, err := s.Select(fp)
	require.NoError(t, err)

	// More than 24h later the used set clears before the next selection, so
	// the previously used id is eligible again.
	now = now.Add(25 * time.Hour)
	rec, ok := s.Usage(fp.Hash)
	require.True(t, ok)
	require.Contains(t, rec.UsedDatasetIDs, first.ID)

	second, err := s.Select(fp)
	require.NoError(t, err)

	rec, ok = s.Usage(fp.Hash)
	require.True(t, ok)
	assert.Equal(t, []string{second.ID}, rec.UsedDatasetIDs)
	assert.Equal(t, 2, rec.FillCount)
}

func TestSelectWithin24hKeepsUsedSet(t *testing.T) {
	s := deterministicStore(seedN(4))
	fp := testFingerprint("example.com")

	now := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	s.SetNow(func() time.Time { return now })

	a, err := s.Select(fp)
	require.NoError(t, err)

	now = now.Add(23 * time.Hour)
	b, err := s.Select(fp)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestSelectSeparateFingerprintsRotateIndependently(t *testing.T) {
	s := deterministicStore(seedN(2))
	fpA := testFingerprint("example.com")
	fpB := testFingerprint("example.org")
	require.NotEqual(t, fpA.Hash, fpB.Hash)

	for i := 0; i < 2; i++ {
		_, err := s.Select(fpA)
		require.NoError(t, err)
	}
	recA, _ := s.Usage(fpA.Hash)
	assert.Equal(t, 2, recA.FillCount)

	_, ok := s.Usage(fpB.Hash)
	assert.False(t, ok, "fingerprint B must not have a record before its first fill")
}

func TestSelectEmptyStore(t *testing.T) {
	s := NewStore(StoreOptions{Seed: []Dataset{}})
	_, err := s.Select(testFingerprint("example.com"))
	assert.ErrorIs(t, err, ErrEmptyStore)
}

func TestDeleteLastDatasetRejected(t *testing.T) {
	s := NewStore(StoreOptions{Seed: seedN(1)})
	err := s.Delete("a")
	assert.ErrorIs(t, err, ErrLastDataset)
	assert.Equal(t, 1, s.Len())
}

func TestDeletePurgesUsageRecords(t *testing.T) {
	s := deterministicStore(seedN(3))
	fp := testFingerprint("example.com")

	var deleted string
	for i := 0; i < 2; i++ {
		d, err := s.Select(fp)
		require.NoError(t, err)
		deleted = d.ID
	}

	require.NoError(t, s.Delete(deleted))

	rec, ok := s.Usage(fp.Hash)
	require.True(t, ok)
	assert.NotContains(t, rec.UsedDatasetIDs, deleted)
	assert.Len(t, rec.UsedDatasetIDs, 1)
}

func TestDeleteUnknownDataset(t *testing.T) {
	s := NewStore(StoreOptions{Seed: seedN(2)})
	assert.ErrorIs(t, s.Delete("zz"), ErrNotFound)
}

func TestAddAssignsIDAndRejectsDuplicates(t *testing.T) {
	s := NewStore(StoreOptions{Seed: seedN(1)})

	added, err := s.Add(Dataset{Name: "Fresh"})
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)

	_, err = s.Add(Dataset{ID: added.ID, Name: "Clash"})
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestUpdateReplacesDataset(t *testing.T) {
	s := NewStore(StoreOptions{Seed: seedN(2)})

	require.NoError(t, s.Update(Dataset{
		ID:   "a",
		Name: "Renamed",
		Data: map[field.SemanticType]string{field.TypeCity: "Oslo"},
	}))

	got, err := s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)

	v, ok := got.Value(field.TypeCity)
	assert.True(t, ok)
	assert.Equal(t, "Oslo", v)

	assert.ErrorIs(t, s.Update(Dataset{ID: "zz"}), ErrNotFound)
}

func TestListReturnsCopies(t *testing.T) {
	s := NewStore(StoreOptions{Seed: seedN(1)})
	list := s.List()
	require.Len(t, list, 1)
	list[0].Data[field.TypeEmail] = "mutated@example.com"

	got, err := s.Get("a")
	require.NoError(t, err)
	v, _ := got.Value(field.TypeEmail)
	assert.Equal(t, "x@example.com", v)
}

// failingBlobStore rejects every write, simulating broken durable storage.
type failingBlobStore struct{}

func (failingBlobStore) Get(string) ([]byte, error)   { return nil, storage.ErrNoBlob }
func (failingBlobStore) Put(string, []byte) error     { return errors.New("disk full") }
func (failingBlobStore) Close() error                 { return nil }

func TestPersistenceFailureDoesNotAffectSelection(t *testing.T) {
	s := NewStore(StoreOptions{Persist: failingBlobStore{}, Seed: seedN(3)})
	s.SetRand(rand.New(rand.NewSource(1)))
	fp := testFingerprint("example.com")

	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		d, err := s.Select(fp)
		require.NoError(t, err)
		seen[d.ID] = true
	}
	assert.Len(t, seen, 3, "in-memory rotation stays correct while persistence fails")
}

func TestStorePersistenceRoundTrip(t *testing.T) {
	fs, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	fp := testFingerprint("example.com")

	s := deterministicStore(nil)
	s.persist = fs
	first, err := s.Select(fp)
	require.NoError(t, err)
	require.NoError(t, s.Flush())

	// A new store over the same blobs resumes the rotation mid-cycle.
	reopened := NewStore(StoreOptions{Persist: fs})
	reopened.SetRand(rand.New(rand.NewSource(2)))
	rec, ok := reopened.Usage(fp.Hash)
	require.True(t, ok)
	assert.Contains(t, rec.UsedDatasetIDs, first.ID)

	next, err := reopened.Select(fp)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, next.ID)
}

func TestVersionMismatchRegenerates(t *testing.T) {
	fs, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	// Persist a catalogue under a future schema version.
	require.NoError(t, storage.PutJSON(fs, "datasets", 99, seedN(2)))

	s := NewStore(StoreOptions{Persist: fs})
	// The incompatible blob is ignored and the built-in catalogue installed.
	assert.Equal(t, len(BuiltinPersonas()), s.Len())
}
