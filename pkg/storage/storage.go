// Package storage persists the engine's logical stores as versioned blobs.
// Each logical store (dataset catalogue, usage ledger) serializes to one blob
// under a fixed key. Blobs carry an explicit version; on mismatch the caller
// regenerates its state deterministically instead of migrating.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNoBlob is returned when no blob exists under the requested key.
	ErrNoBlob = errors.New("storage: blob not found")

	// ErrVersionMismatch is returned when a blob's version differs from the
	// version the caller expects.
	ErrVersionMismatch = errors.New("storage: version mismatch")
)

// BlobStore is the persistence boundary: opaque blobs addressed by fixed keys.
type BlobStore interface {
	// Get returns the blob stored under key, or ErrNoBlob.
	Get(key string) ([]byte, error)

	// Put stores the blob under key, replacing any previous value.
	Put(key string, data []byte) error

	// Close releases any underlying resources.
	Close() error
}

// envelope wraps a payload with its schema version.
type envelope struct {
	Version int             `json:"version"`
	Payload json.RawMessage `json:"payload"`
}

// PutJSON marshals v into a versioned envelope and stores it under key.
func PutJSON(bs BlobStore, key string, version int, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: marshal %s payload: %w", key, err)
	}
	data, err := json.Marshal(envelope{Version: version, Payload: payload})
	if err != nil {
		return fmt.Errorf("storage: marshal %s envelope: %w", key, err)
	}
	return bs.Put(key, data)
}

// GetJSON loads the blob under key and unmarshals its payload into v. It
// returns ErrVersionMismatch when the stored version differs from version, in
// which case the caller regenerates its defaults.
func GetJSON(bs BlobStore, key string, version int, v interface{}) error {
	data, err := bs.Get(key)
	if err != nil {
		return err
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("storage: decode %s envelope: %w", key, err)
	}
	if env.Version != version {
		return fmt.Errorf("%w: %s has version %d, want %d", ErrVersionMismatch, key, env.Version, version)
	}
	if err := json.Unmarshal(env.Payload, v); err != nil {
		return fmt.Errorf("storage: decode %s payload: %w", key, err)
	}
	return nil
}
