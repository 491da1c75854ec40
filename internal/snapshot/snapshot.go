// Package snapshot persists and restores a built IndexState, with a
// signature that detects when the registry or build parameters have
// drifted since the snapshot was taken, per spec.md section 4.9.
package snapshot

import (
	"crypto/sha1"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mvp-joe/docsearch/internal/docmodel"
)

// SchemaVersion is the only schema version this build understands.
const SchemaVersion = 1

// ErrSchemaMismatch is returned when a snapshot's schema_version is not
// one this build understands; spec.md section 4.9 treats this as a hard
// error regardless of auto_index.
var ErrSchemaMismatch = errors.New("snapshot schema version mismatch")

// ErrSignatureMismatch is returned when a snapshot's signature no longer
// matches the current registry and build parameters.
var ErrSignatureMismatch = errors.New("snapshot signature mismatch")

// Record is the tagged, on-disk representation of a built index.
type Record struct {
	SchemaVersion int
	Signature     string
	State         State
}

// State is a serializable projection of indexstate.IndexState. The BM25
// and vector indexes are rebuilt from Chunks/Vectors on load rather than
// serialized directly, keeping the on-disk format stable across index
// implementation changes.
type State struct {
	Revision int
	Docsets  []DocsetState
}

// DocsetState is the serializable projection of one docset's built index.
type DocsetState struct {
	DocsetID string
	RootPath string
	Tags     []string
	Keywords []string
	Version  string
	Enabled  bool

	Sections []*docmodel.DocSection
	Chunks   []*docmodel.Chunk
	Vectors  [][]float32
}

// Signature computes the SHA-1 signature covering the absolute registry
// path, the registry file bytes, and the build parameters, per spec.md
// section 4.9.
func Signature(absoluteRegistryPath string, registryBytes []byte, embeddingModel string, chunkWords, chunkOverlapWords int) string {
	h := sha1.New()
	h.Write([]byte(absoluteRegistryPath))
	h.Write(registryBytes)
	fmt.Fprintf(h, "|%s|%d|%d", embeddingModel, chunkWords, chunkOverlapWords)
	return hex.EncodeToString(h.Sum(nil))
}

// Save writes rec to path atomically: it writes to "<path>.tmp", flushes,
// and renames over path, removing the tmp file on any failure.
func Save(path string, rec Record) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create snapshot tmp file: %w", err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmpPath)
		}
	}()

	if encErr := gob.NewEncoder(f).Encode(rec); encErr != nil {
		f.Close()
		return fmt.Errorf("encode snapshot: %w", encErr)
	}

	if syncErr := f.Sync(); syncErr != nil {
		f.Close()
		return fmt.Errorf("flush snapshot: %w", syncErr)
	}
	if closeErr := f.Close(); closeErr != nil {
		return fmt.Errorf("close snapshot tmp file: %w", closeErr)
	}

	if renameErr := os.Rename(tmpPath, path); renameErr != nil {
		return fmt.Errorf("rename snapshot into place: %w", renameErr)
	}

	return nil
}

// Load reads and decodes the snapshot at path, verifying its schema
// version and signature against the current expected value. A missing
// file is reported via os.IsNotExist on the returned error.
func Load(path, expectedSignature string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rec Record
	if err := gob.NewDecoder(f).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	if rec.SchemaVersion != SchemaVersion {
		return nil, fmt.Errorf("%w: snapshot has %d, expected %d", ErrSchemaMismatch, rec.SchemaVersion, SchemaVersion)
	}
	if rec.Signature != expectedSignature {
		return &rec, ErrSignatureMismatch
	}

	return &rec, nil
}
