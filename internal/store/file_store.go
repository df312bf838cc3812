package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	apperrors "unipool/pkg/errors"
	"unipool/pkg/logger"
)

// FileStore persists the whole snapshot as a single JSON document on disk,
// the server-side analog of the browser localStorage blob the product model
// assumes. Writes go through a temp file and rename so a crashed save never
// leaves a half-written document.
type FileStore struct {
	path     string
	maxBytes int64
	mu       sync.Mutex
	logger   *logger.Logger
}

type FileStoreOptions struct {
	Path     string
	MaxBytes int64 // 0 means no quota
	Seed     bool
	Logger   *logger.Logger
}

func NewFileStore(opts FileStoreOptions) (*FileStore, error) {
	log := opts.Logger
	if log == nil {
		log = logger.NewNopLogger()
	}

	fs := &FileStore{
		path:     opts.Path,
		maxBytes: opts.MaxBytes,
		logger:   log,
	}

	if _, err := os.Stat(opts.Path); os.IsNotExist(err) {
		snapshot := &Snapshot{}
		if opts.Seed {
			snapshot = SeedSnapshot()
		}
		snapshot.Normalize()
		if err := fs.Save(snapshot); err != nil {
			return nil, fmt.Errorf("failed to initialize store at %s: %w", opts.Path, err)
		}
		log.WithField("path", opts.Path).Info("Initialized new data store")
	}

	return fs, nil
}

func (fs *FileStore) Load() (*Snapshot, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.load()
}

func (fs *FileStore) load() (*Snapshot, error) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			snapshot := &Snapshot{}
			snapshot.Normalize()
			return snapshot, nil
		}
		return nil, apperrors.NewPersistenceError("failed to read data store", err)
	}

	snapshot := &Snapshot{}
	if err := json.Unmarshal(data, snapshot); err != nil {
		// A corrupt document degrades to an empty store rather than taking
		// every read path down with it.
		fs.logger.WithError(err).Warn("Data store document is malformed, starting empty")
		snapshot = &Snapshot{}
	}
	snapshot.Normalize()
	return snapshot, nil
}

func (fs *FileStore) Save(snapshot *Snapshot) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.save(snapshot)
}

func (fs *FileStore) save(snapshot *Snapshot) error {
	snapshot.Normalize()

	data, err := json.Marshal(snapshot)
	if err != nil {
		return apperrors.NewPersistenceError("failed to encode snapshot", err)
	}

	if fs.maxBytes > 0 && int64(len(data)) > fs.maxBytes {
		return apperrors.NewPersistenceError(
			fmt.Sprintf("snapshot of %d bytes exceeds store quota of %d bytes", len(data), fs.maxBytes), nil)
	}

	dir := filepath.Dir(fs.path)
	tmp, err := os.CreateTemp(dir, ".unipool-*.json")
	if err != nil {
		return apperrors.NewPersistenceError("failed to create temp file", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperrors.NewPersistenceError("failed to write snapshot", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperrors.NewPersistenceError("failed to flush snapshot", err)
	}
	if err := os.Rename(tmpName, fs.path); err != nil {
		os.Remove(tmpName)
		return apperrors.NewPersistenceError("failed to replace data store", err)
	}

	return nil
}

// Update runs fn against the current snapshot and persists the result, all
// under the store lock. Returning an error from fn discards the mutation.
func (fs *FileStore) Update(fn func(*Snapshot) error) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	snapshot, err := fs.load()
	if err != nil {
		return err
	}
	if err := fn(snapshot); err != nil {
		return err
	}
	return fs.save(snapshot)
}

func (fs *FileStore) NewID(prefix string) string {
	return NewID(prefix)
}
