package services

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"

	"jobcompass/related-jobs/internal/models"
)

const (
	bundleFileName = "job_index.gob"
	exportFileName = "related_jobs.json"
)

// IndexStore owns the durable index bundle and the in-memory serving handle.
// Publish swaps a fully-written bundle in as one pointer update, so readers
// always see either the whole old snapshot or the whole new one.
type IndexStore interface {
	Current() (*models.IndexBundle, error)
	Publish(bundle *models.IndexBundle) error
	LoadFromDisk() error
	EnsureDirs() error
}

type indexStore struct {
	modelPath  string
	exportPath string
	current    atomic.Pointer[models.IndexBundle]
}

func NewIndexStore(modelPath, exportPath string) IndexStore {
	return &indexStore{
		modelPath:  modelPath,
		exportPath: exportPath,
	}
}

// EnsureDirs implements IndexStore.
func (s *indexStore) EnsureDirs() error {
	for _, dir := range []string{s.modelPath, s.exportPath} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create index directory: %w", err)
		}
	}
	return nil
}

// Current implements IndexStore. It returns ErrIndexNotReady until the first
// bundle has been published or loaded.
func (s *indexStore) Current() (*models.IndexBundle, error) {
	bundle := s.current.Load()
	if bundle == nil {
		return nil, ErrIndexNotReady
	}
	return bundle, nil
}

// Publish implements IndexStore. The bundle and the lightweight export are
// each written to a temp file and renamed into place, then the serving
// pointer is swapped. A failure at any step leaves the previous bundle
// published and its files intact.
func (s *indexStore) Publish(bundle *models.IndexBundle) error {
	if err := s.EnsureDirs(); err != nil {
		return err
	}

	if err := writeAtomic(filepath.Join(s.modelPath, bundleFileName), func(f *os.File) error {
		return gob.NewEncoder(f).Encode(bundle)
	}); err != nil {
		return fmt.Errorf("failed to persist index bundle: %w", err)
	}

	if err := writeAtomic(filepath.Join(s.exportPath, exportFileName), func(f *os.File) error {
		return json.NewEncoder(f).Encode(bundle.Related)
	}); err != nil {
		return fmt.Errorf("failed to persist related-jobs export: %w", err)
	}

	s.current.Store(bundle)
	return nil
}

// LoadFromDisk implements IndexStore. A missing bundle file is not an error:
// the store simply stays empty until the first recomputation publishes one.
func (s *indexStore) LoadFromDisk() error {
	path := filepath.Join(s.modelPath, bundleFileName)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("ℹ️  No persisted index bundle at %s\n", path)
			return nil
		}
		return fmt.Errorf("failed to open index bundle: %w", err)
	}
	defer f.Close()

	var bundle models.IndexBundle
	if err := gob.NewDecoder(f).Decode(&bundle); err != nil {
		return fmt.Errorf("failed to decode index bundle: %w", err)
	}

	s.current.Store(&bundle)
	log.Printf("✅ Loaded index bundle %s (%d jobs, built %s)\n",
		bundle.Version, len(bundle.Jobs), bundle.BuiltAt.Format("2006-01-02 15:04:05"))
	return nil
}

// writeAtomic writes through a temp file in the target directory and renames
// it over the destination, so concurrent readers never see a partial file.
func writeAtomic(path string, write func(f *os.File) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
