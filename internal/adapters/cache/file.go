package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mercacio/storefront-service/internal/domain"
	"github.com/mercacio/storefront-service/internal/ports"
)

// FileStoreCache is the durable cache backend: one JSON file per entry under
// a fixed directory, no TTL. Entries live until explicitly invalidated.
// Writes go to a temp file first and are renamed into place, so a concurrent
// reader only ever sees a complete file or none.
type FileStoreCache struct {
	dir    string
	logger *slog.Logger
}

func NewFileStoreCache(dir string, logger *slog.Logger) *FileStoreCache {
	return &FileStoreCache{dir: dir, logger: logger}
}

func (c *FileStoreCache) entryPath(kind ports.StoreKeyKind, identifier string) string {
	return filepath.Join(c.dir, fmt.Sprintf("%s-%s.json", kind, identifier))
}

// safeIdentifier rejects identifiers that would let entryPath escape the
// cache directory. Stored ids and slugs never contain separators; a lookup
// identifier that does is a guaranteed miss.
func safeIdentifier(identifier string) bool {
	return identifier != "" &&
		!strings.ContainsAny(identifier, `/\`) &&
		!strings.Contains(identifier, "..")
}

func (c *FileStoreCache) Get(ctx context.Context, identifier string, kind ports.StoreKeyKind) (domain.StoreCacheEntry, bool) {
	if !safeIdentifier(identifier) {
		return domain.StoreCacheEntry{}, false
	}
	raw, err := os.ReadFile(c.entryPath(kind, identifier))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			c.logger.WarnContext(ctx, "cache read failed",
				"module", "cache.file",
				"operation", "get",
				"outcome", "miss",
				"kind", string(kind),
				"identifier", identifier,
				"error", err,
			)
		}
		return domain.StoreCacheEntry{}, false
	}
	entry, err := decodeEntry(raw)
	if err != nil {
		c.logger.WarnContext(ctx, "cache entry corrupt, treating as miss",
			"module", "cache.file",
			"operation", "get",
			"kind", string(kind),
			"identifier", identifier,
			"error", err,
		)
		return domain.StoreCacheEntry{}, false
	}
	return entry, true
}

func (c *FileStoreCache) Set(ctx context.Context, store domain.Store) error {
	if store.ID == "" {
		return fmt.Errorf("%w: cannot cache store without id", domain.ErrInvalidInput)
	}
	// MkdirAll is safe under concurrent creation.
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("%w: create cache dir: %v", domain.ErrCacheUnavailable, err)
	}

	now := time.Now().UTC()
	idPayload, err := encodeStore(store, now)
	if err != nil {
		return err
	}
	var errs []error
	if err := c.writeAtomic(c.entryPath(ports.StoreKeyID, store.ID), idPayload); err != nil {
		errs = append(errs, err)
	}
	if store.Slug != "" {
		refPayload, encErr := encodeReference(store, now)
		if encErr != nil {
			return encErr
		}
		if err := c.writeAtomic(c.entryPath(ports.StoreKeySlug, store.Slug), refPayload); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		c.logger.WarnContext(ctx, "cache write failed",
			"module", "cache.file",
			"operation", "set",
			"outcome", "failure",
			"store_id", store.ID,
			"error", errors.Join(errs...),
		)
		return fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, errors.Join(errs...))
	}
	return nil
}

func (c *FileStoreCache) writeAtomic(path string, payload []byte) error {
	tmp, err := os.CreateTemp(c.dir, ".entry-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

func (c *FileStoreCache) Invalidate(ctx context.Context, ref domain.StoreRef) error {
	if ref.ID == "" {
		return nil
	}
	var errs []error
	if err := os.Remove(c.entryPath(ports.StoreKeyID, ref.ID)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		errs = append(errs, err)
	}
	if ref.Slug != "" {
		if err := os.Remove(c.entryPath(ports.StoreKeySlug, ref.Slug)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		c.logger.WarnContext(ctx, "cache invalidation failed",
			"module", "cache.file",
			"operation", "invalidate",
			"outcome", "failure",
			"store_id", ref.ID,
			"error", errors.Join(errs...),
		)
		return fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, errors.Join(errs...))
	}
	return nil
}

func (c *FileStoreCache) ListSlugs(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}
	var slugs []string
	prefix := string(ports.StoreKeySlug) + "-"
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".json") {
			continue
		}
		slugs = append(slugs, strings.TrimSuffix(strings.TrimPrefix(name, prefix), ".json"))
	}
	return slugs, nil
}
