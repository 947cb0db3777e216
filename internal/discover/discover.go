// Package discover finds BDD spec files and turns them into an API model,
// reusing a cached model while the files are unchanged.
package discover

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gork-labs/bdd2doc/internal/bdd"
	"github.com/gork-labs/bdd2doc/internal/cache"
	"github.com/gork-labs/bdd2doc/internal/generator"
)

// DefaultFileEnding selects spec files when no filter is given.
const DefaultFileEnding = "SpecTests.js"

// FindMatchingFiles walks dir recursively and returns, in lexical order,
// every file whose name contains fileEnding.
func FindMatchingFiles(dir, fileEnding string) ([]string, error) {
	if fileEnding == "" {
		fileEnding = DefaultFileEnding
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.Contains(d.Name(), fileEnding) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	return files, nil
}

// Result is a model together with the files it was built from.
type Result struct {
	Files []string
	API   *generator.APIModel
}

// Discoverer builds API models from spec directories.
type Discoverer struct {
	store  cache.Store
	logger *slog.Logger
}

// New returns a Discoverer using store for caching. A nil store disables
// caching and a nil logger discards log output.
func New(store cache.Store, logger *slog.Logger) *Discoverer {
	if store == nil {
		store = cache.Nop{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Discoverer{store: store, logger: logger}
}

// CreateFromDirectory builds a fresh model from every matching file under dir.
func (d *Discoverer) CreateFromDirectory(ctx context.Context, dir, fileEnding string) (*Result, error) {
	files, err := FindMatchingFiles(dir, fileEnding)
	if err != nil {
		return nil, err
	}

	b := generator.NewBuilder(generator.WithLogger(d.logger))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		blocks, err := d.parseFile(ctx, f)
		if errors.Is(err, bdd.ErrSyntax) {
			d.logger.Warn("skipping file with syntax errors", "file", f, "error", err)
			continue
		}
		if err != nil {
			return nil, err
		}
		b.Add(blocks)
	}
	return &Result{Files: files, API: b.Build()}, nil
}

func (d *Discoverer) parseFile(ctx context.Context, path string) ([]*bdd.Block, error) {
	src, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	blocks, err := bdd.Parse(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return blocks, nil
}

// Discover returns the model for dir. The cached model is used while the
// modification times of the matching files are unchanged; otherwise the
// model is rebuilt and written back to the cache.
func (d *Discoverer) Discover(ctx context.Context, dir, fileEnding, versionTag string) (*generator.APIModel, error) {
	key := cache.Key(dir, fileEnding, versionTag)

	entry, ok, err := d.store.Get(key)
	if err != nil {
		return nil, err
	}
	if ok {
		files, err := FindMatchingFiles(dir, fileEnding)
		if err != nil {
			return nil, err
		}
		digest, err := cache.ContentHash(files)
		if err != nil {
			return nil, err
		}
		if entry.Fresh(digest) && entry.API != nil {
			d.logger.Debug("using cached model", "dir", dir, "files", len(files))
			return entry.API, nil
		}
		d.logger.Info("spec files changed, rebuilding model", "dir", dir)
	}
	return d.rebuild(ctx, key, dir, fileEnding)
}

func (d *Discoverer) rebuild(ctx context.Context, key, dir, fileEnding string) (*generator.APIModel, error) {
	res, err := d.CreateFromDirectory(ctx, dir, fileEnding)
	if err != nil {
		return nil, err
	}
	digest, err := cache.ContentHash(res.Files)
	if err != nil {
		return nil, err
	}
	if err := d.store.Put(key, &cache.Entry{Digest: digest, API: res.API}); err != nil {
		return nil, fmt.Errorf("update cache: %w", err)
	}
	d.logger.Debug("model rebuilt", "dir", dir, "files", len(res.Files), "namespaces", len(res.API.Namespaces))
	return res.API, nil
}
