// Package cache persists built API models so unchanged spec trees are not
// parsed again.
package cache

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/gork-labs/bdd2doc/internal/generator"
)

// Entry is one cached model together with the digest of the files it was
// built from.
type Entry struct {
	Digest string              `json:"digest"`
	API    *generator.APIModel `json:"api"`
}

// Fresh reports whether the entry was built from files with the given digest.
func (e *Entry) Fresh(digest string) bool {
	return e != nil && e.Digest != "" && e.Digest == digest
}

// Store is a key-value store for cache entries.
type Store interface {
	// Get returns the entry for key. A missing entry is not an error.
	Get(key string) (*Entry, bool, error)
	Put(key string, entry *Entry) error
	Close() error
}

// Key derives the cache key of a discovery request.
func Key(dir, fileEnding, versionTag string) string {
	return md5Hex(strings.Join([]string{dir, fileEnding, versionTag}, "|"))
}

// isoMillis is the layout of JavaScript's Date.toISOString.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// ContentHash digests the modification times of the given files, in order.
func ContentHash(paths []string) (string, error) {
	var sb strings.Builder
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", p, err)
		}
		sb.WriteString(info.ModTime().UTC().Format(isoMillis))
	}
	return md5Hex(sb.String()), nil
}

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s)) // #nosec G401 -- change detection, not security
	return hex.EncodeToString(sum[:])
}

// Nop is a Store that never holds anything.
type Nop struct{}

func (Nop) Get(string) (*Entry, bool, error) { return nil, false, nil }
func (Nop) Put(string, *Entry) error         { return nil }
func (Nop) Close() error                     { return nil }
