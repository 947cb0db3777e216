package cache

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/gork-labs/bdd2doc/internal/generator"

	_ "modernc.org/sqlite"
)

// SQLiteFileName is the default database name inside a cache directory.
const SQLiteFileName = "cache.bdd2doc.db"

const schema = `CREATE TABLE IF NOT EXISTS cache (
	key    TEXT PRIMARY KEY,
	digest TEXT NOT NULL,
	api    BLOB NOT NULL
)`

// Models are stored as canonical CBOR so equal models encode to equal bytes.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("cache: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// SQLiteStore keeps one row per cache key.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create cache table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(key string) (*Entry, bool, error) {
	var (
		digest string
		blob   []byte
	)
	err := s.db.QueryRow(`SELECT digest, api FROM cache WHERE key = ?`, key).Scan(&digest, &blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query cache: %w", err)
	}

	var api generator.APIModel
	if err := cbor.Unmarshal(blob, &api); err != nil {
		return nil, false, fmt.Errorf("decode cached model: %w", err)
	}
	return &Entry{Digest: digest, API: &api}, true, nil
}

func (s *SQLiteStore) Put(key string, entry *Entry) error {
	blob, err := cborEncMode.Marshal(entry.API)
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO cache (key, digest, api) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET digest = excluded.digest, api = excluded.api`,
		key, entry.Digest, blob)
	if err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
