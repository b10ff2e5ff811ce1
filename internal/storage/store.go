// Package storage persists all application state in one local JSON file,
// reproducing the browser local-storage contract the app grew up with:
// loads of missing or corrupt data fall back to defaults and never fail the
// caller, writes are last-write-wins, and there is no transactionality.
//
// Historically the state was spread over independently-evolved keys
// (ygglist:data:v1, ygglist:purchases:v1, ygglist:user, plus two competing
// imported-list keys). Those now live in a single versioned envelope with an
// explicit migration on load.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ygglist/ygglist/internal/domain"
)

const dataVersion = 2

// Legacy local-storage keys recognized by the migration.
const (
	legacyDataKey      = "ygglist:data:v1"
	legacyPurchasesKey = "ygglist:purchases:v1"
	legacyUserKey      = "ygglist:user"
	legacyPrefsKey     = "ygglist:prefs"
	legacyFavoritesKey = "ygglist:favorites"
)

// Two competing imported-list keys coexisted across revisions; the migration
// merges both, older key first.
var legacyImportKeys = []string{"ygglist:imported:v1", "ygglist:imported-lists:v1"}

type envelope struct {
	Version   int                   `json:"version"`
	Buckets   []domain.Bucket       `json:"buckets"`
	Purchases []domain.Purchase     `json:"purchases"`
	Imports   []domain.ImportedList `json:"imports"`
	Favorites []domain.Favorite     `json:"favorites"`
	Session   *domain.Session       `json:"session,omitempty"`
	Prefs     domain.Preferences    `json:"prefs"`
}

// Store is the file-backed state container. Safe for concurrent use; every
// accessor returns copies so callers never alias stored slices.
type Store struct {
	mu   sync.RWMutex
	path string
	log  zerolog.Logger

	buckets   []domain.Bucket
	purchases []domain.Purchase
	imports   []domain.ImportedList
	favorites []domain.Favorite
	session   *domain.Session
	prefs     domain.Preferences
}

// New opens (or creates) the data file at path. Corrupt content is absorbed:
// the store starts from defaults and logs a warning. Only an unusable data
// directory is a hard error.
func New(path string, log zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	s := &Store{path: path, log: log}
	s.load()
	return s, nil
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("path", s.path).Msg("Unreadable data file, starting empty")
		}
		return
	}
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err == nil && env.Version >= 1 {
		s.buckets = env.Buckets
		s.purchases = env.Purchases
		s.imports = env.Imports
		s.favorites = env.Favorites
		s.session = env.Session
		s.prefs = env.Prefs
		return
	}

	if s.migrateLegacy(data) {
		s.log.Info().Str("path", s.path).Msg("Migrated legacy data file")
		s.persistLocked()
		return
	}

	s.log.Warn().Str("path", s.path).Msg("Corrupt data file, starting empty")
}

// migrateLegacy reads the pre-envelope format: a flat map of local-storage
// keys to JSON blobs. Unknown keys are dropped; the competing imported-list
// keys are concatenated in order. Individually corrupt values are skipped,
// never fatal.
func (s *Store) migrateLegacy(data []byte) bool {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return false
	}
	if _, ok := keys["version"]; ok {
		// An envelope we failed to parse above is not a legacy key map.
		return false
	}

	migrated := false
	if raw, ok := keys[legacyDataKey]; ok {
		var byKey map[string][]domain.Item
		if err := json.Unmarshal(raw, &byKey); err == nil {
			names := make([]string, 0, len(byKey))
			for k := range byKey {
				names = append(names, k)
			}
			sort.Strings(names)
			for _, k := range names {
				loc, date, found := strings.Cut(k, "|")
				if !found {
					continue
				}
				s.buckets = append(s.buckets, domain.Bucket{Location: loc, DateISO: date, Items: byKey[k]})
			}
			migrated = true
		}
	}
	if raw, ok := keys[legacyPurchasesKey]; ok {
		var purchases []domain.Purchase
		if err := json.Unmarshal(raw, &purchases); err == nil {
			s.purchases = purchases
			migrated = true
		}
	}
	if raw, ok := keys[legacyUserKey]; ok {
		var session domain.Session
		if err := json.Unmarshal(raw, &session); err == nil && session.Name != "" {
			s.session = &session
			migrated = true
		}
	}
	if raw, ok := keys[legacyPrefsKey]; ok {
		var prefs domain.Preferences
		if err := json.Unmarshal(raw, &prefs); err == nil {
			s.prefs = prefs
			migrated = true
		}
	}
	if raw, ok := keys[legacyFavoritesKey]; ok {
		var favorites []domain.Favorite
		if err := json.Unmarshal(raw, &favorites); err == nil {
			s.favorites = favorites
			migrated = true
		}
	}
	for _, key := range legacyImportKeys {
		raw, ok := keys[key]
		if !ok {
			continue
		}
		var imports []domain.ImportedList
		if err := json.Unmarshal(raw, &imports); err == nil {
			s.imports = append(s.imports, imports...)
			migrated = true
		}
	}
	return migrated
}

// persistLocked writes the whole envelope atomically. Write failures are
// logged and swallowed: persistence is best effort, in-memory state stays
// authoritative for the process lifetime.
func (s *Store) persistLocked() {
	env := envelope{
		Version:   dataVersion,
		Buckets:   s.buckets,
		Purchases: s.purchases,
		Imports:   s.imports,
		Favorites: s.favorites,
		Session:   s.session,
		Prefs:     s.prefs,
	}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to marshal data file")
		return
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		s.log.Warn().Err(err).Msg("Failed to write data file")
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		s.log.Warn().Err(err).Msg("Failed to replace data file")
	}
}

// Bucket returns a copy of the bucket for (location, dateISO), or an empty
// one when it does not exist yet. Buckets are created implicitly on first
// save.
func (s *Store) Bucket(location, dateISO string) domain.Bucket {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.buckets {
		if b.Location == location && b.DateISO == dateISO {
			return copyBucket(b)
		}
	}
	return domain.Bucket{Location: location, DateISO: dateISO}
}

// BucketKeys lists existing buckets, newest date first, location as
// tiebreak.
func (s *Store) BucketKeys() []domain.BucketKey {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]domain.BucketKey, 0, len(s.buckets))
	for _, b := range s.buckets {
		keys = append(keys, b.Key())
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].DateISO != keys[j].DateISO {
			return keys[i].DateISO > keys[j].DateISO
		}
		return keys[i].Location < keys[j].Location
	})
	return keys
}

// SaveBucket replaces the stored bucket wholesale. A bucket left with no
// items is removed from the index.
func (s *Store) SaveBucket(b domain.Bucket) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b = copyBucket(b)
	for i := range s.buckets {
		if s.buckets[i].Location == b.Location && s.buckets[i].DateISO == b.DateISO {
			if len(b.Items) == 0 {
				s.buckets = append(s.buckets[:i], s.buckets[i+1:]...)
			} else {
				s.buckets[i] = b
			}
			s.persistLocked()
			return
		}
	}
	if len(b.Items) > 0 {
		s.buckets = append(s.buckets, b)
		s.persistLocked()
	}
}

// Purchases returns the finalized purchase history, newest first.
func (s *Store) Purchases() []domain.Purchase {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Purchase, len(s.purchases))
	for i, p := range s.purchases {
		out[i] = copyPurchase(p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// AddPurchase appends one immutable purchase record.
func (s *Store) AddPurchase(p domain.Purchase) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purchases = append(s.purchases, copyPurchase(p))
	s.persistLocked()
}

// Imports returns the buffered import results, newest first.
func (s *Store) Imports() []domain.ImportedList {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ImportedList, len(s.imports))
	for i, l := range s.imports {
		out[i] = copyImport(l)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// UpsertImport stores an import result, replacing any prior import with the
// same (store, date, item count) signature. The signature is coarse and can
// collide; that matches the historical behavior.
func (s *Store) UpsertImport(l domain.ImportedList) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l = copyImport(l)
	sig := l.Signature()
	for i := range s.imports {
		if s.imports[i].Signature() == sig {
			s.imports[i] = l
			s.persistLocked()
			return
		}
	}
	s.imports = append(s.imports, l)
	s.persistLocked()
}

// Favorites returns the favorites list.
func (s *Store) Favorites() []domain.Favorite {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Favorite, len(s.favorites))
	copy(out, s.favorites)
	return out
}

// SetFavorites replaces the favorites list.
func (s *Store) SetFavorites(favorites []domain.Favorite) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.favorites = make([]domain.Favorite, len(favorites))
	copy(s.favorites, favorites)
	s.persistLocked()
}

// Session returns the current fake-login session, or nil when logged out.
func (s *Store) Session() *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return nil
	}
	session := *s.session
	return &session
}

// SetSession stores or clears (nil) the session stub.
func (s *Store) SetSession(session *domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session == nil {
		s.session = nil
	} else {
		copied := *session
		s.session = &copied
	}
	s.persistLocked()
}

// Preferences returns the cached preferences.
func (s *Store) Preferences() domain.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

// SetPreferences replaces the cached preferences.
func (s *Store) SetPreferences(prefs domain.Preferences) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prefs = prefs
	s.persistLocked()
}

func copyBucket(b domain.Bucket) domain.Bucket {
	items := make([]domain.Item, len(b.Items))
	copy(items, b.Items)
	b.Items = items
	return b
}

func copyPurchase(p domain.Purchase) domain.Purchase {
	items := make([]domain.Item, len(p.Items))
	copy(items, p.Items)
	p.Items = items
	return p
}

func copyImport(l domain.ImportedList) domain.ImportedList {
	items := make([]domain.Item, len(l.Items))
	copy(items, l.Items)
	l.Items = items
	return l
}
