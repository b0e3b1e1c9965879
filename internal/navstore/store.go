// Package navstore loads scheme NAV histories from a directory of history
// documents and caches their monthly aggregation.
package navstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/iwvelando/mf-returns/pkg/navseries"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// ErrSchemeNotFound is returned when no history document exists for a scheme.
var ErrSchemeNotFound = errors.New("scheme not found")

// ErrInvalidSchemeCode is returned for scheme codes that are not numeric.
var ErrInvalidSchemeCode = errors.New("invalid scheme code")

var schemeCodePattern = regexp.MustCompile(`^[0-9]{1,10}$`)

// Store reads <dir>/<schemeCode>.json history documents.
type Store struct {
	dir    string
	cache  *cache.Cache
	logger *zap.Logger
}

// New creates a Store rooted at dir. Aggregated series are cached for ttl;
// a non-positive ttl keeps them until the process exits.
func New(logger *zap.Logger, dir string, ttl time.Duration) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	expiration := ttl
	if expiration <= 0 {
		expiration = cache.NoExpiration
	}
	return &Store{
		dir:    dir,
		cache:  cache.New(expiration, 2*expiration),
		logger: logger,
	}
}

// History reads the NAV history document for code.
func (s *Store) History(code string) (*navseries.History, error) {
	if !schemeCodePattern.MatchString(code) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSchemeCode, code)
	}

	path := filepath.Join(s.dir, code+".json")
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSchemeNotFound, code)
		}
		return nil, fmt.Errorf("failed to open NAV history for scheme %s: %w", code, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			s.logger.Warn("failed to close NAV history",
				zap.String("op", "navstore.History"),
				zap.String("path", path),
				zap.Error(closeErr),
			)
		}
	}()

	history, err := navseries.DecodeHistory(file)
	if err != nil {
		return nil, fmt.Errorf("scheme %s: %w", code, err)
	}
	if history.Meta.SchemeCode == "" {
		history.Meta.SchemeCode = code
	}
	return history, nil
}

// Entry is a cached aggregation of one scheme.
type Entry struct {
	Meta   navseries.SchemeMeta
	Series *navseries.MonthlySeries
}

// Monthly returns the aggregated monthly series for code, reading and
// aggregating the history document on a cache miss.
func (s *Store) Monthly(code string) (Entry, error) {
	if cached, ok := s.cache.Get(code); ok {
		return cached.(Entry), nil
	}

	history, err := s.History(code)
	if err != nil {
		return Entry{}, err
	}
	series, err := history.Monthly()
	if err != nil {
		return Entry{}, fmt.Errorf("scheme %s: %w", code, err)
	}

	entry := Entry{Meta: history.Meta, Series: series}
	s.cache.SetDefault(code, entry)
	s.logger.Debug("aggregated NAV history",
		zap.String("op", "navstore.Monthly"),
		zap.String("scheme", code),
		zap.Int("records", len(history.Records)),
		zap.Int("months", series.Len()),
	)
	return entry, nil
}
