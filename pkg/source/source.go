// Package source loads raw CSV bytes from a local path or an http(s) URL.
//
// Remote downloads go through [httputil.Client] (retrying transient
// failures) and are cached by location for the configured TTL. Local files
// are always read fresh. Either way the returned [Source] carries a content
// hash that identifies the dataset for artifact caching.
package source

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/matzehuels/scatterplot/pkg/cache"
	perrors "github.com/matzehuels/scatterplot/pkg/errors"
	"github.com/matzehuels/scatterplot/pkg/httputil"
	"github.com/matzehuels/scatterplot/pkg/observability"
)

// DefaultTTL is how long downloaded sources stay cached.
const DefaultTTL = 24 * time.Hour

// Source is a loaded dataset.
type Source struct {
	Location string
	Data     []byte
	Hash     string // SHA-256 of Data
	Remote   bool
	Cached   bool // Served from cache without a download
}

// Fetcher loads sources. The zero value reads local files and downloads
// remote ones without caching.
type Fetcher struct {
	Client *httputil.Client
	Cache  cache.Cache
	Keyer  cache.Keyer
	TTL    time.Duration
}

// IsRemote reports whether location is an http(s) URL.
func IsRemote(location string) bool {
	l := strings.ToLower(location)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

// Fetch loads location with a default Fetcher.
func Fetch(ctx context.Context, location string) (*Source, error) {
	var f Fetcher
	return f.Fetch(ctx, location)
}

// Fetch loads location.
func (f *Fetcher) Fetch(ctx context.Context, location string) (*Source, error) {
	if err := perrors.ValidateSource(location); err != nil {
		return nil, err
	}
	if IsRemote(location) {
		return f.fetchRemote(ctx, location)
	}
	return f.readLocal(location)
}

func (f *Fetcher) readLocal(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "file not found: %s", path)
	}
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return &Source{Location: path, Data: data, Hash: cache.Hash(data)}, nil
}

func (f *Fetcher) fetchRemote(ctx context.Context, rawURL string) (*Source, error) {
	c, keyer := f.cache(), f.keyer()
	hooks := observability.Cache()
	key := keyer.SourceKey(rawURL)

	if data, ok, err := c.Get(ctx, key); err == nil && ok {
		hooks.OnCacheHit(ctx, "source")
		return &Source{Location: rawURL, Data: data, Hash: cache.Hash(data), Remote: true, Cached: true}, nil
	}
	hooks.OnCacheMiss(ctx, "source")

	client := f.Client
	if client == nil {
		client = httputil.NewClient()
	}
	data, err := client.Get(ctx, rawURL)
	if err != nil {
		return nil, classify(rawURL, err)
	}

	if err := c.Set(ctx, key, data, f.ttl()); err == nil {
		hooks.OnCacheSet(ctx, "source", len(data))
	}
	return &Source{Location: rawURL, Data: data, Hash: cache.Hash(data), Remote: true}, nil
}

func classify(rawURL string, err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return perrors.Wrap(perrors.ErrCodeTimeout, err, "fetch %s timed out", rawURL)
	case perrors.GetCode(err) != "":
		return err
	}
	return perrors.Wrap(perrors.ErrCodeNetwork, err, "fetch %s", rawURL)
}

func (f *Fetcher) cache() cache.Cache {
	if f.Cache == nil {
		return cache.NewNullCache()
	}
	return f.Cache
}

func (f *Fetcher) keyer() cache.Keyer {
	if f.Keyer == nil {
		return cache.NewDefaultKeyer()
	}
	return f.Keyer
}

func (f *Fetcher) ttl() time.Duration {
	if f.TTL <= 0 {
		return DefaultTTL
	}
	return f.TTL
}
