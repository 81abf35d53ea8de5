package cache

// ScopedKeyer prefixes every key of an inner Keyer, giving each tool or user
// its own namespace on a shared backend:
//
//	k := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "scatterplot:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner (DefaultKeyer when nil) with prefix.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// SourceKey returns the prefixed source key.
func (k *ScopedKeyer) SourceKey(location string) string {
	return k.prefix + k.inner.SourceKey(location)
}

// ArtifactKey returns the prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(dataHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(dataHash, opts)
}
