package cache

// ScopedKeyer wraps a Keyer with a prefix for isolation.
// This is useful when several deployments share one Redis instance:
//
//	staging := NewScopedKeyer(NewDefaultKeyer(), "staging:")
//	prod := NewScopedKeyer(NewDefaultKeyer(), "prod:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// DocumentKey generates a prefixed key for fetched documents.
func (k *ScopedKeyer) DocumentKey(url string) string {
	return k.prefix + k.inner.DocumentKey(url)
}

// TriplesKey generates a prefixed key for extracted triples.
func (k *ScopedKeyer) TriplesKey(docHash, columns string) string {
	return k.prefix + k.inner.TriplesKey(docHash, columns)
}
