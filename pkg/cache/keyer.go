package cache

// Keyer produces cache keys for each entry type.
type Keyer interface {
	// DocumentKey identifies the raw body fetched from url.
	DocumentKey(url string) string

	// TriplesKey identifies the triples extracted from the document with
	// the given content hash using the given column layout.
	TriplesKey(docHash, columns string) string
}

// DefaultKeyer is the standard key layout:
//
//	doc:<sha256(url)>
//	triples:<sha256(docHash, columns)>
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard key layout.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// DocumentKey implements [Keyer].
func (DefaultKeyer) DocumentKey(url string) string {
	return hashKey("doc", url)
}

// TriplesKey implements [Keyer].
func (DefaultKeyer) TriplesKey(docHash, columns string) string {
	return hashKey("triples", docHash, columns)
}
