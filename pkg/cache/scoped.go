package cache

// ScopedKeyer wraps a Keyer with a prefix so several tenants can share one
// backend. The preview server scopes keys by the redis prefix it was given.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "visflow:")
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

// RenderKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) RenderKey(diagramHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(diagramHash, opts)
}

// DocumentKey generates a prefixed key for a stored document.
func (k *ScopedKeyer) DocumentKey(name string) string {
	return k.prefix + k.inner.DocumentKey(name)
}
