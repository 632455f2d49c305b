package field

// Artifact is the decoded root object of a wrapped analytics file.
// It is read-only after construction.
type Artifact struct {
	root map[string]any
}

// NewArtifact wraps a decoded JSON object. A nil root is treated as empty.
func NewArtifact(root map[string]any) *Artifact {
	if root == nil {
		root = map[string]any{}
	}
	return &Artifact{root: root}
}

// Lookup returns the value at p, or Missing.
func (a *Artifact) Lookup(p Path) Value {
	if a == nil {
		return Missing
	}
	raw, ok := p.lookup(a.root)
	if !ok {
		return Missing
	}
	return Present(raw)
}

// Keys returns the number of top-level keys.
func (a *Artifact) Keys() int {
	if a == nil {
		return 0
	}
	return len(a.root)
}
