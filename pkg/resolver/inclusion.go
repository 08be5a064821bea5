package resolver

// InclusionSet records the absolute paths inlined during one resolution pass, in the order they
// were first included. The zero value is not usable; call NewInclusionSet.
type InclusionSet struct {
	seen  map[string]struct{}
	order []string
}

// NewInclusionSet returns an empty set.
func NewInclusionSet() *InclusionSet {
	return &InclusionSet{seen: make(map[string]struct{})}
}

// Add records path. It reports false when path was already present.
func (s *InclusionSet) Add(path string) bool {
	if s.Has(path) {
		return false
	}

	s.seen[path] = struct{}{}
	s.order = append(s.order, path)
	return true
}

// Has reports whether path was already included.
func (s *InclusionSet) Has(path string) bool {
	_, ok := s.seen[path]
	return ok
}

// Len returns the number of included paths.
func (s *InclusionSet) Len() int {
	return len(s.order)
}

// Paths returns the included paths in inclusion order.
func (s *InclusionSet) Paths() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
