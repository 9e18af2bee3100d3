package render

// orderedSet keeps the first occurrence of each value in insertion order.
type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

func (s *orderedSet) Add(v string) bool {
	if _, ok := s.seen[v]; ok {
		return false
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
	return true
}

func (s *orderedSet) AddAll(vs []string) {
	for _, v := range vs {
		s.Add(v)
	}
}

func (s *orderedSet) Items() []string { return append([]string(nil), s.items...) }

func (s *orderedSet) Len() int { return len(s.items) }
