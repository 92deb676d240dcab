package table

import "sort"

// Selection is either a set of record ids or "all" records.
// It never affects the derived view, only what bulk actions apply to.
type Selection struct {
	all bool
	ids map[string]struct{}
}

func (s *Selection) Select(ids ...string) {
	if s.ids == nil {
		s.ids = make(map[string]struct{}, len(ids))
	}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
}

func (s *Selection) Deselect(ids ...string) {
	for _, id := range ids {
		delete(s.ids, id)
	}
}

func (s *Selection) SelectAll() {
	s.all = true
	s.ids = nil
}

func (s *Selection) Clear() {
	s.all = false
	s.ids = nil
}

func (s Selection) IsAll() bool { return s.all }

func (s Selection) IsEmpty() bool { return !s.all && len(s.ids) == 0 }

func (s Selection) Has(id string) bool {
	if s.all {
		return true
	}
	_, ok := s.ids[id]
	return ok
}

// IDs returns the explicitly selected ids, sorted. It is empty when IsAll.
func (s Selection) IDs() []string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
