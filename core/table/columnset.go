package table

// ColumnSet is the ordered set of visible column ids. It is never empty.
type ColumnSet struct {
	ids []string
}

func NewColumnSet(ids ...string) (ColumnSet, error) {
	var s ColumnSet
	if err := s.Set(ids...); err != nil {
		return ColumnSet{}, err
	}
	return s, nil
}

// Set replaces the visible columns. Duplicates are dropped; an empty set is rejected.
func (s *ColumnSet) Set(ids ...string) error {
	uniq := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		uniq = append(uniq, id)
	}
	if len(uniq) == 0 {
		return ErrEmptyColumns
	}
	s.ids = uniq
	return nil
}

func (s ColumnSet) Has(id string) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

func (s *ColumnSet) Show(id string) {
	if id != "" && !s.Has(id) {
		s.ids = append(s.ids, id)
	}
}

// Hide removes id from the set. Hiding the last visible column fails with ErrLastColumn.
func (s *ColumnSet) Hide(id string) error {
	if !s.Has(id) {
		return nil
	}
	if len(s.ids) == 1 {
		return ErrLastColumn
	}
	ids := make([]string, 0, len(s.ids)-1)
	for _, v := range s.ids {
		if v != id {
			ids = append(ids, v)
		}
	}
	s.ids = ids
	return nil
}

// Toggle shows a hidden column or hides a visible one.
func (s *ColumnSet) Toggle(id string) error {
	if s.Has(id) {
		return s.Hide(id)
	}
	s.Show(id)
	return nil
}

func (s ColumnSet) IDs() []string { return append([]string(nil), s.ids...) }
func (s ColumnSet) Len() int      { return len(s.ids) }
