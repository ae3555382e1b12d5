package state

// setFilterQuery updates the live filter and keeps the selection on the same
// entry when it is still visible.
func (s *AppState) setFilterQuery(query string) {
	if query == s.FilterQuery {
		return
	}
	s.FilterQuery = query
	s.viewChanged()
}

func (s *AppState) clearFilter() {
	s.FilterActive = false
	s.setFilterQuery("")
}
