package catalog

import "slices"

// QueryState holds the filter and ordering parameters of the selection table.
// FilterText follows keystrokes; CommittedFilter is what was last sent to the
// Source and converges to FilterText once typing stops.
type QueryState struct {
	FilterText      *string
	CommittedFilter *string
	SortKey         SortKey
	SortDescending  bool
}

// DefaultQueryState returns the unfiltered, title-ascending state.
func DefaultQueryState() QueryState {
	return QueryState{SortKey: SortTitle}
}

// Query builds the Source request for the committed parameters.
func (s QueryState) Query() Query {
	return Query{
		Text:    clonePtr(s.CommittedFilter),
		SortKey: s.SortKey,
		Reverse: s.SortDescending,
		First:   PageSize,
	}
}

// TextValue returns the live filter text or "".
func (s QueryState) TextValue() string {
	return deref(s.FilterText)
}

// CommittedValue returns the committed filter text or "".
func (s QueryState) CommittedValue() string {
	return deref(s.CommittedFilter)
}

// Clone returns a deep copy.
func (s QueryState) Clone() QueryState {
	s.FilterText = clonePtr(s.FilterText)
	s.CommittedFilter = clonePtr(s.CommittedFilter)
	return s
}

// SelectionState is the set of selected record ids, kept in selection order.
type SelectionState struct {
	SelectedIDs []string
}

// Has reports whether id is selected.
func (s SelectionState) Has(id string) bool {
	return slices.Contains(s.SelectedIDs, id)
}

// Len returns the number of selected ids.
func (s SelectionState) Len() int {
	return len(s.SelectedIDs)
}

// Clone returns a deep copy.
func (s SelectionState) Clone() SelectionState {
	return SelectionState{SelectedIDs: slices.Clone(s.SelectedIDs)}
}

// DisplayState is the presentational state of a table.
type DisplayState struct {
	SortColumnIndex  int
	SortDirection    Direction
	ShowDescriptions bool
}

// Snapshot captures a selection table so it can be restored exactly.
// Page is the last applied record page, used to render while a refresh runs.
type Snapshot struct {
	Query     QueryState
	Selection SelectionState
	Display   DisplayState
	Page      []Record
	// Stale is set when Page did not yet reflect Query: a debounce timer was
	// armed or a request was in flight.
	Stale     bool
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Query:     s.Query.Clone(),
		Selection: s.Selection.Clone(),
		Display:   s.Display,
		Page:      slices.Clone(s.Page),
		Stale:     s.Stale,
	}
}

func clonePtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
