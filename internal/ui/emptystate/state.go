package emptystate

// ViewState is what a list screen should show. It is derived on every
// render and never stored.
type ViewState int

const (
	Populated ViewState = iota
	Loading
	// Empty means the source itself has no records.
	Empty
	// FilteredEmpty means a filter reduced a non-empty source to nothing.
	FilteredEmpty
)

func (s ViewState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Empty:
		return "empty"
	case FilteredEmpty:
		return "filtered-empty"
	}
	return "populated"
}

// DeriveState maps the loading flag, the unfiltered record count and the
// filtered record count to a ViewState.
func DeriveState(loading bool, sourceCount, visibleCount int) ViewState {
	switch {
	case loading:
		return Loading
	case sourceCount == 0:
		return Empty
	case visibleCount == 0:
		return FilteredEmpty
	default:
		return Populated
	}
}
