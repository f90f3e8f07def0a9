package client

// ViewState is the results area's display state.
type ViewState int

const (
	// StateIdle is the state before the first search.
	StateIdle ViewState = iota
	// StateLoading means a search is in flight.
	StateLoading
	// StateEmpty means the search succeeded with zero matches.
	StateEmpty
	// StatePopulated means results are on screen.
	StatePopulated
	// StateError means the last search failed and a retry should be
	// offered.
	StateError
)

func (s ViewState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateEmpty:
		return "empty"
	case StatePopulated:
		return "populated"
	case StateError:
		return "error"
	}
	return "unknown"
}

// maxPageButtons is the width of the pagination button window.
const maxPageButtons = 5

// Presenter tracks what the results area should display. It is a plain
// state machine fed by the SearchController's callbacks; wire BeginLoad
// before each search, Present on OnResults and Fail on OnError.
type Presenter struct {
	state      ViewState
	recipes    []Recipe
	pagination Pagination
	err        error

	// lastFilters is kept so a failed search can be retried as-is.
	lastFilters Filters
}

// NewPresenter returns a presenter in the idle state.
func NewPresenter() *Presenter {
	return &Presenter{state: StateIdle}
}

// BeginLoad records that a search with the given filters has started.
// Existing results stay available so the UI can keep them visible under a
// loading indicator.
func (p *Presenter) BeginLoad(filters Filters) {
	p.state = StateLoading
	p.err = nil
	p.lastFilters = filters
}

// Present applies a successful search response.
func (p *Presenter) Present(resp *SearchResponse) {
	p.recipes = resp.Recipes
	p.pagination = resp.Pagination
	p.err = nil
	if len(resp.Recipes) == 0 {
		p.state = StateEmpty
		return
	}
	p.state = StatePopulated
}

// Fail applies a failed search. Previous results are cleared so the error
// view is unambiguous.
func (p *Presenter) Fail(err error) {
	p.state = StateError
	p.err = err
	p.recipes = nil
	p.pagination = Pagination{}
}

// State returns the current display state.
func (p *Presenter) State() ViewState { return p.state }

// Recipes returns the recipes to display.
func (p *Presenter) Recipes() []Recipe { return p.recipes }

// Pagination returns the current page metadata.
func (p *Presenter) Pagination() Pagination { return p.pagination }

// Err returns the error behind the error state, or nil.
func (p *Presenter) Err() error { return p.err }

// RetryFilters returns the filters of the last attempted search, for the
// error view's retry action.
func (p *Presenter) RetryFilters() Filters { return p.lastFilters }

// PageWindow returns the page numbers to render as buttons: at most five,
// centered on the current page and clamped to the valid range.
func (p *Presenter) PageWindow() []int {
	return PageWindow(p.pagination.CurrentPage, p.pagination.TotalPages)
}

// PageWindow computes the visible page buttons for a paginator: at most
// maxPageButtons consecutive pages, centered on current, shifted to stay
// within [1, total].
func PageWindow(current, total int) []int {
	if total < 1 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	start := current - maxPageButtons/2
	if start < 1 {
		start = 1
	}
	end := start + maxPageButtons - 1
	if end > total {
		end = total
		start = end - maxPageButtons + 1
		if start < 1 {
			start = 1
		}
	}

	pages := make([]int, 0, end-start+1)
	for page := start; page <= end; page++ {
		pages = append(pages, page)
	}
	return pages
}
