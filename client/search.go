package client

import (
	"context"
	"strings"
	"sync"
	"time"
)

const (
	suggestionDebounce = 300 * time.Millisecond
	minSuggestionQuery = 2
)

// Searcher is the part of the API the controller needs. *Client satisfies
// it.
type Searcher interface {
	SearchRecipes(ctx context.Context, filters Filters) (*SearchResponse, error)
	Suggestions(ctx context.Context, query string) ([]Suggestion, error)
}

// SearchEvents receives the controller's output. Callbacks fire from the
// goroutine that completed the underlying request.
type SearchEvents struct {
	// OnSuggestions delivers the suggestion list for the current query.
	// An empty slice means the dropdown should close.
	OnSuggestions func([]Suggestion)
	// OnResults delivers a page of search results.
	OnResults func(*SearchResponse)
	// OnError reports a failed search. Suggestion failures are not
	// reported; the dropdown just stays closed.
	OnError func(error)
	// OnNavigate asks the frontend to open a recipe detail view.
	OnNavigate func(recipeID string)
}

// SearchController owns the search-box state: the typed query, the active
// filters and the suggestion lifecycle. Suggestion fetches are debounced
// and sequence-numbered; a response that arrives after a newer query has
// been issued is discarded, so the dropdown never shows results for stale
// input.
type SearchController struct {
	api    Searcher
	events SearchEvents

	mu      sync.Mutex
	query   string
	filters Filters
	seq     uint64
	timer   *time.Timer

	// afterFunc is swapped out in tests to fire the debounce synchronously.
	afterFunc func(time.Duration, func()) *time.Timer
	debounce  time.Duration
}

// NewSearchController creates a controller over the given API.
func NewSearchController(api Searcher, events SearchEvents) *SearchController {
	return &SearchController{
		api:       api,
		events:    events,
		afterFunc: time.AfterFunc,
		debounce:  suggestionDebounce,
	}
}

// SetQuery updates the typed query. Queries shorter than two characters
// close the dropdown immediately; anything longer schedules a debounced
// suggestion fetch.
func (sc *SearchController) SetQuery(query string) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	sc.query = query
	sc.seq++

	if sc.timer != nil {
		sc.timer.Stop()
		sc.timer = nil
	}

	trimmed := strings.TrimSpace(query)
	if len(trimmed) < minSuggestionQuery {
		if sc.events.OnSuggestions != nil {
			go sc.events.OnSuggestions([]Suggestion{})
		}
		return
	}

	seq := sc.seq
	sc.timer = sc.afterFunc(sc.debounce, func() {
		sc.fetchSuggestions(trimmed, seq)
	})
}

func (sc *SearchController) fetchSuggestions(query string, seq uint64) {
	suggestions, err := sc.api.Suggestions(context.Background(), query)

	sc.mu.Lock()
	stale := seq != sc.seq
	sc.mu.Unlock()
	if stale || err != nil {
		return
	}

	if sc.events.OnSuggestions != nil {
		sc.events.OnSuggestions(suggestions)
	}
}

// Select applies a chosen suggestion. Recipe suggestions navigate to the
// recipe; cuisine and category suggestions become filters and run a fresh
// search from page one.
func (sc *SearchController) Select(s Suggestion) {
	sc.mu.Lock()
	sc.seq++
	if sc.timer != nil {
		sc.timer.Stop()
		sc.timer = nil
	}

	switch s.Type {
	case "recipe":
		sc.mu.Unlock()
		if sc.events.OnNavigate != nil {
			sc.events.OnNavigate(s.ID)
		}
		return
	case "cuisine":
		sc.query = ""
		sc.filters.Search = ""
		sc.filters.Cuisine = s.Value
	case "category":
		sc.query = ""
		sc.filters.Search = ""
		sc.filters.Category = s.Value
	default:
		sc.query = s.Value
		sc.filters.Search = s.Value
	}
	sc.filters.Page = 1
	filters := sc.filters
	sc.mu.Unlock()

	sc.runSearch(filters)
}

// Submit runs a search for the current query and filters, from page one.
func (sc *SearchController) Submit() {
	sc.mu.Lock()
	sc.seq++
	if sc.timer != nil {
		sc.timer.Stop()
		sc.timer = nil
	}
	sc.filters.Search = strings.TrimSpace(sc.query)
	sc.filters.Page = 1
	filters := sc.filters
	sc.mu.Unlock()

	sc.runSearch(filters)
}

// SetFilter updates one categorical filter and re-runs the search from
// page one. Known names are cuisine, difficulty, category and vegetarian.
func (sc *SearchController) SetFilter(name, value string) {
	sc.mu.Lock()
	switch name {
	case "cuisine":
		sc.filters.Cuisine = value
	case "difficulty":
		sc.filters.Difficulty = value
	case "category":
		sc.filters.Category = value
	case "vegetarian":
		sc.filters.Vegetarian = value
	case "ingredients":
		sc.filters.Ingredients = value
	default:
		sc.mu.Unlock()
		return
	}
	sc.filters.Page = 1
	filters := sc.filters
	sc.mu.Unlock()

	sc.runSearch(filters)
}

// SetSort changes the sort key and direction and re-runs the search from
// page one.
func (sc *SearchController) SetSort(sortBy, sortOrder string) {
	sc.mu.Lock()
	sc.filters.SortBy = sortBy
	sc.filters.SortOrder = sortOrder
	sc.filters.Page = 1
	filters := sc.filters
	sc.mu.Unlock()

	sc.runSearch(filters)
}

// SetPage moves to another result page without touching the filters.
func (sc *SearchController) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	sc.mu.Lock()
	sc.filters.Page = page
	filters := sc.filters
	sc.mu.Unlock()

	sc.runSearch(filters)
}

// ClearAll resets the query and every filter to defaults and re-runs the
// search.
func (sc *SearchController) ClearAll() {
	sc.mu.Lock()
	sc.seq++
	if sc.timer != nil {
		sc.timer.Stop()
		sc.timer = nil
	}
	sc.query = ""
	sc.filters = Filters{}
	sc.mu.Unlock()

	if sc.events.OnSuggestions != nil {
		sc.events.OnSuggestions([]Suggestion{})
	}
	sc.runSearch(Filters{})
}

// Filters returns a copy of the active filter state.
func (sc *SearchController) Filters() Filters {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.filters
}

func (sc *SearchController) runSearch(filters Filters) {
	resp, err := sc.api.SearchRecipes(context.Background(), filters)
	if err != nil {
		if sc.events.OnError != nil {
			sc.events.OnError(err)
		}
		return
	}
	if sc.events.OnResults != nil {
		sc.events.OnResults(resp)
	}
}
