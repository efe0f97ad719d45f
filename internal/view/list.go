// Package view holds the state layer the host UI renders: paginated
// resource lists, statistics loaders and the mutation dispatcher.
package view

import (
	"context"
	"log/slog"
	"maps"
	"sync"
	"time"

	"marketadmin/internal/api"
)

// DefaultSearchDebounce separates search keystrokes from fetches.
const DefaultSearchDebounce = 300 * time.Millisecond

// Fetcher loads one page for a resource list.
type Fetcher[T any] func(ctx context.Context, q api.ListQuery) (*api.Page[T], error)

// ListOptions tune a resource list. Initial state mirrors how a page
// mounts with pre-selected filters; the first Refresh picks it up.
type ListOptions struct {
	PerPage  int
	Debounce time.Duration
	Logger   *slog.Logger

	InitialSearch  string
	InitialFilters map[string]string
	InitialPage    int
}

// List is the view-model behind every admin dashboard list. Any filter
// change resets the page to 1 so a stale page never shows under fresh
// filters. Each refresh carries a sequence number; a response that is
// no longer the latest issued is discarded, so the list always
// reflects the newest filter state even when an older request settles
// late.
type List[T any] struct {
	mu       sync.Mutex
	fetch    Fetcher[T]
	logger   *slog.Logger
	perPage  int
	debounce time.Duration
	timer    *time.Timer

	seq      uint64
	items    []T
	loading  bool
	page     int
	lastPage int
	total    int
	from     int
	to       int
	search   string
	filters  map[string]string
}

func NewList[T any](fetch Fetcher[T], opts ListOptions) *List[T] {
	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = api.DefaultPerPage
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultSearchDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	page := opts.InitialPage
	if page < 1 {
		page = 1
	}
	filters := maps.Clone(opts.InitialFilters)
	if filters == nil {
		filters = make(map[string]string)
	}
	return &List[T]{
		fetch:    fetch,
		logger:   logger,
		perPage:  perPage,
		debounce: debounce,
		page:     page,
		search:   opts.InitialSearch,
		filters:  filters,
	}
}

// Items returns the current page of items.
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

func (l *List[T]) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

func (l *List[T]) Page() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.page
}

func (l *List[T]) LastPage() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastPage
}

func (l *List[T]) Total() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total
}

// Range reports the 1-based from/to indexes of the current page.
func (l *List[T]) Range() (from, to int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.from, l.to
}

// ShowPagination reports whether paging controls should render at all.
func (l *List[T]) ShowPagination() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastPage > 1
}

// Filters returns a copy of the active filter map.
func (l *List[T]) Filters() map[string]string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return maps.Clone(l.filters)
}

// SetFilter updates one filter field, resets to page 1 and refreshes.
func (l *List[T]) SetFilter(ctx context.Context, key, value string) {
	l.mu.Lock()
	l.filters[key] = value
	l.page = 1
	l.mu.Unlock()
	l.Refresh(ctx)
}

// SetSearch updates the search term, resets to page 1 and schedules a
// debounced refresh so typing does not fire a request per keystroke.
func (l *List[T]) SetSearch(ctx context.Context, term string) {
	l.mu.Lock()
	l.search = term
	l.page = 1
	if l.timer != nil {
		l.timer.Stop()
	}
	l.timer = time.AfterFunc(l.debounce, func() { l.Refresh(ctx) })
	l.mu.Unlock()
}

// SetPage moves to page n and refreshes immediately.
func (l *List[T]) SetPage(ctx context.Context, n int) {
	if n < 1 {
		n = 1
	}
	l.mu.Lock()
	l.page = n
	l.mu.Unlock()
	l.Refresh(ctx)
}

// Refresh fetches the page matching the current state. The loading
// flag is cleared when the newest request settles, success or failure;
// on failure the previous items stay in place (stale but consistent).
func (l *List[T]) Refresh(ctx context.Context) {
	l.mu.Lock()
	l.seq++
	seq := l.seq
	l.loading = true
	q := api.ListQuery{
		Page:    l.page,
		PerPage: l.perPage,
		Search:  l.search,
		Filters: maps.Clone(l.filters),
	}
	l.mu.Unlock()

	page, err := l.fetch(ctx, q)

	l.mu.Lock()
	defer l.mu.Unlock()
	if seq != l.seq {
		// Superseded by a newer refresh; that one owns the state now.
		return
	}
	l.loading = false
	if err != nil {
		l.logger.Error("list refresh failed", "error", err, "page", q.Page)
		return
	}
	l.items = page.Data
	l.page = page.CurrentPage
	l.lastPage = page.LastPage
	l.total = page.Total
	l.from = page.From
	l.to = page.To
}
