package view

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketadmin/internal/api"
)

func pageOf(items []api.User, current, last int) *api.Page[api.User] {
	return &api.Page[api.User]{
		Data: items, CurrentPage: current, LastPage: last,
		PerPage: 15, Total: len(items), From: 1, To: len(items),
	}
}

func TestRefreshInstallsPage(t *testing.T) {
	users := make([]api.User, 12)
	var got api.ListQuery
	list := NewList(func(ctx context.Context, q api.ListQuery) (*api.Page[api.User], error) {
		got = q
		return pageOf(users, 1, 1), nil
	}, ListOptions{})

	list.Refresh(context.Background())

	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 15, got.PerPage)
	assert.Len(t, list.Items(), 12)
	assert.False(t, list.ShowPagination(), "single page hides the controls")
	assert.False(t, list.Loading())
	from, to := list.Range()
	assert.Equal(t, 1, from)
	assert.Equal(t, 12, to)
}

func TestSetFilterResetsPage(t *testing.T) {
	list := NewList(func(ctx context.Context, q api.ListQuery) (*api.Page[api.User], error) {
		return pageOf(nil, q.Page, 5), nil
	}, ListOptions{InitialPage: 4})

	list.SetPage(context.Background(), 4)
	require.Equal(t, 4, list.Page())

	list.SetFilter(context.Background(), "usertype", "seller")
	assert.Equal(t, 1, list.Page(), "any filter change must land on page 1")
	assert.Equal(t, "seller", list.Filters()["usertype"])
}

func TestRefreshFailureKeepsStaleItems(t *testing.T) {
	calls := 0
	list := NewList(func(ctx context.Context, q api.ListQuery) (*api.Page[api.User], error) {
		calls++
		if calls > 1 {
			return nil, errors.New("boom")
		}
		return pageOf(make([]api.User, 3), 1, 2), nil
	}, ListOptions{})

	ctx := context.Background()
	list.Refresh(ctx)
	require.Len(t, list.Items(), 3)

	list.Refresh(ctx)
	assert.Len(t, list.Items(), 3, "failed fetch leaves the previous page visible")
	assert.False(t, list.Loading(), "loading must settle even on failure")
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	list := NewList(func(ctx context.Context, q api.ListQuery) (*api.Page[api.User], error) {
		if calls.Add(1) == 1 {
			<-release
			return pageOf(make([]api.User, 1), 1, 1), nil
		}
		return pageOf(make([]api.User, 9), 1, 1), nil
	}, ListOptions{})

	ctx := context.Background()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		list.Refresh(ctx) // slow request
	}()

	// Wait for the slow request to be in flight, then supersede it.
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	list.Refresh(ctx)
	require.Len(t, list.Items(), 9)

	close(release)
	wg.Wait()

	assert.Len(t, list.Items(), 9, "late response from a superseded request must not overwrite fresher data")
	assert.False(t, list.Loading())
}

func TestSetSearchDebounces(t *testing.T) {
	var calls atomic.Int32
	list := NewList(func(ctx context.Context, q api.ListQuery) (*api.Page[api.User], error) {
		calls.Add(1)
		return pageOf(nil, 1, 1), nil
	}, ListOptions{Debounce: 20 * time.Millisecond})

	ctx := context.Background()
	list.SetSearch(ctx, "a")
	list.SetSearch(ctx, "al")
	list.SetSearch(ctx, "ali")

	assert.Equal(t, int32(0), calls.Load(), "no fetch before the debounce window")
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	// And no trailing extra fetches.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, list.Page(), "search resets to page 1")
}

func TestFiltersPropagateToFetcher(t *testing.T) {
	var got api.ListQuery
	list := NewList(func(ctx context.Context, q api.ListQuery) (*api.Page[api.User], error) {
		got = q
		return pageOf(nil, 1, 1), nil
	}, ListOptions{
		PerPage:        25,
		InitialSearch:  "bob",
		InitialFilters: map[string]string{"status": api.FilterAll},
	})

	list.Refresh(context.Background())

	assert.Equal(t, 25, got.PerPage)
	assert.Equal(t, "bob", got.Search)
	assert.Equal(t, api.FilterAll, got.Filters["status"], "sentinel stripping happens at the request layer")
}
