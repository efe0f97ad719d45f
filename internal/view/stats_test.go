package view

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketadmin/internal/api"
)

func TestStatsLoad(t *testing.T) {
	stats := NewStats(func(ctx context.Context) (*api.UserStats, error) {
		return &api.UserStats{TotalUsers: 120, Buyers: 80}, nil
	}, nil)

	_, ok := stats.Value()
	assert.False(t, ok, "unknown until first load")

	stats.Load(context.Background())
	value, ok := stats.Value()
	require.True(t, ok)
	assert.Equal(t, 120, value.TotalUsers)
}

func TestStatsFailureIsBestEffort(t *testing.T) {
	fail := false
	stats := NewStats(func(ctx context.Context) (*api.UserStats, error) {
		if fail {
			return nil, errors.New("boom")
		}
		return &api.UserStats{TotalUsers: 5}, nil
	}, nil)

	ctx := context.Background()
	stats.Load(ctx)
	_, ok := stats.Value()
	require.True(t, ok)

	fail = true
	stats.Load(ctx)
	_, ok = stats.Value()
	assert.False(t, ok, "failed refresh degrades to the placeholder, never an error state")
}
