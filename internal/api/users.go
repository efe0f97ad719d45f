package api

import (
	"context"
	"fmt"
	"net/http"
)

const (
	usersPath          = "/api/admin/users"
	userStatisticsPath = "/api/admin/users/statistics"
)

// ListUsers fetches one page of the user-management list.
// Supported filters: usertype.
func (c *Client) ListUsers(ctx context.Context, q ListQuery) (*Page[User], error) {
	return listPage[User](ctx, c, usersPath, q)
}

// UserStatistics fetches the user dashboard aggregate.
func (c *Client) UserStatistics(ctx context.Context) (*UserStats, error) {
	var stats UserStats
	if err := c.getEnvelope(ctx, userStatisticsPath, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetUser fetches a single account.
func (c *Client) GetUser(ctx context.Context, id int64) (*User, error) {
	var user User
	path := fmt.Sprintf("%s/%d", usersPath, id)
	if err := c.getEnvelope(ctx, path, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes an account. The server enforces its own guard
// against deleting admin accounts; callers apply the UI-level guard
// before ever reaching here.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	path := fmt.Sprintf("%s/%d", usersPath, id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil, true)
}

// Impersonate asks the platform for a session token belonging to the
// target user, along with the identity of the requesting admin.
func (c *Client) Impersonate(ctx context.Context, id int64) (*ImpersonationGrant, error) {
	path := fmt.Sprintf("%s/%d/impersonate", usersPath, id)
	var env envelope
	if err := c.do(ctx, http.MethodPost, path, nil, nil, &env, true); err != nil {
		return nil, err
	}
	var grant ImpersonationGrant
	if err := decodeEnvelopeData(env, &grant, path); err != nil {
		return nil, err
	}
	if grant.Token == "" {
		return nil, fmt.Errorf("api: impersonation grant missing token (%s)", path)
	}
	return &grant, nil
}
