package view

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketadmin/internal/api"
)

type stubAPI struct {
	deleteErr      error
	grant          *api.ImpersonationGrant
	impersonateErr error
	deletedID      int64
	impersonatedID int64
}

func (s *stubAPI) DeleteUser(_ context.Context, id int64) error {
	s.deletedID = id
	return s.deleteErr
}

func (s *stubAPI) Impersonate(_ context.Context, id int64) (*api.ImpersonationGrant, error) {
	s.impersonatedID = id
	if s.impersonateErr != nil {
		return nil, s.impersonateErr
	}
	return s.grant, nil
}

type stubSessions struct {
	began     bool
	completed bool
	aborted   bool
	token     string
}

func (s *stubSessions) BeginImpersonation(int64, string) error { s.began = true; return nil }
func (s *stubSessions) CompleteImpersonation(token string, _ int64, _ string) error {
	s.completed = true
	s.token = token
	return nil
}
func (s *stubSessions) AbortImpersonation() error { s.aborted = true; return nil }

type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *recordingNotifier) Error(msg string)   { n.errors = append(n.errors, msg) }

type yes struct{}

func (yes) Confirm(string) bool { return true }

type no struct{}

func (no) Confirm(string) bool { return false }

func buyer() api.User {
	return api.User{ID: 42, Name: "Some Buyer", Email: "buyer@example.test", Usertype: api.UsertypeBuyer}
}

func admin() api.User {
	return api.User{ID: 1, Name: "Root", Usertype: api.UsertypeAdmin}
}

func TestGuardsRejectAdminAccounts(t *testing.T) {
	assert.False(t, CanDelete(admin()))
	assert.False(t, CanImpersonate(admin()))
	assert.True(t, CanDelete(buyer()))
	assert.True(t, CanImpersonate(buyer()))

	d := &Dispatcher{API: &stubAPI{}, Sessions: &stubSessions{}, Confirm: yes{}}
	assert.ErrorIs(t, d.DeleteUser(context.Background(), admin()), ErrAdminAccount)
	_, err := d.ImpersonateUser(context.Background(), admin())
	assert.ErrorIs(t, err, ErrAdminAccount)
}

func TestDeleteUserSuccessRefreshesBoth(t *testing.T) {
	stub := &stubAPI{}
	notify := &recordingNotifier{}
	listRefreshed, statsRefreshed := false, false
	d := &Dispatcher{
		API: stub, Sessions: &stubSessions{}, Confirm: yes{}, Notify: notify,
		RefreshList:  func(context.Context) { listRefreshed = true },
		RefreshStats: func(context.Context) { statsRefreshed = true },
	}

	require.NoError(t, d.DeleteUser(context.Background(), buyer()))
	assert.Equal(t, int64(42), stub.deletedID)
	assert.Len(t, notify.successes, 1)
	assert.True(t, listRefreshed)
	assert.True(t, statsRefreshed)
}

func TestDeleteUserFailureSurfacesServerMessage(t *testing.T) {
	stub := &stubAPI{deleteErr: &api.APIError{Status: http.StatusConflict, Message: "user has open orders"}}
	notify := &recordingNotifier{}
	refreshed := false
	d := &Dispatcher{
		API: stub, Sessions: &stubSessions{}, Confirm: yes{}, Notify: notify,
		RefreshList: func(context.Context) { refreshed = true },
	}

	err := d.DeleteUser(context.Background(), buyer())
	require.Error(t, err)
	require.Len(t, notify.errors, 1)
	assert.Equal(t, "user has open orders", notify.errors[0])
	assert.False(t, refreshed, "no state change on failure")
}

func TestDeleteUserCancelled(t *testing.T) {
	stub := &stubAPI{}
	d := &Dispatcher{API: stub, Sessions: &stubSessions{}, Confirm: no{}}

	assert.ErrorIs(t, d.DeleteUser(context.Background(), buyer()), ErrCancelled)
	assert.Zero(t, stub.deletedID, "no request without confirmation")
}

func TestImpersonateSuccess(t *testing.T) {
	cases := []struct {
		usertype api.Usertype
		portal   string
	}{
		{api.UsertypeBuyer, "/buyer"},
		{api.UsertypeSeller, "/"},
		{api.UsertypeAgent, "/agent/dashboard"},
		{api.Usertype("ghost"), "/"},
	}
	for _, tc := range cases {
		stub := &stubAPI{grant: &api.ImpersonationGrant{Token: "t", ImpersonatorID: 1, ImpersonatorName: "Root"}}
		sessions := &stubSessions{}
		notify := &recordingNotifier{}
		d := &Dispatcher{API: stub, Sessions: sessions, Confirm: yes{}, Notify: notify}

		u := buyer()
		u.Usertype = tc.usertype
		portal, err := d.ImpersonateUser(context.Background(), u)
		require.NoError(t, err, "usertype %q", tc.usertype)
		assert.Equal(t, tc.portal, portal, "usertype %q", tc.usertype)
		assert.True(t, sessions.began)
		assert.True(t, sessions.completed)
		assert.Equal(t, "t", sessions.token)
		assert.False(t, sessions.aborted)
		assert.Len(t, notify.successes, 1)
	}
}

func TestImpersonateFailureAbortsHandshake(t *testing.T) {
	stub := &stubAPI{impersonateErr: &api.APIError{Status: http.StatusForbidden, Message: "impersonation denied"}}
	sessions := &stubSessions{}
	notify := &recordingNotifier{}
	d := &Dispatcher{API: stub, Sessions: sessions, Confirm: yes{}, Notify: notify}

	_, err := d.ImpersonateUser(context.Background(), buyer())
	require.Error(t, err)
	assert.True(t, sessions.began)
	assert.True(t, sessions.aborted, "failed grant call must close the handshake")
	assert.False(t, sessions.completed)
	require.Len(t, notify.errors, 1)
	assert.Equal(t, "impersonation denied", notify.errors[0])
}
