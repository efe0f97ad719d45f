package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.json")
}

func TestOpenMissingFile(t *testing.T) {
	store, err := Open(statePath(t), nil)
	require.NoError(t, err)
	assert.Empty(t, store.Token())
	assert.False(t, store.IsImpersonating())
}

func TestSetTokenPersists(t *testing.T) {
	path := statePath(t)
	store, err := Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, store.SetToken("admin-token"))

	reopened, err := Open(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "admin-token", reopened.Token())
}

func TestImpersonationHappyPath(t *testing.T) {
	path := statePath(t)
	store, err := Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, store.SetToken("admin-token"))

	require.NoError(t, store.BeginImpersonation(42, "buyer"))
	require.NoError(t, store.CompleteImpersonation("target-token", 1, "Root Admin"))

	assert.Equal(t, "target-token", store.Token(), "grant token becomes the active token")
	assert.True(t, store.IsImpersonating())

	rec := store.Impersonation()
	require.NotNil(t, rec)
	assert.Equal(t, PhaseImpersonating, rec.Phase)
	assert.Equal(t, "admin-token", rec.AdminToken)
	assert.Equal(t, "target-token", rec.Token)
	assert.Equal(t, int64(1), rec.ImpersonatorID)
	assert.Equal(t, "Root Admin", rec.ImpersonatorName)

	require.NoError(t, store.StopImpersonation())
	assert.Equal(t, "admin-token", store.Token())
	assert.False(t, store.IsImpersonating())
	assert.Nil(t, store.Impersonation())
}

func TestAbortLeavesAdminSessionUntouched(t *testing.T) {
	store, err := Open(statePath(t), nil)
	require.NoError(t, err)
	require.NoError(t, store.SetToken("admin-token"))

	require.NoError(t, store.BeginImpersonation(42, "seller"))
	require.NoError(t, store.AbortImpersonation())

	assert.Equal(t, "admin-token", store.Token())
	assert.Nil(t, store.Impersonation())
}

func TestBeginRequiresToken(t *testing.T) {
	store, err := Open(statePath(t), nil)
	require.NoError(t, err)
	assert.ErrorIs(t, store.BeginImpersonation(42, "buyer"), ErrNoToken)
}

func TestBeginRejectsNestedHandshake(t *testing.T) {
	store, err := Open(statePath(t), nil)
	require.NoError(t, err)
	require.NoError(t, store.SetToken("admin-token"))
	require.NoError(t, store.BeginImpersonation(42, "buyer"))
	assert.ErrorIs(t, store.BeginImpersonation(43, "seller"), ErrAlreadyImpersonating)
}

func TestOpenRollsBackInterruptedHandshake(t *testing.T) {
	path := statePath(t)
	crashed := State{
		Token: "admin-token",
		Impersonation: &Record{
			Phase:      PhaseTokenSaved,
			AdminToken: "admin-token",
			TargetID:   42,
			StartedAt:  time.Now().UTC(),
		},
	}
	raw, err := json.Marshal(crashed)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	store, err := Open(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "admin-token", store.Token())
	assert.Nil(t, store.Impersonation(), "crash artifact must be rolled back")

	// The rollback is persisted, not just in memory.
	reopened, err := Open(path, nil)
	require.NoError(t, err)
	assert.Nil(t, reopened.Impersonation())
}

func TestStopRequiresCompletedHandshake(t *testing.T) {
	store, err := Open(statePath(t), nil)
	require.NoError(t, err)
	require.NoError(t, store.SetToken("admin-token"))
	assert.ErrorIs(t, store.StopImpersonation(), ErrNotImpersonating)

	require.NoError(t, store.BeginImpersonation(42, "buyer"))
	assert.ErrorIs(t, store.StopImpersonation(), ErrNotImpersonating)
}
