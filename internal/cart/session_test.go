package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/model"
)

func guestSession() *Session {
	return &Session{ID: "test", Store: NewStore(NewMemoryBackend(), nil)}
}

func TestMergeOnLoginPushesGuestLines(t *testing.T) {
	ctx := context.Background()
	sess := guestSession()
	sess.Store.AddItem(tee("M", "Black"), 2)
	sess.Store.AddItem(tee("L", "White"), 1)

	server := NewMemoryBackend() // empty server cart
	require.NoError(t, sess.SignIn(ctx, 7, server))

	serverLines, err := server.Load(ctx)
	require.NoError(t, err)
	require.Len(t, serverLines, 2)
	assert.Equal(t, 2, serverLines[0].Quantity)
	assert.Equal(t, 1, serverLines[1].Quantity)

	// local state matches the server fetch
	assert.Equal(t, serverLines, sess.Store.Lines())
	require.NotNil(t, sess.UserID())
	assert.Equal(t, int64(7), *sess.UserID())
}

func TestMergeOnLoginAccumulatesQuantities(t *testing.T) {
	ctx := context.Background()
	sess := guestSession()
	sess.Store.AddItem(tee("M", "Black"), 2)

	server := NewMemoryBackend()
	_, err := server.Merge(ctx, []model.LineItem{tee("M", "Black")}) // qty 1 already on server
	require.NoError(t, err)

	require.NoError(t, sess.SignIn(ctx, 7, server))

	lines := sess.Store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestMergeRunsOncePerSession(t *testing.T) {
	ctx := context.Background()
	sess := guestSession()
	sess.Store.AddItem(tee("M", "Black"), 2)

	server := NewMemoryBackend()
	require.NoError(t, sess.SignIn(ctx, 7, server))
	require.NoError(t, sess.SignIn(ctx, 7, server))

	lines, err := server.Load(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity, "repeated sign-ins must not double-count")
}

// flakyBackend fails its first Merge calls, like a dropped DB connection.
type flakyBackend struct {
	*MemoryBackend
	failures int
}

func (f *flakyBackend) Merge(ctx context.Context, lines []model.LineItem) ([]model.LineItem, error) {
	if f.failures > 0 {
		f.failures--
		return nil, errors.New("connection reset")
	}
	return f.MemoryBackend.Merge(ctx, lines)
}

func TestMergeRetryAfterFailureDoesNotDoubleCount(t *testing.T) {
	ctx := context.Background()
	sess := guestSession()
	sess.Store.AddItem(tee("M", "Black"), 2)

	server := &flakyBackend{MemoryBackend: NewMemoryBackend(), failures: 1}
	require.Error(t, sess.SignIn(ctx, 7, server))
	require.NoError(t, sess.SignIn(ctx, 7, server))

	lines, err := server.Load(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity, "a retried sign-in must not re-push guest lines")
}

func TestSignInRejectsSecondAccount(t *testing.T) {
	ctx := context.Background()
	sess := guestSession()
	sess.Store.AddItem(tee("M", "Black"), 1)

	require.NoError(t, sess.SignIn(ctx, 7, NewMemoryBackend()))

	err := sess.SignIn(ctx, 8, NewMemoryBackend())
	require.Error(t, err)
	require.NotNil(t, sess.UserID())
	assert.Equal(t, int64(7), *sess.UserID())
}

func TestManagerReturnsSameSessionForKnownID(t *testing.T) {
	m := NewManager(nil)
	a := m.Get("")
	b := m.Get(a.ID)
	assert.Same(t, a, b)

	c := m.Get("unknown-id")
	assert.NotSame(t, a, c)

	m.Drop(a.ID)
	d := m.Get(a.ID)
	assert.NotSame(t, a, d)
}
