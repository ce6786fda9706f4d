package grpc

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/userdir/internal/client/client"
	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/client/store"
	"github.com/dmitrijs2005/userdir/internal/common"
	"github.com/dmitrijs2005/userdir/internal/logging"
	"github.com/dmitrijs2005/userdir/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"
)

type fakeDirectory struct {
	mu    sync.Mutex
	calls int
	users []models.User
	err   error
}

func (f *fakeDirectory) FetchCollection(ctx context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.User(nil), f.users...), nil
}

func (f *fakeDirectory) FetchByID(ctx context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, client.ErrNotFound
}

var leanne = models.User{ID: 1, Name: "Leanne Graham", Username: "Bret", Email: "Sincere@april.biz"}

// startBridge serves a store backed by dir over bufconn and returns a
// connected bridge client.
func startBridge(t *testing.T, dir client.Directory, secret, token string) (*client.BridgeClient, *store.Store) {
	t.Helper()

	st := store.New(dir)
	srv := NewGRPCServer("bufnet", logging.Nop(), st, secret)

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, lis) }()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("bridge did not stop")
		}
	})

	c, err := client.NewBridgeClient("passthrough:///bufnet", token,
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, st
}

func TestBridge_Operations(t *testing.T) {
	dir := &fakeDirectory{users: []models.User{leanne}}
	c, st := startBridge(t, dir, "", "")
	ctx := context.Background()

	state, err := c.State(ctx)
	require.NoError(t, err)
	assert.Empty(t, state.Users)
	assert.Zero(t, state.LastFetched)

	state, err = c.FetchAll(ctx, false)
	require.NoError(t, err)
	require.Len(t, state.Users, 1)
	assert.Equal(t, "Leanne Graham", state.Users[0].Name)
	assert.False(t, state.Loading)
	assert.NotZero(t, state.LastFetched)

	_, err = c.FetchAll(ctx, false)
	require.NoError(t, err)
	dir.mu.Lock()
	assert.Equal(t, 1, dir.calls, "cache hit through the bridge")
	dir.mu.Unlock()

	added, err := c.AddLocal(ctx, models.Draft{Name: "Ada Lovelace", Email: "ada@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "Unknown Company", added.Company.Name)
	assert.Equal(t, "adalovelace", added.Username)
	assert.Equal(t, added.ID, st.State().Users[0].ID)

	added.Phone = "123"
	found, err := c.Update(ctx, added)
	require.NoError(t, err)
	assert.True(t, found)
	got, ok := st.Find(added.ID)
	require.True(t, ok)
	assert.Equal(t, "123", got.Phone)

	found, err = c.Update(ctx, models.User{ID: 404})
	require.NoError(t, err)
	assert.False(t, found)

	u, err := c.User(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", u.Name)

	found, err = c.Remove(ctx, added.ID)
	require.NoError(t, err)
	assert.True(t, found)
	found, err = c.Remove(ctx, added.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestBridge_ErrorMapping(t *testing.T) {
	dir := &fakeDirectory{users: []models.User{leanne}}
	c, _ := startBridge(t, dir, "", "")
	ctx := context.Background()

	_, err := c.AddLocal(ctx, models.Draft{Name: "Ada"})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = c.User(ctx, 404)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	dir.mu.Lock()
	dir.err = client.ErrNetwork
	dir.mu.Unlock()
	_, err = c.User(ctx, 404)
	assert.ErrorIs(t, err, client.ErrUnavailable)

	state, err := c.FetchAll(ctx, true)
	require.NoError(t, err, "fetch failures travel in the state")
	assert.Equal(t, "Network error: network error", state.Error)
	assert.False(t, state.Loading)
}

func TestBridge_Auth(t *testing.T) {
	const secret = "bridge-secret"
	dir := &fakeDirectory{users: []models.User{leanne}}

	valid, err := auth.GenerateToken("tester", []byte(secret), time.Hour)
	require.NoError(t, err)
	expired, err := auth.GenerateToken("tester", []byte(secret), -time.Minute)
	require.NoError(t, err)
	forged, err := auth.GenerateToken("tester", []byte("other"), time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr string
	}{
		{name: "valid token", token: valid},
		{name: "missing token", token: "", wantErr: "missing token"},
		{name: "expired token", token: expired, wantErr: "token expired"},
		{name: "wrong secret", token: forged, wantErr: "invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := startBridge(t, dir, secret, tt.token)

			_, err := c.State(context.Background())
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, client.ErrUnauthorized)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:0", logging.Nop(), store.New(&fakeDirectory{}), "secret")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err, "graceful stop is not an error")
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:99999", logging.Nop(), store.New(&fakeDirectory{}), "")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	assert.Error(t, srv.Run(ctx))
}
