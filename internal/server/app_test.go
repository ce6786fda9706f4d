package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/userdir/internal/client/client"
	"github.com/dmitrijs2005/userdir/internal/client/config"
	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/client/store"
	"github.com/dmitrijs2005/userdir/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := lis.Addr().String()
	require.NoError(t, lis.Close())
	return addr
}

func newTestApp(t *testing.T, apiURL, addr string) (*App, *store.Store) {
	t.Helper()
	var cfg config.Config
	cfg.LoadDefaults()
	cfg.APIBaseURL = apiURL
	cfg.BridgeAddr = addr
	cfg.RequestTimeout = time.Second

	st := store.New(client.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout, logging.Nop()))
	return NewApp(&cfg, logging.Nop(), st), st
}

func TestApp_LoadsAndServesUntilCancelled(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]models.User{{ID: 1, Name: "Leanne Graham"}})
	}))
	defer api.Close()

	addr := freeAddr(t)
	app, st := newTestApp(t, api.URL, addr)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	require.Eventually(t, func() bool {
		conn, err := net.Dial("tcp", addr)
		if err != nil {
			return false
		}
		conn.Close()
		return true
	}, 2*time.Second, 20*time.Millisecond)

	bc, err := client.NewBridgeClient(addr, "")
	require.NoError(t, err)
	defer bc.Close()

	state, err := bc.State(context.Background())
	require.NoError(t, err)
	require.Len(t, state.Users, 1)
	assert.Equal(t, "Leanne Graham", state.Users[0].Name)
	assert.Len(t, st.State().Users, 1)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestApp_StartsDespiteFailedLoad(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer api.Close()

	addr := freeAddr(t)
	app, st := newTestApp(t, api.URL, addr)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	require.Eventually(t, func() bool { return st.State().HasError() }, 2*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestApp_ReturnsListenError(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	}))
	defer api.Close()

	app, _ := newTestApp(t, api.URL, "127.0.0.1:99999")
	assert.Error(t, app.Run(context.Background()))
}
