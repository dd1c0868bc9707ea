package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/warrify/internal/config"
	"github.com/turtacn/warrify/internal/testutil"
)

func TestNewServer(t *testing.T) {
	mux := http.NewServeMux()
	s := NewServer(config.ServerConfig{Port: 8080, ReadTimeout: 15 * time.Second}, mux, nil)

	require.NotNil(t, s)
	assert.Equal(t, ":8080", s.srv.Addr)
	assert.Equal(t, 15*time.Second, s.srv.ReadTimeout)
	assert.Equal(t, 30*time.Second, s.shutdownTimeout)
	assert.Equal(t, http.Handler(mux), s.Handler())
}

func TestServer_StartStop(t *testing.T) {
	log := testutil.NewMockLogger()
	s := NewServer(config.ServerConfig{Port: 0, ShutdownTimeout: time.Second}, http.NewServeMux(), log)

	errc := make(chan error, 1)
	go func() { errc <- s.Start() }()

	require.Eventually(t, func() bool { return log.HasMessage("info", "HTTP server listening") }, time.Second, 10*time.Millisecond)
	require.NoError(t, s.Stop(context.Background()))

	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
