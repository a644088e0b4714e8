package main

import (
	"encoding/json"
	"net"
	"net/http"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logMessages(t *testing.T, raw string) []map[string]any {
	t.Helper()

	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		var e map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &e))
		entries = append(entries, e)
	}

	return entries
}

func TestServeGracefulShutdown(t *testing.T) {
	cfg := defaultConfig()
	cfg.ShutdownTimeout = 5 * time.Second
	app, logs := newTestApplication(t, cfg)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	quit := make(chan os.Signal, 1)
	served := make(chan error, 1)
	go func() {
		served <- app.serve(ln, quit)
	}()

	res, err := http.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	quit <- syscall.SIGTERM

	select {
	case err := <-served:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not return after SIGTERM")
	}

	entries := logMessages(t, logs.String())
	require.Len(t, entries, 3)
	assert.Equal(t, "starting server", entries[0]["message"])
	assert.Equal(t, "shutting down server", entries[1]["message"])
	assert.Equal(t, "terminated", entries[1]["properties"].(map[string]any)["signal"])
	assert.Equal(t, "stopped server", entries[2]["message"])

	_, err = net.DialTimeout("tcp", ln.Addr().String(), time.Second)
	assert.Error(t, err, "listener must be closed after shutdown")
}

func TestServeReturnsListenerErrors(t *testing.T) {
	app, _ := newTestApplication(t, defaultConfig())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	require.NoError(t, ln.Close())

	err = app.serve(ln, make(chan os.Signal))
	assert.Error(t, err)
}

func TestListenAndServeRejectsBusyPort(t *testing.T) {
	ln, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer ln.Close()

	cfg := defaultConfig()
	cfg.Port = ln.Addr().(*net.TCPAddr).Port
	app, _ := newTestApplication(t, cfg)

	err = app.listenAndServe()
	assert.ErrorContains(t, err, "listen")
}
