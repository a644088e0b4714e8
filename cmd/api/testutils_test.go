package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"lbdemo/load-balancer-app/internal/data"
	"lbdemo/load-balancer-app/internal/jsonlog"
	"lbdemo/load-balancer-app/internal/metrics"
)

func newTestApplication(t *testing.T, cfg config) (*application, *bytes.Buffer) {
	t.Helper()

	host, err := data.LookupHost()
	require.NoError(t, err)

	var logs bytes.Buffer
	app := &application{
		logger:  jsonlog.New(&logs, jsonlog.InfoLevel),
		cfg:     cfg,
		host:    host,
		metrics: metrics.New(host.Name),
	}

	return app, &logs
}

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, app *application) *testServer {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	ts := httptest.NewServer(app.routes(ctx))
	t.Cleanup(func() {
		ts.Close()
		cancel()
	})

	return &testServer{ts}
}

func (ts *testServer) do(t *testing.T, method, path string, header http.Header) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, ts.URL+path, nil)
	require.NoError(t, err)
	for key, vals := range header {
		req.Header[key] = vals
	}

	res, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	return res, body
}

func (ts *testServer) get(t *testing.T, path string) (*http.Response, []byte) {
	t.Helper()
	return ts.do(t, http.MethodGet, path, nil)
}

func decodeBody(t *testing.T, body []byte) map[string]any {
	t.Helper()

	var got map[string]any
	require.NoError(t, json.Unmarshal(body, &got))
	return got
}
