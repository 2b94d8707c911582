package bridge

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/cmdbridge"
	"github.com/viant/cmdbridge/client"
	"github.com/viant/cmdbridge/commands"
	"github.com/viant/cmdbridge/transport/loopback"
)

func TestNew(t *testing.T) {
	srv, err := New(&cmdbridge.HostOptions{Commands: []string{commands.Greet}})
	require.NoError(t, err)
	cli := client.New(loopback.New(context.Background(), srv.NewHandler))
	defer cli.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	greeting, err := client.Call[commands.GreetArgs, string](ctx, cli, commands.Greet, commands.GreetArgs{Name: "World"}).Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Hello, World! You've been greeted from Go!", greeting)
}

func TestIssueToken(t *testing.T) {
	options := &Options{IssueToken: "frontend"}
	options.Auth.Secret = "s3cret"
	options.Init()
	output := &bytes.Buffer{}
	require.NoError(t, issueToken(output, options))
	token := strings.TrimSpace(output.String())
	require.NotEmpty(t, token)

	srv, err := New(&options.HostOptions)
	require.NoError(t, err)
	handler := srv.HTTP(context.Background(), "").Handler

	request := httptest.NewRequest(http.MethodPost, "/bridge", strings.NewReader(`{}`))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	request = httptest.NewRequest(http.MethodPost, "/bridge", strings.NewReader(`{}`))
	request.Header.Set("Authorization", "Bearer "+token)
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.NotEqual(t, http.StatusUnauthorized, recorder.Code)

	assert.Error(t, issueToken(output, &Options{IssueToken: "frontend"}))
}

func TestRun_InvalidArgs(t *testing.T) {
	assert.Error(t, Run([]string{"--bogus"}))
	assert.Error(t, Run([]string{"--issue-token", "frontend"}))
}
