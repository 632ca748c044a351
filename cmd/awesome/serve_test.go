package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type fakeServer struct {
	calls int
	err   error
}

func (f *fakeServer) Shutdown(ctx context.Context) error {
	f.calls++
	return f.err
}

func TestAbortReleasesServer(t *testing.T) {
	var logs bytes.Buffer
	log := zerolog.New(&logs)
	srv := &fakeServer{}
	cause := errors.New("router failed")

	err := abort(srv, &log, "could not create router", cause)

	assert.Same(t, cause, err)
	assert.Equal(t, 1, srv.calls)
	assert.Contains(t, logs.String(), "could not create router")
	assert.NotContains(t, logs.String(), "failed to release server resources")
}

func TestAbortLogsShutdownFailure(t *testing.T) {
	var logs bytes.Buffer
	log := zerolog.New(&logs)
	srv := &fakeServer{err: errors.New("redis close")}

	err := abort(srv, &log, "could not create services", errors.New("boom"))

	assert.EqualError(t, err, "boom")
	assert.Equal(t, 1, srv.calls)
	assert.Contains(t, logs.String(), "failed to release server resources")
	assert.Contains(t, logs.String(), "redis close")
}
