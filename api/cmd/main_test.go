package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// fakeServer blocks in ListenAndServe until Shutdown or Close, like *http.Server.
type fakeServer struct {
	mu   sync.Mutex
	addr string

	listenErr   error // returned immediately when set
	shutdownErr error

	listenCalled   bool
	shutdownCalled bool
	closeCalled    bool

	stop     chan struct{}
	stopOnce sync.Once
}

func newFakeServer() *fakeServer {
	return &fakeServer{addr: ":0", stop: make(chan struct{})}
}

func (f *fakeServer) ListenAndServe() error {
	f.mu.Lock()
	f.listenCalled = true
	err := f.listenErr
	f.mu.Unlock()
	if err != nil {
		return err
	}
	<-f.stop
	return http.ErrServerClosed
}

func (f *fakeServer) Shutdown(context.Context) error {
	f.mu.Lock()
	f.shutdownCalled = true
	err := f.shutdownErr
	f.mu.Unlock()
	if err == nil {
		f.stopOnce.Do(func() { close(f.stop) })
	}
	return err
}

func (f *fakeServer) Close() error {
	f.mu.Lock()
	f.closeCalled = true
	f.mu.Unlock()
	f.stopOnce.Do(func() { close(f.stop) })
	return nil
}

func (f *fakeServer) Addr() string { return f.addr }

func TestRun_BootstrapFail_Returns1(t *testing.T) {
	build := func() (httpServer, func(), error) {
		return nil, nil, errors.New("boom")
	}
	assert.Equal(t, 1, Run(build, make(chan os.Signal, 1), zerolog.Nop()))
}

func TestRun_OnSignal_ShutdownAndReturn0(t *testing.T) {
	sigCh := make(chan os.Signal, 1)
	sigCh <- os.Interrupt

	fs := newFakeServer()
	cleanupCalled := false
	build := func() (httpServer, func(), error) {
		return fs, func() { cleanupCalled = true }, nil
	}

	assert.Equal(t, 0, Run(build, sigCh, zerolog.Nop()))
	assert.True(t, fs.listenCalled)
	assert.True(t, fs.shutdownCalled)
	assert.False(t, fs.closeCalled)
	assert.True(t, cleanupCalled)
}

func TestRun_OnServerCrash_Return1(t *testing.T) {
	fs := newFakeServer()
	fs.listenErr = errors.New("address in use")

	cleanupCalled := false
	build := func() (httpServer, func(), error) {
		return fs, func() { cleanupCalled = true }, nil
	}

	assert.Equal(t, 1, Run(build, make(chan os.Signal, 1), zerolog.Nop()))
	assert.False(t, fs.shutdownCalled)
	assert.True(t, cleanupCalled)
}

func TestRun_ShutdownFail_ForcesClose(t *testing.T) {
	sigCh := make(chan os.Signal, 1)
	sigCh <- os.Interrupt

	fs := newFakeServer()
	fs.shutdownErr = errors.New("shutdown failed")
	build := func() (httpServer, func(), error) { return fs, func() {}, nil }

	assert.Equal(t, 0, Run(build, sigCh, zerolog.Nop()))
	assert.True(t, fs.shutdownCalled)
	assert.True(t, fs.closeCalled)
}
