package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/foodorders/internal/broadcast"
	"github.com/polkiloo/foodorders/internal/config"
	"github.com/polkiloo/foodorders/internal/notify"
	testhelpers "github.com/polkiloo/foodorders/internal/test"
)

func newTestDispatcher() *notify.Dispatcher {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return notify.NewDispatcher(notify.NewNopSender(logger), 1, 4, 0, logger, nil)
}

func TestNewHTTPServer(t *testing.T) {
	cfg := &config.Config{RunAddress: ":9999"}
	router := gin.New()
	server := newHTTPServer(serverParams{Config: cfg, Router: router})
	if server.Addr != ":9999" {
		t.Fatalf("expected address :9999, got %q", server.Addr)
	}
	if server.Handler != router {
		t.Fatalf("expected handler to be router")
	}
}

func TestRegisterLifecycleStartStop(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}
	streams := broadcast.New(1, logger, nil)
	cfg := &config.Config{ShutdownTimeout: 100 * time.Millisecond}

	registerLifecycle(lifecycleParams{
		Lifecycle:   recorder,
		Shutdowner:  shutdowner,
		Logger:      logger,
		Server:      server,
		Dispatcher:  newTestDispatcher(),
		Broadcaster: streams,
		Config:      cfg,
	})

	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected one hook registered, got %d", len(recorder.Hooks))
	}

	sub := streams.Subscribe(1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := recorder.Start(ctx); err != nil {
		t.Fatalf("on start failed: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = recorder.Stop(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected on stop to finish")
	}

	if _, ok := <-sub.Events(); ok {
		t.Fatal("expected live streams closed on stop")
	}
	if shutdowner.Calls() != 0 {
		t.Fatal("did not expect shutdown on clean stop")
	}
}

func TestRegisterLifecycleShutdownOnServerError(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	server := &http.Server{Addr: "bad addr"}

	registerLifecycle(lifecycleParams{
		Lifecycle:   recorder,
		Shutdowner:  shutdowner,
		Logger:      logger,
		Server:      server,
		Dispatcher:  newTestDispatcher(),
		Broadcaster: broadcast.New(1, logger, nil),
		Config:      &config.Config{ShutdownTimeout: time.Second},
	})

	if err := recorder.Start(context.Background()); err != nil {
		t.Fatalf("on start returned error: %v", err)
	}

	select {
	case <-shutdowner.Called:
	case <-time.After(time.Second):
		t.Fatal("expected shutdown to be triggered on server error")
	}

	_ = recorder.Stop(context.Background())
}
