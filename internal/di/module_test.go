package di

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/foodorders/internal/app"
	"github.com/polkiloo/foodorders/internal/config"
	"github.com/polkiloo/foodorders/internal/domain/repository"
	"github.com/polkiloo/foodorders/internal/storage/postgres"
	"github.com/polkiloo/foodorders/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:      ":0",
		DatabaseURI:     "postgres://stub",
		JWTSecret:       "secret",
		LogLevel:        "info",
		ShutdownTimeout: time.Millisecond,
		OrdersListLimit: 10,
		StreamRetry:     time.Second,
		StreamHeartbeat: time.Second,
		StreamBuffer:    4,
		Notifier:        config.NotifierNone,
		NotifyWorkers:   1,
		NotifyQueueSize: 4,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	orderRepo := test.NewOrderRepositoryStub()

	var (
		facade *app.OrdersFacade
		engine *gin.Engine
	)
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.OrderRepository(orderRepo)),
		),
		fx.Populate(&facade, &engine),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected orders facade instance")
	}

	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected metrics endpoint to be wired, got %d", resp.Code)
	}
}
