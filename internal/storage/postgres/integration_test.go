//go:build integration

package postgres

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	domainErrors "github.com/polkiloo/foodorders/internal/domain/errors"
	"github.com/polkiloo/foodorders/internal/domain/model"
)

// StorageIntegrationSuite runs the order repository against a real PostgreSQL.
type StorageIntegrationSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	storage   *Storage
}

func (s *StorageIntegrationSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("orders"),
		tcpostgres.WithUsername("orders"),
		tcpostgres.WithPassword("orders"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	storage, err := New(ctx, dsn, slog.New(slog.NewJSONHandler(io.Discard, nil)))
	s.Require().NoError(err)
	s.storage = storage
}

func (s *StorageIntegrationSuite) SetupTest() {
	_, err := s.storage.pool.Exec(context.Background(), "TRUNCATE TABLE order_items, orders RESTART IDENTITY")
	s.Require().NoError(err)
}

func (s *StorageIntegrationSuite) TearDownSuite() {
	if s.storage != nil {
		s.storage.Close()
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

func (s *StorageIntegrationSuite) TestCreateAndRead() {
	ctx := context.Background()
	repo := s.storage.Orders()

	order, err := repo.Create(ctx, 3, "ana@example.com", []model.LineItem{
		{Name: "Burger", PriceCents: 1200, Qty: 2},
		{Name: "Fries", PriceCents: 300, Qty: 1},
	})
	s.Require().NoError(err)
	s.Equal(model.OrderStatusNew, order.Status)
	s.EqualValues(2700, order.TotalCents)

	loaded, err := repo.GetByID(ctx, order.ID)
	s.Require().NoError(err)
	s.Equal("ana@example.com", loaded.Owner)

	items, err := repo.ListItems(ctx, order.ID)
	s.Require().NoError(err)
	s.Len(items, 2)
	s.Equal("Burger", items[0].Name)
}

func (s *StorageIntegrationSuite) TestAnonymousOwnerStoredAsNull() {
	ctx := context.Background()
	repo := s.storage.Orders()

	order, err := repo.Create(ctx, 1, "", []model.LineItem{{Name: "Tea", PriceCents: 100, Qty: 1}})
	s.Require().NoError(err)

	var isNull bool
	s.Require().NoError(s.storage.pool.QueryRow(ctx, "SELECT user_email IS NULL FROM orders WHERE id=$1", order.ID).Scan(&isNull))
	s.True(isNull)

	owned, err := repo.ListByOwner(ctx, "", 50)
	s.Require().NoError(err)
	s.Empty(owned)
}

func (s *StorageIntegrationSuite) TestListNewestFirstWithLimit() {
	ctx := context.Background()
	repo := s.storage.Orders()

	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, 1, "ana@example.com", []model.LineItem{{Name: "Soup", PriceCents: 500, Qty: 1}})
		s.Require().NoError(err)
	}
	_, err := repo.Create(ctx, 1, "bob@example.com", []model.LineItem{{Name: "Soup", PriceCents: 500, Qty: 1}})
	s.Require().NoError(err)

	orders, err := repo.ListByOwner(ctx, "ana@example.com", 2)
	s.Require().NoError(err)
	s.Require().Len(orders, 2)
	s.Greater(orders[0].ID, orders[1].ID)

	recent, err := repo.ListRecent(ctx, 50)
	s.Require().NoError(err)
	s.Len(recent, 4)
}

func (s *StorageIntegrationSuite) TestConcurrentPayAndCancel() {
	ctx := context.Background()
	repo := s.storage.Orders()

	order, err := repo.Create(ctx, 1, "ana@example.com", []model.LineItem{{Name: "Pizza", PriceCents: 900, Qty: 1}})
	s.Require().NoError(err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = repo.Transition(ctx, order.ID, func(o model.Order) (model.OrderStatus, error) { return o.Status.Pay() })
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = repo.Transition(ctx, order.ID, func(o model.Order) (model.OrderStatus, error) { return o.Status.Cancel() })
	}()
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		s.ErrorIs(err, domainErrors.ErrInvalidTransition)
	}
	s.Equal(1, succeeded)

	final, err := repo.GetByID(ctx, order.ID)
	s.Require().NoError(err)
	s.Contains([]model.OrderStatus{model.OrderStatusPaid, model.OrderStatusCancelled}, final.Status)
}

func (s *StorageIntegrationSuite) TestDuplicateCopiesItems() {
	ctx := context.Background()
	repo := s.storage.Orders()

	source, err := repo.Create(ctx, 5, "ana@example.com", []model.LineItem{
		{Name: "Ramen", PriceCents: 1100, Qty: 1},
		{Name: "Gyoza", PriceCents: 400, Qty: 2},
	})
	s.Require().NoError(err)
	_, err = repo.Transition(ctx, source.ID, func(o model.Order) (model.OrderStatus, error) { return o.Status.Cancel() })
	s.Require().NoError(err)

	copyOrder, err := repo.Duplicate(ctx, source.ID, "ana@example.com")
	s.Require().NoError(err)
	s.NotEqual(source.ID, copyOrder.ID)
	s.Equal(model.OrderStatusNew, copyOrder.Status)
	s.Equal(source.TotalCents, copyOrder.TotalCents)

	items, err := repo.ListItems(ctx, copyOrder.ID)
	s.Require().NoError(err)
	s.Len(items, 2)

	s.ErrorIs(repo.UpdateStatus(ctx, 99999, model.OrderStatusReady), domainErrors.ErrNotFound)
}

func TestStorageIntegrationSuite(t *testing.T) {
	suite.Run(t, new(StorageIntegrationSuite))
}
