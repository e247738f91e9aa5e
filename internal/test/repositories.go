package test

import (
	"context"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/foodorders/internal/domain/errors"
	"github.com/polkiloo/foodorders/internal/domain/model"
	"github.com/polkiloo/foodorders/internal/domain/repository"
)

// OrderRepositoryStub keeps orders in memory. Err, when set, is returned by
// every call.
type OrderRepositoryStub struct {
	mu     sync.Mutex
	orders map[int64]model.Order
	items  map[int64][]model.LineItem
	nextID int64
	itemID int64

	Err error
}

// NewOrderRepositoryStub constructs an empty in-memory repository.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{}
}

func (s *OrderRepositoryStub) init() {
	if s.orders == nil {
		s.orders = make(map[int64]model.Order)
		s.items = make(map[int64][]model.LineItem)
	}
}

// Seed stores order as-is, for arranging test state.
func (s *OrderRepositoryStub) Seed(order model.Order, items ...model.LineItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.init()
	if order.ID > s.nextID {
		s.nextID = order.ID
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	for i := range items {
		s.itemID++
		items[i].ID = s.itemID
		items[i].OrderID = order.ID
	}
	s.orders[order.ID] = order
	s.items[order.ID] = items
}

func (s *OrderRepositoryStub) create(restaurantID int64, owner string, items []model.LineItem) *model.Order {
	s.init()
	s.nextID++
	order := model.Order{
		ID:           s.nextID,
		RestaurantID: restaurantID,
		Owner:        owner,
		Status:       model.OrderStatusNew,
		TotalCents:   model.TotalCents(items),
		CreatedAt:    time.Now(),
	}
	stored := make([]model.LineItem, len(items))
	for i, it := range items {
		s.itemID++
		it.ID = s.itemID
		it.OrderID = order.ID
		stored[i] = it
	}
	s.orders[order.ID] = order
	s.items[order.ID] = stored
	return &order
}

func (s *OrderRepositoryStub) Create(_ context.Context, restaurantID int64, owner string, items []model.LineItem) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return s.create(restaurantID, owner, items), nil
}

func (s *OrderRepositoryStub) GetByID(_ context.Context, id int64) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	s.init()
	order, ok := s.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &order, nil
}

func (s *OrderRepositoryStub) list(filter func(model.Order) bool, limit int) []model.Order {
	s.init()
	result := make([]model.Order, 0)
	for _, o := range s.orders {
		if filter(o) {
			result = append(result, o)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

func (s *OrderRepositoryStub) ListByOwner(_ context.Context, owner string, limit int) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return s.list(func(o model.Order) bool { return owner != "" && o.Owner == owner }, limit), nil
}

func (s *OrderRepositoryStub) ListRecent(_ context.Context, limit int) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return s.list(func(model.Order) bool { return true }, limit), nil
}

func (s *OrderRepositoryStub) ListItems(_ context.Context, orderID int64) ([]model.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	s.init()
	items := make([]model.LineItem, len(s.items[orderID]))
	copy(items, s.items[orderID])
	return items, nil
}

func (s *OrderRepositoryStub) UpdateStatus(_ context.Context, id int64, status model.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.init()
	order, ok := s.orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	order.Status = status
	s.orders[id] = order
	return nil
}

func (s *OrderRepositoryStub) Transition(_ context.Context, id int64, fn repository.TransitionFunc) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	s.init()
	order, ok := s.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	next, err := fn(order)
	if err != nil {
		return nil, err
	}
	order.Status = next
	s.orders[id] = order
	return &order, nil
}

func (s *OrderRepositoryStub) Duplicate(_ context.Context, sourceID int64, owner string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	s.init()
	source, ok := s.orders[sourceID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	items := make([]model.LineItem, len(s.items[sourceID]))
	copy(items, s.items[sourceID])
	return s.create(source.RestaurantID, owner, items), nil
}

// Status returns the stored status of order id.
func (s *OrderRepositoryStub) Status(id int64) model.OrderStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.init()
	return s.orders[id].Status
}

var _ repository.OrderRepository = (*OrderRepositoryStub)(nil)
