package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/rvleeuwen/laadscan/internal/domain/errors"
	"github.com/rvleeuwen/laadscan/internal/domain/model"
	"github.com/rvleeuwen/laadscan/internal/domain/repository"
)

// OrderRepositoryStub stores orders in-memory. Mutations run under a mutex
// so concurrent Update calls are serialized like row locks would be.
type OrderRepositoryStub struct {
	mu      sync.Mutex
	Orders  []model.Order
	Reports []model.MissingReport
	Err     error

	UpdateFn func(context.Context, string, string, repository.OrderMutation) (*model.Order, error)
}

// NewOrderRepositoryStub constructs the stub seeded with the given orders.
func NewOrderRepositoryStub(orders ...model.Order) *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: orders}
}

func (s *OrderRepositoryStub) match(lineNumber, vehicle string) int {
	for i := range s.Orders {
		if s.Orders[i].LineNumber != lineNumber {
			continue
		}
		if vehicle != "" && s.Orders[i].Vehicle != vehicle {
			continue
		}
		return i
	}
	return -1
}

// GetByLineNumber fetches an order copy or returns not found.
func (s *OrderRepositoryStub) GetByLineNumber(ctx context.Context, lineNumber, vehicle string) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.match(lineNumber, vehicle); i >= 0 {
		order := s.Orders[i]
		return &order, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListByVehicle returns copies of the orders loaded on a vehicle.
func (s *OrderRepositoryStub) ListByVehicle(ctx context.Context, vehicle string) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Order
	for _, o := range s.Orders {
		if vehicle == "" || o.Vehicle == vehicle {
			out = append(out, o)
		}
	}
	return out, nil
}

// ListVehicles returns the distinct vehicles present.
func (s *OrderRepositoryStub) ListVehicles(ctx context.Context) ([]string, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]bool)
	var out []string
	for _, o := range s.Orders {
		if !seen[o.Vehicle] {
			seen[o.Vehicle] = true
			out = append(out, o.Vehicle)
		}
	}
	return out, nil
}

// Update applies the mutation atomically, persisting the order and any
// returned missing report together.
func (s *OrderRepositoryStub) Update(ctx context.Context, lineNumber, vehicle string, fn repository.OrderMutation) (*model.Order, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, lineNumber, vehicle, fn)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.match(lineNumber, vehicle)
	if i < 0 {
		return nil, domainErrors.ErrNotFound
	}
	order := s.Orders[i]
	report, err := fn(&order)
	if err != nil {
		return nil, err
	}
	s.Orders[i] = order
	if report != nil {
		report.ID = int64(len(s.Reports) + 1)
		s.Reports = append(s.Reports, *report)
	}
	result := order
	return &result, nil
}

// ReplaceVehicle swaps a vehicle's orders unless any line has progress.
func (s *OrderRepositoryStub) ReplaceVehicle(ctx context.Context, vehicle string, orders []model.Order) (int, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.Orders[:0]
	for _, o := range s.Orders {
		if o.Vehicle == vehicle {
			if o.ScannedCount > 0 || o.ReportedMissing > 0 {
				return 0, domainErrors.ErrInvalidState
			}
			continue
		}
		kept = append(kept, o)
	}
	s.Orders = append(kept, orders...)
	return len(orders), nil
}

// MissingReportRepositoryStub returns configured audit entries.
type MissingReportRepositoryStub struct {
	ListFn func(context.Context, string) ([]model.MissingReport, error)
	Items  []model.MissingReport
}

// ListByVehicle returns configured reports.
func (s *MissingReportRepositoryStub) ListByVehicle(ctx context.Context, vehicle string) ([]model.MissingReport, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, vehicle)
	}
	return s.Items, nil
}

// HeavyProductRepositoryStub stores heavy product names in-memory.
type HeavyProductRepositoryStub struct {
	Products []model.HeavyProduct
	Next     int64
	Err      error
}

// Names returns the configured name fragments.
func (s *HeavyProductRepositoryStub) Names(ctx context.Context) ([]string, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]string, 0, len(s.Products))
	for _, p := range s.Products {
		out = append(out, p.Name)
	}
	return out, nil
}

// List returns the configured products.
func (s *HeavyProductRepositoryStub) List(ctx context.Context) ([]model.HeavyProduct, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Products, nil
}

// Create appends a product unless the name already exists.
func (s *HeavyProductRepositoryStub) Create(ctx context.Context, name string) (*model.HeavyProduct, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, p := range s.Products {
		if p.Name == name {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	s.Next++
	product := model.HeavyProduct{ID: s.Next, Name: name}
	s.Products = append(s.Products, product)
	return &product, nil
}

// Delete removes a product by id.
func (s *HeavyProductRepositoryStub) Delete(ctx context.Context, id int64) error {
	if s.Err != nil {
		return s.Err
	}
	for i, p := range s.Products {
		if p.ID == id {
			s.Products = append(s.Products[:i], s.Products[i+1:]...)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users  map[string]*model.User
	ByID   map[int64]*model.User
	Tokens map[string]int64
	Next   int64
	Err    error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users:  make(map[string]*model.User),
		ByID:   make(map[int64]*model.User),
		Tokens: make(map[string]int64),
		Next:   1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, passwordHash string, role model.Role) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	user := &model.User{ID: s.Next, Login: login, PasswordHash: passwordHash, Role: role}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// SetResetToken stores a password reset token for the user.
func (s *UserRepositoryStub) SetResetToken(ctx context.Context, userID int64, token string, expires time.Time) error {
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[userID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	s.Tokens[token] = userID
	user.ResetExpires = expires
	return nil
}

// GetByResetToken resolves a reset token to its user.
func (s *UserRepositoryStub) GetByResetToken(ctx context.Context, token string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if id, ok := s.Tokens[token]; ok {
		return s.ByID[id], nil
	}
	return nil, domainErrors.ErrNotFound
}

// UpdatePassword stores the new hash and clears the reset token.
func (s *UserRepositoryStub) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[userID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.PasswordHash = passwordHash
	for token, id := range s.Tokens {
		if id == userID {
			delete(s.Tokens, token)
		}
	}
	return nil
}
