package service

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/ValenCardozo/expert-pancake/internal/core/domain"
	"github.com/ValenCardozo/expert-pancake/internal/core/ports"
)

// --- user repository stub ---

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User), nextID: 1}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	c := cloneUser(user)
	c.ID = strconv.Itoa(r.nextID)
	r.nextID++
	r.users[c.ID] = cloneUser(c)
	return c, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, filter ports.ListUsersFilter) ([]*domain.User, int64, error) {
	ids := make([]string, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	all := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		all = append(all, cloneUser(r.users[id]))
	}

	start := (filter.Page - 1) * filter.Limit
	if start > len(all) {
		start = len(all)
	}
	end := start + filter.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id, role string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Role = role
	u.UpdatedAt = time.Now().UTC()
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// --- product repository stub ---

type stubProductRepo struct {
	products map[string]*domain.Product
	nextID   int
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[string]*domain.Product), nextID: 1}
}

func cloneProduct(p *domain.Product) *domain.Product {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	c := cloneProduct(p)
	c.ID = strconv.Itoa(r.nextID)
	r.nextID++
	r.products[c.ID] = cloneProduct(c)
	return c, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return cloneProduct(p), nil
}

func (r *stubProductRepo) List(_ context.Context, filter ports.ListProductsFilter) ([]*domain.Product, int64, error) {
	ids := make([]string, 0, len(r.products))
	for id := range r.products {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	all := make([]*domain.Product, 0, len(ids))
	for _, id := range ids {
		all = append(all, cloneProduct(r.products[id]))
	}

	start := (filter.Page - 1) * filter.Limit
	if start > len(all) {
		start = len(all)
	}
	end := start + filter.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *domain.Product) (*domain.Product, error) {
	if _, ok := r.products[p.ID]; !ok {
		return nil, domain.ErrProductNotFound
	}
	r.products[p.ID] = cloneProduct(p)
	return cloneProduct(p), nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

// --- reset store / mail dispatcher stubs ---

type stubResetStore struct {
	challenges map[string]ports.ResetChallenge // keyed userID:token
}

func newStubResetStore() *stubResetStore {
	return &stubResetStore{challenges: make(map[string]ports.ResetChallenge)}
}

func (s *stubResetStore) Save(_ context.Context, c ports.ResetChallenge, _ time.Duration) error {
	s.challenges[c.UserID+":"+c.Token] = c
	return nil
}

func (s *stubResetStore) Consume(_ context.Context, userID, tkn string) (*ports.ResetChallenge, error) {
	key := userID + ":" + tkn
	c, ok := s.challenges[key]
	if !ok {
		return nil, domain.ErrResetNotFound
	}
	delete(s.challenges, key)
	return &c, nil
}

type stubDispatcher struct {
	sent []ports.ResetNotification
}

func (d *stubDispatcher) Enqueue(n ports.ResetNotification) {
	d.sent = append(d.sent, n)
}
