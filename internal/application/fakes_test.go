package application

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/artisanmarket/marketplace-api/internal/domain/entity"
	repo "github.com/artisanmarket/marketplace-api/internal/domain/repository"
)

// In-memory repository fakes mirroring the store semantics the services rely
// on: soft-delete filtering, case-insensitive email uniqueness and the partial
// unique rules on shops.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ex := range f.users {
		if strings.EqualFold(ex.Email, u.Email) {
			return repo.ErrDuplicateEmail
		}
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

type fakeShopRepo struct {
	mu    sync.Mutex
	shops map[string]*entity.Shop
}

func newFakeShopRepo() *fakeShopRepo {
	return &fakeShopRepo{shops: map[string]*entity.Shop{}}
}

func (f *fakeShopRepo) Create(_ context.Context, s *entity.Shop) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ex := range f.shops {
		if ex.Deleted() {
			continue
		}
		if ex.UserID == s.UserID {
			return repo.ErrDuplicateOwner
		}
		if ex.Slug == s.Slug {
			return repo.ErrDuplicateSlug
		}
	}
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	cp := *s
	f.shops[s.ID] = &cp
	return nil
}

func (f *fakeShopRepo) GetByID(_ context.Context, id string) (*entity.Shop, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.shops[id]
	if !ok || s.Deleted() {
		return nil, repo.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeShopRepo) GetByOwner(_ context.Context, userID string) (*entity.Shop, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.shops {
		if s.UserID == userID && !s.Deleted() {
			cp := *s
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeShopRepo) GetBySlug(_ context.Context, slug string) (*entity.Shop, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.shops {
		if s.Slug == slug && !s.Deleted() {
			cp := *s
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeShopRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.shops {
		if s.Slug == slug && !s.Deleted() {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeShopRepo) List(_ context.Context) ([]entity.Shop, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.Shop, 0)
	for _, s := range f.shops {
		if !s.Deleted() {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeShopRepo) SoftDelete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.shops[id]
	if !ok || s.Deleted() {
		return repo.ErrNotFound
	}
	now := time.Now()
	s.DeletedAt = &now
	return nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product
	shops    *fakeShopRepo
}

func newFakeProductRepo(shops *fakeShopRepo) *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*entity.Product{}, shops: shops}
}

func (f *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok || p.Deleted() {
		return nil, repo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) ListByShop(_ context.Context, shopID string) ([]entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.Product, 0)
	for _, p := range f.products {
		if p.ShopID == shopID && !p.Deleted() {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeProductRepo) ListActiveByShopSlug(ctx context.Context, slug string) ([]entity.Product, error) {
	shop, err := f.shops.GetBySlug(ctx, slug)
	if err != nil {
		return []entity.Product{}, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.Product, 0)
	for _, p := range f.products {
		if p.ShopID == shop.ID && p.IsActive && !p.Deleted() {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeProductRepo) ShopIDOf(_ context.Context, productID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[productID]
	if !ok {
		return "", repo.ErrNotFound
	}
	return p.ShopID, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ex, ok := f.products[p.ID]
	if !ok || ex.Deleted() {
		return repo.ErrNotFound
	}
	p.UpdatedAt = time.Now()
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) SoftDelete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok || p.Deleted() {
		return repo.ErrNotFound
	}
	now := time.Now()
	p.DeletedAt = &now
	return nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*entity.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*entity.Order{}}
}

func (f *fakeOrderRepo) Create(_ context.Context, o *entity.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o.CreatedAt = time.Now()
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
	}
	cp := *o
	cp.Items = append([]entity.OrderItem(nil), o.Items...)
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok || o.Deleted() {
		return nil, repo.ErrNotFound
	}
	cp := *o
	cp.Items = append([]entity.OrderItem(nil), o.Items...)
	return &cp, nil
}

func (f *fakeOrderRepo) ListByUser(_ context.Context, userID string) ([]entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.Order, 0)
	for _, o := range f.orders {
		if o.UserID == userID && !o.Deleted() {
			cp := *o
			cp.Items = append([]entity.OrderItem(nil), o.Items...)
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id string, statusID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok || o.Deleted() {
		return repo.ErrNotFound
	}
	o.StatusID = statusID
	return nil
}

var (
	_ repo.UserRepository    = (*fakeUserRepo)(nil)
	_ repo.ShopRepository    = (*fakeShopRepo)(nil)
	_ repo.ProductRepository = (*fakeProductRepo)(nil)
	_ repo.OrderRepository   = (*fakeOrderRepo)(nil)
)
