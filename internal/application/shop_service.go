package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/artisanmarket/marketplace-api/internal/domain/entity"
	repo "github.com/artisanmarket/marketplace-api/internal/domain/repository"
	"github.com/artisanmarket/marketplace-api/pkg/helpers"
)

var (
	ErrOwnerAlreadyHasShop = errors.New("owner already has a shop")
	ErrOwnerHasNoShop      = errors.New("owner has no shop")
)

// fallback base when a name slugifies to nothing; suffix probing takes care
// of collisions between such shops.
const fallbackSlugBase = "shop"

type ShopService struct {
	Shops  repo.ShopRepository
	Redis  *redis.Client
	Logger *logrus.Logger
}

func NewShopService(shops repo.ShopRepository, rdb *redis.Client, logger *logrus.Logger) *ShopService {
	return &ShopService{Shops: shops, Redis: rdb, Logger: logger}
}

type CreateShopInput struct {
	Name         string
	Description  string
	ContactEmail string
	Phone        string
}

// CreateShop provisions the owner's shop. At most one non-deleted shop may
// exist per owner, and the slug must be unique among non-deleted shops. Both
// rules are double-enforced: checked here, and guaranteed by the store's
// partial unique indexes, whose conflicts are translated back into the same
// outcomes the pre-checks would have produced.
func (s *ShopService) CreateShop(ctx context.Context, ownerID string, in CreateShopInput) (*entity.Shop, error) {
	if _, err := s.Shops.GetByOwner(ctx, ownerID); err == nil {
		return nil, ErrOwnerAlreadyHasShop
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	base := Slugify(in.Name)
	if base == "" {
		base = fallbackSlugBase
	}

	slug := base
	next := 1
	for {
		taken, err := s.Shops.SlugExists(ctx, slug)
		if err != nil {
			return nil, err
		}
		if !taken {
			break
		}
		slug = fmt.Sprintf("%s-%d", base, next)
		next++
	}

	for {
		shop := &entity.Shop{
			ID:           newID(),
			UserID:       ownerID,
			Name:         in.Name,
			Slug:         slug,
			Description:  in.Description,
			ContactEmail: in.ContactEmail,
			Phone:        in.Phone,
		}
		err := s.Shops.Create(ctx, shop)
		switch {
		case err == nil:
			s.invalidateShopsCache(ctx)
			return shop, nil
		case errors.Is(err, repo.ErrDuplicateOwner):
			return nil, ErrOwnerAlreadyHasShop
		case errors.Is(err, repo.ErrDuplicateSlug):
			// Lost the slug race to a concurrent insert; resume probing.
			slug = fmt.Sprintf("%s-%d", base, next)
			next++
		default:
			return nil, err
		}
	}
}

// GetOwnerShop returns the caller's non-deleted shop.
func (s *ShopService) GetOwnerShop(ctx context.Context, ownerID string) (*entity.Shop, error) {
	shop, err := s.Shops.GetByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrOwnerHasNoShop
		}
		return nil, err
	}
	return shop, nil
}

// DeleteShop soft-deletes the caller's shop. The owner may create a fresh
// shop afterwards; catalog queries stop returning the deleted one. Products
// of the deleted shop are left untouched.
func (s *ShopService) DeleteShop(ctx context.Context, ownerID string) error {
	shop, err := s.Shops.GetByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrOwnerHasNoShop
		}
		return err
	}
	if err := s.Shops.SoftDelete(ctx, shop.ID); err != nil {
		return err
	}
	s.invalidateShopsCache(ctx)
	return nil
}

func (s *ShopService) invalidateShopsCache(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, shopsCacheKey); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("key", shopsCacheKey).Warn("shop cache invalidation failed")
	}
}
