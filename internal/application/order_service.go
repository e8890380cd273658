package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/artisanmarket/marketplace-api/internal/domain/entity"
	repo "github.com/artisanmarket/marketplace-api/internal/domain/repository"
	"github.com/artisanmarket/marketplace-api/pkg/helpers"
	"github.com/artisanmarket/marketplace-api/pkg/mailer"
)

var (
	ErrInvalidQuantity         = errors.New("quantity must be at least 1")
	ErrProductUnavailable      = errors.New("product is not available for ordering")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
)

type OrderService struct {
	Orders   repo.OrderRepository
	Products repo.ProductRepository
	Shops    repo.ShopRepository
	Users    repo.UserRepository
	Rabbit   *helpers.RabbitPublisher
	Logger   *logrus.Logger
}

func NewOrderService(orders repo.OrderRepository, products repo.ProductRepository, shops repo.ShopRepository, users repo.UserRepository, rabbit *helpers.RabbitPublisher, logger *logrus.Logger) *OrderService {
	return &OrderService{
		Orders:   orders,
		Products: products,
		Shops:    shops,
		Users:    users,
		Rabbit:   rabbit,
		Logger:   logger,
	}
}

type CreateOrderInput struct {
	ProductID           string
	Quantity            int
	ShippingFirstName   string
	ShippingLastName    string
	ShippingStreet      string
	ShippingHouseNumber string
	ShippingPostalCode  string
	ShippingCity        string
}

// CreateOrder checks out a single product. The product must be active,
// non-deleted and belong to a non-deleted shop; its name and price are frozen
// into the order item, so later edits or deletions never touch the order.
func (s *OrderService) CreateOrder(ctx context.Context, userID string, in CreateOrderInput) (*entity.Order, error) {
	if in.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.Products.GetByID(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProductUnavailable
		}
		return nil, err
	}
	if !p.IsActive {
		return nil, ErrProductUnavailable
	}
	if _, err := s.Shops.GetByID(ctx, p.ShopID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProductUnavailable
		}
		return nil, err
	}

	o := &entity.Order{
		ID:                  newID(),
		UserID:              userID,
		StatusID:            entity.StatusSubmitted,
		ShippingFirstName:   in.ShippingFirstName,
		ShippingLastName:    in.ShippingLastName,
		ShippingStreet:      in.ShippingStreet,
		ShippingHouseNumber: in.ShippingHouseNumber,
		ShippingPostalCode:  in.ShippingPostalCode,
		ShippingCity:        in.ShippingCity,
		Items: []entity.OrderItem{{
			ID:           newID(),
			ProductID:    p.ID,
			ProductName:  p.Name,
			ProductPrice: p.Price,
			Quantity:     in.Quantity,
		}},
	}
	if err := s.Orders.Create(ctx, o); err != nil {
		return nil, err
	}

	s.enqueueConfirmationEmail(ctx, o)
	return o, nil
}

// ListUserOrders returns the buyer's orders, newest first, with items.
func (s *OrderService) ListUserOrders(ctx context.Context, userID string) ([]entity.Order, error) {
	return s.Orders.ListByUser(ctx, userID)
}

// GetOrder returns an order to its buyer or to the owner of the selling shop.
// Anyone else gets repo.ErrNotFound, indistinguishable from absence.
func (s *OrderService) GetOrder(ctx context.Context, callerID, orderID string) (*entity.Order, error) {
	o, err := s.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID == callerID {
		return o, nil
	}
	seller, err := s.isSeller(ctx, callerID, o)
	if err != nil {
		return nil, err
	}
	if !seller {
		return nil, repo.ErrNotFound
	}
	return o, nil
}

// ConfirmOrder moves a submitted order to confirmed. Seller only.
func (s *OrderService) ConfirmOrder(ctx context.Context, ownerID, orderID string) (*entity.Order, error) {
	return s.advance(ctx, ownerID, orderID, entity.StatusSubmitted, entity.StatusConfirmed)
}

// ShipOrder moves a confirmed order to shipped. Seller only.
func (s *OrderService) ShipOrder(ctx context.Context, ownerID, orderID string) (*entity.Order, error) {
	return s.advance(ctx, ownerID, orderID, entity.StatusConfirmed, entity.StatusShipped)
}

func (s *OrderService) advance(ctx context.Context, ownerID, orderID string, from, to int) (*entity.Order, error) {
	o, err := s.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	seller, err := s.isSeller(ctx, ownerID, o)
	if err != nil {
		return nil, err
	}
	if !seller {
		return nil, repo.ErrNotFound
	}
	if o.StatusID != from {
		return nil, ErrInvalidStatusTransition
	}
	if err := s.Orders.UpdateStatus(ctx, o.ID, to); err != nil {
		return nil, err
	}
	o.StatusID = to
	return o, nil
}

// isSeller reports whether caller owns the shop that sold the order. The
// product lookup ignores soft deletion so sellers keep access to historical
// orders.
func (s *OrderService) isSeller(ctx context.Context, callerID string, o *entity.Order) (bool, error) {
	shop, err := s.Shops.GetByOwner(ctx, callerID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	for i := range o.Items {
		shopID, err := s.Products.ShopIDOf(ctx, o.Items[i].ProductID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				continue
			}
			return false, err
		}
		if shopID == shop.ID {
			return true, nil
		}
	}
	return false, nil
}

func (s *OrderService) enqueueConfirmationEmail(ctx context.Context, o *entity.Order) {
	if s.Rabbit == nil {
		return
	}
	u, err := s.Users.GetByID(ctx, o.UserID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("order_id", o.ID).Warn("order email skipped, buyer lookup failed")
		}
		return
	}

	items := make([]map[string]any, 0, len(o.Items))
	for i := range o.Items {
		it := &o.Items[i]
		items = append(items, map[string]any{
			"name":     it.ProductName,
			"price":    it.ProductPrice.StringFixed(2),
			"quantity": it.Quantity,
			"subtotal": it.Subtotal().StringFixed(2),
		})
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: "order_submitted",
		Data: map[string]any{
			"order_id":   o.ID,
			"first_name": o.ShippingFirstName,
			"items":      items,
			"total":      o.Total().StringFixed(2),
			"city":       o.ShippingCity,
		},
	}
	if err := s.Rabbit.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("order_id", o.ID).Warn("enqueue order email failed")
	}
}
