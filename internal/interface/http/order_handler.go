package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/artisanmarket/marketplace-api/internal/application"
	"github.com/artisanmarket/marketplace-api/internal/domain/entity"
	repo "github.com/artisanmarket/marketplace-api/internal/domain/repository"
	"github.com/artisanmarket/marketplace-api/pkg/response"
	"github.com/artisanmarket/marketplace-api/pkg/validation"
)

type OrderHandler struct {
	Svc    *app.OrderService
	Logger *logrus.Logger
}

func NewOrderHandler(svc *app.OrderService, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{Svc: svc, Logger: logger}
}

type createOrderRequest struct {
	ProductID           string `json:"product_id" binding:"required,uuid"`
	Quantity            int    `json:"quantity" binding:"required,gte=1"`
	ShippingFirstName   string `json:"shipping_first_name" binding:"required,max=100"`
	ShippingLastName    string `json:"shipping_last_name" binding:"required,max=100"`
	ShippingStreet      string `json:"shipping_street" binding:"required,max=200"`
	ShippingHouseNumber string `json:"shipping_house_number" binding:"required,max=20"`
	ShippingPostalCode  string `json:"shipping_postal_code" binding:"required,max=10"`
	ShippingCity        string `json:"shipping_city" binding:"required,max=100"`
}

func orderItemView(it *entity.OrderItem) gin.H {
	return gin.H{
		"product_id":    it.ProductID,
		"product_name":  it.ProductName,
		"product_price": it.ProductPrice.StringFixed(2),
		"quantity":      it.Quantity,
		"subtotal":      it.Subtotal().StringFixed(2),
	}
}

func orderView(o *entity.Order) gin.H {
	items := make([]gin.H, 0, len(o.Items))
	for i := range o.Items {
		items = append(items, orderItemView(&o.Items[i]))
	}
	return gin.H{
		"id":         o.ID,
		"status":     entity.StatusName(o.StatusID),
		"items":      items,
		"total":      o.Total().StringFixed(2),
		"created_at": o.CreatedAt,
		"shipping": gin.H{
			"first_name":   o.ShippingFirstName,
			"last_name":    o.ShippingLastName,
			"street":       o.ShippingStreet,
			"house_number": o.ShippingHouseNumber,
			"postal_code":  o.ShippingPostalCode,
			"city":         o.ShippingCity,
		},
	}
}

func (h *OrderHandler) Create(c *gin.Context) {
	uid := c.GetString("userID")
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	o, err := h.Svc.CreateOrder(c.Request.Context(), uid, app.CreateOrderInput{
		ProductID:           req.ProductID,
		Quantity:            req.Quantity,
		ShippingFirstName:   req.ShippingFirstName,
		ShippingLastName:    req.ShippingLastName,
		ShippingStreet:      req.ShippingStreet,
		ShippingHouseNumber: req.ShippingHouseNumber,
		ShippingPostalCode:  req.ShippingPostalCode,
		ShippingCity:        req.ShippingCity,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidQuantity):
			response.Error(c, http.StatusBadRequest, "quantity must be at least 1", nil)
		case errors.Is(err, app.ErrProductUnavailable):
			response.Error(c, http.StatusConflict, "product is not available", nil)
		default:
			h.Logger.WithError(err).Error("create order failed")
			response.Error(c, http.StatusInternalServerError, "failed to place order", nil)
		}
		return
	}
	response.Success(c, http.StatusCreated, orderView(o), "order placed", nil)
}

func (h *OrderHandler) List(c *gin.Context) {
	uid := c.GetString("userID")
	orders, err := h.Svc.ListUserOrders(c.Request.Context(), uid)
	if err != nil {
		h.Logger.WithError(err).Error("list orders failed")
		response.Error(c, http.StatusInternalServerError, "failed to load orders", nil)
		return
	}
	out := make([]gin.H, 0, len(orders))
	for i := range orders {
		out = append(out, orderView(&orders[i]))
	}
	response.Success(c, http.StatusOK, out, "orders", map[string]any{"count": len(out)})
}

func (h *OrderHandler) Get(c *gin.Context) {
	uid := c.GetString("userID")
	o, err := h.Svc.GetOrder(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "order not found", nil)
			return
		}
		h.Logger.WithError(err).Error("get order failed")
		response.Error(c, http.StatusInternalServerError, "failed to load order", nil)
		return
	}
	response.Success(c, http.StatusOK, orderView(o), "order", nil)
}

func (h *OrderHandler) Confirm(c *gin.Context) {
	h.transition(c, h.Svc.ConfirmOrder, "order confirmed")
}

func (h *OrderHandler) Ship(c *gin.Context) {
	h.transition(c, h.Svc.ShipOrder, "order shipped")
}

func (h *OrderHandler) transition(c *gin.Context, fn func(ctx context.Context, ownerID, orderID string) (*entity.Order, error), msg string) {
	uid := c.GetString("userID")
	o, err := fn(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			response.Error(c, http.StatusNotFound, "order not found", nil)
		case errors.Is(err, app.ErrInvalidStatusTransition):
			response.Error(c, http.StatusConflict, "invalid status transition", nil)
		default:
			h.Logger.WithError(err).Error("order transition failed")
			response.Error(c, http.StatusInternalServerError, "failed to update order", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, orderView(o), msg, nil)
}
