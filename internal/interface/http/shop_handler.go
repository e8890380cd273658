package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/artisanmarket/marketplace-api/internal/application"
	"github.com/artisanmarket/marketplace-api/internal/domain/entity"
	"github.com/artisanmarket/marketplace-api/pkg/response"
	"github.com/artisanmarket/marketplace-api/pkg/validation"
)

type ShopHandler struct {
	Svc    *app.ShopService
	Logger *logrus.Logger
}

func NewShopHandler(svc *app.ShopService, logger *logrus.Logger) *ShopHandler {
	return &ShopHandler{Svc: svc, Logger: logger}
}

type createShopRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	Description  string `json:"description" binding:"max=2000"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
	Phone        string `json:"phone" binding:"omitempty,max=50"`
}

func shopView(s *entity.Shop) gin.H {
	return gin.H{
		"id":            s.ID,
		"name":          s.Name,
		"slug":          s.Slug,
		"description":   s.Description,
		"contact_email": s.ContactEmail,
		"phone":         s.Phone,
		"created_at":    s.CreatedAt,
		"updated_at":    s.UpdatedAt,
	}
}

func (h *ShopHandler) Create(c *gin.Context) {
	uid := c.GetString("userID")
	var req createShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	shop, err := h.Svc.CreateShop(c.Request.Context(), uid, app.CreateShopInput{
		Name:         req.Name,
		Description:  req.Description,
		ContactEmail: req.ContactEmail,
		Phone:        req.Phone,
	})
	if err != nil {
		if errors.Is(err, app.ErrOwnerAlreadyHasShop) {
			response.Error(c, http.StatusConflict, "you already have a shop", nil)
			return
		}
		h.Logger.WithError(err).Error("create shop failed")
		response.Error(c, http.StatusInternalServerError, "failed to create shop", nil)
		return
	}
	response.Success(c, http.StatusCreated, shopView(shop), "shop created", nil)
}

func (h *ShopHandler) GetMine(c *gin.Context) {
	uid := c.GetString("userID")
	shop, err := h.Svc.GetOwnerShop(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, app.ErrOwnerHasNoShop) {
			response.Error(c, http.StatusNotFound, "you have no shop", nil)
			return
		}
		h.Logger.WithError(err).Error("get shop failed")
		response.Error(c, http.StatusInternalServerError, "failed to load shop", nil)
		return
	}
	response.Success(c, http.StatusOK, shopView(shop), "shop", nil)
}

func (h *ShopHandler) DeleteMine(c *gin.Context) {
	uid := c.GetString("userID")
	if err := h.Svc.DeleteShop(c.Request.Context(), uid); err != nil {
		if errors.Is(err, app.ErrOwnerHasNoShop) {
			response.Error(c, http.StatusNotFound, "you have no shop", nil)
			return
		}
		h.Logger.WithError(err).Error("delete shop failed")
		response.Error(c, http.StatusInternalServerError, "failed to delete shop", nil)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "shop deleted", nil)
}
