// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/seed-marketplace/internal/config"
	"github.com/your-org/seed-marketplace/internal/domain/cart"
	"github.com/your-org/seed-marketplace/internal/domain/seed"
	"github.com/your-org/seed-marketplace/internal/domain/session"
	"github.com/your-org/seed-marketplace/internal/interfaces/http/middleware"
)

// CartRecorder counts seeds added to carts
type CartRecorder interface {
	ItemsAdded(quantity int)
}

// CartHandler handles the session cart endpoints
type CartHandler struct {
	seedService SeedService
	recorder    CartRecorder
	config      *config.Config
	logger      *logrus.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(seedService SeedService, recorder CartRecorder, cfg *config.Config, logger *logrus.Logger) *CartHandler {
	return &CartHandler{
		seedService: seedService,
		recorder:    recorder,
		config:      cfg,
		logger:      logger,
	}
}

// AddToCartRequest adds quantity of a seed. Quantity defaults to 1; zero or
// negative quantities leave the cart unchanged.
type AddToCartRequest struct {
	SeedID   uint `json:"seed_id" binding:"required"`
	Quantity *int `json:"quantity" binding:"omitempty,max=10000"`
}

// UpdateCartItemRequest sets a line's quantity; zero or less removes it
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required,max=10000"`
}

// CartView is the cart page
type CartView struct {
	cart.Summary
	Currency  string          `json:"currency"`
	ImageURLs map[uint]string `json:"image_urls,omitempty"`
	Message   string          `json:"message,omitempty"`
}

// GetCart returns the session's cart with its totals
func (h *CartHandler) GetCart(c *gin.Context) {
	sess := middleware.GetSession(c)
	c.JSON(http.StatusOK, gin.H{
		"data": h.view(c.Request.Context(), sess),
	})
}

// AddItem adds a seed to the session's cart
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	listing, err := h.seedService.GetSeed(c.Request.Context(), req.SeedID)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, seed.ErrSeedNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{
			"error": err.Error(),
		})
		return
	}

	sess := middleware.GetSession(c)
	if quantity <= 0 {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Nothing added to cart for %s", listing.Name),
			"data":    h.view(c.Request.Context(), sess),
		})
		return
	}

	sess.With(func(st *session.State) {
		st.Cart.Add(listing.CartItem(), quantity)
	})
	h.recorder.ItemsAdded(quantity)

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Added %d %s to cart", quantity, listing.Name),
		"data":    h.view(c.Request.Context(), sess),
	})
}

// UpdateItem sets the quantity of a cart line
func (h *CartHandler) UpdateItem(c *gin.Context) {
	id, ok := seedIDParam(c)
	if !ok {
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	sess := middleware.GetSession(c)
	sess.With(func(st *session.State) {
		st.Cart.SetQuantity(id, *req.Quantity)
	})

	c.JSON(http.StatusOK, gin.H{
		"data": h.view(c.Request.Context(), sess),
	})
}

// RemoveItem drops a line from the cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, ok := seedIDParam(c)
	if !ok {
		return
	}

	sess := middleware.GetSession(c)
	sess.With(func(st *session.State) {
		st.Cart.Remove(id)
	})

	c.JSON(http.StatusOK, gin.H{
		"data": h.view(c.Request.Context(), sess),
	})
}

// ClearCart empties the cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	sess := middleware.GetSession(c)
	sess.With(func(st *session.State) {
		st.Cart.Clear()
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared",
		"data":    h.view(c.Request.Context(), sess),
	})
}

// view snapshots the cart under the session lock, then signs image links
// outside it.
func (h *CartHandler) view(ctx context.Context, sess *session.Session) CartView {
	var summary cart.Summary
	sess.With(func(st *session.State) {
		summary = st.Cart.Summary()
	})

	v := CartView{
		Summary:  summary,
		Currency: h.config.App.Currency,
	}
	if len(summary.Lines) == 0 {
		v.Message = CartEmptyNotice
		return v
	}

	v.ImageURLs = signLineImages(ctx, h.seedService, summary.Lines, h.logger)
	return v
}

func signLineImages(ctx context.Context, seeds SeedService, lines []cart.Line, logger *logrus.Logger) map[uint]string {
	urls := make(map[uint]string)
	for _, line := range lines {
		if line.Item.Image == "" {
			continue
		}
		signed, err := seeds.ResolveImage(ctx, line.Item.Image)
		if err != nil {
			logger.WithError(err).WithField("seed_id", line.Item.ID).Warn("failed to sign cart image")
			continue
		}
		urls[line.Item.ID] = signed.URL
	}
	return urls
}

func seedIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid seed ID",
		})
		return 0, false
	}
	return uint(id), true
}
