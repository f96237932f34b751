package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"order_intake/internal/models"
	"order_intake/internal/services"
)

// APIHandler serves the customer-facing checkout endpoints. Capacity
// rejections and discount failures come back as 200 responses with a
// status payload; they are expected outcomes, not errors.
type APIHandler struct {
	availability services.AvailabilityService
	checkout     services.CheckoutService
	catalog      services.CatalogService
}

func NewAPIHandler(
	availability services.AvailabilityService,
	checkout services.CheckoutService,
	catalog services.CatalogService,
) *APIHandler {
	return &APIHandler{
		availability: availability,
		checkout:     checkout,
		catalog:      catalog,
	}
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(time.DateOnly, value)
}

// cartForSession loads the session's cart lines, tolerating a missing
// session (an empty cart is a valid thing to ask about).
func (h *APIHandler) cartForSession(sessionID string) []models.CartLine {
	if sessionID == "" {
		return nil
	}
	session, err := h.checkout.GetCart(sessionID)
	if err != nil {
		return nil
	}
	return session.Lines
}

func (h *APIHandler) GetProducts(c *gin.Context) {
	products, err := h.catalog.GetActiveProducts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *APIHandler) CheckAvailability(c *gin.Context) {
	var req struct {
		Date           string `json:"date" binding:"required"`
		SessionID      string `json:"session_id"`
		ExcludeOrderID uint   `json:"exclude_order_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, use YYYY-MM-DD"})
		return
	}

	result, err := h.availability.CheckDate(date, h.cartForSession(req.SessionID), req.ExcludeOrderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check availability"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *APIHandler) Calendar(c *gin.Context) {
	var req struct {
		From      string `json:"from" binding:"required"`
		To        string `json:"to" binding:"required"`
		SessionID string `json:"session_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	from, err := parseDate(req.From)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date, use YYYY-MM-DD"})
		return
	}
	to, err := parseDate(req.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date, use YYYY-MM-DD"})
		return
	}

	statuses, err := h.availability.Calendar(from, to, h.cartForSession(req.SessionID))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": statuses})
}

func (h *APIHandler) GetCart(c *gin.Context) {
	session, err := h.checkout.GetCart(c.Param("session_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *APIHandler) AddItem(c *gin.Context) {
	var req struct {
		ProductID uint `json:"product_id" binding:"required"`
		Quantity  int  `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	update, err := h.checkout.AddItem(c.Param("session_id"), req.ProductID, req.Quantity)
	if err != nil {
		h.cartError(c, err)
		return
	}
	c.JSON(http.StatusOK, update)
}

func (h *APIHandler) UpdateItem(c *gin.Context) {
	var req struct {
		Quantity int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	productID, ok := paramUint(c, "product_id")
	if !ok {
		return
	}

	update, err := h.checkout.UpdateItem(c.Param("session_id"), productID, req.Quantity)
	if err != nil {
		h.cartError(c, err)
		return
	}
	c.JSON(http.StatusOK, update)
}

func (h *APIHandler) RemoveItem(c *gin.Context) {
	productID, ok := paramUint(c, "product_id")
	if !ok {
		return
	}

	update, err := h.checkout.RemoveItem(c.Param("session_id"), productID)
	if err != nil {
		h.cartError(c, err)
		return
	}
	c.JSON(http.StatusOK, update)
}

func (h *APIHandler) SetDeliveryDate(c *gin.Context) {
	var req struct {
		Date string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, use YYYY-MM-DD"})
		return
	}

	update, err := h.checkout.SetDeliveryDate(c.Param("session_id"), date)
	if err != nil {
		h.cartError(c, err)
		return
	}
	c.JSON(http.StatusOK, update)
}

func (h *APIHandler) ApplyDiscount(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	outcome, err := h.checkout.ApplyDiscount(c.Param("session_id"), req.Code)
	if err != nil {
		h.cartError(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

func (h *APIHandler) RemoveDiscount(c *gin.Context) {
	update, err := h.checkout.RemoveDiscount(c.Param("session_id"), c.Param("code"))
	if err != nil {
		h.cartError(c, err)
		return
	}
	c.JSON(http.StatusOK, update)
}

func (h *APIHandler) Quote(c *gin.Context) {
	quote, err := h.checkout.Quote(c.Param("session_id"))
	if err != nil {
		h.cartError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (h *APIHandler) Checkout(c *gin.Context) {
	var req struct {
		CustomerName  string `json:"customer_name" binding:"required"`
		CustomerPhone string `json:"customer_phone"`
		Notes         string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.checkout.Submit(c.Param("session_id"), services.SubmitRequest{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Notes:         req.Notes,
	})
	if err != nil {
		if errors.Is(err, services.ErrDateBusy) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.cartError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *APIHandler) cartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCartNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrLineNotFound),
		errors.Is(err, services.ErrProductInactive),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrNoDeliveryDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
