package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"order_intake/internal/models"
	"order_intake/internal/services"
)

// AdminHandler covers the back-office surface: catalog, orders, shop
// days, capacities, packaging and discount codes.
type AdminHandler struct {
	orders   services.OrderService
	settings services.SettingsService
	catalog  services.CatalogService
}

func NewAdminHandler(
	orders services.OrderService,
	settings services.SettingsService,
	catalog services.CatalogService,
) *AdminHandler {
	return &AdminHandler{
		orders:   orders,
		settings: settings,
		catalog:  catalog,
	}
}

func paramUint(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(value), true
}

// Products

func (h *AdminHandler) GetProducts(c *gin.Context) {
	products, err := h.catalog.GetProducts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.catalog.CreateProduct(&product); err != nil {
		h.settingsError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	product.ID = id

	if err := h.catalog.UpdateProduct(&product); err != nil {
		h.settingsError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	if err := h.catalog.DeleteProduct(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// Orders

func (h *AdminHandler) GetOrders(c *gin.Context) {
	if day := c.Query("date"); day != "" {
		date, err := parseDate(day)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, use YYYY-MM-DD"})
			return
		}
		orders, err := h.orders.GetByDay(date)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
		return
	}

	from, err := parseDate(c.DefaultQuery("from", "0001-01-01"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date, use YYYY-MM-DD"})
		return
	}
	to, err := parseDate(c.DefaultQuery("to", "9999-12-31"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date, use YYYY-MM-DD"})
		return
	}

	orders, err := h.orders.GetByDateRange(from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *AdminHandler) GetOrder(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	order, err := h.orders.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var req struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.orders.UpdateStatus(id, req.Status); err != nil {
		if errors.Is(err, services.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
}

func (h *AdminHandler) CancelOrder(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	if err := h.orders.Cancel(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel order"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled"})
}

func (h *AdminHandler) RescheduleOrder(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

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

	result, err := h.orders.Reschedule(id, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reschedule order"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Day configs

func (h *AdminHandler) GetDayConfig(c *gin.Context) {
	date, err := parseDate(c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, use YYYY-MM-DD"})
		return
	}

	config, err := h.settings.GetDayConfig(date)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No configuration for this day"})
		return
	}
	c.JSON(http.StatusOK, config)
}

func (h *AdminHandler) UpsertDayConfig(c *gin.Context) {
	var req struct {
		Date      string `json:"date" binding:"required"`
		IsOpen    *bool  `json:"is_open" binding:"required"`
		Overrides []struct {
			Category models.Category `json:"category"`
			Limit    float64         `json:"limit"`
		} `json:"overrides"`
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

	config := models.DayConfig{Date: date, IsOpen: *req.IsOpen}
	for _, override := range req.Overrides {
		config.Overrides = append(config.Overrides, models.CapacityOverride{
			Category: override.Category,
			Limit:    override.Limit,
		})
	}

	if err := h.settings.UpsertDayConfig(&config); err != nil {
		h.settingsError(c, err)
		return
	}
	c.JSON(http.StatusOK, config)
}

func (h *AdminHandler) DeleteDayConfig(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	if err := h.settings.DeleteDayConfig(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete day config"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Day config deleted"})
}

// Capacities

func (h *AdminHandler) GetDefaultCapacities(c *gin.Context) {
	capacities, err := h.settings.GetDefaultCapacities()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load capacities"})
		return
	}
	c.JSON(http.StatusOK, capacities)
}

func (h *AdminHandler) SetDefaultCapacity(c *gin.Context) {
	var req struct {
		Category models.Category `json:"category" binding:"required"`
		Limit    *float64        `json:"limit" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.settings.SetDefaultCapacity(req.Category, *req.Limit); err != nil {
		h.settingsError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Capacity updated"})
}

// Packaging

func (h *AdminHandler) GetPackagingConfig(c *gin.Context) {
	config, err := h.settings.GetPackagingConfig()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load packaging config"})
		return
	}
	c.JSON(http.StatusOK, config)
}

func (h *AdminHandler) CreatePackagingType(c *gin.Context) {
	var packaging models.PackagingType
	if err := c.ShouldBindJSON(&packaging); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.settings.CreatePackagingType(&packaging); err != nil {
		h.settingsError(c, err)
		return
	}
	c.JSON(http.StatusCreated, packaging)
}

func (h *AdminHandler) UpdatePackagingType(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var packaging models.PackagingType
	if err := c.ShouldBindJSON(&packaging); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	packaging.ID = id

	if err := h.settings.UpdatePackagingType(&packaging); err != nil {
		h.settingsError(c, err)
		return
	}
	c.JSON(http.StatusOK, packaging)
}

func (h *AdminHandler) DeletePackagingType(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	if err := h.settings.DeletePackagingType(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete packaging type"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Packaging type deleted"})
}

func (h *AdminHandler) SetFreeFromThreshold(c *gin.Context) {
	var req struct {
		Value *float64 `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.settings.SetFreeFromThreshold(*req.Value); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Threshold updated"})
}

// Discount codes

func (h *AdminHandler) GetDiscounts(c *gin.Context) {
	codes, err := h.settings.ListDiscounts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load discount codes"})
		return
	}
	c.JSON(http.StatusOK, codes)
}

func (h *AdminHandler) CreateDiscount(c *gin.Context) {
	var code models.DiscountCode
	if err := c.ShouldBindJSON(&code); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.settings.CreateDiscount(&code); err != nil {
		h.settingsError(c, err)
		return
	}
	c.JSON(http.StatusCreated, code)
}

func (h *AdminHandler) UpdateDiscount(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var code models.DiscountCode
	if err := c.ShouldBindJSON(&code); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	code.ID = id

	if err := h.settings.UpdateDiscount(&code); err != nil {
		h.settingsError(c, err)
		return
	}
	c.JSON(http.StatusOK, code)
}

func (h *AdminHandler) DeleteDiscount(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	if err := h.settings.DeleteDiscount(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete discount code"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Discount code deleted"})
}

func (h *AdminHandler) settingsError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNegativeLimit),
		errors.Is(err, services.ErrInvalidCategory),
		errors.Is(err, services.ErrInvalidDiscount),
		errors.Is(err, services.ErrInvalidVolume),
		errors.Is(err, services.ErrInvalidProduct):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
