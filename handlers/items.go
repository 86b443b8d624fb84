package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yourusername/invoicer/models"
)

type ItemHandler struct {
	db *gorm.DB
}

func NewItemHandler(db *gorm.DB) *ItemHandler {
	return &ItemHandler{db: db}
}

type CreateItemRequest struct {
	Name      string           `json:"name"`
	Rate      *decimal.Decimal `json:"rate"`
	Unit      string           `json:"unit"`
	IsTaxable *bool            `json:"isTaxable"`
}

// UpdateItemRequest is a partial update; absent fields stay untouched.
type UpdateItemRequest struct {
	Name      *string          `json:"name"`
	Rate      *decimal.Decimal `json:"rate"`
	Unit      *string          `json:"unit"`
	IsTaxable *bool            `json:"isTaxable"`
}

func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	name := strings.TrimSpace(req.Name)
	unit := strings.TrimSpace(req.Unit)
	if name == "" || req.Rate == nil || unit == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name, rate, and unit are required"})
		return
	}
	if req.Rate.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "rate must be >= 0"})
		return
	}

	item := models.Item{
		Name:      name,
		Rate:      *req.Rate,
		Unit:      unit,
		IsTaxable: true,
	}
	if req.IsTaxable != nil {
		item.IsTaxable = *req.IsTaxable
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create item"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

var itemSortColumns = map[string]string{
	"name":      "name",
	"rate":      "rate",
	"unit":      "unit",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// ListItems supports a case-insensitive substring filter on name,
// whitelisted sorting, and page/limit pagination.
func (h *ItemHandler) ListItems(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 0
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		limit = 0
	}
	if page < 1 || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "page must be >= 1 and limit must be > 0"})
		return
	}

	filter := func(tx *gorm.DB) *gorm.DB {
		if name := c.Query("name"); name != "" {
			tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
		}
		return tx
	}

	column, ok := itemSortColumns[c.DefaultQuery("sortBy", "createdAt")]
	if !ok {
		column = "created_at"
	}
	order := "desc"
	if c.Query("order") == "asc" {
		order = "asc"
	}

	var total int64
	if err := h.db.WithContext(c.Request.Context()).Model(&models.Item{}).
		Scopes(filter).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch items"})
		return
	}

	var items []models.Item
	if err := h.db.WithContext(c.Request.Context()).Scopes(filter).
		Order(column + " " + order).Offset((page - 1) * limit).Limit(limit).Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch items"})
		return
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)

	c.JSON(http.StatusOK, gin.H{
		"totalItems":  total,
		"totalPages":  totalPages,
		"currentPage": page,
		"data":        items,
	})
}

func (h *ItemHandler) GetItem(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid item ID"})
		return
	}

	var item models.Item
	if err := h.db.WithContext(c.Request.Context()).First(&item, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Item not found"})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) UpdateItem(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid item ID"})
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var item models.Item
	if err := h.db.WithContext(c.Request.Context()).First(&item, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Item not found"})
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "name must not be empty"})
			return
		}
		item.Name = name
	}
	if req.Rate != nil {
		if req.Rate.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"message": "rate must be >= 0"})
			return
		}
		item.Rate = *req.Rate
	}
	if req.Unit != nil {
		unit := strings.TrimSpace(*req.Unit)
		if unit == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "unit must not be empty"})
			return
		}
		item.Unit = unit
	}
	if req.IsTaxable != nil {
		item.IsTaxable = *req.IsTaxable
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item updated successfully",
		"data":    item,
	})
}

// DeleteItem removes a catalog item. Invoices referencing it keep their
// snapshot rate and amount, so existing records are unaffected.
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid item ID"})
		return
	}

	result := h.db.WithContext(c.Request.Context()).Where("id = ?", id).Delete(&models.Item{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete item"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Item not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}
