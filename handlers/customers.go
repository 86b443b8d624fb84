package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yourusername/invoicer/models"
)

const maxCreditLimit = 100_000

type CustomerHandler struct {
	db *gorm.DB
}

func NewCustomerHandler(db *gorm.DB) *CustomerHandler {
	return &CustomerHandler{db: db}
}

type CreateCustomerRequest struct {
	CustomerNumber *int64 `json:"customerNumber"`
	CustomerName   string `json:"customerName"`
	Email          string `json:"email" binding:"omitempty,email"`
	Phone          string `json:"phone"`
	CreditLimit    *int64 `json:"creditLimit"`
}

// UpdateCustomerRequest is a partial update: only fields present in the
// body are applied, each validated on its own. Unknown keys are ignored,
// never merged into the record.
type UpdateCustomerRequest struct {
	CustomerNumber *int64  `json:"customerNumber"`
	CustomerName   *string `json:"customerName"`
	Email          *string `json:"email" binding:"omitempty,email"`
	Phone          *string `json:"phone"`
	CreditLimit    *int64  `json:"creditLimit"`
}

func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	name := strings.TrimSpace(req.CustomerName)
	if name == "" || req.CustomerNumber == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "customerName and customerNumber are required"})
		return
	}
	if req.CreditLimit == nil || *req.CreditLimit < 0 || *req.CreditLimit > maxCreditLimit {
		c.JSON(http.StatusBadRequest, gin.H{"message": "creditLimit must be between 0 and 100,000"})
		return
	}

	var count int64
	if err := h.db.WithContext(c.Request.Context()).Model(&models.Customer{}).
		Where("customer_number = ?", *req.CustomerNumber).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create customer"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "customerNumber already exists"})
		return
	}

	customer := models.Customer{
		CustomerNumber: *req.CustomerNumber,
		CustomerName:   name,
		Email:          strings.TrimSpace(req.Email),
		Phone:          strings.TrimSpace(req.Phone),
		CreditLimit:    *req.CreditLimit,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create customer"})
		return
	}

	c.JSON(http.StatusCreated, customer)
}

var customerSortColumns = map[string]string{
	"customerName":   "customer_name",
	"email":          "email",
	"customerNumber": "customer_number",
	"creditLimit":    "credit_limit",
	"createdAt":      "created_at",
	"updatedAt":      "updated_at",
}

// ListCustomers supports case-insensitive substring filters on
// customerName and email, exact match on customerNumber, a creditLimit
// range, whitelisted sorting and skip/limit pagination.
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil {
		skip = -1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		limit = 0
	}
	if skip < 0 || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "skip must be >= 0 and limit must be > 0"})
		return
	}

	queryInt := func(param string) (int64, bool, bool) {
		raw := c.Query(param)
		if raw == "" {
			return 0, false, true
		}
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": param + " must be an integer"})
			return 0, false, false
		}
		return value, true, true
	}

	customerNumber, hasNumber, ok := queryInt("customerNumber")
	if !ok {
		return
	}
	minCredit, hasMin, ok := queryInt("minCredit")
	if !ok {
		return
	}
	maxCredit, hasMax, ok := queryInt("maxCredit")
	if !ok {
		return
	}

	filter := func(tx *gorm.DB) *gorm.DB {
		if name := c.Query("customerName"); name != "" {
			tx = tx.Where("LOWER(customer_name) LIKE ?", "%"+strings.ToLower(name)+"%")
		}
		if email := c.Query("email"); email != "" {
			tx = tx.Where("LOWER(email) LIKE ?", "%"+strings.ToLower(email)+"%")
		}
		if hasNumber {
			tx = tx.Where("customer_number = ?", customerNumber)
		}
		if hasMin {
			tx = tx.Where("credit_limit >= ?", minCredit)
		}
		if hasMax {
			tx = tx.Where("credit_limit <= ?", maxCredit)
		}
		return tx
	}

	sortField := c.DefaultQuery("sort", "createdAt")
	column, ok := customerSortColumns[sortField]
	if !ok {
		sortField = "createdAt"
		column = "created_at"
	}
	order := "desc"
	if c.Query("order") == "asc" {
		order = "asc"
	}

	var total int64
	if err := h.db.WithContext(c.Request.Context()).Model(&models.Customer{}).
		Scopes(filter).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch customers"})
		return
	}

	var customers []models.Customer
	if err := h.db.WithContext(c.Request.Context()).Scopes(filter).
		Order(column + " " + order).Offset(skip).Limit(limit).Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch customers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sortBy":            sortField,
		"order":             order,
		"skip":              skip,
		"limit":             limit,
		"totalCustomers":    total,
		"returnedCustomers": len(customers),
		"data":              customers,
	})
}

func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid customer ID"})
		return
	}

	var customer models.Customer
	if err := h.db.WithContext(c.Request.Context()).First(&customer, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Customer not found"})
		return
	}

	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid customer ID"})
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var customer models.Customer
	if err := h.db.WithContext(c.Request.Context()).First(&customer, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Customer not found"})
		return
	}

	if req.CustomerName != nil {
		name := strings.TrimSpace(*req.CustomerName)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "customerName must not be empty"})
			return
		}
		customer.CustomerName = name
	}
	if req.CreditLimit != nil {
		if *req.CreditLimit < 0 || *req.CreditLimit > maxCreditLimit {
			c.JSON(http.StatusBadRequest, gin.H{"message": "creditLimit must be between 0 and 100,000"})
			return
		}
		customer.CreditLimit = *req.CreditLimit
	}
	if req.CustomerNumber != nil && *req.CustomerNumber != customer.CustomerNumber {
		var count int64
		if err := h.db.WithContext(c.Request.Context()).Model(&models.Customer{}).
			Where("customer_number = ? AND id <> ?", *req.CustomerNumber, id).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update customer"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "customerNumber already exists"})
			return
		}
		customer.CustomerNumber = *req.CustomerNumber
	}
	if req.Email != nil {
		customer.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		customer.Phone = strings.TrimSpace(*req.Phone)
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update customer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Customer updated successfully",
		"data":    customer,
	})
}

// DeleteCustomer removes a customer even when existing invoices reference
// it: invoices carry their own pricing snapshots and stay self-contained.
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid customer ID"})
		return
	}

	result := h.db.WithContext(c.Request.Context()).Where("id = ?", id).Delete(&models.Customer{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete customer"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Customer not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}
