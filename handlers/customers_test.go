package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yourusername/invoicer/models"
)

func newCustomerRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewCustomerHandler(db)

	router := gin.New()
	router.POST("/customers", handler.CreateCustomer)
	router.GET("/customers", handler.ListCustomers)
	router.GET("/customers/:id", handler.GetCustomer)
	router.PUT("/customers/:id", handler.UpdateCustomer)
	router.DELETE("/customers/:id", handler.DeleteCustomer)
	return router
}

func TestCreateCustomer(t *testing.T) {
	db := setupTestDB(t)
	router := newCustomerRouter(db)

	t.Run("Valid", func(t *testing.T) {
		w := postJSON(t, router, "/customers", gin.H{
			"customerNumber": 1001,
			"customerName":   "  Acme Traders  ",
			"email":          "accounts@acme.example",
			"phone":          "9876543210",
			"creditLimit":    50000,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var customer models.Customer
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &customer))
		assert.NotEmpty(t, customer.ID)
		assert.Equal(t, "Acme Traders", customer.CustomerName, "name is trimmed")
		assert.Equal(t, int64(1001), customer.CustomerNumber)
	})

	t.Run("Duplicate Customer Number", func(t *testing.T) {
		w := postJSON(t, router, "/customers", gin.H{
			"customerNumber": 1001,
			"customerName":   "Copycat",
			"creditLimit":    0,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "customerNumber already exists")
	})

	t.Run("Missing Required Fields", func(t *testing.T) {
		for _, body := range []gin.H{
			{"customerName": "No Number", "creditLimit": 100},
			{"customerNumber": 2001, "creditLimit": 100},
			{"customerNumber": 2002, "customerName": "   ", "creditLimit": 100},
		} {
			w := postJSON(t, router, "/customers", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		}
	})

	t.Run("Credit Limit Bounds", func(t *testing.T) {
		for _, limit := range []int64{-1, 100001} {
			w := postJSON(t, router, "/customers", gin.H{
				"customerNumber": 3001,
				"customerName":   "Edge Case",
				"creditLimit":    limit,
			})
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "creditLimit must be between 0 and 100,000")
		}

		// Both bounds are inclusive.
		w := postJSON(t, router, "/customers", gin.H{
			"customerNumber": 3002,
			"customerName":   "Zero Credit",
			"creditLimit":    0,
		})
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = postJSON(t, router, "/customers", gin.H{
			"customerNumber": 3003,
			"customerName":   "Max Credit",
			"creditLimit":    100000,
		})
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("Invalid Email", func(t *testing.T) {
		w := postJSON(t, router, "/customers", gin.H{
			"customerNumber": 4001,
			"customerName":   "Bad Email",
			"email":          "not-an-email",
			"creditLimit":    100,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListCustomers(t *testing.T) {
	db := setupTestDB(t)
	router := newCustomerRouter(db)

	seed := []models.Customer{
		{CustomerNumber: 1001, CustomerName: "Acme Traders", Email: "accounts@acme.example", CreditLimit: 50000},
		{CustomerNumber: 1002, CustomerName: "Blue Ocean Retail", Email: "billing@blueocean.example", CreditLimit: 25000},
		{CustomerNumber: 1003, CustomerName: "Cosmic Components", Email: "finance@cosmic.example", CreditLimit: 75000},
		{CustomerNumber: 1004, CustomerName: "Acme Supplies", Email: "pay@acmesupplies.example", CreditLimit: 10000},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	type listResponse struct {
		SortBy            string            `json:"sortBy"`
		Order             string            `json:"order"`
		Skip              int               `json:"skip"`
		Limit             int               `json:"limit"`
		TotalCustomers    int64             `json:"totalCustomers"`
		ReturnedCustomers int               `json:"returnedCustomers"`
		Data              []models.Customer `json:"data"`
	}

	t.Run("Skip And Limit", func(t *testing.T) {
		w := getJSON(t, router, "/customers?skip=2&limit=2&sort=customerNumber&order=asc")
		require.Equal(t, http.StatusOK, w.Code)

		var resp listResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(4), resp.TotalCustomers)
		assert.Equal(t, 2, resp.ReturnedCustomers)
		require.Len(t, resp.Data, 2)
		assert.Equal(t, int64(1003), resp.Data[0].CustomerNumber)
		assert.Equal(t, int64(1004), resp.Data[1].CustomerNumber)
	})

	t.Run("Name Filter", func(t *testing.T) {
		w := getJSON(t, router, "/customers?customerName=acme")
		require.Equal(t, http.StatusOK, w.Code)

		var resp listResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(2), resp.TotalCustomers)
	})

	t.Run("Email Filter", func(t *testing.T) {
		w := getJSON(t, router, "/customers?email=BILLING")
		require.Equal(t, http.StatusOK, w.Code)

		var resp listResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, int64(1), resp.TotalCustomers)
		assert.Equal(t, int64(1002), resp.Data[0].CustomerNumber)
	})

	t.Run("Exact Customer Number", func(t *testing.T) {
		w := getJSON(t, router, "/customers?customerNumber=1003")
		require.Equal(t, http.StatusOK, w.Code)

		var resp listResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, int64(1), resp.TotalCustomers)
		assert.Equal(t, "Cosmic Components", resp.Data[0].CustomerName)
	})

	t.Run("Credit Range", func(t *testing.T) {
		w := getJSON(t, router, "/customers?minCredit=20000&maxCredit=60000")
		require.Equal(t, http.StatusOK, w.Code)

		var resp listResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(2), resp.TotalCustomers)
	})

	t.Run("Invalid Pagination", func(t *testing.T) {
		for _, query := range []string{"skip=-1", "limit=0", "limit=-5"} {
			w := getJSON(t, router, "/customers?"+query)
			assert.Equal(t, http.StatusBadRequest, w.Code, query)
		}
	})
}

func TestUpdateCustomerPartial(t *testing.T) {
	db := setupTestDB(t)
	router := newCustomerRouter(db)

	customer := createTestCustomer(t, db, 1001)
	other := createTestCustomer(t, db, 1002)

	t.Run("Single Field", func(t *testing.T) {
		w := putJSON(t, router, "/customers/"+customer.ID, gin.H{"creditLimit": 60000})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var updated models.Customer
		require.NoError(t, db.First(&updated, "id = ?", customer.ID).Error)
		assert.Equal(t, int64(60000), updated.CreditLimit)
		assert.Equal(t, customer.CustomerName, updated.CustomerName)
		assert.Equal(t, customer.Email, updated.Email)
	})

	t.Run("Number Collision", func(t *testing.T) {
		w := putJSON(t, router, "/customers/"+customer.ID, gin.H{"customerNumber": other.CustomerNumber})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "customerNumber already exists")
	})

	t.Run("Rejects Empty Name", func(t *testing.T) {
		w := putJSON(t, router, "/customers/"+customer.ID, gin.H{"customerName": " "})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Credit Limit Bounds", func(t *testing.T) {
		w := putJSON(t, router, "/customers/"+customer.ID, gin.H{"creditLimit": 200000})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Not Found", func(t *testing.T) {
		w := putJSON(t, router, "/customers/aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee", gin.H{"creditLimit": 1})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteCustomer(t *testing.T) {
	db := setupTestDB(t)
	router := newCustomerRouter(db)

	customer := createTestCustomer(t, db, 1001)

	// An invoice referencing the customer does not block deletion; it
	// keeps its snapshot totals.
	invoice := &models.Invoice{
		CustomerID: customer.ID,
		SubTotal:   decimal.NewFromInt(100),
		TaxTotal:   decimal.NewFromInt(18),
		GrandTotal: decimal.NewFromInt(118),
		Status:     models.InvoiceStatusDraft,
	}
	require.NoError(t, db.Create(invoice).Error)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/customers/"+customer.ID, nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Invoice{}).Count(&count)
	assert.Equal(t, int64(1), count)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodDelete, "/customers/"+customer.ID, nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
