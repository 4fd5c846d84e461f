package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront-be/internal/middleware"
	"storefront-be/internal/models"
	"storefront-be/internal/service"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

// Create handles POST /api/orders
func (oc *OrderController) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	orderID, err := oc.orderService.Create(userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrTotalMismatch) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Total amount does not match item prices",
			})
			return
		}
		log.Printf("create order [%s]: %v", c.GetString("requestID"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, models.CreateOrderResponse{
		Message: "Order created successfully",
		OrderID: orderID,
	})
}

// List handles GET /api/orders?page&limit
func (oc *OrderController) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	response, err := oc.orderService.List(userID, page, limit)
	if err != nil {
		log.Printf("list orders [%s]: %v", c.GetString("requestID"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, response)
}
