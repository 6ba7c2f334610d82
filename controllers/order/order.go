package orderControllers

import (
	"net/http"
	"strconv"

	"github.com/XTHN9RF/Foodify-API/apperr"
	"github.com/XTHN9RF/Foodify-API/controllers/respond"
	"github.com/XTHN9RF/Foodify-API/middleware"
	"github.com/XTHN9RF/Foodify-API/services"
	"github.com/gin-gonic/gin"
)

type PlaceOrderRequest struct {
	ReceiverStreet      string `json:"receiver_street"`
	ReceiverHouseNumber string `json:"receiver_house_number"`
	ReceiverPhoneNumber string `json:"receiver_phone_number"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func orderIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("orderID"), 10, 64)
	if err != nil || id == 0 {
		respond.Error(c, apperr.New(apperr.Validation, "orderID must be a positive integer"))
		return 0, false
	}
	return uint(id), true
}

// POST /orders
func PlaceOrderHandler(orders *services.Orders) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.BadInput(c, err)
			return
		}

		order, err := orders.Place(c.Request.Context(), userID, services.PlaceOrderInput{
			ReceiverStreet:      req.ReceiverStreet,
			ReceiverHouseNumber: req.ReceiverHouseNumber,
			ReceiverPhoneNumber: req.ReceiverPhoneNumber,
		})
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

// GET /orders
func GetUserOrdersHandler(orders *services.Orders) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)
		list, err := orders.List(c.Request.Context(), userID)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// GET /orders/:orderID
func GetOrderByIDHandler(orders *services.Orders) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)
		orderID, ok := orderIDParam(c)
		if !ok {
			return
		}
		order, err := orders.Get(c.Request.Context(), userID, orderID)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// PUT /admin/orders/:orderID/status
func UpdateOrderStatusHandler(orders *services.Orders) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := orderIDParam(c)
		if !ok {
			return
		}
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.BadInput(c, err)
			return
		}
		order, err := orders.UpdateStatus(c.Request.Context(), orderID, req.Status)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
