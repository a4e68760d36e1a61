package controllers

import (
	"net/http"
	"strconv"

	"art-gallery-service/middleware"
	"art-gallery-service/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderController struct {
	orderService *services.OrderService
}

func NewOrderController(orderService *services.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// Checkout converts the caller's cart into a pending order.
func (oc *OrderController) Checkout(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req services.CheckoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	order, svcErr := oc.orderService.Checkout(ctx.Request.Context(), userID, &req)
	if svcErr != nil {
		middleware.RecordStoreOperation("checkout", false)
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	middleware.RecordStoreOperation("checkout", true)
	ctx.JSON(http.StatusCreated, gin.H{"order": order})
}

// ProcessPayment drives the pending->paid transition for one order.
func (oc *OrderController) ProcessPayment(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orderID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID format"})
		return
	}

	var req services.ProcessPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	order, svcErr := oc.orderService.ProcessPayment(ctx.Request.Context(), userID, middleware.IsStaff(ctx), orderID, &req)
	if svcErr != nil {
		middleware.RecordStoreOperation("process_payment", false)
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	middleware.RecordStoreOperation("process_payment", true)
	ctx.JSON(http.StatusOK, gin.H{"success": "Payment processed successfully", "order": order})
}

// GetOrders lists orders, scoped to the caller unless staff.
func (oc *OrderController) GetOrders(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	page, limit := parsePaginationParams(ctx)

	var result *services.OrderListResponse
	var svcErr *services.ServiceError
	if middleware.IsStaff(ctx) {
		result, svcErr = oc.orderService.GetAllOrders(ctx.Request.Context(), page, limit)
	} else {
		result, svcErr = oc.orderService.GetUserOrders(ctx.Request.Context(), userID, page, limit)
	}
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, result)
}

func (oc *OrderController) GetOrderByID(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orderID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID format"})
		return
	}

	order, svcErr := oc.orderService.GetOrderByID(ctx.Request.Context(), userID, middleware.IsStaff(ctx), orderID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"order": order})
}

// parsePaginationParams extracts and clamps pagination parameters.
func parsePaginationParams(ctx *gin.Context) (int, int) {
	const maxLimit = 100

	pageInt := 1
	limitInt := 10

	if p, err := strconv.Atoi(ctx.DefaultQuery("page", "1")); err == nil && p > 0 {
		pageInt = p
	}
	if l, err := strconv.Atoi(ctx.DefaultQuery("limit", "10")); err == nil && l > 0 {
		limitInt = l
		if limitInt > maxLimit {
			limitInt = maxLimit
		}
	}
	return pageInt, limitInt
}
