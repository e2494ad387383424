package controller

import (
	"kidsphere_backend/internal/service"
	"kidsphere_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	PaymentService *service.PaymentService
}

func NewPaymentController(paymentService *service.PaymentService) *PaymentController {
	return &PaymentController{PaymentService: paymentService}
}

// Plans godoc
// @Summary List subscription plans and prices
// @Tags payments
// @Produce json
// @Success 200 {object} util.Response{data=[]model.PlanPrice}
// @Router /api/plans [get]
func (c *PaymentController) Plans(ctx *gin.Context) {
	plans, err := c.PaymentService.ListPlans()
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, plans)
}

// CreateOrder godoc
// @Summary Open a checkout for a plan upgrade
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateOrderRequest true "plan"
// @Success 201 {object} util.Response{data=service.CreateOrderResponse}
// @Router /api/payments/orders [post]
func (c *PaymentController) CreateOrder(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	resp, err := c.PaymentService.CreateOrder(claims.UserID, &req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, resp)
}

// Confirm godoc
// @Summary Confirm a gateway payment
// @Description Verifies the HMAC signature and upgrades the plan. A
// @Description replayed confirmation is accepted without effect.
// @Tags payments
// @Accept json
// @Produce json
// @Param body body service.ConfirmPaymentRequest true "gateway callback"
// @Success 200 {object} util.Response{data=model.PaymentOrder}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/payments/confirm [post]
func (c *PaymentController) Confirm(ctx *gin.Context) {
	var req service.ConfirmPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	order, err := c.PaymentService.Confirm(&req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, order)
}

// Orders godoc
// @Summary The caller's payment history
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.PaymentOrder}
// @Router /api/payments/orders [get]
func (c *PaymentController) Orders(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	orders, err := c.PaymentService.ListOrders(claims.UserID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, orders)
}
