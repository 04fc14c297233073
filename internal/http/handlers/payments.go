package handlers

import "github.com/gin-gonic/gin"

// PaymentsHandler is a stub. The payment flow is out of scope; the routes
// only exist so the client can exercise its checkout screens.
type PaymentsHandler struct{}

func NewPaymentsHandler() *PaymentsHandler {
	return &PaymentsHandler{}
}

func (h *PaymentsHandler) GetPayment(ctx *gin.Context) {
	RespondOK(ctx, "Payment service available", nil)
}

func (h *PaymentsHandler) MakePayment(ctx *gin.Context) {
	RespondCreated(ctx, "Payment processed", nil)
}
