package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform response shape: {status, message, data?}.
type Envelope struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondOK(ctx *gin.Context, message string, data interface{}) {
	ctx.JSON(http.StatusOK, Envelope{Status: true, Message: message, Data: data})
}

func RespondCreated(ctx *gin.Context, message string, data interface{}) {
	ctx.JSON(http.StatusCreated, Envelope{Status: true, Message: message, Data: data})
}

func RespondError(ctx *gin.Context, status int, message string, details interface{}) {
	ctx.JSON(status, Envelope{Status: false, Message: message, Data: details})
}

func RespondBadRequest(ctx *gin.Context, message string, details interface{}) {
	RespondError(ctx, http.StatusBadRequest, message, details)
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, message, nil)
}

func RespondConflict(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusConflict, message, nil)
}

func RespondInternal(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusInternalServerError, message, nil)
}
