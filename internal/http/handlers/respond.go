package handlers

import (
	"github.com/geocoder89/inscricoes/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the error body every endpoint uses. Detail only carries
// store diagnostics.
type ErrorResponse struct {
	Error     string `json:"erro"`
	Detail    string `json:"detalhe,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func requestIDFrom(ctx *gin.Context) string {
	v, ok := ctx.Get(middlewares.RequestIDKey)

	if ok {
		s, ok := v.(string)
		if ok && s != "" {
			return s
		}
	}

	// fallback header
	return ctx.GetHeader("X-Request-Id")
}

func RespondError(ctx *gin.Context, status int, message string) {
	ctx.AbortWithStatusJSON(status, ErrorResponse{
		Error:     message,
		RequestID: requestIDFrom(ctx),
	})
}
