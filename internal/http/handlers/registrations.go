package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/geocoder89/inscricoes/internal/service"
	"github.com/gin-gonic/gin"
)

const requestTimeout = 2 * time.Second

// MsgMalformedBody is the error shown for bodies that are not a JSON object.
const MsgMalformedBody = "JSON inválido ou vazio"

// RegistrationService is what the handlers need from the service layer.
type RegistrationService interface {
	HandleCreate(ctx context.Context, raw []byte) service.Reply
	HandleList(ctx context.Context) service.Reply
}

type RegistrationHandler struct {
	svc RegistrationService
}

func NewRegistrationHandler(svc RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{svc: svc}
}

// Create handles POST /inscricoes. The raw body goes to the service untouched
// so it can tell a malformed body from an invalid field.
func (h *RegistrationHandler) Create(ctx *gin.Context) {
	raw, err := ctx.GetRawData()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			RespondError(ctx, http.StatusRequestEntityTooLarge, "Pedido demasiado grande")
			return
		}

		RespondError(ctx, http.StatusBadRequest, MsgMalformedBody)
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), requestTimeout)
	defer cancel()

	reply := h.svc.HandleCreate(cctx, raw)

	ctx.JSON(reply.Status, reply.Body)
}

// List handles GET /lista.
func (h *RegistrationHandler) List(ctx *gin.Context) {
	cctx, cancel := context.WithTimeout(ctx.Request.Context(), requestTimeout)
	defer cancel()

	reply := h.svc.HandleList(cctx)

	RespondJSONWithETag(ctx, reply.Status, reply.Body)
}

// Preflight answers OPTIONS /inscricoes with an empty 204.
func (h *RegistrationHandler) Preflight(ctx *gin.Context) {
	ctx.Status(http.StatusNoContent)
}
