package handlers

import (
	"errors"
	"net/http"

	"cabanero/middleware"
	"cabanero/services/reservation"
	"cabanero/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReservationHandler exposes the reservation engine over HTTP.
type ReservationHandler struct {
	Svc    reservation.ReservationService
	Logger *zap.Logger
}

func NewReservationHandler(svc reservation.ReservationService, logger *zap.Logger) *ReservationHandler {
	return &ReservationHandler{Svc: svc, Logger: logger}
}

// respondError translates the service error taxonomy into HTTP statuses. The
// handler layer is the single point turning typed errors into user-facing
// responses.
func (h *ReservationHandler) respondError(c *gin.Context, err error) {
	var se *reservation.Error
	if !errors.As(err, &se) {
		h.Logger.Error("unexpected error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}

	switch se.Code {
	case reservation.CodeValidation:
		utils.JSONError(c, http.StatusBadRequest, se.Message, "")
	case reservation.CodeNotFound:
		utils.JSONError(c, http.StatusNotFound, se.Message, "")
	case reservation.CodeConflict:
		utils.JSONError(c, http.StatusConflict, se.Message, "")
	case reservation.CodeInvalidState:
		// Defensive: an illegal transition means a buggy or malicious caller.
		h.Logger.Warn("illegal lifecycle transition attempted", zap.Error(err))
		utils.JSONError(c, http.StatusConflict, "operación no permitida en el estado actual de la reserva", "")
	case reservation.CodePaymentInit:
		utils.JSONError(c, http.StatusBadGateway, se.Message, "")
	default:
		h.Logger.Error("unhandled service error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

// CheckAvailabilityHandler handles
// GET /reservas/reservas/check-availability/?cabana_id&fecha_inicio&fecha_fin.
func (h *ReservationHandler) CheckAvailabilityHandler(c *gin.Context) {
	cabanaID := c.Query("cabana_id")
	fechaInicio := c.Query("fecha_inicio")
	fechaFin := c.Query("fecha_fin")

	if cabanaID == "" || fechaInicio == "" || fechaFin == "" {
		utils.JSONError(c, http.StatusBadRequest, "se requieren cabana_id, fecha_inicio y fecha_fin", "")
		return
	}

	result, err := h.Svc.CheckAvailability(c.Request.Context(), cabanaID, fechaInicio, fechaFin)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"available":    result.Available,
		"message":      result.Reason,
		"cabana_id":    cabanaID,
		"fecha_inicio": fechaInicio,
		"fecha_fin":    fechaFin,
	})
}

// QuoteHandler handles GET /reservas/reservas/quote/. It exposes the same
// pricing function the create path uses, so the displayed price cannot
// diverge from the charged one.
func (h *ReservationHandler) QuoteHandler(c *gin.Context) {
	cabanaID := c.Query("cabana_id")
	fechaInicio := c.Query("fecha_inicio")
	fechaFin := c.Query("fecha_fin")

	if cabanaID == "" || fechaInicio == "" || fechaFin == "" {
		utils.JSONError(c, http.StatusBadRequest, "se requieren cabana_id, fecha_inicio y fecha_fin", "")
		return
	}

	quote, err := h.Svc.Quote(c.Request.Context(), cabanaID, fechaInicio, fechaFin)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// CreateReservationHandler handles POST /reservas/reservas/.
func (h *ReservationHandler) CreateReservationHandler(c *gin.Context) {
	var input struct {
		Cabanas     []string `json:"cabanas" binding:"required"`
		Cliente     string   `json:"cliente"`
		FechaInicio string   `json:"fecha_inicio" binding:"required"`
		FechaFin    string   `json:"fecha_fin" binding:"required"`
		Huespedes   int      `json:"huespedes"`
		Comentarios string   `json:"comentarios"`
		PrecioFinal float64  `json:"precio_final"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "entrada inválida", err.Error())
		return
	}
	if len(input.Cabanas) != 1 {
		utils.JSONError(c, http.StatusBadRequest, "se requiere exactamente una cabaña", "")
		return
	}

	// The session is checked client-side before the form opens; re-check here
	// so a raw API call cannot book without a billing profile.
	if hasBilling, ok := c.Get(middleware.ContextHasBilling); ok && hasBilling == false {
		utils.JSONError(c, http.StatusBadRequest, "se requiere un perfil de facturación para reservar", "")
		return
	}

	// The authenticated session, not the body, decides who books.
	cliente := c.GetString(middleware.ContextClienteID)
	if cliente == "" {
		cliente = input.Cliente
	}

	res, err := h.Svc.Create(c.Request.Context(), reservation.CreateReservationRequest{
		CabanaID:    input.Cabanas[0],
		ClienteID:   cliente,
		FechaInicio: input.FechaInicio,
		FechaFin:    input.FechaFin,
		Huespedes:   input.Huespedes,
		Comentarios: input.Comentarios,
		QuotedTotal: input.PrecioFinal,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// GetReservationHandler handles GET /reservas/reservas/:id/.
func (h *ReservationHandler) GetReservationHandler(c *gin.Context) {
	res, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// UpdateReservationHandler handles PATCH /reservas/:id/. Cancellation is the
// only state change a client may request; everything else belongs to the
// payment flow.
func (h *ReservationHandler) UpdateReservationHandler(c *gin.Context) {
	var input struct {
		Estado string `json:"estado" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "entrada inválida", err.Error())
		return
	}
	if input.Estado != "cancelada" {
		utils.JSONError(c, http.StatusBadRequest, "solo se permite el cambio a estado cancelada", "")
		return
	}

	res, err := h.Svc.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// InitiatePaymentHandler handles POST /reservas/reservas/:id/pagar/.
func (h *ReservationHandler) InitiatePaymentHandler(c *gin.Context) {
	var input struct {
		SuccessURL string `json:"success_url" binding:"required"`
		CancelURL  string `json:"cancel_url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "se requieren success_url y cancel_url", err.Error())
		return
	}

	ps, err := h.Svc.InitiatePayment(c.Request.Context(), c.Param("id"), input.SuccessURL, input.CancelURL)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"checkout_url": ps.CheckoutURL})
}

// VerifyPaymentHandler handles POST /reservas/reservas/:id/confirmar-pago/.
// Used by the payment-success landing page; the session is re-verified with
// the processor before any state changes.
func (h *ReservationHandler) VerifyPaymentHandler(c *gin.Context) {
	var input struct {
		SessionID string `json:"session_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "se requiere session_id", err.Error())
		return
	}

	res, err := h.Svc.VerifyAndConfirm(c.Request.Context(), c.Param("id"), input.SessionID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListByTeamHandler handles GET /reservas/reservas/por-equipo/?team_id.
func (h *ReservationHandler) ListByTeamHandler(c *gin.Context) {
	teamID := c.Query("team_id")
	if teamID == "" {
		utils.JSONError(c, http.StatusBadRequest, "se requiere team_id", "")
		return
	}

	reservations, err := h.Svc.ListByTeam(c.Request.Context(), teamID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservations)
}
