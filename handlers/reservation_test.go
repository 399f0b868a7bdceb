package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cabanero/middleware"
	"cabanero/models"
	"cabanero/services/reservation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubService lets each test script the service layer's answers.
type stubService struct {
	checkAvailability func(ctx context.Context, cabanaID, fechaInicio, fechaFin string) (reservation.AvailabilityResult, error)
	quote             func(ctx context.Context, cabanaID, fechaInicio, fechaFin string) (*models.StayQuote, error)
	create            func(ctx context.Context, req reservation.CreateReservationRequest) (*models.Reservation, error)
	getByID           func(ctx context.Context, id string) (*models.Reservation, error)
	listByTeam        func(ctx context.Context, teamID string) ([]models.Reservation, error)
	initiatePayment   func(ctx context.Context, id, successURL, cancelURL string) (*models.PaymentSession, error)
	verifyAndConfirm  func(ctx context.Context, id, sessionID string) (*models.Reservation, error)
	confirm           func(ctx context.Context, id string) (*models.Reservation, error)
	cancel            func(ctx context.Context, id string) (*models.Reservation, error)
}

func (s *stubService) CheckAvailability(ctx context.Context, cabanaID, fechaInicio, fechaFin string) (reservation.AvailabilityResult, error) {
	return s.checkAvailability(ctx, cabanaID, fechaInicio, fechaFin)
}
func (s *stubService) Quote(ctx context.Context, cabanaID, fechaInicio, fechaFin string) (*models.StayQuote, error) {
	return s.quote(ctx, cabanaID, fechaInicio, fechaFin)
}
func (s *stubService) Create(ctx context.Context, req reservation.CreateReservationRequest) (*models.Reservation, error) {
	return s.create(ctx, req)
}
func (s *stubService) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	return s.getByID(ctx, id)
}
func (s *stubService) ListByTeam(ctx context.Context, teamID string) ([]models.Reservation, error) {
	return s.listByTeam(ctx, teamID)
}
func (s *stubService) InitiatePayment(ctx context.Context, id, successURL, cancelURL string) (*models.PaymentSession, error) {
	return s.initiatePayment(ctx, id, successURL, cancelURL)
}
func (s *stubService) VerifyAndConfirm(ctx context.Context, id, sessionID string) (*models.Reservation, error) {
	return s.verifyAndConfirm(ctx, id, sessionID)
}
func (s *stubService) Confirm(ctx context.Context, id string) (*models.Reservation, error) {
	return s.confirm(ctx, id)
}
func (s *stubService) Cancel(ctx context.Context, id string) (*models.Reservation, error) {
	return s.cancel(ctx, id)
}
func (s *stubService) Expire(ctx context.Context, id string) error { return nil }

func newTestRouter(svc reservation.ReservationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewReservationHandler(svc, zap.NewNop())

	r := gin.New()
	r.GET("/reservas/reservas/check-availability/", h.CheckAvailabilityHandler)
	r.GET("/reservas/reservas/quote/", h.QuoteHandler)
	r.POST("/reservas/reservas/", h.CreateReservationHandler)
	r.GET("/reservas/reservas/:id/", h.GetReservationHandler)
	r.POST("/reservas/reservas/:id/pagar/", h.InitiatePaymentHandler)
	r.POST("/reservas/reservas/:id/confirmar-pago/", h.VerifyPaymentHandler)
	r.PATCH("/reservas/:id/", h.UpdateReservationHandler)
	return r
}

func TestCheckAvailabilityHandler(t *testing.T) {
	t.Run("available interval", func(t *testing.T) {
		svc := &stubService{
			checkAvailability: func(context.Context, string, string, string) (reservation.AvailabilityResult, error) {
				return reservation.AvailabilityResult{Available: true}, nil
			},
		}
		r := newTestRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/reservas/reservas/check-availability/?cabana_id=cab-1&fecha_inicio=2025-03-10&fecha_fin=2025-03-12", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, true, body["available"])
		assert.Equal(t, "cab-1", body["cabana_id"])
	})

	t.Run("missing params", func(t *testing.T) {
		r := newTestRouter(&stubService{})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/reservas/reservas/check-availability/?cabana_id=cab-1", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("validation error maps to 400", func(t *testing.T) {
		svc := &stubService{
			checkAvailability: func(context.Context, string, string, string) (reservation.AvailabilityResult, error) {
				return reservation.AvailabilityResult{}, reservation.NewValidationError("fechas inválidas")
			},
		}
		r := newTestRouter(svc)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/reservas/reservas/check-availability/?cabana_id=cab-1&fecha_inicio=x&fecha_fin=y", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCreateReservationHandler(t *testing.T) {
	body := `{
		"cabanas": ["cab-1"],
		"cliente": "cli-1",
		"fecha_inicio": "2025-03-10",
		"fecha_fin": "2025-03-12",
		"huespedes": 2
	}`

	t.Run("created", func(t *testing.T) {
		svc := &stubService{
			create: func(_ context.Context, req reservation.CreateReservationRequest) (*models.Reservation, error) {
				assert.Equal(t, "cab-1", req.CabanaID)
				assert.Equal(t, "cli-1", req.ClienteID)
				return &models.Reservation{ID: "res-1", Estado: models.ReservationPending}, nil
			},
		}
		r := newTestRouter(svc)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/reservas/reservas/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("conflict maps to 409", func(t *testing.T) {
		svc := &stubService{
			create: func(context.Context, reservation.CreateReservationRequest) (*models.Reservation, error) {
				return nil, reservation.NewConflictError("fechas no disponibles")
			},
		}
		r := newTestRouter(svc)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/reservas/reservas/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("session without billing profile cannot book", func(t *testing.T) {
		svc := &stubService{
			create: func(context.Context, reservation.CreateReservationRequest) (*models.Reservation, error) {
				t.Fatal("create must not run without a billing profile")
				return nil, nil
			},
		}
		gin.SetMode(gin.TestMode)
		h := NewReservationHandler(svc, zap.NewNop())
		r := gin.New()
		r.POST("/reservas/reservas/", func(c *gin.Context) {
			c.Set(middleware.ContextClienteID, "cli-1")
			c.Set(middleware.ContextHasBilling, false)
		}, h.CreateReservationHandler)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/reservas/reservas/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("session with billing profile books as itself", func(t *testing.T) {
		svc := &stubService{
			create: func(_ context.Context, req reservation.CreateReservationRequest) (*models.Reservation, error) {
				assert.Equal(t, "cli-session", req.ClienteID)
				return &models.Reservation{ID: "res-1", Estado: models.ReservationPending}, nil
			},
		}
		gin.SetMode(gin.TestMode)
		h := NewReservationHandler(svc, zap.NewNop())
		r := gin.New()
		r.POST("/reservas/reservas/", func(c *gin.Context) {
			c.Set(middleware.ContextClienteID, "cli-session")
			c.Set(middleware.ContextHasBilling, true)
		}, h.CreateReservationHandler)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/reservas/reservas/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("rejects multiple cabins", func(t *testing.T) {
		r := newTestRouter(&stubService{})
		w := httptest.NewRecorder()
		multi := strings.Replace(body, `["cab-1"]`, `["cab-1","cab-2"]`, 1)
		req := httptest.NewRequest(http.MethodPost, "/reservas/reservas/", strings.NewReader(multi))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetReservationHandler(t *testing.T) {
	t.Run("not found maps to 404", func(t *testing.T) {
		svc := &stubService{
			getByID: func(context.Context, string) (*models.Reservation, error) {
				return nil, reservation.NewNotFoundError("reserva no encontrada")
			},
		}
		r := newTestRouter(svc)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/reservas/reservas/ghost/", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUpdateReservationHandler(t *testing.T) {
	t.Run("cancellation", func(t *testing.T) {
		svc := &stubService{
			cancel: func(_ context.Context, id string) (*models.Reservation, error) {
				return &models.Reservation{ID: id, Estado: models.ReservationCancelled}, nil
			},
		}
		r := newTestRouter(svc)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/reservas/res-1/", strings.NewReader(`{"estado":"cancelada"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("other estados are rejected", func(t *testing.T) {
		r := newTestRouter(&stubService{})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/reservas/res-1/", strings.NewReader(`{"estado":"confirmada"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestInitiatePaymentHandler(t *testing.T) {
	t.Run("returns checkout url", func(t *testing.T) {
		svc := &stubService{
			initiatePayment: func(context.Context, string, string, string) (*models.PaymentSession, error) {
				return &models.PaymentSession{CheckoutURL: "https://checkout.example.com/cs_1"}, nil
			},
		}
		r := newTestRouter(svc)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/reservas/reservas/res-1/pagar/",
			strings.NewReader(`{"success_url":"https://app/s","cancel_url":"https://app/c"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "https://checkout.example.com/cs_1", body["checkout_url"])
	})

	t.Run("gateway failure maps to 502", func(t *testing.T) {
		svc := &stubService{
			initiatePayment: func(context.Context, string, string, string) (*models.PaymentSession, error) {
				return nil, reservation.NewPaymentInitError("no se pudo iniciar el pago")
			},
		}
		r := newTestRouter(svc)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/reservas/reservas/res-1/pagar/",
			strings.NewReader(`{"success_url":"https://app/s","cancel_url":"https://app/c"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("invalid state maps to 409", func(t *testing.T) {
		svc := &stubService{
			initiatePayment: func(context.Context, string, string, string) (*models.PaymentSession, error) {
				return nil, reservation.NewInvalidStateError("solo una reserva pendiente puede pagarse")
			},
		}
		r := newTestRouter(svc)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/reservas/reservas/res-1/pagar/",
			strings.NewReader(`{"success_url":"https://app/s","cancel_url":"https://app/c"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestVerifyPaymentHandler(t *testing.T) {
	svc := &stubService{
		verifyAndConfirm: func(_ context.Context, id, sessionID string) (*models.Reservation, error) {
			assert.Equal(t, "cs_1", sessionID)
			return &models.Reservation{ID: id, Estado: models.ReservationConfirmed}, nil
		},
	}
	r := newTestRouter(svc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/reservas/reservas/res-1/confirmar-pago/",
		strings.NewReader(`{"session_id":"cs_1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var res models.Reservation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, models.ReservationConfirmed, res.Estado)
}
