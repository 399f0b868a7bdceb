package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// HandlerBundle groups all HTTP handlers for route registration.
type HandlerBundle struct {
	// Reservations.
	CheckAvailability  gin.HandlerFunc
	QuoteStay          gin.HandlerFunc
	CreateReservation  gin.HandlerFunc
	GetReservation     gin.HandlerFunc
	UpdateReservation  gin.HandlerFunc
	InitiatePayment    gin.HandlerFunc
	VerifyPayment      gin.HandlerFunc
	ReservationsByTeam gin.HandlerFunc

	// Cabin catalog.
	ListCabins gin.HandlerFunc
	GetCabin   gin.HandlerFunc

	// Payment processor callbacks.
	StripeWebhook gin.HandlerFunc

	// AuthClient backs the session middleware on protected routes.
	AuthClient *redis.Client
}

// NewHandlerBundle wires concrete handlers into the bundle.
func NewHandlerBundle(
	rh *ReservationHandler,
	ch *CabinHandler,
	wh *StripeWebhookHandler,
	authClient *redis.Client,
) *HandlerBundle {
	return &HandlerBundle{
		CheckAvailability:  rh.CheckAvailabilityHandler,
		QuoteStay:          rh.QuoteHandler,
		CreateReservation:  rh.CreateReservationHandler,
		GetReservation:     rh.GetReservationHandler,
		UpdateReservation:  rh.UpdateReservationHandler,
		InitiatePayment:    rh.InitiatePaymentHandler,
		VerifyPayment:      rh.VerifyPaymentHandler,
		ReservationsByTeam: rh.ListByTeamHandler,

		ListCabins: ch.ListCabinsHandler,
		GetCabin:   ch.GetCabinHandler,

		StripeWebhook: wh.Handle,

		AuthClient: authClient,
	}
}
