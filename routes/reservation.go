package routes

import (
	"cabanero/handlers"
	"cabanero/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterReservationRoutes mounts the reservation API. Every route here runs
// behind the session middleware; the only unauthenticated way into the
// lifecycle is the signature-verified webhook.
func RegisterReservationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	grp := r.Group("/reservas")
	grp.Use(middleware.SessionAuthMiddleware(hb.AuthClient))

	grp.GET("/reservas/check-availability/", hb.CheckAvailability)
	grp.GET("/reservas/quote/", hb.QuoteStay)
	grp.GET("/reservas/por-equipo/", hb.ReservationsByTeam)
	grp.POST("/reservas/", hb.CreateReservation)
	grp.GET("/reservas/:id/", hb.GetReservation)
	grp.POST("/reservas/:id/pagar/", hb.InitiatePayment)
	grp.POST("/reservas/:id/confirmar-pago/", hb.VerifyPayment)
	grp.PATCH("/:id/", hb.UpdateReservation)
}

// RegisterCabinRoutes mounts the public cabin catalog.
func RegisterCabinRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	grp := r.Group("/cabanas")

	grp.GET("/", hb.ListCabins)
	grp.GET("/:id/", hb.GetCabin)
}

// RegisterWebhookRoutes mounts payment processor callbacks. No session
// middleware: authenticity comes from the Stripe signature.
func RegisterWebhookRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/webhooks/stripe/", hb.StripeWebhook)
}
