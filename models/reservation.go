package models

import "time"

// Reservation lifecycle states (wire values match the original API).
const (
	ReservationPending   = "pendiente"
	ReservationConfirmed = "confirmada"
	ReservationCancelled = "cancelada"
)

// DateLayout is the calendar-date format used on the wire and in storage.
// Dates are half-open intervals [fecha_inicio, fecha_fin): checkout day is
// excluded, so back-to-back stays can share a boundary date.
const DateLayout = "2006-01-02"

// Reservation is the durable booking record. Estado is mutated only by the
// reservation service's transition methods; it is never deleted, only moved
// to cancelada.
type Reservation struct {
	ID          string  `bson:"id" json:"id"`
	CabanaID    string  `bson:"cabana_id" json:"cabana_id"`
	ClienteID   string  `bson:"cliente" json:"cliente"`
	FechaInicio string  `bson:"fecha_inicio" json:"fecha_inicio"`
	FechaFin    string  `bson:"fecha_fin" json:"fecha_fin"`
	Huespedes   int     `bson:"huespedes" json:"huespedes"`
	Comentarios string  `bson:"comentarios,omitempty" json:"comentarios,omitempty"`
	Noches      int     `bson:"noches" json:"noches"`
	PrecioFinal float64 `bson:"precio_final" json:"precio_final"`
	Estado      string  `bson:"estado" json:"estado"`

	// Last Stripe checkout session created for this reservation. Retried
	// payments overwrite it; each attempt is a fresh session.
	CheckoutSessionID string `bson:"checkout_session_id,omitempty" json:"checkout_session_id,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// StayQuote is the derived price for a stay. Quotes with Noches < 1 are never
// produced; ComputeStay returns nil instead.
type StayQuote struct {
	Noches int     `json:"nights"`
	Total  float64 `json:"totalCost"`
}
