package models

// Operational states of a cabaña. A cabaña outside "disponible" never accepts
// new reservations, regardless of its calendar.
const (
	CabinAvailable   = "disponible"
	CabinOccupied    = "ocupada"
	CabinMaintenance = "mantenimiento"
)

// Cabin is the registry view of a rentable unit. The reservation engine treats
// it as read-only; mutations belong to the team back office.
type Cabin struct {
	ID            string  `bson:"id" json:"id"`
	Slug          string  `bson:"slug" json:"slug"`
	Nombre        string  `bson:"nombre" json:"nombre"`
	Descripcion   string  `bson:"descripcion,omitempty" json:"descripcion,omitempty"`
	Capacidad     int     `bson:"capacidad" json:"capacidad"`
	CostoPorNoche float64 `bson:"costo_por_noche" json:"costo_por_noche"`
	Estado        string  `bson:"estado" json:"estado"`
	TeamID        string  `bson:"team_id" json:"team_id"`

	NumeroHabitaciones int  `bson:"numero_habitaciones,omitempty" json:"numero_habitaciones,omitempty"`
	NumeroBanos        int  `bson:"numero_banos,omitempty" json:"numero_banos,omitempty"`
	PermiteMascotas    bool `bson:"permite_mascotas" json:"permite_mascotas"`
}
