package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"cabanero/models"

	"go.mongodb.org/mongo-driver/bson"
)

// overlapFilter matches pendiente/confirmada reservations whose half-open
// [fecha_inicio, fecha_fin) interval overlaps the requested one:
// existing.start < requested.end AND existing.end > requested.start.
// ISO dates compare correctly as strings.
func overlapFilter(cabanaID, fechaInicio, fechaFin string) bson.M {
	return bson.M{
		"cabana_id": cabanaID,
		"estado": bson.M{"$in": []string{
			models.ReservationPending,
			models.ReservationConfirmed,
		}},
		"fecha_inicio": bson.M{"$lt": fechaFin},
		"fecha_fin":    bson.M{"$gt": fechaInicio},
	}
}

// CountOverlapping counts conflicting reservations for an interval. This is
// the point-in-time availability check; the authoritative re-check runs
// inside CreateIfAvailable's transaction.
func (r *MongoReservationRepo) CountOverlapping(ctx context.Context, cabanaID, fechaInicio, fechaFin string) (int64, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctxWithTimeout, overlapFilter(cabanaID, fechaInicio, fechaFin))
	if err != nil {
		return 0, fmt.Errorf("error counting overlapping reservations: %w", err)
	}
	return n, nil
}

// UpdateEstado transitions estado to `to` only when the current value is one
// of `from`. A false return with no error means the reservation was missing
// or not in an expected state; the caller decides which.
func (r *MongoReservationRepo) UpdateEstado(ctx context.Context, id string, from []string, to string) (bool, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":     id,
		"estado": bson.M{"$in": from},
	}
	update := bson.M{"$set": bson.M{
		"estado":     to,
		"updated_at": time.Now(),
	}}
	res, err := r.coll.UpdateOne(ctxWithTimeout, filter, update)
	if err != nil {
		return false, fmt.Errorf("error updating estado for reservation %s: %w", id, err)
	}
	return res.MatchedCount > 0, nil
}
