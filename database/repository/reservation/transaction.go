package reservationRepo

import (
	"context"
	"errors"
	"fmt"

	"cabanero/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// CreateIfAvailable inserts a reservation only if no conflicting
// pendiente/confirmada reservation exists for the same cabaña and an
// overlapping interval. The count and the insert run in a single MongoDB
// transaction, so two concurrent creates for overlapping intervals serialize:
// exactly one commits and the other returns ErrOverlap with no write.
func (r *MongoReservationRepo) CreateIfAvailable(ctx context.Context, res *models.Reservation) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		n, err := r.coll.CountDocuments(sc, overlapFilter(res.CabanaID, res.FechaInicio, res.FechaFin))
		if err != nil {
			return fmt.Errorf("overlap re-check failed: %w", err)
		}
		if n > 0 {
			return ErrOverlap
		}
		if _, err := r.coll.InsertOne(sc, res); err != nil {
			return fmt.Errorf("insert reservation failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if errors.Is(err, ErrOverlap) {
			return ErrOverlap
		}
		return fmt.Errorf("reservation transaction failed: %w", err)
	}

	return nil
}
