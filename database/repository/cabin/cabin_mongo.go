package cabinRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cabanero/config"
	"cabanero/database"
	"cabanero/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoCabinRepo implements CabinRepository using MongoDB.
type MongoCabinRepo struct {
	coll *mongo.Collection
}

// NewMongoCabinRepo creates a new instance of CabinRepository using MongoDB.
func NewMongoCabinRepo() CabinRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("cabanas")
	repo := &MongoCabinRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create cabin indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// GetByID retrieves a cabaña by its unique ID.
func (r *MongoCabinRepo) GetByID(ctx context.Context, id string) (*models.Cabin, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var cabin models.Cabin
	if err := r.coll.FindOne(ctxWithTimeout, bson.M{"id": id}).Decode(&cabin); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching cabin with id %s: %w", id, err)
	}
	return &cabin, nil
}

// List returns all cabañas in the registry.
func (r *MongoCabinRepo) List(ctx context.Context) ([]models.Cabin, error) {
	return r.find(ctx, bson.M{})
}

// ListByTeam returns the cabañas owned by a team.
func (r *MongoCabinRepo) ListByTeam(ctx context.Context, teamID string) ([]models.Cabin, error) {
	return r.find(ctx, bson.M{"team_id": teamID})
}

func (r *MongoCabinRepo) find(ctx context.Context, filter bson.M) ([]models.Cabin, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctxWithTimeout, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing cabins: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var cabins []models.Cabin
	if err := cursor.All(ctxWithTimeout, &cabins); err != nil {
		return nil, fmt.Errorf("error decoding cabins: %w", err)
	}
	return cabins, nil
}
