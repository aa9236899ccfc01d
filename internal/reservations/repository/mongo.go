package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	reserrors "woki/internal/reservations/errors"
	"woki/pkg/config"
	"woki/pkg/model"
)

const (
	restaurantsCollection  = "Restaurants"
	sectorsCollection      = "Sectors"
	tablesCollection       = "Tables"
	reservationsCollection = "Reservations"
)

type mongoRepository struct {
	cfg          *config.Config
	db           *mongo.Database
	restaurants  *mongo.Collection
	sectors      *mongo.Collection
	tables       *mongo.Collection
	reservations *mongo.Collection
}

func NewMongoRepository(cfg *config.Config) Repository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRepository{
		cfg:          cfg,
		db:           db,
		restaurants:  db.Collection(restaurantsCollection),
		sectors:      db.Collection(sectorsCollection),
		tables:       db.Collection(tablesCollection),
		reservations: db.Collection(reservationsCollection),
	}
}

// withTimeout bounds the storage call unless the caller already carries a
// tighter deadline.
func (r *mongoRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoRepository) GetRestaurant(ctx context.Context, id string) (*model.Restaurant, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var restaurant model.Restaurant
	err := r.restaurants.FindOne(ctx, bson.M{"_id": id}).Decode(&restaurant)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, reserrors.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("failed to find restaurant: %w", err)
	}
	return &restaurant, nil
}

func (r *mongoRepository) GetSector(ctx context.Context, id string) (*model.Sector, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var sector model.Sector
	err := r.sectors.FindOne(ctx, bson.M{"_id": id}).Decode(&sector)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, reserrors.ErrSectorNotFound
		}
		return nil, fmt.Errorf("failed to find sector: %w", err)
	}
	return &sector, nil
}

func (r *mongoRepository) GetTablesBySector(ctx context.Context, sectorID string) ([]*model.Table, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.tables.Find(ctx, bson.M{"sector_id": sectorID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find tables: %w", err)
	}
	defer cursor.Close(ctx)

	var tables []*model.Table
	if err = cursor.All(ctx, &tables); err != nil {
		return nil, fmt.Errorf("failed to decode tables: %w", err)
	}
	return tables, nil
}

// intervalFilter matches reservations whose [start, end) interval intersects
// the query window under half-open semantics.
func intervalFilter(sectorID string, start, end time.Time) bson.M {
	return bson.M{
		"sector_id":       sectorID,
		"start_date_time": bson.M{"$lt": end},
		"end_date_time":   bson.M{"$gt": start},
	}
}

func (r *mongoRepository) GetConfirmedReservationsBetween(ctx context.Context, sectorID string, start, end time.Time) ([]*model.Reservation, error) {
	filter := intervalFilter(sectorID, start, end)
	filter["status"] = model.StatusConfirmed
	return r.findReservations(ctx, filter)
}

func (r *mongoRepository) GetReservationsBySectorBetween(ctx context.Context, sectorID string, start, end time.Time) ([]*model.Reservation, error) {
	return r.findReservations(ctx, intervalFilter(sectorID, start, end))
}

func (r *mongoRepository) ListReservationsForDay(ctx context.Context, restaurantID string, dayStart, dayEnd time.Time, sectorID string) ([]*model.Reservation, error) {
	filter := bson.M{
		"restaurant_id":   restaurantID,
		"start_date_time": bson.M{"$gte": dayStart, "$lt": dayEnd},
	}
	if sectorID != "" {
		filter["sector_id"] = sectorID
	}
	return r.findReservations(ctx, filter)
}

func (r *mongoRepository) findReservations(ctx context.Context, filter bson.M) ([]*model.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start_date_time", Value: 1}})
	cursor, err := r.reservations.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []*model.Reservation
	if err = cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}
	return reservations, nil
}

func (r *mongoRepository) GetReservation(ctx context.Context, id string) (*model.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var reservation model.Reservation
	err := r.reservations.FindOne(ctx, bson.M{"_id": id}).Decode(&reservation)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, reserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reservation: %w", err)
	}
	return &reservation, nil
}

func (r *mongoRepository) CreateReservation(ctx context.Context, reservation *model.Reservation) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.reservations.InsertOne(ctx, reservation); err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	return nil
}

func (r *mongoRepository) CancelReservation(ctx context.Context, id string, updatedAt time.Time) (*model.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":     model.StatusCancelled,
		"updated_at": updatedAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var reservation model.Reservation
	err := r.reservations.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&reservation)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, reserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to cancel reservation: %w", err)
	}
	return &reservation, nil
}
