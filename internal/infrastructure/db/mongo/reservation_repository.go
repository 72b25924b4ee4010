package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/travelink/booking-api/internal/core/domain"
)

const reservationCollection = "reservations"

type MongoReservationRepository struct {
	coll *mongo.Collection
}

func NewReservationRepository(db *mongo.Database) *MongoReservationRepository {
	return &MongoReservationRepository{coll: db.Collection(reservationCollection)}
}

type mongoReservation struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	HotelID   string             `bson:"hotel_id"`
	RoomType  string             `bson:"room_type"`
	CheckIn   time.Time          `bson:"check_in"`
	CheckOut  time.Time          `bson:"check_out"`
	Status    string             `bson:"status"`
	CreatedAt int64              `bson:"created_at"`
	UpdatedAt int64              `bson:"updated_at"`
}

func (r *MongoReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	doc := mongoReservation{
		UserID:    reservation.UserID,
		HotelID:   reservation.HotelID,
		RoomType:  reservation.RoomType,
		CheckIn:   reservation.CheckIn,
		CheckOut:  reservation.CheckOut,
		Status:    string(reservation.Status),
		CreatedAt: reservation.CreatedAt.Unix(),
		UpdatedAt: reservation.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert reservation: %w", err)
	}

	created := *reservation
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoReservationRepository) FindByID(ctx context.Context, id, userID string) (*domain.Reservation, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrReservationNotFound
	}

	filter := bson.M{"_id": oid}
	if userID != "" {
		filter["user_id"] = userID
	}

	var mr mongoReservation
	if err := r.coll.FindOne(ctx, filter).Decode(&mr); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrReservationNotFound
		}
		return nil, fmt.Errorf("find reservation: %w", err)
	}
	return mr.toDomain(), nil
}

func (r *MongoReservationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Reservation, error) {
	filter := bson.M{}
	if userID != "" {
		filter["user_id"] = userID
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer cur.Close(ctx)

	reservations := make([]*domain.Reservation, 0)
	for cur.Next(ctx) {
		var mr mongoReservation
		if err := cur.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode reservation: %w", err)
		}
		reservations = append(reservations, mr.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return reservations, nil
}

func (r *MongoReservationRepository) UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrReservationNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"status":     string(status),
		"updated_at": time.Now().UTC().Unix(),
	}})
	if err != nil {
		return fmt.Errorf("update reservation status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

func (mr mongoReservation) toDomain() *domain.Reservation {
	return &domain.Reservation{
		ID:        mr.ID.Hex(),
		UserID:    mr.UserID,
		HotelID:   mr.HotelID,
		RoomType:  mr.RoomType,
		CheckIn:   mr.CheckIn,
		CheckOut:  mr.CheckOut,
		Status:    domain.ReservationStatus(mr.Status),
		CreatedAt: unixToTime(mr.CreatedAt),
		UpdatedAt: unixToTime(mr.UpdatedAt),
	}
}
