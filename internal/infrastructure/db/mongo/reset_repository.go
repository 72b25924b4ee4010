package mongo

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/travelink/booking-api/internal/core/domain"
)

const resetCollection = "password_resets"

// MongoResetTokenRepository stores at most one reset record per email. Both
// the upsert and the filtered delete are single-document operations, which
// gives the per-email atomicity the reset protocol depends on.
type MongoResetTokenRepository struct {
	coll *mongo.Collection
}

func NewResetTokenRepository(db *mongo.Database) *MongoResetTokenRepository {
	return &MongoResetTokenRepository{coll: db.Collection(resetCollection)}
}

// EnsureIndexes creates the unique email key for reset records.
func (r *MongoResetTokenRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

type mongoReset struct {
	Email     string `bson:"email"`
	TokenHash string `bson:"token_hash"`
	CreatedAt int64  `bson:"created_at"`
}

func (r *MongoResetTokenRepository) Upsert(ctx context.Context, record *domain.ResetToken) error {
	email := strings.ToLower(record.Email)
	doc := mongoReset{
		Email:     email,
		TokenHash: record.TokenHash,
		CreatedAt: record.CreatedAt.Unix(),
	}

	_, err := r.coll.ReplaceOne(ctx, bson.M{"email": email}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert reset record: %w", err)
	}
	return nil
}

func (r *MongoResetTokenRepository) Find(ctx context.Context, email string) (*domain.ResetToken, error) {
	var mr mongoReset
	if err := r.coll.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&mr); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrInvalidResetToken
		}
		return nil, fmt.Errorf("find reset record: %w", err)
	}

	return &domain.ResetToken{
		Email:     mr.Email,
		TokenHash: mr.TokenHash,
		CreatedAt: unixToTime(mr.CreatedAt),
	}, nil
}

// Delete removes the record only if it still carries tokenHash. The deleted
// count disambiguates concurrent redemptions: exactly one caller sees true.
func (r *MongoResetTokenRepository) Delete(ctx context.Context, email, tokenHash string) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{
		"email":      strings.ToLower(email),
		"token_hash": tokenHash,
	})
	if err != nil {
		return false, fmt.Errorf("delete reset record: %w", err)
	}
	return res.DeletedCount > 0, nil
}
