package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/uwgen/media-api/internal/core/domain"
)

const userCollection = "users"

type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(userCollection)}
}

// EnsureIndexes creates the unique email index. Email uniqueness is enforced
// here, not in application code.
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

type mongoUser struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty"`
	Email                 string             `bson:"email"`
	PasswordHash          string             `bson:"password_hash"`
	IsActive              bool               `bson:"is_active"`
	CreatedAt             time.Time          `bson:"created_at"`
	UpdatedAt             time.Time          `bson:"updated_at"`
	LastLoginAt           time.Time          `bson:"last_login_at,omitempty"`
	GeminiAPIKeyEncrypted string             `bson:"gemini_api_key_encrypted,omitempty"`
	GeminiAPIKeyUpdatedAt time.Time          `bson:"gemini_api_key_updated_at,omitempty"`
	UwgenAPIKeyEncrypted  string             `bson:"uwgen_api_key_encrypted,omitempty"`
	UwgenAPIKeyUpdatedAt  time.Time          `bson:"uwgen_api_key_updated_at,omitempty"`
}

func toDomain(mu *mongoUser) *domain.User {
	return &domain.User{
		ID:                    mu.ID.Hex(),
		Email:                 mu.Email,
		PasswordHash:          mu.PasswordHash,
		IsActive:              mu.IsActive,
		CreatedAt:             mu.CreatedAt.UTC(),
		UpdatedAt:             mu.UpdatedAt.UTC(),
		LastLoginAt:           mu.LastLoginAt.UTC(),
		GeminiAPIKeyEncrypted: mu.GeminiAPIKeyEncrypted,
		GeminiAPIKeyUpdatedAt: mu.GeminiAPIKeyUpdatedAt.UTC(),
		UwgenAPIKeyEncrypted:  mu.UwgenAPIKeyEncrypted,
		UwgenAPIKeyUpdatedAt:  mu.UwgenAPIKeyUpdatedAt.UTC(),
	}
}

func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := mongoUser{
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		IsActive:     user.IsActive,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return toDomain(&mu), nil
}

// UpdateFields applies every entry in one $set document. MongoDB applies a
// single-document update atomically, so a settings update can never persist
// half-written.
func (r *MongoUserRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	set := bson.M{}
	for name, value := range fields {
		set[name] = value
	}
	set["updated_at"] = time.Now().UTC()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
