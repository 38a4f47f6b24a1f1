package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/111AHMED/touskiebackend/auth"
	"github.com/111AHMED/touskiebackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// UserStore implements auth.UserStore on the "users" collection.
type UserStore struct {
	col *mongo.Collection
}

func NewUserStore(db *DB) *UserStore {
	return &UserStore{col: db.Collection("users")}
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", auth.ErrStoreUnavailable, err)
	}
	return &user, nil
}

func (s *UserStore) Insert(ctx context.Context, user *models.User) error {
	if _, err := s.col.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("%w: %v", auth.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *UserStore) Update(ctx context.Context, email string, update models.UserUpdate) (int64, error) {
	set := update.SetFields()
	if len(set) == 0 {
		return 0, nil
	}
	res, err := s.col.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": set})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", auth.ErrStoreUnavailable, err)
	}
	return res.ModifiedCount, nil
}

func (s *UserStore) SetRefreshToken(ctx context.Context, email string, token *string) error {
	// nil writes an explicit null so the document reflects "no session"
	// instead of keeping a stale value.
	var value any
	if token != nil {
		value = *token
	}
	_, err := s.col.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"refresh_token": value}})
	if err != nil {
		return fmt.Errorf("%w: %v", auth.ErrStoreUnavailable, err)
	}
	return nil
}
