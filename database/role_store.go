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

// RoleStore implements auth.RoleStore on the "roles" collection.
type RoleStore struct {
	col *mongo.Collection
}

func NewRoleStore(db *DB) *RoleStore {
	return &RoleStore{col: db.Collection("roles")}
}

func (s *RoleStore) FindByName(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	err := s.col.FindOne(ctx, bson.M{"name": name}).Decode(&role)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", auth.ErrStoreUnavailable, err)
	}
	return &role, nil
}

func (s *RoleStore) FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]models.Role, error) {
	if len(ids) == 0 {
		return []models.Role{}, nil
	}
	cursor, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", auth.ErrStoreUnavailable, err)
	}
	var roles []models.Role
	if err := cursor.All(ctx, &roles); err != nil {
		return nil, fmt.Errorf("%w: %v", auth.ErrStoreUnavailable, err)
	}
	return roles, nil
}
