package auth

import (
	"context"

	"github.com/111AHMED/touskiebackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// UserStore is the persistence port for user documents. Implementations
// return (nil, nil) from FindByEmail when no document matches and wrap
// infrastructure failures in ErrStoreUnavailable.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) error
	Update(ctx context.Context, email string, update models.UserUpdate) (int64, error)

	// SetRefreshToken overwrites the user's current refresh credential.
	// nil clears it, which ends the session.
	SetRefreshToken(ctx context.Context, email string, token *string) error
}

// RoleStore resolves role references. FindByName returns (nil, nil) when the
// role does not exist.
type RoleStore interface {
	FindByName(ctx context.Context, name string) (*models.Role, error)
	FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]models.Role, error)
}
