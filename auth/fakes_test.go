package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/111AHMED/touskiebackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// memUserStore is an in-memory UserStore keyed by email. Reads hand out
// copies so callers mutating the result do not bypass Update, mirroring how
// a decoded Mongo document behaves.
type memUserStore struct {
	users   map[string]*models.User
	failing bool
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[string]*models.User{}}
}

func (s *memUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if s.failing {
		return nil, fmt.Errorf("%w: connection refused", ErrStoreUnavailable)
	}
	user, ok := s.users[email]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (s *memUserStore) Insert(_ context.Context, user *models.User) error {
	if s.failing {
		return fmt.Errorf("%w: connection refused", ErrStoreUnavailable)
	}
	clone := *user
	s.users[user.Email] = &clone
	return nil
}

func (s *memUserStore) Update(_ context.Context, email string, update models.UserUpdate) (int64, error) {
	if s.failing {
		return 0, fmt.Errorf("%w: connection refused", ErrStoreUnavailable)
	}
	user, ok := s.users[email]
	if !ok {
		return 0, nil
	}
	applyUpdate(user, update)
	return 1, nil
}

func (s *memUserStore) SetRefreshToken(_ context.Context, email string, token *string) error {
	if s.failing {
		return fmt.Errorf("%w: connection refused", ErrStoreUnavailable)
	}
	user, ok := s.users[email]
	if !ok {
		return nil
	}
	if token == nil {
		user.RefreshToken = nil
		return nil
	}
	value := *token
	user.RefreshToken = &value
	return nil
}

func applyUpdate(user *models.User, update models.UserUpdate) {
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.FirstName != nil {
		user.FirstName = update.FirstName
	}
	if update.LastName != nil {
		user.LastName = update.LastName
	}
	if update.Picture != nil {
		user.Picture = update.Picture
	}
	if update.Address != nil {
		user.Address = update.Address
	}
	if update.PhoneOne != nil {
		user.PhoneOne = update.PhoneOne
	}
	if update.PhoneTwo != nil {
		user.PhoneTwo = update.PhoneTwo
	}
	if update.PhoneThree != nil {
		user.PhoneThree = update.PhoneThree
	}
	if update.Timezone != nil {
		user.Timezone = update.Timezone
	}
	if update.Strategy != nil {
		user.Strategy = *update.Strategy
	}
	if update.UpdatedAt != nil {
		user.UpdatedAt = *update.UpdatedAt
	}
	if update.LastRegister != nil {
		user.LastRegister = *update.LastRegister
	}
	if update.FirstRegister != nil {
		user.FirstRegister = *update.FirstRegister
	}
	if update.RefreshToken != nil {
		user.RefreshToken = update.RefreshToken
	}
	if update.LinkedAccounts != nil {
		user.LinkedAccounts = *update.LinkedAccounts
	}
	if update.Roles != nil {
		user.Roles = *update.Roles
	}
	if update.GoogleSub != nil {
		user.GoogleSub = update.GoogleSub
	}
	if update.FacebookSub != nil {
		user.FacebookSub = update.FacebookSub
	}
}

type memRoleStore struct {
	roles []models.Role
}

func (s *memRoleStore) FindByName(_ context.Context, name string) (*models.Role, error) {
	for _, role := range s.roles {
		if role.Name == name {
			clone := role
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *memRoleStore) FindByIDs(_ context.Context, ids []bson.ObjectID) ([]models.Role, error) {
	var out []models.Role
	for _, role := range s.roles {
		for _, id := range ids {
			if role.ID == id {
				out = append(out, role)
			}
		}
	}
	return out, nil
}

func testCodec() *Codec {
	codec, err := NewCodec("access-secret", "HS256", "refresh-secret", "HS384", 15*time.Minute, 7*24*time.Hour)
	if err != nil {
		panic(err)
	}
	return codec
}
