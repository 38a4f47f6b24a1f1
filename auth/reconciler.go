package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/111AHMED/touskiebackend/models"
	"github.com/111AHMED/touskiebackend/providers"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// DefaultRoleName is attached to every user created on first login.
const DefaultRoleName = "client"

// Reconciler maps a normalized provider assertion onto a local user record,
// creating or merging by email. Email is the sole merge key: a second
// provider login with a known email attaches a linked account to the
// existing user instead of creating a duplicate.
type Reconciler struct {
	users UserStore
	roles RoleStore
	codec *Codec
}

func NewReconciler(users UserStore, roles RoleStore, codec *Codec) *Reconciler {
	return &Reconciler{users: users, roles: roles, codec: codec}
}

// Reconcile finds or creates the user for the given claims. Every call
// issues and persists a fresh refresh credential for the resolved user; a
// provider login is never read-only. The returned user carries the
// credential that was just persisted.
func (r *Reconciler) Reconcile(ctx context.Context, provider string, claims providers.UserClaims) (*models.User, error) {
	user, err := r.users.FindByEmail(ctx, claims.Email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user != nil {
		return r.merge(ctx, user, provider, claims)
	}
	return r.create(ctx, provider, claims)
}

func (r *Reconciler) merge(ctx context.Context, user *models.User, provider string, claims providers.UserClaims) (*models.User, error) {
	refreshToken, err := r.codec.IssueRefresh(user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	now := time.Now().UTC()
	update := models.UserUpdate{
		RefreshToken: &refreshToken,
		Strategy:     &provider,
		UpdatedAt:    &now,
		LastRegister: &now,
	}
	user.RefreshToken = &refreshToken
	user.Strategy = provider
	user.UpdatedAt = now
	user.LastRegister = now

	if claims.Picture != "" {
		picture := claims.Picture
		update.Picture = &picture
		user.Picture = &picture
	}

	// first_register should already be set; backfill for documents that
	// predate the field.
	if user.FirstRegister.IsZero() {
		update.FirstRegister = &now
		user.FirstRegister = now
	}
	if user.Roles == nil {
		roles := []bson.ObjectID{}
		update.Roles = &roles
		user.Roles = roles
	}

	sub := claims.ProviderUserID
	switch provider {
	case providers.Google:
		if user.GoogleSub == nil {
			update.GoogleSub = &sub
			user.GoogleSub = &sub
		}
	case providers.Facebook:
		if user.FacebookSub == nil {
			update.FacebookSub = &sub
			user.FacebookSub = &sub
		}
	}

	if !user.HasLinkedAccount(provider, sub) {
		accounts := append(user.LinkedAccounts, models.LinkedAccount{Provider: provider, AccountID: sub})
		update.LinkedAccounts = &accounts
		user.LinkedAccounts = accounts
	}

	if _, err := r.users.Update(ctx, user.Email, update); err != nil {
		return nil, fmt.Errorf("merge user: %w", err)
	}
	return user, nil
}

func (r *Reconciler) create(ctx context.Context, provider string, claims providers.UserClaims) (*models.User, error) {
	roles := []bson.ObjectID{}
	clientRole, err := r.roles.FindByName(ctx, DefaultRoleName)
	if err != nil {
		return nil, fmt.Errorf("resolve default role: %w", err)
	}
	if clientRole != nil {
		roles = append(roles, clientRole.ID)
	}

	refreshToken, err := r.codec.IssueRefresh(claims.Email)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:             bson.NewObjectID(),
		Email:          claims.Email,
		Name:           claims.Name,
		Status:         models.StatusActive,
		RefreshToken:   &refreshToken,
		Strategy:       provider,
		CreatedAt:      now,
		UpdatedAt:      now,
		FirstRegister:  now,
		LastRegister:   now,
		LinkedAccounts: []models.LinkedAccount{{Provider: provider, AccountID: claims.ProviderUserID}},
		Roles:          roles,
	}
	if claims.FirstName != "" {
		firstName := claims.FirstName
		user.FirstName = &firstName
	}
	if claims.LastName != "" {
		lastName := claims.LastName
		user.LastName = &lastName
	}
	if claims.Picture != "" {
		picture := claims.Picture
		user.Picture = &picture
	}
	if claims.Timezone != "" {
		timezone := claims.Timezone
		user.Timezone = &timezone
	}

	sub := claims.ProviderUserID
	switch provider {
	case providers.Google:
		user.GoogleSub = &sub
	case providers.Facebook:
		user.FacebookSub = &sub
	}

	if err := r.users.Insert(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}
