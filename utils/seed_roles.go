package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/111AHMED/touskiebackend/auth"
	"github.com/111AHMED/touskiebackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// SeedCollection is the slice of *mongo.Collection the seeders write through.
type SeedCollection interface {
	UpdateOne(ctx context.Context, filter any, update any, opts ...options.Lister[options.UpdateOneOptions]) (*mongo.UpdateResult, error)
}

// SeedRoles upserts the base role set. Safe to run on every start: existing
// roles get their permission list refreshed, nothing is duplicated.
func SeedRoles(ctx context.Context, rolesCol SeedCollection) error {
	roles := []struct {
		name        string
		permissions []string
	}{
		{"admin", []string{"manage_users", "create_post"}},
		{"vendor", []string{"create_post"}},
		{"creator", []string{"create_post"}},
		{"client", []string{}},
	}

	now := time.Now().UTC()
	for _, role := range roles {
		filter := bson.M{"name": role.name}
		update := bson.M{
			"$set": bson.M{
				"permissions": role.permissions,
				"updatedAt":   now,
			},
			"$setOnInsert": bson.M{
				"name":      role.name,
				"createdAt": now,
			},
		}
		opts := options.UpdateOne().SetUpsert(true)
		if _, err := rolesCol.UpdateOne(ctx, filter, update, opts); err != nil {
			return fmt.Errorf("seed role %s: %w", role.name, err)
		}
	}
	return nil
}

// SeedStaffUsers upserts user documents for the configured admin and creator
// emails so those accounts carry their role from the very first OAuth login.
func SeedStaffUsers(ctx context.Context, usersCol SeedCollection, roles auth.RoleStore, adminEmails, creatorEmails []string) error {
	adminRole, err := roles.FindByName(ctx, "admin")
	if err != nil {
		return fmt.Errorf("resolve admin role: %w", err)
	}
	if adminRole == nil {
		return fmt.Errorf("admin role missing, run role seeding first")
	}
	creatorRole, err := roles.FindByName(ctx, "creator")
	if err != nil {
		return fmt.Errorf("resolve creator role: %w", err)
	}
	if creatorRole == nil {
		return fmt.Errorf("creator role missing, run role seeding first")
	}

	type staff struct {
		email  string
		roleID bson.ObjectID
	}
	var users []staff
	for _, email := range adminEmails {
		if email != "" {
			users = append(users, staff{email, adminRole.ID})
		}
	}
	for _, email := range creatorEmails {
		if email != "" {
			users = append(users, staff{email, creatorRole.ID})
		}
	}

	now := time.Now().UTC()
	for _, u := range users {
		filter := bson.M{"email": u.email}
		update := bson.M{
			"$set": bson.M{
				"roles":      []bson.ObjectID{u.roleID},
				"updated_at": now,
			},
			"$setOnInsert": bson.M{
				"email":           u.email,
				"name":            nameFromEmail(u.email),
				"status":          models.StatusActive,
				"created_at":      now,
				"linked_accounts": []models.LinkedAccount{},
			},
		}
		opts := options.UpdateOne().SetUpsert(true)
		if _, err := usersCol.UpdateOne(ctx, filter, update, opts); err != nil {
			return fmt.Errorf("seed staff user %s: %w", u.email, err)
		}
	}
	return nil
}

func nameFromEmail(email string) string {
	for i, r := range email {
		if r == '@' {
			return email[:i]
		}
	}
	return email
}
