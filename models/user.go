package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type UserStatus string

const (
	StatusActive    UserStatus = "active"
	StatusSuspended UserStatus = "suspended"
)

// LinkedAccount records one external provider identity attached to a user.
// A (provider, accountId) pair appears at most once per user.
type LinkedAccount struct {
	Provider  string `bson:"provider" json:"provider"`
	AccountID string `bson:"accountId" json:"accountId"`
}

type Address struct {
	Gouvernorat string `bson:"gouvernorat,omitempty" json:"gouvernorat,omitempty"`
	Delegation  string `bson:"delegation,omitempty" json:"delegation,omitempty"`
	Street      string `bson:"street,omitempty" json:"street,omitempty"`
	PostalCode  string `bson:"postal_code,omitempty" json:"postal_code,omitempty"`
}

type User struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email     string        `bson:"email" json:"email"`
	Name      string        `bson:"name" json:"name"`
	FirstName *string       `bson:"firstName,omitempty" json:"firstName,omitempty"`
	LastName  *string       `bson:"lastName,omitempty" json:"lastName,omitempty"`
	Picture   *string       `bson:"picture,omitempty" json:"picture,omitempty"`
	Status    UserStatus    `bson:"status" json:"status"`

	// RefreshToken is the user's single active refresh credential.
	// nil means no active session. Never exposed in responses.
	RefreshToken *string `bson:"refresh_token,omitempty" json:"-"`

	// Strategy is the provider used for the most recent login.
	Strategy string `bson:"strategy" json:"strategy"`

	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
	FirstRegister time.Time `bson:"first_register" json:"first_register"`
	LastRegister  time.Time `bson:"last_register" json:"last_register"`

	LinkedAccounts []LinkedAccount `bson:"linked_accounts" json:"linked_accounts"`
	Roles          []bson.ObjectID `bson:"roles" json:"roles"`

	Address    *Address       `bson:"address,omitempty" json:"address,omitempty"`
	PhoneOne   *string        `bson:"phone_one,omitempty" json:"phone_one,omitempty"`
	PhoneTwo   *string        `bson:"phone_two,omitempty" json:"phone_two,omitempty"`
	PhoneThree *string        `bson:"phone_three,omitempty" json:"phone_three,omitempty"`
	Verified   bool           `bson:"verified" json:"verified"`
	Timezone   *string        `bson:"timezone,omitempty" json:"timezone,omitempty"`
	HasStore   bool           `bson:"hasStore" json:"hasStore"`
	StoreID    *bson.ObjectID `bson:"storeId,omitempty" json:"storeId,omitempty"`

	// Provider-native subject ids. Written once on first login with that
	// provider, never rewritten afterwards.
	GoogleSub   *string `bson:"google_sub,omitempty" json:"-"`
	FacebookSub *string `bson:"facebook_sub,omitempty" json:"-"`
}

// HasLinkedAccount reports whether the (provider, accountId) pair is already
// recorded for the user.
func (u *User) HasLinkedAccount(provider, accountID string) bool {
	for _, a := range u.LinkedAccounts {
		if a.Provider == provider && a.AccountID == accountID {
			return true
		}
	}
	return false
}
