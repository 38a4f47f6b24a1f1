package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// UserUpdate is a typed partial update against a persisted User. Only non-nil
// fields are written; the _id and provider sub fields already set are never
// touched through it.
type UserUpdate struct {
	Name       *string
	FirstName  *string
	LastName   *string
	Picture    *string
	Address    *Address
	PhoneOne   *string
	PhoneTwo   *string
	PhoneThree *string
	Timezone   *string

	Strategy      *string
	UpdatedAt     *time.Time
	LastRegister  *time.Time
	FirstRegister *time.Time

	RefreshToken   *string
	LinkedAccounts *[]LinkedAccount
	Roles          *[]bson.ObjectID
	GoogleSub      *string
	FacebookSub    *string
}

// SetFields flattens the update into a document usable under $set.
func (u UserUpdate) SetFields() bson.M {
	set := bson.M{}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.FirstName != nil {
		set["firstName"] = *u.FirstName
	}
	if u.LastName != nil {
		set["lastName"] = *u.LastName
	}
	if u.Picture != nil {
		set["picture"] = *u.Picture
	}
	if u.Address != nil {
		set["address"] = *u.Address
	}
	if u.PhoneOne != nil {
		set["phone_one"] = *u.PhoneOne
	}
	if u.PhoneTwo != nil {
		set["phone_two"] = *u.PhoneTwo
	}
	if u.PhoneThree != nil {
		set["phone_three"] = *u.PhoneThree
	}
	if u.Timezone != nil {
		set["timezone"] = *u.Timezone
	}
	if u.Strategy != nil {
		set["strategy"] = *u.Strategy
	}
	if u.UpdatedAt != nil {
		set["updated_at"] = *u.UpdatedAt
	}
	if u.LastRegister != nil {
		set["last_register"] = *u.LastRegister
	}
	if u.FirstRegister != nil {
		set["first_register"] = *u.FirstRegister
	}
	if u.RefreshToken != nil {
		set["refresh_token"] = *u.RefreshToken
	}
	if u.LinkedAccounts != nil {
		set["linked_accounts"] = *u.LinkedAccounts
	}
	if u.Roles != nil {
		set["roles"] = *u.Roles
	}
	if u.GoogleSub != nil {
		set["google_sub"] = *u.GoogleSub
	}
	if u.FacebookSub != nil {
		set["facebook_sub"] = *u.FacebookSub
	}
	return set
}
