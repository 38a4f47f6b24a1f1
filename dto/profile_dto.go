package dto

import "github.com/111AHMED/touskiebackend/models"

// UpdateProfileDTO carries the updatable profile fields; all optional.
type UpdateProfileDTO struct {
	FirstName  *string         `json:"firstName"`
	LastName   *string         `json:"lastName"`
	PhoneOne   *string         `json:"phone_one"`
	PhoneTwo   *string         `json:"phone_two"`
	PhoneThree *string         `json:"phone_three"`
	Address    *models.Address `json:"address"`
	Timezone   *string         `json:"timezone"`
}

func (d UpdateProfileDTO) ToUserUpdate() models.UserUpdate {
	return models.UserUpdate{
		FirstName:  d.FirstName,
		LastName:   d.LastName,
		PhoneOne:   d.PhoneOne,
		PhoneTwo:   d.PhoneTwo,
		PhoneThree: d.PhoneThree,
		Address:    d.Address,
		Timezone:   d.Timezone,
	}
}
