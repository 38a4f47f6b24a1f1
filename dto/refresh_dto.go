package dto

// RefreshTokenDTO carries the refresh credential for the body-based flow.
type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}
