package providers

import (
	"context"

	"golang.org/x/oauth2"
)

const (
	Google   = "google"
	Facebook = "facebook"
)

// UserClaims is the normalized identity assertion every provider adapter
// produces. Provider-specific shapes (Facebook's nested picture, Google's
// OIDC sub) are unwrapped before this point.
type UserClaims struct {
	ProviderUserID string
	Email          string
	Name           string
	FirstName      string
	LastName       string
	Picture        string
	Timezone       string
}

// Provider is one OAuth2 identity provider. Exchange and FetchUserInfo
// surface upstream failures directly; no retries.
type Provider interface {
	Name() string
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	FetchUserInfo(ctx context.Context, token *oauth2.Token) (*UserClaims, error)
}

// Registry holds the configured providers keyed by name.
type Registry map[string]Provider

func (r Registry) Get(name string) (Provider, bool) {
	p, ok := r[name]
	return p, ok
}
