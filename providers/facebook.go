package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
)

const facebookUserInfoURL = "https://graph.facebook.com/me?fields=id,name,email,first_name,last_name,picture"

type FacebookProvider struct {
	cfg *oauth2.Config
}

func NewFacebookProvider(clientID, clientSecret, redirectURL string) *FacebookProvider {
	return &FacebookProvider{cfg: &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{"email"},
		Endpoint:     facebook.Endpoint,
	}}
}

func (p *FacebookProvider) Name() string { return Facebook }

func (p *FacebookProvider) AuthCodeURL(state string) string {
	return p.cfg.AuthCodeURL(state)
}

func (p *FacebookProvider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return p.cfg.Exchange(ctx, code)
}

// facebookUserInfo mirrors the Graph API "me" response. The picture URL is
// nested under picture.data.url and is flattened here so the reconciler only
// ever sees a plain URL.
type facebookUserInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Picture   struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	} `json:"picture"`
}

func (p *FacebookProvider) FetchUserInfo(ctx context.Context, token *oauth2.Token) (*UserClaims, error) {
	client := p.cfg.Client(ctx, token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, facebookUserInfoURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo status: %d", resp.StatusCode)
	}
	return decodeFacebookClaims(resp.Body)
}

func decodeFacebookClaims(r io.Reader) (*UserClaims, error) {
	var body facebookUserInfo
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return nil, err
	}
	if body.ID == "" || body.Email == "" {
		return nil, fmt.Errorf("missing required userinfo fields")
	}

	return &UserClaims{
		ProviderUserID: body.ID,
		Email:          strings.ToLower(body.Email),
		Name:           body.Name,
		FirstName:      body.FirstName,
		LastName:       body.LastName,
		Picture:        body.Picture.Data.URL,
	}, nil
}
