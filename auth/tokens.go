package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carried by both credential classes. Subject is the user's email.
type Claims struct {
	jwt.RegisteredClaims
}

// Codec issues and verifies the two credential classes. Access and refresh
// tokens use independent secrets and independently configured signing methods,
// so a token of one class never validates against the other class's verifier.
type Codec struct {
	accessSecret  []byte
	accessMethod  jwt.SigningMethod
	refreshSecret []byte
	refreshMethod jwt.SigningMethod
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewCodec(accessSecret, accessAlg, refreshSecret, refreshAlg string, accessTTL, refreshTTL time.Duration) (*Codec, error) {
	am := jwt.GetSigningMethod(accessAlg)
	if am == nil {
		return nil, fmt.Errorf("unknown access signing method %q", accessAlg)
	}
	rm := jwt.GetSigningMethod(refreshAlg)
	if rm == nil {
		return nil, fmt.Errorf("unknown refresh signing method %q", refreshAlg)
	}
	// With identical secret and method the two classes would validate
	// against each other's verifier.
	if accessSecret == refreshSecret && accessAlg == refreshAlg {
		return nil, fmt.Errorf("access and refresh tokens must not share both secret and signing method")
	}
	return &Codec{
		accessSecret:  []byte(accessSecret),
		accessMethod:  am,
		refreshSecret: []byte(refreshSecret),
		refreshMethod: rm,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

func (c *Codec) AccessTTL() time.Duration  { return c.accessTTL }
func (c *Codec) RefreshTTL() time.Duration { return c.refreshTTL }

// IssueAccess signs a short-lived access token for the given subject email.
// Access tokens are never persisted.
func (c *Codec) IssueAccess(email string) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(c.accessTTL)),
		},
	}
	token := jwt.NewWithClaims(c.accessMethod, claims)
	return token.SignedString(c.accessSecret)
}

// IssueRefresh signs a refresh token for the given subject email. The caller
// is responsible for persisting it as the user's current refresh credential.
// The jti claim makes successive issues distinct even within the clock's
// second resolution; rotation must always produce a new value.
func (c *Codec) IssueRefresh(email string) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(c.refreshTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ID:        uuid.New().String(),
		},
	}
	token := jwt.NewWithClaims(c.refreshMethod, claims)
	return token.SignedString(c.refreshSecret)
}

func (c *Codec) DecodeAccess(tokenStr string) (*Claims, error) {
	return decode(tokenStr, c.accessSecret, c.accessMethod)
}

func (c *Codec) DecodeRefresh(tokenStr string) (*Claims, error) {
	return decode(tokenStr, c.refreshSecret, c.refreshMethod)
}

func decode(tokenStr string, secret []byte, method jwt.SigningMethod) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{method.Alg()}))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return nil, ErrInvalidCredential
	}
	return claims, nil
}
