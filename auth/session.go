package auth

import (
	"context"
	"fmt"

	"github.com/111AHMED/touskiebackend/models"
	"github.com/111AHMED/touskiebackend/providers"
)

// SessionPair is the result of a login or a refresh. The refresh token is the
// one persisted as the user's current credential at the time of the call.
type SessionPair struct {
	AccessToken  string
	RefreshToken string
	User         *models.User
}

// SessionManager orchestrates the session lifecycle. Per user there is at
// most one active refresh credential: NoSession -> Active on Login, Active ->
// Active with a new value on Refresh, Active -> NoSession on Logout. Refresh
// and Logout both require presenting the exact stored value.
type SessionManager struct {
	reconciler *Reconciler
	users      UserStore
	codec      *Codec
}

func NewSessionManager(reconciler *Reconciler, users UserStore, codec *Codec) *SessionManager {
	return &SessionManager{reconciler: reconciler, users: users, codec: codec}
}

// Login reconciles the provider claims and issues an access token for the
// resolved user. The returned refresh token is the one the reconciler just
// persisted.
func (s *SessionManager) Login(ctx context.Context, provider string, claims providers.UserClaims) (*SessionPair, error) {
	user, err := s.reconciler.Reconcile(ctx, provider, claims)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.codec.IssueAccess(user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	return &SessionPair{
		AccessToken:  accessToken,
		RefreshToken: *user.RefreshToken,
		User:         user,
	}, nil
}

// Refresh validates the presented refresh credential against the stored one
// and rotates the pair. The previous credential becomes unusable the moment
// the new one is persisted; there is no separate blacklist.
func (s *SessionManager) Refresh(ctx context.Context, presented string) (*SessionPair, error) {
	user, err := s.validate(ctx, presented)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.codec.IssueAccess(user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refreshToken, err := s.codec.IssueRefresh(user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	if err := s.users.SetRefreshToken(ctx, user.Email, &refreshToken); err != nil {
		return nil, fmt.Errorf("rotate refresh token: %w", err)
	}
	user.RefreshToken = &refreshToken

	return &SessionPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// Logout clears the user's stored refresh credential. A presented credential
// that no longer matches the stored value fails with ErrRevokedCredential;
// logout on a stale token is an error, not a no-op.
func (s *SessionManager) Logout(ctx context.Context, presented string) error {
	user, err := s.validate(ctx, presented)
	if err != nil {
		return err
	}
	if err := s.users.SetRefreshToken(ctx, user.Email, nil); err != nil {
		return fmt.Errorf("clear refresh token: %w", err)
	}
	return nil
}

// CurrentUser resolves the subject of an access token to a user record.
func (s *SessionManager) CurrentUser(ctx context.Context, accessToken string) (*models.User, error) {
	if accessToken == "" {
		return nil, ErrMissingCredential
	}
	claims, err := s.codec.DecodeAccess(accessToken)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *SessionManager) validate(ctx context.Context, presented string) (*models.User, error) {
	if presented == "" {
		return nil, ErrMissingCredential
	}
	claims, err := s.codec.DecodeRefresh(presented)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	// The stored value is both the authorization check and the revocation
	// mechanism: only an exact match passes.
	if user.RefreshToken == nil || *user.RefreshToken != presented {
		return nil, ErrRevokedCredential
	}
	return user, nil
}
