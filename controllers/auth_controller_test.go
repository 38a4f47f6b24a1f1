package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/111AHMED/touskiebackend/auth"
	"github.com/111AHMED/touskiebackend/config"
	"github.com/111AHMED/touskiebackend/models"
	"github.com/111AHMED/touskiebackend/providers"
	"github.com/111AHMED/touskiebackend/utils"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type fakeUserStore struct {
	users map[string]*models.User
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := s.users[email]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (s *fakeUserStore) Insert(_ context.Context, user *models.User) error {
	clone := *user
	s.users[user.Email] = &clone
	return nil
}

func (s *fakeUserStore) Update(_ context.Context, email string, update models.UserUpdate) (int64, error) {
	user, ok := s.users[email]
	if !ok {
		return 0, nil
	}
	if update.RefreshToken != nil {
		token := *update.RefreshToken
		user.RefreshToken = &token
	}
	if update.Picture != nil {
		user.Picture = update.Picture
	}
	if update.FirstName != nil {
		user.FirstName = update.FirstName
	}
	if update.Timezone != nil {
		user.Timezone = update.Timezone
	}
	if update.UpdatedAt != nil {
		user.UpdatedAt = *update.UpdatedAt
	}
	return 1, nil
}

func (s *fakeUserStore) SetRefreshToken(_ context.Context, email string, token *string) error {
	user, ok := s.users[email]
	if !ok {
		return nil
	}
	if token == nil {
		user.RefreshToken = nil
		return nil
	}
	value := *token
	user.RefreshToken = &value
	return nil
}

type fakeRoleStore struct {
	roles []models.Role
}

func (s *fakeRoleStore) FindByName(_ context.Context, name string) (*models.Role, error) {
	for _, role := range s.roles {
		if role.Name == name {
			clone := role
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *fakeRoleStore) FindByIDs(_ context.Context, ids []bson.ObjectID) ([]models.Role, error) {
	var out []models.Role
	for _, role := range s.roles {
		for _, id := range ids {
			if role.ID == id {
				out = append(out, role)
			}
		}
	}
	return out, nil
}

type testEnv struct {
	router *gin.Engine
	users  *fakeUserStore
	codec  *auth.Codec
	cfg    *config.Config
	roleID bson.ObjectID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	codec, err := auth.NewCodec("access-secret", "HS256", "refresh-secret", "HS384", 15*time.Minute, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}

	users := &fakeUserStore{users: map[string]*models.User{}}
	roleID := bson.NewObjectID()
	roles := &fakeRoleStore{roles: []models.Role{{ID: roleID, Name: "client", Permissions: []string{}}}}

	cfg := &config.Config{
		Env:                   "development",
		FrontendCallbackURI:   "https://front.example.com/auth/callback",
		AccessTokenTTLMinutes: 15,
		RefreshTokenTTLDays:   7,
	}

	reconciler := auth.NewReconciler(users, roles, codec)
	sessions := auth.NewSessionManager(reconciler, users, codec)

	reg := providers.Registry{
		providers.Google: providers.NewGoogleProvider("id", "secret", "https://api.example.com/callback/google"),
	}

	r := gin.New()
	web := r.Group("/api/v1/auth")
	web.GET("/login/:provider", Login(reg, cfg))
	web.GET("/callback/:provider", Callback(sessions, reg, roles, cfg))
	web.POST("/refresh", Refresh(sessions, roles, cfg))
	web.POST("/logout", Logout(sessions, cfg))
	web.GET("/session", Session(sessions, roles))
	mobile := r.Group("/api/v1/auth/mobile")
	mobile.POST("/refresh", MobileRefresh(sessions))
	mobile.POST("/logout", MobileLogout(sessions))

	return &testEnv{router: r, users: users, codec: codec, cfg: cfg, roleID: roleID}
}

// seedSession inserts an active user whose stored refresh credential was
// issued by the test codec, and returns the credential.
func (e *testEnv) seedSession(t *testing.T, email string) string {
	t.Helper()
	refresh, err := e.codec.IssueRefresh(email)
	if err != nil {
		t.Fatalf("issue refresh: %v", err)
	}
	now := time.Now().UTC()
	e.users.users[email] = &models.User{
		ID:             bson.NewObjectID(),
		Email:          email,
		Name:           "A",
		Status:         models.StatusActive,
		RefreshToken:   &refresh,
		Strategy:       providers.Google,
		CreatedAt:      now,
		UpdatedAt:      now,
		FirstRegister:  now,
		LastRegister:   now,
		LinkedAccounts: []models.LinkedAccount{{Provider: "google", AccountID: "g1"}},
		Roles:          []bson.ObjectID{e.roleID},
	}
	return refresh
}

func responseCookie(resp *http.Response, name string) *http.Cookie {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestLoginRedirectsToProvider(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/login/google", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	location := w.Header().Get("Location")
	if !strings.Contains(location, "accounts.google.com") {
		t.Fatalf("unexpected redirect target %q", location)
	}
	if !strings.Contains(location, "state=") {
		t.Fatalf("frontend redirect must ride in state, got %q", location)
	}
}

func TestLoginUnknownProvider(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/login/github", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestCallbackWithoutCodeRedirectsWithError(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/callback/google", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	location := w.Header().Get("Location")
	if location != env.cfg.FrontendCallbackURI+"?error=auth_failed" {
		t.Fatalf("unexpected error redirect %q", location)
	}
	if len(w.Result().Cookies()) != 0 {
		t.Fatal("a failed callback must not attach credentials")
	}
}

func TestRefreshEndpointRotatesCookies(t *testing.T) {
	env := newTestEnv(t)
	refresh := env.seedSession(t, "a@x.com")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: utils.RefreshCookieName, Value: refresh})
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	newRefresh := responseCookie(w.Result(), utils.RefreshCookieName)
	if newRefresh == nil || newRefresh.Value == "" {
		t.Fatal("refresh cookie not re-set")
	}
	if newRefresh.Value == refresh {
		t.Fatal("refresh must rotate the cookie value")
	}
	if !newRefresh.HttpOnly {
		t.Fatal("refresh cookie must be HttpOnly")
	}
	if accessCookie := responseCookie(w.Result(), utils.AccessCookieName); accessCookie == nil {
		t.Fatal("access cookie not set")
	}

	var body struct {
		AccessToken string         `json:"access_token"`
		TokenType   string         `json:"token_type"`
		User        map[string]any `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.AccessToken == "" || body.TokenType != "bearer" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	if _, ok := body.User["refresh_token"]; ok {
		t.Fatal("refresh credential leaked into the user payload")
	}

	// the rotated-away cookie is dead
	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: utils.RefreshCookieName, Value: refresh})
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("stale cookie must fail with 401, got %d", w.Code)
	}
}

func TestRefreshEndpointMissingCookie(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestLogoutEndpointClearsSession(t *testing.T) {
	env := newTestEnv(t)
	refresh := env.seedSession(t, "a@x.com")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: utils.RefreshCookieName, Value: refresh})
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if env.users.users["a@x.com"].RefreshToken != nil {
		t.Fatal("logout must clear the stored refresh credential")
	}
	cleared := responseCookie(w.Result(), utils.RefreshCookieName)
	if cleared == nil || cleared.Value != "" || cleared.MaxAge >= 0 {
		t.Fatalf("refresh cookie not cleared: %+v", cleared)
	}
}

func TestLogoutEndpointStaleCookie(t *testing.T) {
	env := newTestEnv(t)
	env.seedSession(t, "a@x.com")

	stale, err := env.codec.IssueRefresh("a@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: utils.RefreshCookieName, Value: stale})
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("logout with a non-matching token must fail, got %d", w.Code)
	}
	// cookies are still cleared client-side
	if cleared := responseCookie(w.Result(), utils.RefreshCookieName); cleared == nil || cleared.Value != "" {
		t.Fatal("cookies must be cleared even on failed logout")
	}
}

func TestSessionEndpointExpandsRoles(t *testing.T) {
	env := newTestEnv(t)
	env.seedSession(t, "a@x.com")

	access, err := env.codec.IssueAccess("a@x.com")
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/session", nil)
	req.AddCookie(&http.Cookie{Name: utils.AccessCookieName, Value: access})
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		User struct {
			Email string `json:"email"`
			Roles []struct {
				Name string `json:"name"`
			} `json:"roles"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.User.Email != "a@x.com" {
		t.Fatalf("unexpected user: %s", w.Body.String())
	}
	if len(body.User.Roles) != 1 || body.User.Roles[0].Name != "client" {
		t.Fatalf("roles not expanded: %s", w.Body.String())
	}
}

func TestMobileRefreshFromBody(t *testing.T) {
	env := newTestEnv(t)
	refresh := env.seedSession(t, "a@x.com")

	payload := fmt.Sprintf(`{"refresh_token": %q}`, refresh)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/mobile/refresh", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.AccessToken == "" || body.RefreshToken == "" || body.RefreshToken == refresh {
		t.Fatalf("unexpected rotation result: %s", w.Body.String())
	}
}

func TestMobileRefreshCookieFallback(t *testing.T) {
	env := newTestEnv(t)
	refresh := env.seedSession(t, "a@x.com")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/mobile/refresh", nil)
	req.AddCookie(&http.Cookie{Name: utils.RefreshCookieName, Value: refresh})
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 via cookie fallback, got %d: %s", w.Code, w.Body.String())
	}
}

func TestMobileLogoutMissingToken(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/mobile/logout", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
