package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mtarnawa/quill/internal/application/auth"
	"github.com/mtarnawa/quill/internal/application/ports"
	infraauth "github.com/mtarnawa/quill/internal/infrastructure/auth"
	httprouter "github.com/mtarnawa/quill/internal/infrastructure/http"
	"github.com/mtarnawa/quill/internal/infrastructure/http/handlers"
	"github.com/mtarnawa/quill/internal/infrastructure/security"
	"github.com/mtarnawa/quill/internal/infrastructure/webhook"
)

type testEnv struct {
	router   http.Handler
	repo     *auth.FakeUserRepository
	verifier *auth.FakeVerifier
	issuer   *infraauth.TokenIssuer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	repo := auth.NewFakeUserRepository()
	verifier := &auth.FakeVerifier{}
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	issuer := infraauth.NewTokenIssuer([]byte("test-secret"), time.Hour)

	usernames := auth.NewUsernameGenerator(repo)
	creds := auth.NewCredentialIssuer(issuer)
	authHandler := handlers.NewAuthHandler(
		auth.NewSignup(repo, hasher, usernames, creds),
		auth.NewSignin(repo, hasher, creds),
		auth.NewGoogleSignIn(verifier, repo, usernames, creds),
		webhook.NewNoopEmitter(),
		zerolog.Nop(),
	)
	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler: authHandler,
		Log:         zerolog.Nop(),
	})
	return &testEnv{router: router, repo: repo, verifier: verifier, issuer: issuer}
}

func (e *testEnv) post(t *testing.T, path string, body map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var out map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestSignupScenario(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.post(t, "/signup", map[string]string{
		"email":    "a@b.com",
		"password": "Abcdef1!",
		"fullname": "Ann Lee",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["access_token"])
	assert.Equal(t, "a", body["username"])
	assert.Equal(t, "Ann Lee", body["fullname"])
}

func TestSignupDuplicateEmailConflict(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	payload := map[string]string{"email": "a@b.com", "password": "Abcdef1!", "fullname": "Ann Lee"}

	require.Equal(t, http.StatusOK, env.post(t, "/signup", payload).Code)
	rec := env.post(t, "/signup", payload)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "email_exists", decodeBody(t, rec)["code"])
	assert.Equal(t, 1, env.repo.Len(), "duplicate signup must not create a second record")
}

func TestSignupPolicyErrors(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	tests := []struct {
		name     string
		body     map[string]string
		wantCode string
	}{
		{"short fullname", map[string]string{"email": "a@b.com", "password": "Abcdef1!", "fullname": "Al"}, "invalid_fullname"},
		{"missing email", map[string]string{"email": "", "password": "Abcdef1!", "fullname": "Ann Lee"}, "email_required"},
		{"bad email", map[string]string{"email": "not-an-email", "password": "Abcdef1!", "fullname": "Ann Lee"}, "invalid_email"},
		{"short password", map[string]string{"email": "a@b.com", "password": "Ab1!", "fullname": "Ann Lee"}, "password_too_short"},
		{"weak password", map[string]string{"email": "a@b.com", "password": "abcdefgh", "fullname": "Ann Lee"}, "weak_password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.post(t, "/signup", tt.body)
			assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())
			assert.Equal(t, tt.wantCode, decodeBody(t, rec)["code"])
		})
	}
}

func TestSigninRoundTrip(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	require.Equal(t, http.StatusOK, env.post(t, "/signup", map[string]string{
		"email": "a@b.com", "password": "Abcdef1!", "fullname": "Ann Lee",
	}).Code)

	rec := env.post(t, "/signin", map[string]string{"email": "a@b.com", "password": "Abcdef1!"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)

	subject, err := env.issuer.ValidateAccessToken(body["access_token"])
	require.NoError(t, err)
	created, err := env.repo.GetByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, created.ID.String(), subject, "token subject must be the created user's id")
}

func TestSigninWrongPassword(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	require.Equal(t, http.StatusOK, env.post(t, "/signup", map[string]string{
		"email": "a@b.com", "password": "Abcdef1!", "fullname": "Ann Lee",
	}).Code)

	rec := env.post(t, "/signin", map[string]string{"email": "a@b.com", "password": "wrong"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "invalid_password", decodeBody(t, rec)["code"])
}

func TestSigninUnknownEmail(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.post(t, "/signin", map[string]string{"email": "nobody@b.com", "password": "x"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "user_not_found", decodeBody(t, rec)["code"])
}

func TestFederatedAccountCannotSigninLocally(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.verifier.Claims = &ports.GoogleClaims{Email: "g@b.com", Name: "Gus Page", Picture: "p=s96-c"}

	require.Equal(t, http.StatusOK, env.post(t, "/google-auth", map[string]string{"access_token": "provider-token"}).Code)

	rec := env.post(t, "/signin", map[string]string{"email": "g@b.com", "password": "anything"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "use_google_login", decodeBody(t, rec)["code"])
}

func TestLocalAccountCannotGoogleAuth(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	require.Equal(t, http.StatusOK, env.post(t, "/signup", map[string]string{
		"email": "a@b.com", "password": "Abcdef1!", "fullname": "Ann Lee",
	}).Code)
	env.verifier.Claims = &ports.GoogleClaims{Email: "a@b.com", Name: "Ann Lee", Picture: ""}

	rec := env.post(t, "/google-auth", map[string]string{"access_token": "provider-token"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "already_registered_local", decodeBody(t, rec)["code"])
}

func TestLocalAccountCannotGoogleAuthMixedCase(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	require.Equal(t, http.StatusOK, env.post(t, "/signup", map[string]string{
		"email": "Ann@b.com", "password": "Abcdef1!", "fullname": "Ann Lee",
	}).Code)
	env.verifier.Claims = &ports.GoogleClaims{Email: "Ann@b.com", Name: "Ann Lee", Picture: ""}

	rec := env.post(t, "/google-auth", map[string]string{"access_token": "provider-token"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "already_registered_local", decodeBody(t, rec)["code"])
	assert.Equal(t, 1, env.repo.Len(), "google-auth must not create a second account for the same email")
}

func TestGoogleAuthVerificationFailure(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.verifier.Err = assert.AnError

	rec := env.post(t, "/google-auth", map[string]string{"access_token": "bad"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "google_auth_failed", decodeBody(t, rec)["code"])
}

func TestMalformedBody(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUsernameCollisionAcrossDomains(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	first := env.post(t, "/signup", map[string]string{"email": "a@b.com", "password": "Abcdef1!", "fullname": "Ann Lee"})
	require.Equal(t, http.StatusOK, first.Code)
	second := env.post(t, "/signup", map[string]string{"email": "a@c.com", "password": "Abcdef1!", "fullname": "Ann Lee"})
	require.Equal(t, http.StatusOK, second.Code)

	u1 := decodeBody(t, first)["username"]
	u2 := decodeBody(t, second)["username"]
	assert.Equal(t, "a", u1)
	assert.NotEqual(t, u1, u2)
	assert.Len(t, u2, 5, "colliding username gets a 4-character suffix")
}
