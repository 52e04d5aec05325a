package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"

	"github.com/mtarnawa/quill/internal/application/auth"
	"github.com/mtarnawa/quill/internal/application/ports"
	domerrors "github.com/mtarnawa/quill/internal/domain/errors"
)

const oauthProviderName = "google"

// InitOAuthProviders registers Goth providers and session store. Call once at startup.
func InitOAuthProviders(callbackBaseURL, sessionSecret, googleClientID, googleClientSecret string) {
	if googleClientID != "" && googleClientSecret != "" {
		callbackURL := callbackBaseURL + "/google-auth/callback"
		goth.UseProviders(google.New(googleClientID, googleClientSecret, callbackURL, "email", "profile"))
	}
	if sessionSecret != "" {
		gothic.Store = sessions.NewCookieStore([]byte(sessionSecret))
	}
}

// OAuthBegin redirects the browser to Google's consent screen. This is the
// server-side alternative to POSTing a provider token to /google-auth.
func OAuthBegin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := goth.GetProvider(oauthProviderName); err != nil {
			writeErr(w, http.StatusBadRequest, "", "google sign-in is not configured")
			return
		}
		// Gothic expects provider in query
		r2 := r.Clone(r.Context())
		q := r2.URL.Query()
		q.Set("provider", oauthProviderName)
		r2.URL.RawQuery = q.Encode()
		authURL, err := gothic.GetAuthURL(w, r2)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, "", "internal server error")
			return
		}
		http.Redirect(w, r, authURL, http.StatusTemporaryRedirect)
	}
}

// OAuthCallback completes the provider handshake and funnels the verified
// claims into the same lookup-or-create flow as POST /google-auth, then
// redirects to the frontend with the access token in the query.
func OAuthCallback(googleSignIn *auth.GoogleSignIn, redirectURL string) http.HandlerFunc {
	base, baseErr := url.Parse(redirectURL)
	return func(w http.ResponseWriter, r *http.Request) {
		r2 := r.Clone(r.Context())
		q := r2.URL.Query()
		q.Set("provider", oauthProviderName)
		r2.URL.RawQuery = q.Encode()
		gothUser, err := gothic.CompleteUserAuth(w, r2)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, ErrCodeGoogleAuthFailed, domerrors.ErrGoogleAuthFailed.Error())
			return
		}
		result, err := googleSignIn.SignIn(r.Context(), &ports.GoogleClaims{
			Email:   gothUser.Email,
			Name:    gothUser.Name,
			Picture: gothUser.AvatarURL,
		})
		if err != nil {
			if errors.Is(err, domerrors.ErrAlreadyRegisteredLocal) {
				writeErr(w, http.StatusForbidden, ErrCodeAlreadyRegisteredLocal, err.Error())
				return
			}
			writeErr(w, http.StatusInternalServerError, "", "internal server error")
			return
		}
		if baseErr != nil {
			writeErr(w, http.StatusInternalServerError, "", "internal server error")
			return
		}
		// Client should move the token to storage and strip the URL.
		u := *base
		uq := u.Query()
		uq.Set("access_token", result.AccessToken)
		u.RawQuery = uq.Encode()
		http.Redirect(w, r, u.String(), http.StatusTemporaryRedirect)
	}
}
