package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/mtarnawa/quill/internal/application/auth"
	"github.com/mtarnawa/quill/internal/application/ports"
	domerrors "github.com/mtarnawa/quill/internal/domain/errors"
	"github.com/mtarnawa/quill/internal/infrastructure/http/middleware"
)

type AuthHandler struct {
	signup   *auth.Signup
	signin   *auth.Signin
	google   *auth.GoogleSignIn
	emitter  ports.WebhookEmitter
	validate *validator.Validate
	log      zerolog.Logger
}

func NewAuthHandler(signup *auth.Signup, signin *auth.Signin, google *auth.GoogleSignIn, emitter ports.WebhookEmitter, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		signup:   signup,
		signin:   signin,
		google:   google,
		emitter:  emitter,
		validate: validator.New(),
		log:      log,
	}
}

type credentialsResponse struct {
	AccessToken string `json:"access_token"`
	ProfileImg  string `json:"profile_img"`
	Username    string `json:"username"`
	FullName    string `json:"fullname"`
}

func toCredentialsResponse(c *auth.Credentials) credentialsResponse {
	return credentialsResponse{
		AccessToken: c.AccessToken,
		ProfileImg:  c.ProfileImg,
		Username:    c.Username,
		FullName:    c.FullName,
	}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	// Length caps only; the credential policy owns the real validation so its
	// enumerated errors reach the client.
	var body struct {
		Email    string `json:"email" validate:"max=254"`
		Password string `json:"password" validate:"max=128"`
		FullName string `json:"fullname" validate:"max=100"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	email := SanitizeEmail(body.Email)
	result, err := h.signup.Execute(r.Context(), auth.SignupInput{
		Email:    email,
		Password: body.Password,
		FullName: body.FullName,
	})
	if err != nil {
		AuditEmit(h.log, r, h.emitter, "user.signup", email, "", false, err.Error())
		middleware.RecordAuthAttempt("signup", false)
		h.writeAuthErr(w, err)
		return
	}
	AuditEmit(h.log, r, h.emitter, "user.signup", email, result.Username, true, "")
	middleware.RecordAuthAttempt("signup", true)
	writeJSON(w, http.StatusOK, toCredentialsResponse(result))
}

func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"max=254"`
		Password string `json:"password" validate:"max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	email := SanitizeEmail(body.Email)
	result, err := h.signin.Execute(r.Context(), auth.SigninInput{
		Email:    email,
		Password: body.Password,
	})
	if err != nil {
		AuditEmit(h.log, r, h.emitter, "user.signin", email, "", false, err.Error())
		middleware.RecordAuthAttempt("signin", false)
		h.writeAuthErr(w, err)
		return
	}
	AuditEmit(h.log, r, h.emitter, "user.signin", email, result.Username, true, "")
	middleware.RecordAuthAttempt("signin", true)
	writeJSON(w, http.StatusOK, toCredentialsResponse(result))
}

func (h *AuthHandler) GoogleAuth(w http.ResponseWriter, r *http.Request) {
	var body struct {
		AccessToken string `json:"access_token" validate:"required,max=4096"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	result, err := h.google.Execute(r.Context(), body.AccessToken)
	if err != nil {
		AuditEmit(h.log, r, h.emitter, "user.google_auth", "", "", false, err.Error())
		middleware.RecordAuthAttempt("google_auth", false)
		h.writeAuthErr(w, err)
		return
	}
	AuditEmit(h.log, r, h.emitter, "user.google_auth", "", result.Username, true, "")
	middleware.RecordAuthAttempt("google_auth", true)
	writeJSON(w, http.StatusOK, toCredentialsResponse(result))
}

// writeAuthErr maps domain sentinels onto status codes. Anything unmapped is a
// dependency failure and stays a generic 500 so internals do not leak.
func (h *AuthHandler) writeAuthErr(w http.ResponseWriter, err error) {
	status, code := statusForAuthError(err)
	if code == ErrCodeInternal {
		h.log.Error().Err(err).Msg("auth request failed")
		writeErr(w, status, code, "internal server error")
		return
	}
	writeErr(w, status, code, err.Error())
}

func statusForAuthError(err error) (int, string) {
	switch {
	case errors.Is(err, domerrors.ErrInvalidFullname):
		return http.StatusForbidden, ErrCodeInvalidFullname
	case errors.Is(err, domerrors.ErrEmailRequired):
		return http.StatusForbidden, ErrCodeEmailRequired
	case errors.Is(err, domerrors.ErrInvalidEmail):
		return http.StatusForbidden, ErrCodeInvalidEmail
	case errors.Is(err, domerrors.ErrPasswordTooShort):
		return http.StatusForbidden, ErrCodePasswordTooShort
	case errors.Is(err, domerrors.ErrWeakPassword):
		return http.StatusForbidden, ErrCodeWeakPassword
	case errors.Is(err, domerrors.ErrUserNotFound):
		return http.StatusForbidden, ErrCodeUserNotFound
	case errors.Is(err, domerrors.ErrInvalidPassword):
		return http.StatusForbidden, ErrCodeInvalidPassword
	case errors.Is(err, domerrors.ErrUseGoogleLogin):
		return http.StatusForbidden, ErrCodeUseGoogleLogin
	case errors.Is(err, domerrors.ErrAlreadyRegisteredLocal):
		return http.StatusForbidden, ErrCodeAlreadyRegisteredLocal
	case errors.Is(err, domerrors.ErrEmailExists):
		return http.StatusConflict, ErrCodeEmailExists
	case errors.Is(err, domerrors.ErrGoogleAuthFailed):
		return http.StatusInternalServerError, ErrCodeGoogleAuthFailed
	default:
		return http.StatusInternalServerError, ErrCodeInternal
	}
}
