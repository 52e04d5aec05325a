package auth

import (
	"github.com/mtarnawa/quill/internal/application/ports"
	"github.com/mtarnawa/quill/internal/domain"
)

// Credentials is the outward-facing payload returned by every successful auth
// operation.
type Credentials struct {
	AccessToken string
	ProfileImg  string
	Username    string
	FullName    string
}

// CredentialIssuer builds the response payload and signs the access token.
type CredentialIssuer struct {
	issuer ports.TokenIssuer
}

func NewCredentialIssuer(issuer ports.TokenIssuer) *CredentialIssuer {
	return &CredentialIssuer{issuer: issuer}
}

// Issue signs a token for the user and assembles the credential payload.
func (ci *CredentialIssuer) Issue(user *domain.User) (*Credentials, error) {
	token, err := ci.issuer.IssueAccessToken(user.ID.String())
	if err != nil {
		return nil, err
	}
	return &Credentials{
		AccessToken: token,
		ProfileImg:  user.ProfileImg,
		Username:    user.Username,
		FullName:    user.FullName,
	}, nil
}
