package auth

// TokenPayload is the claim set carried by a bearer token. Expiry is enforced
// by the token manager and never exposed here.
type TokenPayload struct {
	UserID string
	Email  string
}

// TokenManager abstracts token issuance and verification.
type TokenManager interface {
	// Generate issues a signed token for the user. Returns domain ErrConfig
	// when no signing secret is configured.
	Generate(userID, email string) (string, error)
	// Verify checks signature and expiry and returns the embedded payload.
	// Failures map to domain ErrTokenExpired, ErrTokenInvalid or ErrConfig.
	Verify(token string) (*TokenPayload, error)
}
