package ports

// TokenClaims is the verified identity extracted from a session token.
type TokenClaims struct {
	Subject string
	Role    string
}

// TokenService issues and verifies signed, self-contained session tokens.
type TokenService interface {
	// Issue signs a token for the user with the configured issuer, audience
	// and TTL. Signing failures map to domain.ErrTokenIssuance.
	Issue(userID, role string) (string, error)
	// Verify checks signature, expiry, issuer and audience. Any failure maps
	// to domain.ErrUnauthenticated.
	Verify(token string) (*TokenClaims, error)
}
