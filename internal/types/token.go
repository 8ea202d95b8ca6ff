package types

// TokenClaims carries the identity extracted from a session token. Accounts
// are keyed by username throughout, so that is all a token needs to carry.
type TokenClaims struct {
	Username string `json:"username"`
}
