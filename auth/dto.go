package auth

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Username string `json:"username" example:"shutterbug"`
	Password string `json:"password" example:"strongpassword123"`
}

// TokenResponse is returned to the client on successful login. Logout is
// client-side token discard; there is no refresh flow.
type TokenResponse struct {
	AccessToken string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType   string `json:"token_type" example:"Bearer"`
	// ExpiresIn is the unix timestamp at which the token expires.
	ExpiresIn int64 `json:"expires_in" example:"1735689600"`
}
