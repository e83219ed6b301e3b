package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "fstopandgo"

// TokenUser is the user object embedded in the token payload.
type TokenUser struct {
	Username string `json:"username"`
}

// Claims is the JWT payload: a {user:{username}} claim plus the registered
// claims (sub, exp, iat, nbf, iss). Subject duplicates the username.
type Claims struct {
	User TokenUser `json:"user"`
	jwt.RegisteredClaims
}

// IssueToken signs a bearer token asserting the given username, valid for
// the given duration. Returns the signed token and its expiry time.
func IssueToken(username string, secret string, expiry time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(expiry)

	claims := &Claims{
		User: TokenUser{Username: username},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// VerifyToken parses and validates a bearer token: signature, algorithm,
// expiry, and the presence of a username claim. The jwt library rejects
// expired and not-yet-valid tokens during parsing.
func VerifyToken(raw string, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is invalid")
	}
	if claims.User.Username == "" {
		return nil, errors.New("token is missing the username claim")
	}
	return claims, nil
}
