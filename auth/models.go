// Package auth contains authentication and authorization logic: the user
// model and its store, password hashing, bearer-token issue/verify, the JWT
// middleware, and the login handler.
package auth

import "time"

// User represents a stored user record. HashedPassword carries the `json:"-"`
// tag so it can never leak through a serialized response.
type User struct {
	ID             int       `json:"id"`
	Username       string    `json:"username"`
	Email          *string   `json:"email,omitempty"` // optional at registration
	HashedPassword string    `json:"-"`
	Created        time.Time `json:"created"`
}
