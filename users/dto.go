// Package users implements the /api/users endpoints: registration with the
// full validation sequence, and owner-scoped read/update/delete of user
// records.
package users

import (
	"github.com/AlexWarnes/fStopandGo-api/apperror"
	"github.com/AlexWarnes/fStopandGo-api/auth"
	"github.com/AlexWarnes/fStopandGo-api/validation"
)

// CreateUserRequest is the registration payload. Fields are pointers so the
// validation layer can distinguish an absent key from an empty string.
type CreateUserRequest struct {
	Username *string `json:"username" example:"shutterbug"`
	Password *string `json:"password" example:"strongpassword123"`
	Email    *string `json:"email" example:"shutterbug@example.com"`
}

// Validate runs the registration check sequence, short-circuiting on the
// first failure: required fields, then whitespace, then length bounds.
// The password cap matches bcrypt's 72-byte input limit.
func (r *CreateUserRequest) Validate() *apperror.AppError {
	required := []struct {
		location string
		value    *string
	}{
		{"username", r.Username},
		{"password", r.Password},
	}
	for _, f := range required {
		if err := validation.Required(f.location, f.value); err != nil {
			return err
		}
	}
	for _, f := range required {
		if err := validation.Trimmed(f.location, *f.value); err != nil {
			return err
		}
	}
	if err := validation.Sized("username", *r.Username, 1, 0); err != nil {
		return err
	}
	if err := validation.Sized("password", *r.Password, 8, 0); err != nil {
		return err
	}
	// bcrypt rejects input past 72 bytes, so the cap counts bytes.
	if err := validation.SizedBytes("password", *r.Password, auth.MaxPasswordLength); err != nil {
		return err
	}
	return nil
}

// UpdateUserRequest is the profile update payload. The body id must match
// the path id; only the allow-listed fields are ever copied into the update.
type UpdateUserRequest struct {
	ID       *int    `json:"id"`
	Username *string `json:"username"`
	Password *string `json:"password"`
	Email    *string `json:"email"`
}

// Validate re-validates whichever allow-listed fields the update provides.
func (r *UpdateUserRequest) Validate() *apperror.AppError {
	if r.Username != nil {
		if err := validation.Trimmed("username", *r.Username); err != nil {
			return err
		}
		if err := validation.Sized("username", *r.Username, 1, 0); err != nil {
			return err
		}
	}
	if r.Password != nil {
		if err := validation.Trimmed("password", *r.Password); err != nil {
			return err
		}
		if err := validation.Sized("password", *r.Password, 8, 0); err != nil {
			return err
		}
		if err := validation.SizedBytes("password", *r.Password, auth.MaxPasswordLength); err != nil {
			return err
		}
	}
	return nil
}
