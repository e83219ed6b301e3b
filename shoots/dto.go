// Package shoots implements the /api/shoots endpoints: owner-scoped CRUD
// over planned photography shoots, with the owner always taken from the
// authenticated token rather than the payload.
package shoots

import (
	"github.com/AlexWarnes/fStopandGo-api/apperror"
	"github.com/AlexWarnes/fStopandGo-api/validation"
)

// CreateShootRequest is the shoot creation payload. There is deliberately no
// owner field: ownership comes from the token, and any owner key in the body
// is ignored by the decoder.
type CreateShootRequest struct {
	Title       *string  `json:"title" example:"Golden hour at the pier"`
	Location    *string  `json:"location" example:"Folly Beach, SC"`
	Description *string  `json:"description" example:"Sunset portraits, bring the reflector"`
	GearList    []string `json:"gearList" example:"85mm,tripod"`
}

// Validate runs the creation check sequence: title is required and must not
// be padded with whitespace.
func (r *CreateShootRequest) Validate() *apperror.AppError {
	if err := validation.Required("title", r.Title); err != nil {
		return err
	}
	if err := validation.Trimmed("title", *r.Title); err != nil {
		return err
	}
	return validation.Sized("title", *r.Title, 1, 0)
}

// UpdateShootRequest is the shoot update payload. The body id must match the
// path id; owner is not in the allow-list and can never be reassigned.
// GearList is a pointer so a provided empty array clears the list while an
// absent key leaves it alone.
type UpdateShootRequest struct {
	ID          *int      `json:"id"`
	Title       *string   `json:"title"`
	Location    *string   `json:"location"`
	Description *string   `json:"description"`
	GearList    *[]string `json:"gearList"`
}

// Validate re-validates whichever allow-listed fields the update provides.
func (r *UpdateShootRequest) Validate() *apperror.AppError {
	if r.Title != nil {
		if err := validation.Trimmed("title", *r.Title); err != nil {
			return err
		}
		if err := validation.Sized("title", *r.Title, 1, 0); err != nil {
			return err
		}
	}
	return nil
}
