package shoots

import (
	"context"

	"github.com/AlexWarnes/fStopandGo-api/apperror"
	"github.com/AlexWarnes/fStopandGo-api/auth"
)

// Store is the persistence surface the shoot service needs. *ShootStore
// satisfies it; tests substitute an in-memory fake.
type Store interface {
	CreateShoot(ctx context.Context, shoot *Shoot) (*Shoot, error)
	GetShoot(ctx context.Context, id int) (*Shoot, error)
	ListShootsByOwner(ctx context.Context, owner string) ([]Shoot, error)
	UpdateShoot(ctx context.Context, id int, owner string, updates []auth.FieldUpdate) (bool, error)
	DeleteShoot(ctx context.Context, id int, owner string) (bool, error)
	ShootExists(ctx context.Context, id int) (bool, error)
}

// ShootService implements the ownership rules for shoots: every read and
// write is scoped to the requesting user.
type ShootService struct {
	store Store
}

// NewShootService creates a new ShootService.
func NewShootService(store Store) *ShootService {
	return &ShootService{store: store}
}

// Create stores a new shoot owned by the requester. The owner comes from the
// verified token, never from the payload.
func (s *ShootService) Create(ctx context.Context, requester string, req CreateShootRequest) (*Shoot, error) {
	shoot := &Shoot{
		Title:       *req.Title,
		Owner:       requester,
		Location:    req.Location,
		Description: req.Description,
		GearList:    req.GearList,
	}
	if shoot.GearList == nil {
		shoot.GearList = []string{}
	}
	return s.store.CreateShoot(ctx, shoot)
}

// List returns the shoots matching the owner filter. Listing without a
// filter is not available, and filtering by someone else is forbidden, so
// the only reachable result set is the requester's own shoots.
func (s *ShootService) List(ctx context.Context, requester, ownerFilter string) ([]Shoot, error) {
	if ownerFilter == "" {
		return nil, apperror.NewNotFoundError("Cannot view all shoots", nil)
	}
	if ownerFilter != requester {
		return nil, apperror.NewUnauthorizedError("You cannot view other users' shoots", nil)
	}
	return s.store.ListShootsByOwner(ctx, requester)
}

// Get returns one shoot if it exists and belongs to the requester.
func (s *ShootService) Get(ctx context.Context, requester string, id int) (*Shoot, error) {
	shoot, err := s.store.GetShoot(ctx, id)
	if err != nil {
		return nil, err
	}
	if shoot.Owner != requester {
		return nil, apperror.NewUnauthorizedError("You cannot view other users' shoots", nil)
	}
	return shoot, nil
}

// Update applies the allow-listed fields of req to the requester's shoot.
// The store filters on both id and owner in one statement; a zero-row match
// is reported as forbidden whether the shoot is missing or foreign.
func (s *ShootService) Update(ctx context.Context, requester string, id int, req UpdateShootRequest) error {
	updates := make([]auth.FieldUpdate, 0, 4)
	if req.Title != nil {
		updates = append(updates, auth.FieldUpdate{Column: "title", Value: *req.Title})
	}
	if req.Location != nil {
		updates = append(updates, auth.FieldUpdate{Column: "location", Value: *req.Location})
	}
	if req.Description != nil {
		updates = append(updates, auth.FieldUpdate{Column: "description", Value: *req.Description})
	}
	if req.GearList != nil {
		updates = append(updates, auth.FieldUpdate{Column: "gear_list", Value: *req.GearList})
	}

	matched, err := s.store.UpdateShoot(ctx, id, requester, updates)
	if err != nil {
		return err
	}
	if !matched {
		return apperror.NewUnauthorizedError("You cannot update other users' shoots", nil)
	}
	return nil
}

// Delete removes the requester's shoot. When the owner-scoped delete matches
// nothing, an existence probe distinguishes a missing shoot from one owned
// by someone else.
func (s *ShootService) Delete(ctx context.Context, requester string, id int) error {
	deleted, err := s.store.DeleteShoot(ctx, id, requester)
	if err != nil {
		return err
	}
	if deleted {
		return nil
	}

	exists, err := s.store.ShootExists(ctx, id)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewUnauthorizedError("You cannot delete other users' shoots", nil)
	}
	return apperror.NewNotFoundError("shoot not found", nil)
}
