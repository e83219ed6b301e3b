package users

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/AlexWarnes/fStopandGo-api/apperror"
	"github.com/AlexWarnes/fStopandGo-api/auth"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint
// violations, the backstop for the non-atomic username uniqueness pre-check.
const pgUniqueViolation = "23505"

// Store is the slice of the credential store this service needs. It is
// satisfied by *auth.UserStore; tests substitute fakes.
type Store interface {
	CreateUser(ctx context.Context, user *auth.User) (*auth.User, error)
	GetUserByID(ctx context.Context, id int) (*auth.User, error)
	GetUserByUsername(ctx context.Context, username string) (*auth.User, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
	UpdateUser(ctx context.Context, id int, updates []auth.FieldUpdate) error
	DeleteUser(ctx context.Context, id int) (bool, error)
}

// UserService holds the business logic for user records: registration with
// uniqueness enforcement, and ownership-guarded read/update/delete.
type UserService struct {
	store Store
}

// NewUserService creates a new UserService.
func NewUserService(store Store) *UserService {
	return &UserService{store: store}
}

// usernameTakenError is the envelope both the pre-check and the constraint
// backstop produce, so a registration race is indistinguishable from a
// plain duplicate.
func usernameTakenError() *apperror.AppError {
	return apperror.NewValidationError("Username already taken", "username")
}

// Register creates a new user after the uniqueness pre-check, hashing the
// password before it ever reaches the store.
func (s *UserService) Register(ctx context.Context, req CreateUserRequest) (*auth.User, error) {
	taken, err := s.store.UsernameTaken(ctx, *req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, usernameTakenError()
	}

	hashed, err := auth.HashPassword(*req.Password)
	if err != nil {
		return nil, err
	}

	user := &auth.User{
		Username:       *req.Username,
		Email:          req.Email,
		HashedPassword: hashed,
	}

	created, err := s.store.CreateUser(ctx, user)
	if err != nil {
		// Two concurrent registrations can both pass the pre-check; the
		// unique index turns the loser into the same 422.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation && strings.Contains(pgErr.ConstraintName, "username") {
			return nil, usernameTakenError()
		}
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}
	return created, nil
}

// List implements the filtered listing rule: a username filter equal to the
// requester returns that user, any other filter is forbidden, and listing
// everyone is not available.
func (s *UserService) List(ctx context.Context, requester string, usernameFilter string) ([]*auth.User, error) {
	if usernameFilter == "" {
		return nil, apperror.NewNotFoundError("Cannot view all users", nil)
	}
	if usernameFilter != requester {
		return nil, apperror.NewUnauthorizedError("You cannot view other users", nil)
	}
	user, err := s.store.GetUserByUsername(ctx, usernameFilter)
	if err != nil {
		return nil, err
	}
	return []*auth.User{user}, nil
}

// Get returns one user by id, only to the user themselves.
func (s *UserService) Get(ctx context.Context, id int, requester string) (*auth.User, error) {
	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Username != requester {
		return nil, apperror.NewUnauthorizedError("You cannot view other users", nil)
	}
	return user, nil
}

// Update applies the allow-listed fields (username, password, email) to the
// requester's own record. A new password is rehashed; a new username goes
// through the same uniqueness handling as registration.
func (s *UserService) Update(ctx context.Context, id int, requester string, req *UpdateUserRequest) error {
	target, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	if target.Username != requester {
		return apperror.NewUnauthorizedError("You cannot update other users", nil)
	}

	var updates []auth.FieldUpdate
	if req.Username != nil {
		if *req.Username != target.Username {
			taken, err := s.store.UsernameTaken(ctx, *req.Username)
			if err != nil {
				return err
			}
			if taken {
				return usernameTakenError()
			}
		}
		updates = append(updates, auth.FieldUpdate{Column: "username", Value: *req.Username})
	}
	if req.Password != nil {
		hashed, err := auth.HashPassword(*req.Password)
		if err != nil {
			return err
		}
		updates = append(updates, auth.FieldUpdate{Column: "password", Value: hashed})
	}
	if req.Email != nil {
		updates = append(updates, auth.FieldUpdate{Column: "email", Value: *req.Email})
	}

	if len(updates) == 0 {
		return nil
	}

	if err := s.store.UpdateUser(ctx, id, updates); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation && strings.Contains(pgErr.ConstraintName, "username") {
			return usernameTakenError()
		}
		if _, ok := apperror.FromError(err); ok {
			return err
		}
		return apperror.NewDatabaseError("failed to update user", err)
	}
	return nil
}

// Delete removes the requester's own record. Deleting someone else is
// forbidden; a missing target is reported as such and the store untouched.
func (s *UserService) Delete(ctx context.Context, id int, requester string) error {
	target, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	if target.Username != requester {
		return apperror.NewUnauthorizedError("You cannot delete other users", nil)
	}

	if _, err := s.store.DeleteUser(ctx, id); err != nil {
		return err
	}
	return nil
}
