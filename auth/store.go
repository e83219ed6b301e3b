package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AlexWarnes/fStopandGo-api/apperror"
)

// UserStore is the pgx-backed credential store. Operations are direct
// pass-throughs to single queries; there is no caching and no transactional
// composition.
type UserStore struct {
	db *pgxpool.Pool
}

// NewUserStore creates a UserStore on the shared connection pool.
func NewUserStore(db *pgxpool.Pool) *UserStore {
	return &UserStore{db: db}
}

// FieldUpdate names one column to set in a dynamic update. Callers build the
// slice from an allow-list, so column names never come from request input.
type FieldUpdate struct {
	Column string
	Value  interface{}
}

// CreateUser inserts a user and fills in the generated id and creation time.
// A unique violation on username surfaces as the raw pg error so the caller
// can map it (the registration path turns it into the same 422 its
// uniqueness pre-check produces).
func (s *UserStore) CreateUser(ctx context.Context, user *User) (*User, error) {
	query := `INSERT INTO users (username, password, email)
              VALUES ($1, $2, $3)
              RETURNING id, created`
	err := s.db.QueryRow(ctx, query, user.Username, user.HashedPassword, user.Email).
		Scan(&user.ID, &user.Created)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByID retrieves a user by id, returning a NotFoundError for a
// missing row.
func (s *UserStore) GetUserByID(ctx context.Context, id int) (*User, error) {
	query := `SELECT id, username, password, email, created FROM users WHERE id = $1`
	return s.scanUser(s.db.QueryRow(ctx, query, id), fmt.Sprintf("user with id %d not found", id))
}

// GetUserByUsername retrieves a user by username, returning a NotFoundError
// for a missing row.
func (s *UserStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	query := `SELECT id, username, password, email, created FROM users WHERE username = $1`
	return s.scanUser(s.db.QueryRow(ctx, query, username), fmt.Sprintf("user '%s' not found", username))
}

// UsernameTaken reports whether a username already exists. This is the
// registration pre-check; it is not atomic with the insert, so the unique
// index remains the real guard against the check-then-create race.
func (s *UserStore) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var taken bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username).Scan(&taken)
	if err != nil {
		return false, apperror.NewDatabaseError("failed to check username", err)
	}
	return taken, nil
}

// UpdateUser applies the given field updates to one user row. Returns a
// NotFoundError when the id matches nothing.
func (s *UserStore) UpdateUser(ctx context.Context, id int, updates []FieldUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	setClauses := make([]string, 0, len(updates))
	args := make([]interface{}, 0, len(updates)+1)
	for i, u := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", u.Column, i+1))
		args = append(args, u.Value)
	}
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d`, strings.Join(setClauses, ", "), len(args))
	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("user with id %d not found", id), nil)
	}
	return nil
}

// DeleteUser removes a user row, reporting whether anything was deleted.
func (s *UserStore) DeleteUser(ctx context.Context, id int) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, apperror.NewDatabaseError("failed to delete user", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *UserStore) scanUser(row pgx.Row, notFoundMsg string) (*User, error) {
	var user User
	err := row.Scan(&user.ID, &user.Username, &user.HashedPassword, &user.Email, &user.Created)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(notFoundMsg, nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}
	return &user, nil
}
