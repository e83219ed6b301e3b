package shoots

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AlexWarnes/fStopandGo-api/apperror"
	"github.com/AlexWarnes/fStopandGo-api/auth"
)

// ShootStore is the pgx-backed shoot store. Writes that depend on ownership
// filter on both id and owner in a single statement, so the check and the
// mutation cannot race.
type ShootStore struct {
	db *pgxpool.Pool
}

// NewShootStore creates a ShootStore on the shared connection pool.
func NewShootStore(db *pgxpool.Pool) *ShootStore {
	return &ShootStore{db: db}
}

// CreateShoot inserts a shoot and fills in the generated id and creation
// time.
func (s *ShootStore) CreateShoot(ctx context.Context, shoot *Shoot) (*Shoot, error) {
	query := `INSERT INTO shoots (title, owner, location, description, gear_list)
              VALUES ($1, $2, $3, $4, $5)
              RETURNING id, created_at`
	err := s.db.QueryRow(ctx, query,
		shoot.Title, shoot.Owner, shoot.Location, shoot.Description, shoot.GearList).
		Scan(&shoot.ID, &shoot.CreatedAt)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create shoot", err)
	}
	return shoot, nil
}

// GetShoot retrieves a shoot by id, returning a NotFoundError for a missing
// row.
func (s *ShootStore) GetShoot(ctx context.Context, id int) (*Shoot, error) {
	query := `SELECT id, title, owner, location, description, gear_list, created_at
              FROM shoots WHERE id = $1`
	var shoot Shoot
	err := s.db.QueryRow(ctx, query, id).Scan(
		&shoot.ID, &shoot.Title, &shoot.Owner,
		&shoot.Location, &shoot.Description, &shoot.GearList, &shoot.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("shoot with id %d not found", id), nil)
		}
		return nil, apperror.NewDatabaseError("failed to get shoot", err)
	}
	return &shoot, nil
}

// ListShootsByOwner returns all shoots owned by the given username, oldest
// first. An owner with no shoots gets an empty slice, not nil.
func (s *ShootStore) ListShootsByOwner(ctx context.Context, owner string) ([]Shoot, error) {
	query := `SELECT id, title, owner, location, description, gear_list, created_at
              FROM shoots WHERE owner = $1 ORDER BY id`
	rows, err := s.db.Query(ctx, query, owner)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list shoots", err)
	}
	defer rows.Close()

	list := make([]Shoot, 0)
	for rows.Next() {
		var shoot Shoot
		err := rows.Scan(&shoot.ID, &shoot.Title, &shoot.Owner,
			&shoot.Location, &shoot.Description, &shoot.GearList, &shoot.CreatedAt)
		if err != nil {
			return nil, apperror.NewDatabaseError("failed to scan shoot", err)
		}
		list = append(list, shoot)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to list shoots", err)
	}
	return list, nil
}

// UpdateShoot applies the given field updates to the shoot row matching both
// id and owner. It reports whether any row matched; a false result means the
// shoot does not exist or belongs to someone else, and the statement made no
// change either way. An empty update still checks the id/owner match, so a
// fields-less request gets the same answer a real update would.
func (s *ShootStore) UpdateShoot(ctx context.Context, id int, owner string, updates []auth.FieldUpdate) (bool, error) {
	if len(updates) == 0 {
		var matched bool
		err := s.db.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM shoots WHERE id = $1 AND owner = $2)`, id, owner).Scan(&matched)
		if err != nil {
			return false, apperror.NewDatabaseError("failed to check shoot ownership", err)
		}
		return matched, nil
	}

	setClauses := make([]string, 0, len(updates))
	args := make([]interface{}, 0, len(updates)+2)
	for i, u := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", u.Column, i+1))
		args = append(args, u.Value)
	}
	args = append(args, id, owner)

	query := fmt.Sprintf(`UPDATE shoots SET %s WHERE id = $%d AND owner = $%d`,
		strings.Join(setClauses, ", "), len(args)-1, len(args))
	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return false, apperror.NewDatabaseError("failed to update shoot", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteShoot removes the shoot row matching both id and owner, reporting
// whether anything was deleted.
func (s *ShootStore) DeleteShoot(ctx context.Context, id int, owner string) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM shoots WHERE id = $1 AND owner = $2`, id, owner)
	if err != nil {
		return false, apperror.NewDatabaseError("failed to delete shoot", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ShootExists reports whether any shoot has the given id, regardless of
// owner. The delete path uses it to tell a missing shoot from a foreign one.
func (s *ShootStore) ShootExists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM shoots WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, apperror.NewDatabaseError("failed to check shoot", err)
	}
	return exists, nil
}
