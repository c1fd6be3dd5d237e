package storage

import (
	"context"
	"errors"

	"github.com/trinitynoble/BudgetBuddyProject/internal/models"
	usermodel "github.com/trinitynoble/BudgetBuddyProject/internal/models/user"
)

// ErrDuplicateEmail reports a unique-constraint hit on users.email. The
// service pre-checks for an existing row, so this only fires on a race.
var ErrDuplicateEmail = errors.New("email already exists")

// ErrUserVanished reports a foreign-key failure on record insert: the
// owning user row disappeared between token issuance and the write.
var ErrUserVanished = errors.New("owning user no longer exists")

type UserStore interface {
	// Create persists a new user. The store assigns the id.
	Create(ctx context.Context, req *usermodel.CreateUserRequest, passwordHash string) (*usermodel.User, error)
	// GetByEmail returns (nil, nil) when no user matches.
	GetByEmail(ctx context.Context, email string) (*usermodel.User, error)
	// GetByID returns (nil, nil) when no user matches.
	GetByID(ctx context.Context, userID string) (*usermodel.User, error)
	// UpdatePassword replaces the stored hash and bumps token_version.
	// Returns false when the email is unknown.
	UpdatePassword(ctx context.Context, email, passwordHash string) (bool, error)
}

// RecordStore is the ownership-scoped store shared by transactions and
// budget items. Every read and mutation is keyed by the owning user.
type RecordStore interface {
	ListByUser(ctx context.Context, userID string) ([]*models.Record, error)
	// Latest returns the caller's most recent record, (nil, nil) if none.
	Latest(ctx context.Context, userID string) (*models.Record, error)
	Create(ctx context.Context, userID string, in *models.RecordInput) (*models.Record, error)
	// GetOwned returns (nil, nil) when the record is absent or owned by
	// someone else; callers cannot tell the two apart.
	GetOwned(ctx context.Context, id int64, userID string) (*models.Record, error)
	// OwnerOf reports the owning user of a record, found=false if the
	// record does not exist.
	OwnerOf(ctx context.Context, id int64) (owner string, found bool, err error)
	// Update applies in to the record iff it is owned by userID.
	// Returns (nil, nil) when no row matched.
	Update(ctx context.Context, id int64, userID string, in *models.RecordInput) (*models.Record, error)
	// Delete removes the record iff it is owned by userID. Returns
	// false when no row matched.
	Delete(ctx context.Context, id int64, userID string) (bool, error)
	// Search matches query as a case-insensitive substring of the
	// description, amount or date, scoped to userID's records.
	Search(ctx context.Context, userID, query string) ([]*models.Record, error)
}
