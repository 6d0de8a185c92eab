package storage

import (
	"context"
	"time"

	"github.com/iudanet/barkeeper/internal/models"
)

// BarStorage defines interface for bars and their members
type BarStorage interface {
	// CreateBar stores a bar and makes its owner a member with RoleOwner
	CreateBar(ctx context.Context, bar *models.Bar) error

	// GetBar retrieves bar by ID
	// Returns ErrBarNotFound if bar doesn't exist
	GetBar(ctx context.Context, barID string) (*models.Bar, error)

	// ListUserBars returns every bar the user is a member of, ordered by name
	ListUserBars(ctx context.Context, userID string) ([]models.Bar, error)

	// PatchBar applies the non-nil fields of patch unless a later client edit
	// is already stored (last-write-wins on clientUpdatedAt). Returns false
	// when the patch lost. Returns ErrBarNotFound if bar doesn't exist.
	PatchBar(ctx context.Context, barID string, patch models.BarPatch, clientUpdatedAt, now time.Time) (bool, error)

	// GetMemberRole returns the role of user in bar
	// Returns ErrNotMember if user has no membership
	GetMemberRole(ctx context.Context, barID, userID string) (models.Role, error)

	// AddMember grants user access to bar. An existing membership is kept as is.
	AddMember(ctx context.Context, barID, userID string, role models.Role) error

	// ListMemberIDs returns IDs of all members of bar
	ListMemberIDs(ctx context.Context, barID string) ([]string, error)
}
