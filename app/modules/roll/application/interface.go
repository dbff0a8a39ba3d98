package rollservice

import (
	"context"

	fantasydomain "github.com/aegis-league/aegis-fantasy/app/modules/fantasy/domain"
	rolldb "github.com/aegis-league/aegis-fantasy/app/modules/roll/infrastructure/repositories"
	"github.com/aegis-league/aegis-fantasy/app/shared/results"
	sharedtypes "github.com/aegis-league/aegis-fantasy/app/shared/types"
)

// Service defines the interface for roll operations.
type Service interface {
	RollTitle(ctx context.Context, userID sharedtypes.UserID, role sharedtypes.Role) (results.OperationResult[TitleAssignmentView, Failure], error)
	RollBanner(ctx context.Context, userID sharedtypes.UserID, role sharedtypes.Role) (results.OperationResult[BannerAssignmentView, Failure], error)
	RemainingRolls(ctx context.Context, userID sharedtypes.UserID) (results.OperationResult[[]RollAllowance, Failure], error)
	GetAssignments(ctx context.Context, userID sharedtypes.UserID) (results.OperationResult[[]RoleAssignmentsView, Failure], error)
	GetTitles(ctx context.Context) (results.OperationResult[[]rolldb.Title, Failure], error)
	GetBanners(ctx context.Context) (results.OperationResult[[]rolldb.Banner, Failure], error)

	// ActiveModifiers and SeedInitialAssignments serve the fantasy module's
	// ModifierSource and InitialRoller seams.
	ActiveModifiers(ctx context.Context, userID sharedtypes.UserID, role sharedtypes.Role) ([]fantasydomain.BannerModifier, []fantasydomain.TitleModifier, error)
	SeedInitialAssignments(ctx context.Context, userID sharedtypes.UserID, role sharedtypes.Role) error
}

var _ Service = (*RollService)(nil)
