package rollservice

import (
	"context"
	"fmt"

	"github.com/aegis-league/aegis-fantasy/app/shared/results"
	sharedtypes "github.com/aegis-league/aegis-fantasy/app/shared/types"
)

// RollAllowance reports the unspent rolls for one role.
type RollAllowance struct {
	Role            sharedtypes.Role `json:"role"`
	TitleRemaining  int              `json:"title_remaining"`
	BannerRemaining int              `json:"banner_remaining"`
}

// RemainingRolls reports the unspent title and banner rolls per role for one
// user, in role order. Roles never rolled report the full cap.
func (s *RollService) RemainingRolls(ctx context.Context, userID sharedtypes.UserID) (results.OperationResult[[]RollAllowance, Failure], error) {
	return serviceWrapper(ctx, s, "RemainingRolls", func(ctx context.Context) (results.OperationResult[[]RollAllowance, Failure], error) {
		allowances := make([]RollAllowance, 0, len(sharedtypes.Roles))
		for _, role := range sharedtypes.Roles {
			titleUsed, err := s.repo.CountTitleRolls(ctx, nil, userID, role)
			if err != nil {
				return results.OperationResult[[]RollAllowance, Failure]{}, fmt.Errorf("counting title rolls for role %d: %w", role, err)
			}
			bannerUsed, err := s.repo.CountBannerRolls(ctx, nil, userID, role)
			if err != nil {
				return results.OperationResult[[]RollAllowance, Failure]{}, fmt.Errorf("counting banner rolls for role %d: %w", role, err)
			}
			allowances = append(allowances, RollAllowance{
				Role:            role,
				TitleRemaining:  max(s.caps.Title-titleUsed, 0),
				BannerRemaining: max(s.caps.Banner-bannerUsed, 0),
			})
		}
		return results.SuccessResult[[]RollAllowance, Failure](allowances), nil
	})
}
