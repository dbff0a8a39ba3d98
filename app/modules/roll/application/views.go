package rollservice

import (
	"context"
	"fmt"

	rolldb "github.com/aegis-league/aegis-fantasy/app/modules/roll/infrastructure/repositories"
	"github.com/aegis-league/aegis-fantasy/app/shared/results"
	sharedtypes "github.com/aegis-league/aegis-fantasy/app/shared/types"
)

// RoleAssignmentsView is the active title pair and banner triple for one
// role. Either side is nil when the role has never been rolled or seeded.
type RoleAssignmentsView struct {
	Role    sharedtypes.Role   `json:"role"`
	Titles  *ActiveTitlesView  `json:"titles,omitempty"`
	Banners *ActiveBannersView `json:"banners,omitempty"`
}

type ActiveTitlesView struct {
	PrimaryTitleID   sharedtypes.TitleID `json:"primary_title_id"`
	SecondaryTitleID sharedtypes.TitleID `json:"secondary_title_id"`
}

type ActiveBannersView struct {
	Slots [3]BannerSlotView `json:"slots"`
}

// GetAssignments returns the active assignments per role for one user, in
// role order. Roles with nothing assigned are omitted.
func (s *RollService) GetAssignments(ctx context.Context, userID sharedtypes.UserID) (results.OperationResult[[]RoleAssignmentsView, Failure], error) {
	return serviceWrapper(ctx, s, "GetAssignments", func(ctx context.Context) (results.OperationResult[[]RoleAssignmentsView, Failure], error) {
		titleAssignments, err := s.repo.GetActiveTitleAssignments(ctx, nil, userID)
		if err != nil {
			return results.OperationResult[[]RoleAssignmentsView, Failure]{}, fmt.Errorf("loading title assignments: %w", err)
		}
		bannerAssignments, err := s.repo.GetActiveBannerAssignments(ctx, nil, userID)
		if err != nil {
			return results.OperationResult[[]RoleAssignmentsView, Failure]{}, fmt.Errorf("loading banner assignments: %w", err)
		}

		byRole := map[sharedtypes.Role]*RoleAssignmentsView{}
		for _, ta := range titleAssignments {
			view := ensureRole(byRole, ta.Role)
			view.Titles = &ActiveTitlesView{
				PrimaryTitleID:   ta.PrimaryTitleID,
				SecondaryTitleID: ta.SecondaryTitleID,
			}
		}
		for _, ba := range bannerAssignments {
			view := ensureRole(byRole, ba.Role)
			view.Banners = &ActiveBannersView{
				Slots: [3]BannerSlotView{
					{BannerID: ba.TopBannerID, Multiplier: ba.TopMultiplier},
					{BannerID: ba.MiddleBannerID, Multiplier: ba.MiddleMultiplier},
					{BannerID: ba.BottomBannerID, Multiplier: ba.BottomMultiplier},
				},
			}
		}

		views := make([]RoleAssignmentsView, 0, len(byRole))
		for _, role := range sharedtypes.Roles {
			if view, ok := byRole[role]; ok {
				views = append(views, *view)
			}
		}
		return results.SuccessResult[[]RoleAssignmentsView, Failure](views), nil
	})
}

func ensureRole(byRole map[sharedtypes.Role]*RoleAssignmentsView, role sharedtypes.Role) *RoleAssignmentsView {
	if view, ok := byRole[role]; ok {
		return view
	}
	view := &RoleAssignmentsView{Role: role}
	byRole[role] = view
	return view
}

// GetTitles returns the title reference pool.
func (s *RollService) GetTitles(ctx context.Context) (results.OperationResult[[]rolldb.Title, Failure], error) {
	return serviceWrapper(ctx, s, "GetTitles", func(ctx context.Context) (results.OperationResult[[]rolldb.Title, Failure], error) {
		titles, err := s.repo.GetTitles(ctx, nil)
		if err != nil {
			return results.OperationResult[[]rolldb.Title, Failure]{}, err
		}
		return results.SuccessResult[[]rolldb.Title, Failure](titles), nil
	})
}

// GetBanners returns the banner reference pool.
func (s *RollService) GetBanners(ctx context.Context) (results.OperationResult[[]rolldb.Banner, Failure], error) {
	return serviceWrapper(ctx, s, "GetBanners", func(ctx context.Context) (results.OperationResult[[]rolldb.Banner, Failure], error) {
		banners, err := s.repo.GetBanners(ctx, nil)
		if err != nil {
			return results.OperationResult[[]rolldb.Banner, Failure]{}, err
		}
		return results.SuccessResult[[]rolldb.Banner, Failure](banners), nil
	})
}
