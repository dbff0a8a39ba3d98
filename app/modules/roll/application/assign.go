package rollservice

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	rolldomain "github.com/aegis-league/aegis-fantasy/app/modules/roll/domain"
	rolldb "github.com/aegis-league/aegis-fantasy/app/modules/roll/infrastructure/repositories"
	"github.com/aegis-league/aegis-fantasy/app/shared/events"
	"github.com/aegis-league/aegis-fantasy/app/shared/results"
	sharedtypes "github.com/aegis-league/aegis-fantasy/app/shared/types"
	"github.com/aegis-league/aegis-fantasy/internal/observability/attr"
)

// Roll families, used for metrics labels and event payloads.
const (
	FamilyTitle  = "title"
	FamilyBanner = "banner"
)

// TitleAssignmentView is the accepted outcome of a title roll.
type TitleAssignmentView struct {
	UserID           sharedtypes.UserID  `json:"user_id"`
	Role             sharedtypes.Role    `json:"role"`
	PrimaryTitleID   sharedtypes.TitleID `json:"primary_title_id"`
	SecondaryTitleID sharedtypes.TitleID `json:"secondary_title_id"`
	Remaining        int                 `json:"remaining"`
}

// BannerSlotView is one slot of an accepted banner roll.
type BannerSlotView struct {
	BannerID   sharedtypes.BannerID `json:"banner_id"`
	Multiplier float64              `json:"multiplier"`
}

// BannerAssignmentView is the accepted outcome of a banner roll, slots in
// top, middle, bottom order.
type BannerAssignmentView struct {
	UserID    sharedtypes.UserID `json:"user_id"`
	Role      sharedtypes.Role   `json:"role"`
	Slots     [3]BannerSlotView  `json:"slots"`
	Remaining int                `json:"remaining"`
}

// RollTitle replaces the active title pair for a (user, role) with a fresh
// draw. The previous pair is gone for good; the roll spends one point of the
// title budget.
func (s *RollService) RollTitle(ctx context.Context, userID sharedtypes.UserID, role sharedtypes.Role) (results.OperationResult[TitleAssignmentView, Failure], error) {
	return serviceWrapper(ctx, s, "RollTitle", func(ctx context.Context) (results.OperationResult[TitleAssignmentView, Failure], error) {
		if !role.Valid() {
			return results.FailureResult[TitleAssignmentView](Failure{
				Reason:  ReasonInvalidRole,
				Message: fmt.Sprintf("role %d is not a valid role", role),
			}), nil
		}

		open, err := s.flags.RosterOpen(ctx)
		if err != nil {
			return results.OperationResult[TitleAssignmentView, Failure]{}, fmt.Errorf("checking roster gate: %w", err)
		}
		if !open {
			return results.FailureResult[TitleAssignmentView](Failure{
				Reason:  ReasonRosterLocked,
				Message: "rolling is closed",
			}), nil
		}

		result, err := runInTx(ctx, s, func(ctx context.Context, db bun.IDB) (results.OperationResult[TitleAssignmentView, Failure], error) {
			return s.rollTitleTx(ctx, db, userID, role)
		})
		if err != nil || result.IsFailure() {
			return result, err
		}

		s.metrics.RecordRoll(ctx, FamilyTitle)
		s.publishRollAssigned(ctx, userID, role, FamilyTitle, result.Success.Remaining)
		return result, nil
	})
}

func (s *RollService) rollTitleTx(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, role sharedtypes.Role) (results.OperationResult[TitleAssignmentView, Failure], error) {
	used, err := s.repo.CountTitleRolls(ctx, db, userID, role)
	if err != nil {
		return results.OperationResult[TitleAssignmentView, Failure]{}, fmt.Errorf("counting title rolls: %w", err)
	}
	if used >= s.caps.Title {
		s.metrics.RecordRollBudgetExceeded(ctx, FamilyTitle)
		return results.FailureResult[TitleAssignmentView](Failure{
			Reason:  ReasonRollBudgetExceeded,
			Message: fmt.Sprintf("all %d title rolls are spent for this role", s.caps.Title),
		}), nil
	}

	titles, err := s.repo.GetTitles(ctx, db)
	if err != nil {
		return results.OperationResult[TitleAssignmentView, Failure]{}, fmt.Errorf("loading title pool: %w", err)
	}

	roll, err := rolldomain.RollTitle(s.rng, titlePools(titles))
	if err != nil {
		return results.OperationResult[TitleAssignmentView, Failure]{}, err
	}

	assignment := &rolldb.UserTitleAssignment{
		UserID:           userID,
		Role:             role,
		PrimaryTitleID:   roll.PrimaryID,
		SecondaryTitleID: roll.SecondaryID,
	}
	if err := s.repo.ReplaceTitleAssignment(ctx, db, assignment); err != nil {
		return results.OperationResult[TitleAssignmentView, Failure]{}, err
	}

	return results.SuccessResult[TitleAssignmentView, Failure](TitleAssignmentView{
		UserID:           userID,
		Role:             role,
		PrimaryTitleID:   roll.PrimaryID,
		SecondaryTitleID: roll.SecondaryID,
		Remaining:        s.caps.Title - used - 1,
	}), nil
}

// RollBanner replaces the active banner triple for a (user, role) with a
// fresh draw. Spends one point of the banner budget.
func (s *RollService) RollBanner(ctx context.Context, userID sharedtypes.UserID, role sharedtypes.Role) (results.OperationResult[BannerAssignmentView, Failure], error) {
	return serviceWrapper(ctx, s, "RollBanner", func(ctx context.Context) (results.OperationResult[BannerAssignmentView, Failure], error) {
		if !role.Valid() {
			return results.FailureResult[BannerAssignmentView](Failure{
				Reason:  ReasonInvalidRole,
				Message: fmt.Sprintf("role %d is not a valid role", role),
			}), nil
		}

		open, err := s.flags.RosterOpen(ctx)
		if err != nil {
			return results.OperationResult[BannerAssignmentView, Failure]{}, fmt.Errorf("checking roster gate: %w", err)
		}
		if !open {
			return results.FailureResult[BannerAssignmentView](Failure{
				Reason:  ReasonRosterLocked,
				Message: "rolling is closed",
			}), nil
		}

		result, err := runInTx(ctx, s, func(ctx context.Context, db bun.IDB) (results.OperationResult[BannerAssignmentView, Failure], error) {
			return s.rollBannerTx(ctx, db, userID, role)
		})
		if err != nil || result.IsFailure() {
			return result, err
		}

		s.metrics.RecordRoll(ctx, FamilyBanner)
		s.publishRollAssigned(ctx, userID, role, FamilyBanner, result.Success.Remaining)
		return result, nil
	})
}

func (s *RollService) rollBannerTx(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, role sharedtypes.Role) (results.OperationResult[BannerAssignmentView, Failure], error) {
	used, err := s.repo.CountBannerRolls(ctx, db, userID, role)
	if err != nil {
		return results.OperationResult[BannerAssignmentView, Failure]{}, fmt.Errorf("counting banner rolls: %w", err)
	}
	if used >= s.caps.Banner {
		s.metrics.RecordRollBudgetExceeded(ctx, FamilyBanner)
		return results.FailureResult[BannerAssignmentView](Failure{
			Reason:  ReasonRollBudgetExceeded,
			Message: fmt.Sprintf("all %d banner rolls are spent for this role", s.caps.Banner),
		}), nil
	}

	banners, err := s.repo.GetBanners(ctx, db)
	if err != nil {
		return results.OperationResult[BannerAssignmentView, Failure]{}, fmt.Errorf("loading banner pool: %w", err)
	}

	roll, err := rolldomain.RollBanner(s.rng, role, bannerPools(banners))
	if err != nil {
		return results.OperationResult[BannerAssignmentView, Failure]{}, err
	}

	assignment := bannerAssignment(userID, role, roll)
	if err := s.repo.ReplaceBannerAssignment(ctx, db, assignment); err != nil {
		return results.OperationResult[BannerAssignmentView, Failure]{}, err
	}

	return results.SuccessResult[BannerAssignmentView, Failure](bannerView(assignment, s.caps.Banner-used-1)), nil
}

func (s *RollService) publishRollAssigned(ctx context.Context, userID sharedtypes.UserID, role sharedtypes.Role, family string, remaining int) {
	payload := events.RollAssignedPayloadV1{
		UserID:    userID,
		Role:      role,
		Family:    family,
		Remaining: remaining,
	}
	if err := s.eventBus.Publish(ctx, events.RollAssigned, payload); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish roll assigned event",
			attr.ExtractCorrelationID(ctx),
			attr.UserID("user_id", userID),
			attr.String("family", family),
			attr.Error(err),
		)
	}
}

func titlePools(titles []rolldb.Title) rolldomain.TitlePools {
	var pools rolldomain.TitlePools
	for _, t := range titles {
		if t.IsSecondary {
			pools.Secondary = append(pools.Secondary, t.ID)
		} else {
			pools.Primary = append(pools.Primary, t.ID)
		}
	}
	return pools
}

func bannerPools(banners []rolldb.Banner) rolldomain.BannerPools {
	var pools rolldomain.BannerPools
	for _, b := range banners {
		switch b.Color {
		case sharedtypes.BannerRed:
			pools.Red = append(pools.Red, b.ID)
		case sharedtypes.BannerBlue:
			pools.Blue = append(pools.Blue, b.ID)
		case sharedtypes.BannerGreen:
			pools.Green = append(pools.Green, b.ID)
		}
	}
	return pools
}

func bannerAssignment(userID sharedtypes.UserID, role sharedtypes.Role, roll rolldomain.BannerRoll) *rolldb.UserBannerAssignment {
	return &rolldb.UserBannerAssignment{
		UserID:           userID,
		Role:             role,
		TopBannerID:      roll.Top.BannerID,
		TopMultiplier:    roll.Top.Multiplier,
		MiddleBannerID:   roll.Middle.BannerID,
		MiddleMultiplier: roll.Middle.Multiplier,
		BottomBannerID:   roll.Bottom.BannerID,
		BottomMultiplier: roll.Bottom.Multiplier,
	}
}

func bannerView(a *rolldb.UserBannerAssignment, remaining int) BannerAssignmentView {
	return BannerAssignmentView{
		UserID: a.UserID,
		Role:   a.Role,
		Slots: [3]BannerSlotView{
			{BannerID: a.TopBannerID, Multiplier: a.TopMultiplier},
			{BannerID: a.MiddleBannerID, Multiplier: a.MiddleMultiplier},
			{BannerID: a.BottomBannerID, Multiplier: a.BottomMultiplier},
		},
		Remaining: remaining,
	}
}
