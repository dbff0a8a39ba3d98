package rollservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	fantasydomain "github.com/aegis-league/aegis-fantasy/app/modules/fantasy/domain"
	rolldomain "github.com/aegis-league/aegis-fantasy/app/modules/roll/domain"
	rolldb "github.com/aegis-league/aegis-fantasy/app/modules/roll/infrastructure/repositories"
	sharedtypes "github.com/aegis-league/aegis-fantasy/app/shared/types"
	"github.com/aegis-league/aegis-fantasy/internal/observability/attr"
)

// ActiveModifiers resolves the active assignments of a (user, role) into the
// scoring modifiers the fantasy module applies. A role with no assignments
// yields empty slices, not an error.
func (s *RollService) ActiveModifiers(ctx context.Context, userID sharedtypes.UserID, role sharedtypes.Role) ([]fantasydomain.BannerModifier, []fantasydomain.TitleModifier, error) {
	bannerAssignment, err := s.repo.GetActiveBannerAssignment(ctx, nil, userID, role)
	if err != nil && !errors.Is(err, rolldb.ErrNotFound) {
		return nil, nil, fmt.Errorf("ActiveModifiers: %w", err)
	}
	titleAssignment, err := s.repo.GetActiveTitleAssignment(ctx, nil, userID, role)
	if err != nil && !errors.Is(err, rolldb.ErrNotFound) {
		return nil, nil, fmt.Errorf("ActiveModifiers: %w", err)
	}
	if bannerAssignment == nil && titleAssignment == nil {
		return nil, nil, nil
	}

	var bannerMods []fantasydomain.BannerModifier
	if bannerAssignment != nil {
		banners, err := s.repo.GetBanners(ctx, nil)
		if err != nil {
			return nil, nil, fmt.Errorf("ActiveModifiers: %w", err)
		}
		channelByID := make(map[sharedtypes.BannerID]sharedtypes.StatChannel, len(banners))
		for _, b := range banners {
			channelByID[b.ID] = b.Type
		}
		slots := []struct {
			id   sharedtypes.BannerID
			mult float64
		}{
			{bannerAssignment.TopBannerID, bannerAssignment.TopMultiplier},
			{bannerAssignment.MiddleBannerID, bannerAssignment.MiddleMultiplier},
			{bannerAssignment.BottomBannerID, bannerAssignment.BottomMultiplier},
		}
		for _, slot := range slots {
			channel, ok := channelByID[slot.id]
			if !ok {
				return nil, nil, fmt.Errorf("ActiveModifiers: banner %s not in reference pool", slot.id)
			}
			bannerMods = append(bannerMods, fantasydomain.BannerModifier{
				Channel:    channel,
				Multiplier: slot.mult,
			})
		}
	}

	var titleMods []fantasydomain.TitleModifier
	if titleAssignment != nil {
		titles, err := s.repo.GetTitles(ctx, nil)
		if err != nil {
			return nil, nil, fmt.Errorf("ActiveModifiers: %w", err)
		}
		titleByID := make(map[sharedtypes.TitleID]rolldb.Title, len(titles))
		for _, t := range titles {
			titleByID[t.ID] = t
		}
		for _, id := range []sharedtypes.TitleID{titleAssignment.PrimaryTitleID, titleAssignment.SecondaryTitleID} {
			title, ok := titleByID[id]
			if !ok {
				return nil, nil, fmt.Errorf("ActiveModifiers: title %s not in reference pool", id)
			}
			titleMods = append(titleMods, fantasydomain.TitleModifier{
				Tag:      title.Type,
				Modifier: title.Modifier,
			})
		}
	}

	return bannerMods, titleMods, nil
}

// SeedInitialAssignments grants the first title pair and banner triple when a
// roster role is filled for the first time. Seeding inserts fresh rows without
// soft-deleting anything, so it never spends the roll budget. A role that
// already has active assignments is left untouched.
func (s *RollService) SeedInitialAssignments(ctx context.Context, userID sharedtypes.UserID, role sharedtypes.Role) error {
	if !role.Valid() {
		return fmt.Errorf("SeedInitialAssignments: %w: %d", rolldomain.ErrInvalidRole, role)
	}

	seed := func(ctx context.Context, db bun.IDB) error {
		return s.seedTx(ctx, db, userID, role)
	}

	var err error
	if s.db == nil {
		err = seed(ctx, nil)
	} else {
		err = s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
			return seed(ctx, tx)
		})
	}
	if err != nil {
		return fmt.Errorf("SeedInitialAssignments: %w", err)
	}

	s.logger.InfoContext(ctx, "seeded initial assignments",
		attr.ExtractCorrelationID(ctx),
		attr.UserID("user_id", userID),
		attr.Role("role", role),
	)
	return nil
}

func (s *RollService) seedTx(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, role sharedtypes.Role) error {
	if _, err := s.repo.GetActiveTitleAssignment(ctx, db, userID, role); err == nil {
		return nil
	} else if !errors.Is(err, rolldb.ErrNotFound) {
		return err
	}

	titles, err := s.repo.GetTitles(ctx, db)
	if err != nil {
		return err
	}
	titleRoll, err := rolldomain.RollTitle(s.rng, titlePools(titles))
	if err != nil {
		return err
	}
	if err := s.repo.ReplaceTitleAssignment(ctx, db, &rolldb.UserTitleAssignment{
		UserID:           userID,
		Role:             role,
		PrimaryTitleID:   titleRoll.PrimaryID,
		SecondaryTitleID: titleRoll.SecondaryID,
	}); err != nil {
		return err
	}

	banners, err := s.repo.GetBanners(ctx, db)
	if err != nil {
		return err
	}
	bannerRoll, err := rolldomain.RollBanner(s.rng, role, bannerPools(banners))
	if err != nil {
		return err
	}
	return s.repo.ReplaceBannerAssignment(ctx, db, bannerAssignment(userID, role, bannerRoll))
}
