package rolldb

import (
	"time"

	"github.com/uptrace/bun"

	sharedtypes "github.com/aegis-league/aegis-fantasy/app/shared/types"
)

// Title is reference data for one rollable title. Secondary titles draw from
// a pool disjoint from the primary one.
type Title struct {
	bun.BaseModel `bun:"table:titles,alias:ti"`

	ID          sharedtypes.TitleID  `bun:"id,pk"`
	Type        sharedtypes.TitleTag `bun:"type,notnull"`
	Modifier    float64              `bun:"modifier,notnull"`
	IsSecondary bool                 `bun:"is_secondary,notnull"`
}

// Banner is reference data for one rollable banner. Type maps 1:1 to the
// stat channel the banner multiplies.
type Banner struct {
	bun.BaseModel `bun:"table:banners,alias:ba"`

	ID    sharedtypes.BannerID    `bun:"id,pk"`
	Type  sharedtypes.StatChannel `bun:"type,notnull"`
	Color sharedtypes.BannerColor `bun:"color,notnull"`
}

// UserTitleAssignment is one row of the title roll log. Rows are soft-deleted
// on re-roll; the active assignment for a (user, role) is the latest row with
// a null deleted_at, and used roll counts come from the soft-deleted rows.
type UserTitleAssignment struct {
	bun.BaseModel `bun:"table:user_title_assignments,alias:uta"`

	ID               int64               `bun:"id,pk,autoincrement"`
	UserID           sharedtypes.UserID  `bun:"user_id,notnull"`
	Role             sharedtypes.Role    `bun:"role,notnull"`
	PrimaryTitleID   sharedtypes.TitleID `bun:"primary_title_id,notnull"`
	SecondaryTitleID sharedtypes.TitleID `bun:"secondary_title_id,notnull"`
	CreatedAt        time.Time           `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	DeletedAt        *time.Time          `bun:"deleted_at"`
}

// UserBannerAssignment is one row of the banner roll log, holding the three
// drawn slots. Same soft-delete convention as titles.
type UserBannerAssignment struct {
	bun.BaseModel `bun:"table:user_banner_assignments,alias:uba"`

	ID     int64              `bun:"id,pk,autoincrement"`
	UserID sharedtypes.UserID `bun:"user_id,notnull"`
	Role   sharedtypes.Role   `bun:"role,notnull"`

	TopBannerID      sharedtypes.BannerID `bun:"top_banner_id,notnull"`
	TopMultiplier    float64              `bun:"top_multiplier,notnull"`
	MiddleBannerID   sharedtypes.BannerID `bun:"middle_banner_id,notnull"`
	MiddleMultiplier float64              `bun:"middle_multiplier,notnull"`
	BottomBannerID   sharedtypes.BannerID `bun:"bottom_banner_id,notnull"`
	BottomMultiplier float64              `bun:"bottom_multiplier,notnull"`

	CreatedAt time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	DeletedAt *time.Time `bun:"deleted_at"`
}
