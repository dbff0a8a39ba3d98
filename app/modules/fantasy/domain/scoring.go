package fantasydomain

import (
	sharedtypes "github.com/aegis-league/aegis-fantasy/app/shared/types"
)

// Per-channel weights. DEATHS is inverted: its contribution is
// max(1800 - 180*deaths, 0), so a deathless game is worth 1800 and the
// channel bottoms out at ten deaths.
const (
	deathsBase     = 1800.0
	deathsPerDeath = 180.0
)

var baseWeights = map[sharedtypes.StatChannel]float64{
	sharedtypes.StatKills:                  121,
	sharedtypes.StatDeaths:                 deathsPerDeath,
	sharedtypes.StatLastHits:               3,
	sharedtypes.StatGPM:                    2,
	sharedtypes.StatMadstoneCount:          19,
	sharedtypes.StatTowerKills:             340,
	sharedtypes.StatWardsPlaced:            113,
	sharedtypes.StatCampsStacked:           170,
	sharedtypes.StatRunesGrabbed:           121,
	sharedtypes.StatWatchersTaken:          121,
	sharedtypes.StatSmokesUsed:             283,
	sharedtypes.StatRoshanKills:            850,
	sharedtypes.StatTeamfightParticipation: 1895,
	sharedtypes.StatStunTime:               15,
	sharedtypes.StatTormentorKills:         850,
	sharedtypes.StatCourierKills:           850,
	sharedtypes.StatFirstbloodClaimed:      1700,
}

// scoredChannels fixes the iteration order so scores are bit-identical
// across runs.
var scoredChannels = []sharedtypes.StatChannel{
	sharedtypes.StatKills,
	sharedtypes.StatDeaths,
	sharedtypes.StatLastHits,
	sharedtypes.StatGPM,
	sharedtypes.StatMadstoneCount,
	sharedtypes.StatTowerKills,
	sharedtypes.StatWardsPlaced,
	sharedtypes.StatCampsStacked,
	sharedtypes.StatRunesGrabbed,
	sharedtypes.StatWatchersTaken,
	sharedtypes.StatSmokesUsed,
	sharedtypes.StatRoshanKills,
	sharedtypes.StatTeamfightParticipation,
	sharedtypes.StatStunTime,
	sharedtypes.StatTormentorKills,
	sharedtypes.StatCourierKills,
	sharedtypes.StatFirstbloodClaimed,
}

// BannerModifier is an active banner for the role being scored: a multiplier
// bound to one stat channel.
type BannerModifier struct {
	Channel    sharedtypes.StatChannel
	Multiplier float64
}

// TitleModifier is an active title for the role being scored: a whole-score
// bonus granted when the performance carries the matching eligibility tag.
type TitleModifier struct {
	Tag      sharedtypes.TitleTag
	Modifier float64
}

func channelValue(perf sharedtypes.PerformanceLine, channel sharedtypes.StatChannel) float64 {
	switch channel {
	case sharedtypes.StatKills:
		return float64(perf.Kills)
	case sharedtypes.StatDeaths:
		return float64(perf.Deaths)
	case sharedtypes.StatLastHits:
		return float64(perf.LastHits)
	case sharedtypes.StatGPM:
		return float64(perf.GPM)
	case sharedtypes.StatMadstoneCount:
		return float64(perf.MadstoneCount)
	case sharedtypes.StatTowerKills:
		return float64(perf.TowerKills)
	case sharedtypes.StatWardsPlaced:
		return float64(perf.WardsPlaced)
	case sharedtypes.StatCampsStacked:
		return float64(perf.CampsStacked)
	case sharedtypes.StatRunesGrabbed:
		return float64(perf.RunesGrabbed)
	case sharedtypes.StatWatchersTaken:
		return float64(perf.WatchersTaken)
	case sharedtypes.StatSmokesUsed:
		return float64(perf.SmokesUsed)
	case sharedtypes.StatRoshanKills:
		return float64(perf.RoshanKills)
	case sharedtypes.StatTeamfightParticipation:
		return perf.TeamfightParticipation
	case sharedtypes.StatStunTime:
		return perf.StunTime
	case sharedtypes.StatTormentorKills:
		return float64(perf.TormentorKills)
	case sharedtypes.StatCourierKills:
		return float64(perf.CourierKills)
	case sharedtypes.StatFirstbloodClaimed:
		if perf.FirstbloodClaimed {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// Score computes one performance's fantasy score under the given active
// modifiers. Channels with a bound banner are multiplied before summing;
// eligible titles stack additively into a single multiplier applied to the
// summed base score.
func Score(perf sharedtypes.PerformanceLine, banners []BannerModifier, titles []TitleModifier) float64 {
	multipliers := make(map[sharedtypes.StatChannel]float64, len(banners))
	for _, b := range banners {
		multipliers[b.Channel] = b.Multiplier
	}

	var base float64
	for _, channel := range scoredChannels {
		contribution := channelValue(perf, channel) * baseWeights[channel]
		if channel == sharedtypes.StatDeaths {
			contribution = deathsBase - contribution
			if contribution < 0 {
				contribution = 0
			}
		}
		if m, ok := multipliers[channel]; ok {
			contribution *= m
		}
		base += contribution
	}

	titleMultiplier := 1.0
	for _, t := range titles {
		if perf.HasTitle(t.Tag) {
			titleMultiplier += t.Modifier
		}
	}

	return base * titleMultiplier
}
