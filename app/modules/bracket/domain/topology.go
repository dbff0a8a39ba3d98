package bracketdomain

import (
	"errors"
	"fmt"

	sharedtypes "github.com/aegis-league/aegis-fantasy/app/shared/types"
)

// Configuration errors. These indicate a mis-authored topology table, never
// bad user input, and are fatal for the deployment that ships the table.
var (
	ErrUnknownMatch  = errors.New("match key not present in bracket topology")
	ErrTopologyCycle = errors.New("bracket topology contains a cycle")
)

// MatchKey identifies one match slot in the bracket shape. It is a positional
// key, not a storage ID, so the same table serves every season.
type MatchKey struct {
	Round    int
	Sequence int
	Side     sharedtypes.BracketSide
}

func (k MatchKey) String() string {
	return fmt.Sprintf("%s r%d s%d", k.Side, k.Round, k.Sequence)
}

// Select picks which team a Reference source takes from its ancestor match.
type Select int

const (
	SelectWinner Select = iota
	SelectLoser
)

// SourceKind discriminates the two Source variants.
type SourceKind int

const (
	// SourceSeed marks a bracket leaf: the teams are fixed on the match
	// record itself rather than derived from an ancestor.
	SourceSeed SourceKind = iota
	SourceReference
)

// Source describes where one side of a match comes from.
type Source struct {
	Kind SourceKind
	Ref  MatchKey
	Take Select
}

func Seed() Source {
	return Source{Kind: SourceSeed}
}

func WinnerOf(key MatchKey) Source {
	return Source{Kind: SourceReference, Ref: key, Take: SelectWinner}
}

func LoserOf(key MatchKey) Source {
	return Source{Kind: SourceReference, Ref: key, Take: SelectLoser}
}

// Topology is the declarative bracket shape: for every match, where its left
// and right side come from. It is the only place bracket-shape knowledge
// lives; supporting a different bracket size means authoring a new table.
type Topology map[MatchKey][2]Source

// SourceOf returns the source for one side of a match. An unknown key is a
// configuration error, not a user-facing condition.
func (t Topology) SourceOf(key MatchKey, side MatchSide) (Source, error) {
	sources, ok := t[key]
	if !ok {
		return Source{}, fmt.Errorf("%w: %s", ErrUnknownMatch, key)
	}
	return sources[side], nil
}

// MatchSide indexes the two slots of a match.
type MatchSide int

const (
	SideLeft MatchSide = iota
	SideRight
)

// Validate checks that every Reference points at a key in the table and that
// following references always terminates. Run once at startup.
func (t Topology) Validate() error {
	for key, sources := range t {
		for _, src := range sources {
			if src.Kind != SourceReference {
				continue
			}
			if _, ok := t[src.Ref]; !ok {
				return fmt.Errorf("%w: %s references %s", ErrUnknownMatch, key, src.Ref)
			}
		}
	}

	// A reference chain longer than the table itself must revisit a key.
	for key := range t {
		if err := t.walk(key, len(t)); err != nil {
			return err
		}
	}
	return nil
}

func (t Topology) walk(key MatchKey, budget int) error {
	if budget < 0 {
		return fmt.Errorf("%w: detected at %s", ErrTopologyCycle, key)
	}
	for _, src := range t[key] {
		if src.Kind != SourceReference {
			continue
		}
		if err := t.walk(src.Ref, budget-1); err != nil {
			return err
		}
	}
	return nil
}

func upper(round, sequence int) MatchKey {
	return MatchKey{Round: round, Sequence: sequence, Side: sharedtypes.BracketUpper}
}

func lower(round, sequence int) MatchKey {
	return MatchKey{Round: round, Sequence: sequence, Side: sharedtypes.BracketLower}
}

// DoubleElim16 is the bracket shape used for the current season: a sixteen
// slot double elimination with upper rounds 2/4/6, lower rounds 1 through 7,
// and a single grand final stored as round 8 on the lower side.
//
// Upper losers drop into the odd lower rounds: lower round r (r in 3,5,7)
// seats the loser of the same-sequence upper match from round r-1 on its
// left, against the surviving lower team on its right. Even lower rounds
// pair adjacent winners of the previous lower round, as the upper rounds do.
func DoubleElim16() Topology {
	t := Topology{}

	// Upper quarterfinals and the lower first round are the seeded leaves.
	for seq := 1; seq <= 4; seq++ {
		t[upper(2, seq)] = [2]Source{Seed(), Seed()}
	}
	for seq := 1; seq <= 8; seq++ {
		t[lower(1, seq)] = [2]Source{Seed(), Seed()}
	}

	// Upper semifinals and final.
	for seq := 1; seq <= 2; seq++ {
		t[upper(4, seq)] = [2]Source{
			WinnerOf(upper(2, seq*2-1)),
			WinnerOf(upper(2, seq*2)),
		}
	}
	t[upper(6, 1)] = [2]Source{
		WinnerOf(upper(4, 1)),
		WinnerOf(upper(4, 2)),
	}

	// Lower rounds that pair previous lower winners.
	for seq := 1; seq <= 4; seq++ {
		t[lower(2, seq)] = [2]Source{
			WinnerOf(lower(1, seq*2-1)),
			WinnerOf(lower(1, seq*2)),
		}
	}
	for seq := 1; seq <= 2; seq++ {
		t[lower(4, seq)] = [2]Source{
			WinnerOf(lower(3, seq*2-1)),
			WinnerOf(lower(3, seq*2)),
		}
	}
	t[lower(6, 1)] = [2]Source{
		WinnerOf(lower(5, 1)),
		WinnerOf(lower(5, 2)),
	}

	// Lower rounds that receive upper losers.
	for seq := 1; seq <= 4; seq++ {
		t[lower(3, seq)] = [2]Source{
			LoserOf(upper(2, seq)),
			WinnerOf(lower(2, seq)),
		}
	}
	for seq := 1; seq <= 2; seq++ {
		t[lower(5, seq)] = [2]Source{
			LoserOf(upper(4, seq)),
			WinnerOf(lower(4, seq)),
		}
	}
	t[lower(7, 1)] = [2]Source{
		LoserOf(upper(6, 1)),
		WinnerOf(lower(6, 1)),
	}

	// Grand final.
	t[lower(8, 1)] = [2]Source{
		WinnerOf(upper(6, 1)),
		WinnerOf(lower(7, 1)),
	}

	return t
}
