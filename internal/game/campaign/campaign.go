// Package campaign generates stage-scaled enemy teams and the rewards for
// clearing a stage.
package campaign

import (
	"errors"
	"fmt"
	"math"

	"github.com/cory-johannsen/skirmish/internal/game/character"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/stats"
)

// TeamSize is the number of enemies generated per stage.
const TeamSize = 5

// StageGrowth is the per-stage multiplier applied to enemy hp, attack and defense.
const StageGrowth = 1.05

// ErrEmptyPool is returned when a team is requested from an empty template pool.
var ErrEmptyPool = errors.New("campaign: enemy pool is empty")

// scaledStats are the stats multiplied by Scale(stage).
var scaledStats = []string{stats.HP, stats.Attack, stats.Defense}

// EnemyDefaults fill base stats a generated enemy's template leaves unset.
// They differ from stats.Fallbacks so campaign enemies dodge a little and
// open with some energy.
var EnemyDefaults = stats.Block{
	stats.Dodge:  0.02,
	stats.Energy: 20,
}

// Scale returns StageGrowth^stage.
func Scale(stage int) float64 {
	return math.Pow(StageGrowth, float64(stage))
}

// GenerateTeam draws TeamSize templates from pool with replacement and scales
// each for stage. Generated ids are suffixed with the slot index and names
// with the 1-based slot so duplicates stay distinguishable in transcripts.
//
// Precondition: stage >= 1; src must not be nil.
// Postcondition: Returns exactly TeamSize definitions; pool entries are not mutated.
func GenerateTeam(stage int, pool []*character.Definition, src dice.Source) ([]*character.Definition, error) {
	if stage < 1 {
		return nil, fmt.Errorf("campaign: stage must be >= 1, got %d", stage)
	}
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}
	scale := Scale(stage)
	team := make([]*character.Definition, 0, TeamSize)
	for slot := 0; slot < TeamSize; slot++ {
		tmpl := pool[src.Intn(len(pool))]
		if tmpl == nil {
			return nil, fmt.Errorf("campaign: pool entry for slot %d is nil", slot)
		}
		team = append(team, scaled(tmpl, slot, scale))
	}
	return team, nil
}

func scaled(tmpl *character.Definition, slot int, scale float64) *character.Definition {
	out := *tmpl
	out.ID = fmt.Sprintf("%s_%d", tmpl.ID, slot)
	out.Name = fmt.Sprintf("%s %d", tmpl.DisplayName(), slot+1)
	out.BaseStats = tmpl.BaseStats.Clone()
	for k, v := range EnemyDefaults {
		if _, ok := out.BaseStats[k]; !ok {
			out.BaseStats[k] = v
		}
	}
	for _, k := range scaledStats {
		out.BaseStats[k] = math.Floor(tmpl.BaseStats.Get(k) * scale)
	}
	return &out
}
