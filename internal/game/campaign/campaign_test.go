package campaign_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/skirmish/internal/game/campaign"
	"github.com/cory-johannsen/skirmish/internal/game/character"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/stats"
)

// seqSrc returns the queued Intn results in order, wrapping around.
type seqSrc struct {
	picks []int
	i     int
}

func (s *seqSrc) Intn(n int) int {
	v := s.picks[s.i%len(s.picks)] % n
	s.i++
	return v
}

func (s *seqSrc) Float64() float64 { return 0 }

func pool() []*character.Definition {
	return []*character.Definition{
		{ID: "bandit", Name: "Bandit", Rarity: stats.Rare, Class: "Warrior", Level: 1, Stars: 1,
			BaseStats: stats.Block{stats.HP: 1000, stats.Attack: 200, stats.Defense: 300, stats.Speed: 90}},
		{ID: "shaman", Name: "Shaman", Rarity: stats.Epic, Class: "Healer", Level: 1, Stars: 1,
			BaseStats: stats.Block{stats.HP: 800, stats.Attack: 150, stats.Speed: 100}},
	}
}

func TestGenerateTeam_ScalesAndSuffixes(t *testing.T) {
	p := pool()
	team, err := campaign.GenerateTeam(10, p, &seqSrc{picks: []int{0, 1, 0, 0, 1}})
	require.NoError(t, err)
	require.Len(t, team, campaign.TeamSize)

	scale := math.Pow(1.05, 10)
	assert.Equal(t, "bandit_0", team[0].ID)
	assert.Equal(t, "Bandit 1", team[0].Name)
	assert.Equal(t, "shaman_1", team[1].ID)
	assert.Equal(t, "Shaman 2", team[1].Name)
	assert.Equal(t, math.Floor(1000*scale), team[0].BaseStats[stats.HP])
	assert.Equal(t, math.Floor(200*scale), team[0].BaseStats[stats.Attack])
	assert.Equal(t, math.Floor(300*scale), team[0].BaseStats[stats.Defense])
	assert.Equal(t, 90.0, team[0].BaseStats[stats.Speed], "speed is not scaled")
	assert.Equal(t, math.Floor(50*scale), team[1].BaseStats[stats.Defense], "missing defense scales from its fallback")
	assert.Equal(t, stats.Epic, team[1].Rarity)

	assert.Equal(t, 1000.0, p[0].BaseStats[stats.HP], "templates are not mutated")
	assert.Equal(t, "bandit", p[0].ID)
	_, has := p[1].BaseStats[stats.Defense]
	assert.False(t, has)
}

func TestGenerateTeam_FillsEnemyDefaults(t *testing.T) {
	p := pool()
	p[0].BaseStats[stats.Dodge] = 0.1
	team, err := campaign.GenerateTeam(1, p, &seqSrc{picks: []int{0, 1}})
	require.NoError(t, err)

	assert.Equal(t, 0.1, team[0].BaseStats[stats.Dodge], "template value wins")
	assert.Equal(t, 20.0, team[0].BaseStats[stats.Energy])
	assert.Equal(t, 0.02, team[1].BaseStats[stats.Dodge])
	assert.Equal(t, 20.0, team[1].BaseStats[stats.Energy])
	_, has := p[1].BaseStats[stats.Energy]
	assert.False(t, has, "templates are not mutated")
}

func TestGenerateTeam_Errors(t *testing.T) {
	_, err := campaign.GenerateTeam(1, nil, &seqSrc{picks: []int{0}})
	assert.True(t, errors.Is(err, campaign.ErrEmptyPool))

	_, err = campaign.GenerateTeam(0, pool(), &seqSrc{picks: []int{0}})
	assert.Error(t, err)

	_, err = campaign.GenerateTeam(1, []*character.Definition{nil}, &seqSrc{picks: []int{0}})
	assert.Error(t, err)
}

func TestGenerateTeam_ValidForEngine(t *testing.T) {
	team, err := campaign.GenerateTeam(3, pool(), dice.NewSeededSource(7))
	require.NoError(t, err)
	for _, d := range team {
		assert.NoError(t, d.Validate())
		c := combat.New(d, combat.SideEnemy)
		assert.True(t, c.IsAlive())
	}
}

func TestRewardsFor(t *testing.T) {
	cases := []struct {
		stage int
		want  campaign.Rewards
	}{
		{1, campaign.Rewards{Coins: 100, XP: 50}},
		{2, campaign.Rewards{Coins: 200, XP: 100, Essence: 10}},
		{3, campaign.Rewards{Coins: 300, Gear: 1, XP: 150, Essence: 10}},
		{5, campaign.Rewards{Coins: 500, Gems: 1, XP: 250, Essence: 20}},
		{15, campaign.Rewards{Coins: 1500, Gems: 3, Gear: 1, XP: 750, Essence: 70}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, campaign.RewardsFor(tc.stage), "stage %d", tc.stage)
	}
}

func TestProgress_Record(t *testing.T) {
	p := campaign.NewProgress()

	got := p.Record(combat.PlayerWin)
	assert.Equal(t, campaign.RewardsFor(1), got)
	assert.Equal(t, 2, p.Stage)

	got = p.Record(combat.TimedOut)
	assert.True(t, got.IsZero(), "a timed-out battle pays nothing")
	assert.Equal(t, 3, p.Stage)

	got = p.Record(combat.PlayerLoss)
	assert.True(t, got.IsZero())

	p.Record(combat.PlayerWin)
	assert.Equal(t, campaign.RewardsFor(1).Add(campaign.RewardsFor(4)), p.Inventory)
	assert.Equal(t, 5, p.Stage)
}

func TestProperty_ScaleMonotonic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		stage := rapid.IntRange(1, 200).Draw(rt, "stage")
		if campaign.Scale(stage+1) <= campaign.Scale(stage) {
			rt.Fatalf("scale did not grow at stage %d", stage)
		}
		r, next := campaign.RewardsFor(stage), campaign.RewardsFor(stage+1)
		if next.Coins <= r.Coins || next.XP <= r.XP || next.Gems < r.Gems || next.Essence < r.Essence {
			rt.Fatalf("rewards shrank between stage %d and %d: %+v -> %+v", stage, stage+1, r, next)
		}
	})
}
