package main

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/cory-johannsen/skirmish/internal/game/campaign"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
)

func TestParseTeam(t *testing.T) {
	assert.Nil(t, parseTeam(""))
	assert.Nil(t, parseTeam("   "))
	assert.Equal(t, []string{"wukong"}, parseTeam("wukong"))
	assert.Equal(t, []string{"wukong", "", "monk"}, parseTeam(" wukong, ,monk "))
}

func TestWriteTranscript_LabelsPassiveRound(t *testing.T) {
	res := combat.Result{Transcript: []combat.Round{
		{Number: 0, Lines: []string{"Team passive: attack +10%."}},
		{Number: 1, Lines: []string{"Hero used Basic Attack on Ogre for 1000."}},
	}}
	var buf bytes.Buffer
	writeTranscript(&buf, newPrinter(), res)
	assert.Equal(t,
		"== Team passives ==\n  Team passive: attack +10%.\n== Round 1 ==\n  Hero used Basic Attack on Ogre for 1000.\n",
		buf.String())
}

func TestWriteSummary_GroupsNumbersButNotSeed(t *testing.T) {
	id := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	res := combat.Result{
		ID:      id,
		Outcome: combat.PlayerWin,
		Rounds:  12,
		Allies:  []combat.Snapshot{{Name: "Hero", HP: 12000, MaxHP: 15000, Energy: 40, Alive: true}},
		Enemies: []combat.Snapshot{{Name: "Ogre", MaxHP: 20000}},
	}
	var buf bytes.Buffer
	writeSummary(&buf, newPrinter(), res, 1234567)
	out := buf.String()
	assert.Contains(t, out, "battle "+id.String()+": player_win after 12 rounds (seed 1234567)")
	assert.Contains(t, out, "12,000/15,000 hp")
	assert.Contains(t, out, "0/20,000 hp")
	assert.Contains(t, out, "down")
}

func TestWriteRewards(t *testing.T) {
	var buf bytes.Buffer
	writeRewards(&buf, newPrinter(), 15, campaign.RewardsFor(15))
	assert.Equal(t, "stage 15 rewards: 1,500 coins, 3 gems, 1 gear, 750 xp, 70 essence\n", buf.String())

	buf.Reset()
	writeRewards(&buf, newPrinter(), 4, campaign.Rewards{})
	assert.Equal(t, "stage 4: no rewards\n", buf.String())
}

func TestWriteProgress(t *testing.T) {
	prog := campaign.NewProgress()
	prog.Record(combat.PlayerWin)
	var buf bytes.Buffer
	writeProgress(&buf, newPrinter(), prog)
	assert.Equal(t, "next stage 2; inventory: 100 coins, 0 gems, 0 gear, 50 xp, 0 essence\n", buf.String())
}
