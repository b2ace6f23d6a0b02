package campaign

import "github.com/cory-johannsen/skirmish/internal/game/combat"

// Rewards is the loot granted for clearing a stage.
type Rewards struct {
	Coins   int `json:"coins"`
	Gems    int `json:"gems"`
	Gear    int `json:"gear"`
	XP      int `json:"xp"`
	Essence int `json:"essence"`
}

// RewardsFor returns the rewards for clearing stage.
//
// Precondition: stage >= 1.
func RewardsFor(stage int) Rewards {
	r := Rewards{
		Coins:   100 * stage,
		Gems:    stage / 5,
		XP:      50 * stage,
		Essence: 10 * (stage / 2),
	}
	if stage%3 == 0 {
		r.Gear = 1
	}
	return r
}

// Add returns the field-wise sum of r and o.
func (r Rewards) Add(o Rewards) Rewards {
	return Rewards{
		Coins:   r.Coins + o.Coins,
		Gems:    r.Gems + o.Gems,
		Gear:    r.Gear + o.Gear,
		XP:      r.XP + o.XP,
		Essence: r.Essence + o.Essence,
	}
}

// IsZero reports whether r grants nothing.
func (r Rewards) IsZero() bool { return r == Rewards{} }

// Progress tracks a player's position in the campaign and the loot banked so far.
type Progress struct {
	Stage     int     `json:"stage"`
	Inventory Rewards `json:"inventory"`
}

// NewProgress starts a campaign at stage 1 with nothing banked.
func NewProgress() *Progress {
	return &Progress{Stage: 1}
}

// Record books the outcome of a battle fought at the current stage and
// advances to the next stage. Only an outright win pays out; losses and
// timeouts grant nothing.
//
// Postcondition: Stage is incremented; the returned rewards were added to Inventory.
func (p *Progress) Record(outcome combat.Outcome) Rewards {
	var got Rewards
	if outcome.Won() {
		got = RewardsFor(p.Stage)
		p.Inventory = p.Inventory.Add(got)
	}
	p.Stage++
	return got
}
