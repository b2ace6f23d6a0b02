package skill

// Action tags used in the catalog's effect payloads.
const (
	ActionDamage   = "damage"
	ActionHeal     = "heal"
	ActionBuff     = "buff"
	ActionDebuff   = "debuff"
	ActionEnergy   = "energy"
	ActionTaunt    = "taunt"
	ActionUltimate = "ultimate"
	ActionPassive  = "passive"
)

// Effect is the closed set of things a skill can do. The unexported marker
// keeps the set closed to this package; resolution switches over the
// concrete types exhaustively.
type Effect interface {
	// Action returns the catalog tag for the effect.
	Action() string
	isEffect()
}

// BuffTarget selects who receives a Buff.
type BuffTarget string

const (
	TargetSelf       BuffTarget = "self"
	TargetAllyAll    BuffTarget = "ally_all"
	TargetAllySingle BuffTarget = "ally_single"
)

// DebuffTarget selects who receives a Debuff. Only every living enemy is supported.
type DebuffTarget string

const TargetEnemyAll DebuffTarget = "enemy_all"

// Damage deals attack-scaled damage to one enemy or every enemy.
type Damage struct {
	Mult    float64
	AoE     bool
	Pierce  float64
	FlatAdd float64
	// ExtraVsClass, when non-empty, adds ExtraVsClassMult against targets of that class.
	ExtraVsClass string
}

// ExtraVsClassMult is the fixed multiplier applied by Damage.ExtraVsClass.
const ExtraVsClassMult = 1.20

// Heal restores attack-scaled hit points to one ally or every ally.
type Heal struct {
	Mult float64
	AoE  bool
}

// Buff writes a timed stat modifier onto allies.
type Buff struct {
	Stat      string
	Amount    float64
	Turns     int
	Target    BuffTarget
	IsPercent bool
}

// Debuff writes a timed stat modifier onto every living enemy.
type Debuff struct {
	Stat      string
	Amount    float64
	Turns     int
	Target    DebuffTarget
	IsPercent bool
}

// EnergyGrant adds energy to every living ally.
type EnergyGrant struct {
	Amount float64
}

// Taunt forces opposing default targeting onto the caster.
type Taunt struct {
	Turns int
}

// Ultimate is a composite effect; every part is optional.
type Ultimate struct {
	// Mult > 0 deals damage with the standard formula and no skill pierce.
	Mult        float64
	Stun        int
	EnergyDrain bool
	StealEnergy float64
	AoE         bool
}

// PassiveHook is never cast. Its fields are consulted during damage
// resolution (IgnoreDefenseChance, FirstStrikeBonus), at battle start
// (AllyAttackPct, AllyDefensePct, ExtraVsClassBonus), or every turn (RegenPerTurn).
type PassiveHook struct {
	IgnoreDefenseChance float64
	CritDmgMultOnIgnore float64
	FirstStrikeBonus    float64
	AllyAttackPct       float64
	AllyDefensePct      float64
	RegenPerTurn        float64
	ExtraVsClassBonus   float64
	// BonusClass is the ally class that receives ExtraVsClassBonus as crit damage.
	BonusClass string
}

func (Damage) Action() string      { return ActionDamage }
func (Heal) Action() string        { return ActionHeal }
func (Buff) Action() string        { return ActionBuff }
func (Debuff) Action() string      { return ActionDebuff }
func (EnergyGrant) Action() string { return ActionEnergy }
func (Taunt) Action() string       { return ActionTaunt }
func (Ultimate) Action() string    { return ActionUltimate }
func (PassiveHook) Action() string { return ActionPassive }

func (Damage) isEffect()      {}
func (Heal) isEffect()        {}
func (Buff) isEffect()        {}
func (Debuff) isEffect()      {}
func (EnergyGrant) isEffect() {}
func (Taunt) isEffect()       {}
func (Ultimate) isEffect()    {}
func (PassiveHook) isEffect() {}
