package combat

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/config"
	"github.com/cory-johannsen/skirmish/internal/game/character"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/skill"
	"github.com/cory-johannsen/skirmish/internal/game/stats"
	"github.com/cory-johannsen/skirmish/internal/observability"
)

// ErrNotInProgress is returned when a round is requested from a battle that
// has not started or has already concluded.
var ErrNotInProgress = errors.New("battle is not in progress")

// Selector picks the skill a combatant casts this turn. Returning nil, or a
// skill that is not ready or not affordable, makes the engine use the basic attack.
type Selector interface {
	Choose(actor *Combatant, allies, enemies []*Combatant) *skill.Instance
}

// SelectorFunc adapts a function to the Selector interface.
type SelectorFunc func(actor *Combatant, allies, enemies []*Combatant) *skill.Instance

// Choose calls f.
func (f SelectorFunc) Choose(actor *Combatant, allies, enemies []*Combatant) *skill.Instance {
	return f(actor, allies, enemies)
}

// Engine runs battles with fixed tuning, selectors and randomness.
// It holds no per-battle state; every Battle owns freshly built combatants.
type Engine struct {
	cfg     config.BattleConfig
	players Selector
	enemies Selector
	src     dice.Source
	logger  *zap.Logger
}

// NewEngine creates an Engine.
//
// Precondition: players, enemies, src and logger must be non-nil; cfg.MaxRounds >= 1.
// Postcondition: Returns a non-nil Engine ready for use.
func NewEngine(cfg config.BattleConfig, players, enemies Selector, src dice.Source, logger *zap.Logger) *Engine {
	if players == nil || enemies == nil {
		panic("combat.NewEngine: selectors must not be nil")
	}
	if src == nil {
		panic("combat.NewEngine: src must not be nil")
	}
	if logger == nil {
		panic("combat.NewEngine: logger must not be nil")
	}
	if cfg.MaxRounds < 1 {
		panic(fmt.Sprintf("combat.NewEngine: max rounds must be >= 1, got %d", cfg.MaxRounds))
	}
	return &Engine{cfg: cfg, players: players, enemies: enemies, src: src, logger: logger}
}

// Battle is one engagement between two teams.
type Battle struct {
	ID      uuid.UUID
	Allies  []*Combatant
	Enemies []*Combatant

	eng        *Engine
	logger     *zap.Logger
	state      State
	outcome    Outcome
	round      int
	transcript []Round
}

// Result is the plain-data summary of a concluded battle.
type Result struct {
	ID         uuid.UUID  `json:"id"`
	Outcome    Outcome    `json:"outcome"`
	Rounds     int        `json:"rounds"`
	Transcript []Round    `json:"transcript"`
	Allies     []Snapshot `json:"allies"`
	Enemies    []Snapshot `json:"enemies"`
}

// Lines returns the transcript flattened in order.
func (r Result) Lines() []string {
	var out []string
	for _, round := range r.Transcript {
		out = append(out, round.Lines...)
	}
	return out
}

// NewBattle builds fresh combatants for both teams. Nil slots are gaps and are skipped.
//
// Precondition: each team has at most cfg.TeamSize slots.
// Postcondition: Returns a NotStarted battle; the definitions are not mutated.
func (e *Engine) NewBattle(allies, enemies []*character.Definition) (*Battle, error) {
	if len(allies) > e.cfg.TeamSize {
		return nil, fmt.Errorf("player team has %d slots, limit is %d", len(allies), e.cfg.TeamSize)
	}
	if len(enemies) > e.cfg.TeamSize {
		return nil, fmt.Errorf("enemy team has %d slots, limit is %d", len(enemies), e.cfg.TeamSize)
	}
	id := uuid.New()
	return &Battle{
		ID:      id,
		Allies:  build(allies, SidePlayer),
		Enemies: build(enemies, SideEnemy),
		eng:     e,
		logger:  observability.ForBattle(e.logger, id),
	}, nil
}

// Run simulates a battle to conclusion.
//
// Postcondition: Result.Outcome != Undecided and Result.Rounds <= cfg.MaxRounds.
func (e *Engine) Run(allies, enemies []*character.Definition) (Result, error) {
	b, err := e.NewBattle(allies, enemies)
	if err != nil {
		return Result{}, err
	}
	if err := b.Start(); err != nil {
		return Result{}, err
	}
	for b.State() == InProgress {
		if _, err := b.Step(); err != nil {
			return Result{}, err
		}
	}
	return b.Result(), nil
}

func build(defs []*character.Definition, side Side) []*Combatant {
	var out []*Combatant
	for _, d := range defs {
		if d == nil {
			continue
		}
		out = append(out, New(d, side))
	}
	return out
}

// State returns the lifecycle stage.
func (b *Battle) State() State { return b.state }

// Outcome returns the conclusion, or Undecided while the battle runs.
func (b *Battle) Outcome() Outcome { return b.outcome }

// Rounds returns the number of rounds played.
func (b *Battle) Rounds() int { return b.round }

// Start applies battle-start passives and moves the battle to InProgress. A
// battle with an empty side concludes immediately with zero rounds.
//
// Precondition: State() == NotStarted.
func (b *Battle) Start() error {
	if b.state != NotStarted {
		return fmt.Errorf("starting battle %s: already %s", b.ID, b.state)
	}
	b.state = InProgress
	b.logger.Debug("battle started", zap.Int("allies", len(b.Allies)), zap.Int("enemies", len(b.Enemies)))

	var lines []string
	lines = append(lines, applyTeamPassives(b.Allies)...)
	lines = append(lines, applyTeamPassives(b.Enemies)...)
	if len(lines) > 0 {
		b.transcript = append(b.transcript, Round{Number: 0, Lines: lines})
	}

	if o := decide(b.Allies, b.Enemies); o != Undecided {
		b.conclude(o)
	}
	return nil
}

// Step plays one round and concludes the battle when a side is wiped or the
// round cap is reached.
//
// Precondition: State() == InProgress.
// Postcondition: Rounds() increased by one.
func (b *Battle) Step() (Round, error) {
	if b.state != InProgress {
		return Round{}, fmt.Errorf("battle %s: %w", b.ID, ErrNotInProgress)
	}
	r := b.playRound()
	b.transcript = append(b.transcript, r)
	b.logger.Debug("round complete", zap.Int("round", r.Number), zap.Int("events", len(r.Lines)))

	if o := decide(b.Allies, b.Enemies); o != Undecided {
		b.conclude(o)
	} else if b.round >= b.eng.cfg.MaxRounds {
		b.conclude(TimedOut)
	}
	return r, nil
}

func (b *Battle) conclude(o Outcome) {
	b.state = Concluded
	b.outcome = o
	b.logger.Debug("battle finished", zap.Stringer("outcome", o), zap.Int("rounds", b.round))
}

// Result returns the battle's plain-data summary.
func (b *Battle) Result() Result {
	res := Result{
		ID:         b.ID,
		Outcome:    b.outcome,
		Rounds:     b.round,
		Transcript: append([]Round(nil), b.transcript...),
	}
	for _, c := range b.Allies {
		res.Allies = append(res.Allies, c.Snapshot())
	}
	for _, c := range b.Enemies {
		res.Enemies = append(res.Enemies, c.Snapshot())
	}
	return res
}

// applyTeamPassives applies each living member's team-wide passives as
// permanent stat changes to every member of team.
func applyTeamPassives(team []*Combatant) []string {
	var lines []string
	for _, holder := range living(team) {
		for _, p := range holder.Passives() {
			if p.Hook.AllyAttackPct != 0 {
				for _, c := range team {
					c.ModStat(stats.Attack, p.Hook.AllyAttackPct, true)
				}
				lines = append(lines, fmt.Sprintf("%s's %s raises allies' attack by %.4g%%.", holder.Name, p.Name, p.Hook.AllyAttackPct*100))
			}
			if p.Hook.AllyDefensePct != 0 {
				for _, c := range team {
					c.ModStat(stats.Defense, p.Hook.AllyDefensePct, true)
				}
				lines = append(lines, fmt.Sprintf("%s's %s raises allies' defense by %.4g%%.", holder.Name, p.Name, p.Hook.AllyDefensePct*100))
			}
			if p.Hook.ExtraVsClassBonus != 0 && p.Hook.BonusClass != "" {
				for _, c := range team {
					if c.Class == p.Hook.BonusClass {
						c.ModStat(stats.CritDmg, p.Hook.ExtraVsClassBonus, false)
					}
				}
				lines = append(lines, fmt.Sprintf("%s's %s raises %s crit damage by %.4g.", holder.Name, p.Name, p.Hook.BonusClass, p.Hook.ExtraVsClassBonus))
			}
		}
	}
	return lines
}
