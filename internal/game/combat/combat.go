// Package combat implements the 5v5 turn-based battle engine.
package combat

import "fmt"

// Side identifies which team a combatant fights for.
type Side int

const (
	SidePlayer Side = iota
	SideEnemy
)

// String returns "player" or "enemy".
func (s Side) String() string {
	if s == SideEnemy {
		return "enemy"
	}
	return "player"
}

// MarshalText encodes the side by name.
func (s Side) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes a side name produced by MarshalText.
func (s *Side) UnmarshalText(b []byte) error {
	switch string(b) {
	case "player":
		*s = SidePlayer
	case "enemy":
		*s = SideEnemy
	default:
		return fmt.Errorf("unknown side %q", b)
	}
	return nil
}

// Outcome is how a battle concluded. The zero value means not yet concluded.
type Outcome int

const (
	Undecided Outcome = iota
	PlayerWin
	PlayerLoss
	// TimedOut is reached when the round cap elapses with both sides standing.
	// It counts as a loss for rewards.
	TimedOut
)

// String returns a stable label for the outcome.
func (o Outcome) String() string {
	switch o {
	case PlayerWin:
		return "player_win"
	case PlayerLoss:
		return "player_loss"
	case TimedOut:
		return "timed_out"
	default:
		return "undecided"
	}
}

// Won reports whether the player side won outright.
func (o Outcome) Won() bool { return o == PlayerWin }

// MarshalText encodes the outcome label.
func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// UnmarshalText decodes an outcome label produced by MarshalText.
func (o *Outcome) UnmarshalText(b []byte) error {
	out, err := ParseOutcome(string(b))
	if err != nil {
		return err
	}
	*o = out
	return nil
}

// ParseOutcome converts a label back into an Outcome.
//
// Postcondition: ParseOutcome(o.String()) == o for every defined Outcome.
func ParseOutcome(s string) (Outcome, error) {
	for _, o := range []Outcome{Undecided, PlayerWin, PlayerLoss, TimedOut} {
		if o.String() == s {
			return o, nil
		}
	}
	return Undecided, fmt.Errorf("unknown outcome %q", s)
}

// State is the battle lifecycle stage.
type State int

const (
	NotStarted State = iota
	InProgress
	Concluded
)

// String returns a human-readable state label.
func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case InProgress:
		return "in progress"
	case Concluded:
		return "concluded"
	default:
		return "unknown"
	}
}
