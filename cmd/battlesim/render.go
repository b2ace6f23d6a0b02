package main

import (
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cory-johannsen/skirmish/internal/game/campaign"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
)

// newPrinter returns the printer used for every number shown to the player.
func newPrinter() *message.Printer {
	return message.NewPrinter(language.English)
}

// parseTeam splits a comma separated slot list. Blank entries are kept as
// gaps so "wukong,,monk" fields a three-slot team with an empty middle.
//
// Postcondition: An empty input yields an empty slice.
func parseTeam(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	ids := strings.Split(s, ",")
	for i := range ids {
		ids[i] = strings.TrimSpace(ids[i])
	}
	return ids
}

// writeTranscript prints every round of res. Round 0 holds the team passive
// lines and is labelled separately.
func writeTranscript(w io.Writer, p *message.Printer, res combat.Result) {
	for _, round := range res.Transcript {
		if round.Number == 0 {
			p.Fprintf(w, "== Team passives ==\n")
		} else {
			p.Fprintf(w, "== Round %d ==\n", round.Number)
		}
		for _, line := range round.Lines {
			p.Fprintf(w, "  %s\n", line)
		}
	}
}

// writeSummary prints the outcome line followed by the final state of both sides.
// The seed is printed ungrouped so it can be pasted back into -seed.
func writeSummary(w io.Writer, p *message.Printer, res combat.Result, seed int64) {
	p.Fprintf(w, "battle %s: %s after %d rounds (seed %s)\n",
		res.ID, res.Outcome, res.Rounds, formatSeed(seed))
	writeSide(w, p, "allies", res.Allies)
	writeSide(w, p, "enemies", res.Enemies)
}

func writeSide(w io.Writer, p *message.Printer, label string, side []combat.Snapshot) {
	p.Fprintf(w, "%s:\n", label)
	for _, s := range side {
		status := "down"
		if s.Alive {
			status = "up"
		}
		p.Fprintf(w, "  %-20s %-5s %.0f/%.0f hp  %.0f energy\n",
			s.Name, status, s.HP, s.MaxHP, s.Energy)
	}
}

// writeRewards prints what a stage paid out, or that it paid nothing.
func writeRewards(w io.Writer, p *message.Printer, stage int, r campaign.Rewards) {
	if r.IsZero() {
		p.Fprintf(w, "stage %d: no rewards\n", stage)
		return
	}
	p.Fprintf(w, "stage %d rewards: %d coins, %d gems, %d gear, %d xp, %d essence\n",
		stage, r.Coins, r.Gems, r.Gear, r.XP, r.Essence)
}

// writeProgress prints the campaign position and everything banked so far.
func writeProgress(w io.Writer, p *message.Printer, prog *campaign.Progress) {
	inv := prog.Inventory
	p.Fprintf(w, "next stage %d; inventory: %d coins, %d gems, %d gear, %d xp, %d essence\n",
		prog.Stage, inv.Coins, inv.Gems, inv.Gear, inv.XP, inv.Essence)
}

func formatSeed(seed int64) string {
	return strconv.FormatInt(seed, 10)
}
