package main

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/message"

	"github.com/cory-johannsen/skirmish/internal/config"
	"github.com/cory-johannsen/skirmish/internal/game/campaign"
	"github.com/cory-johannsen/skirmish/internal/game/character"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/observability"
	"github.com/cory-johannsen/skirmish/internal/storage/postgres"
)

// reportStore persists concluded battles.
type reportStore interface {
	Create(ctx context.Context, rep postgres.Report) (postgres.Report, error)
}

// simulation plays a sequence of seeded battles. With a campaign pool set,
// each battle is fought at the next campaign stage against a generated team.
type simulation struct {
	battle  config.BattleConfig
	players combat.Selector
	enemies combat.Selector
	allies  []*character.Definition
	foes    []*character.Definition
	pool    []*character.Definition
	// progress is nil outside campaign mode.
	progress *campaign.Progress
	seed     int64
	runs     int
	quiet    bool
	reports  reportStore
	out      io.Writer
	printer  *message.Printer
	logger   *zap.Logger

	stopped atomic.Bool
	played  int
}

// Start plays every run, stopping early when Stop is called between battles.
//
// Postcondition: played reports the number of battles that concluded.
func (s *simulation) Start() error {
	ctx := context.Background()
	for i := 0; i < s.runs; i++ {
		if s.stopped.Load() {
			s.logger.Info("simulation interrupted", zap.Int("played", s.played))
			break
		}
		if err := s.playOne(ctx, s.seed+int64(i)); err != nil {
			return err
		}
		s.played++
	}
	if s.progress != nil {
		writeProgress(s.out, s.printer, s.progress)
	}
	return nil
}

// Stop asks Start to return before the next battle.
func (s *simulation) Stop() { s.stopped.Store(true) }

func (s *simulation) playOne(ctx context.Context, seed int64) error {
	logger := observability.WithSeed(s.logger, seed)

	var src dice.Source = dice.NewSeededSource(seed)
	if logger.Core().Enabled(zapcore.DebugLevel) {
		src = dice.NewLoggedRoller(src, logger)
	}

	foes, stage := s.foes, 0
	if s.progress != nil {
		stage = s.progress.Stage
		team, err := campaign.GenerateTeam(stage, s.pool, src)
		if err != nil {
			return fmt.Errorf("generating stage %d team: %w", stage, err)
		}
		foes = team
	}

	res, err := combat.NewEngine(s.battle, s.players, s.enemies, src, logger).Run(s.allies, foes)
	if err != nil {
		return fmt.Errorf("running battle: %w", err)
	}

	if !s.quiet {
		writeTranscript(s.out, s.printer, res)
	}
	writeSummary(s.out, s.printer, res, seed)
	if s.progress != nil {
		writeRewards(s.out, s.printer, stage, s.progress.Record(res.Outcome))
	}

	if s.reports != nil {
		rep, err := s.reports.Create(ctx, postgres.NewReport(res, seed, stage))
		if err != nil {
			return fmt.Errorf("storing battle report: %w", err)
		}
		logger.Info("battle report stored",
			zap.Stringer("battle_id", rep.ID),
			zap.Time("created_at", rep.CreatedAt),
		)
	}
	return nil
}
