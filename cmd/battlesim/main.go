// Package main provides the battle simulator command. It wires together
// configuration, the character catalog, skill selectors, and the battle engine,
// and optionally stores each report in PostgreSQL.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/config"
	"github.com/cory-johannsen/skirmish/internal/game/ai"
	"github.com/cory-johannsen/skirmish/internal/game/campaign"
	"github.com/cory-johannsen/skirmish/internal/game/character"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/lifecycle"
	"github.com/cory-johannsen/skirmish/internal/observability"
	"github.com/cory-johannsen/skirmish/internal/scripting"
	"github.com/cory-johannsen/skirmish/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	contentDir := flag.String("content", "", "character YAML directory (overrides content.characters_dir)")
	overridesFile := flag.String("overrides", "", "ability override table (overrides content.overrides_file)")
	alliesFlag := flag.String("allies", "wukong,jade,monk,archer,priest", "comma separated player team ids; blank entries are gaps")
	enemiesFlag := flag.String("enemies", "rival,bandit", "comma separated enemy team ids; ignored when -stage is set")
	stage := flag.Int("stage", 0, "campaign stage to fight; enemies are generated from -pool (0 = use -enemies)")
	poolFlag := flag.String("pool", "", "comma separated enemy template ids for -stage (default: whole catalog)")
	seed := flag.Int64("seed", 0, "random seed; each further run adds one (0 = random)")
	runs := flag.Int("runs", 1, "number of battles to simulate; with -stage each run advances one stage")
	playerAI := flag.String("player-ai", ai.FirstReadyName, "skill selector for the player team")
	enemyAI := flag.String("enemy-ai", "", "skill selector for the enemy team (default: scripted when ai.script_dir is set, else heuristic)")
	store := flag.Bool("store", false, "persist each battle report in PostgreSQL")
	migrations := flag.String("migrate", "", "with -store, apply migrations from this source URL first (e.g. file://migrations)")
	quiet := flag.Bool("quiet", false, "print only the summary, not the transcript")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *contentDir != "" {
		cfg.Content.CharactersDir = *contentDir
	}
	if *overridesFile != "" {
		cfg.Content.OverridesFile = *overridesFile
	}
	if *runs < 1 {
		log.Fatalf("-runs must be >= 1, got %d", *runs)
	}
	if *stage < 0 {
		log.Fatalf("-stage must be >= 0, got %d", *stage)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	// Load content
	overrides, err := character.LoadOverrides(cfg.Content.OverridesFile)
	if err != nil {
		logger.Fatal("loading overrides", zap.Error(err))
	}
	catalog, err := character.LoadCatalog(cfg.Content.CharactersDir, overrides)
	if err != nil {
		logger.Fatal("loading characters", zap.Error(err))
	}
	logger.Info("catalog loaded",
		zap.Int("characters", len(catalog.IDs())),
		zap.Int("overrides", len(overrides)),
	)

	allies, err := catalog.Team(parseTeam(*alliesFlag))
	if err != nil {
		logger.Fatal("resolving player team", zap.Error(err))
	}
	var enemies, pool []*character.Definition
	if *stage > 0 {
		pool = catalog.All()
		if ids := parseTeam(*poolFlag); len(ids) > 0 {
			if pool, err = catalog.Team(ids); err != nil {
				logger.Fatal("resolving campaign pool", zap.Error(err))
			}
		}
	} else if enemies, err = catalog.Team(parseTeam(*enemiesFlag)); err != nil {
		logger.Fatal("resolving enemy team", zap.Error(err))
	}

	// Skill selectors
	registry := ai.NewRegistry()
	if cfg.AI.ScriptDir != "" {
		scripts := scripting.NewManager(logger)
		defer scripts.Close()
		if err := scripts.LoadDir(ai.ScriptVM, cfg.AI.ScriptDir, cfg.AI.InstructionLimit); err != nil {
			logger.Fatal("loading AI scripts", zap.Error(err))
		}
		scripted := ai.NewScripted(scripts, ai.ScriptVM, cfg.AI.Hook, ai.Heuristic{}, logger)
		if err := registry.Register(ai.ScriptedName, scripted); err != nil {
			logger.Fatal("registering scripted selector", zap.Error(err))
		}
		logger.Info("AI scripts loaded",
			zap.String("dir", cfg.AI.ScriptDir),
			zap.String("hook", cfg.AI.Hook),
		)
		if *enemyAI == "" {
			*enemyAI = ai.ScriptedName
		}
	}
	if *enemyAI == "" {
		*enemyAI = ai.HeuristicName
	}
	playerSel, ok := registry.SelectorFor(*playerAI)
	if !ok {
		logger.Fatal("unknown player selector", zap.String("name", *playerAI), zap.Strings("known", registry.Names()))
	}
	enemySel, ok := registry.SelectorFor(*enemyAI)
	if !ok {
		logger.Fatal("unknown enemy selector", zap.String("name", *enemyAI), zap.Strings("known", registry.Names()))
	}

	ctx := context.Background()
	sim := &simulation{
		battle:  cfg.Battle,
		players: playerSel,
		enemies: enemySel,
		allies:  allies,
		foes:    enemies,
		pool:    pool,
		runs:    *runs,
		quiet:   *quiet,
		out:     os.Stdout,
		printer: newPrinter(),
		logger:  logger,
	}
	if *stage > 0 {
		sim.progress = campaign.NewProgress()
		sim.progress.Stage = *stage
	}
	// Optional report store
	if *store {
		dbStart := time.Now()
		db, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			logger.Fatal("connecting to database", zap.Error(err))
		}
		defer db.Close()
		logger.Info("database connected",
			zap.String("host", cfg.Database.Host),
			zap.Int("port", cfg.Database.Port),
			zap.String("database", cfg.Database.Name),
			zap.Duration("elapsed", time.Since(dbStart)),
		)
		if *migrations != "" {
			res, err := db.MigrateUp(*migrations)
			if err != nil {
				logger.Fatal("applying migrations", zap.Error(err))
			}
			logger.Info("schema ready",
				zap.Uint("version", res.Version),
				zap.Bool("no_change", res.NoChange),
			)
		}
		sim.reports = db.Reports()
	}

	sim.seed = *seed
	if sim.seed == 0 {
		if sim.seed, err = dice.NewSeed(); err != nil {
			logger.Fatal("generating seed", zap.Error(err))
		}
	}

	lc := lifecycle.New(logger)
	lc.Add("simulation", sim)
	if err := lc.Run(ctx); err != nil {
		logger.Fatal("simulation failed", zap.Error(err))
	}

	logger.Info("simulation complete",
		zap.Int("played", sim.played),
		zap.Int("requested", *runs),
		zap.Duration("elapsed", time.Since(start)),
	)
}
