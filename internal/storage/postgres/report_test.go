package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/storage/postgres"
	"github.com/cory-johannsen/skirmish/internal/testutil"
)

func makeReport(outcome combat.Outcome) postgres.Report {
	return postgres.Report{
		ID:      uuid.New(),
		Seed:    99,
		Stage:   4,
		Outcome: outcome,
		Rounds:  3,
		Transcript: []combat.Round{
			{Number: 0, Lines: []string{"Leader's Command raises allies' attack by 10%."}},
			{Number: 1, Lines: []string{"Hero used Strike on Ogre for 100."}},
		},
		Allies:  []combat.Snapshot{{ID: "hero", Name: "Hero", Side: combat.SidePlayer, HP: 50, MaxHP: 100, Alive: true, Buffs: []string{"Focus"}}},
		Enemies: []combat.Snapshot{{ID: "ogre", Name: "Ogre", Side: combat.SideEnemy, MaxHP: 300}},
	}
}

func TestReportRepository(t *testing.T) {
	pool := testutil.NewPool(t)
	repo := pool.Reports()
	ctx := context.Background()

	t.Run("health", func(t *testing.T) {
		assert.NoError(t, pool.Health(ctx, 5*time.Second))
	})

	t.Run("create and get", func(t *testing.T) {
		rep := makeReport(combat.PlayerWin)
		created, err := repo.Create(ctx, rep)
		require.NoError(t, err)
		assert.False(t, created.CreatedAt.IsZero())

		got, err := repo.Get(ctx, rep.ID)
		require.NoError(t, err)
		assert.Equal(t, rep.ID, got.ID)
		assert.Equal(t, combat.PlayerWin, got.Outcome)
		assert.Equal(t, 4, got.Stage)
		assert.Equal(t, rep.Transcript, got.Transcript)
		assert.Equal(t, rep.Allies, got.Allies)
		assert.Equal(t, rep.Enemies, got.Enemies)
	})

	t.Run("duplicate id", func(t *testing.T) {
		rep := makeReport(combat.PlayerLoss)
		_, err := repo.Create(ctx, rep)
		require.NoError(t, err)
		_, err = repo.Create(ctx, rep)
		assert.ErrorIs(t, err, postgres.ErrReportExists)
	})

	t.Run("undecided rejected", func(t *testing.T) {
		_, err := repo.Create(ctx, makeReport(combat.Undecided))
		assert.ErrorIs(t, err, postgres.ErrUndecidedReport)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.Get(ctx, uuid.New())
		assert.ErrorIs(t, err, postgres.ErrReportNotFound)
	})

	t.Run("list recent and counts", func(t *testing.T) {
		last := makeReport(combat.TimedOut)
		_, err := repo.Create(ctx, last)
		require.NoError(t, err)

		recent, err := repo.ListRecent(ctx, 2)
		require.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, last.ID, recent[0].ID)

		_, err = repo.ListRecent(ctx, 0)
		assert.Error(t, err)

		counts, err := repo.CountByOutcome(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, counts[combat.PlayerWin])
		assert.Equal(t, 1, counts[combat.PlayerLoss])
		assert.Equal(t, 1, counts[combat.TimedOut])
	})
}

func TestMigrate_DownThenUp(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping PostgreSQL container test in -short mode")
	}
	pc := testutil.NewPostgresContainer(t)
	source := "file://" + testutil.MigrationsDir(t)

	res, err := pc.Pool.MigrateUp(source)
	require.NoError(t, err)
	assert.Equal(t, uint(1), res.Version)
	assert.False(t, res.Dirty)

	res, err = postgres.Migrate(pc.DSN(), source, postgres.MigrateUp, 0)
	require.NoError(t, err)
	assert.True(t, res.NoChange)

	_, err = postgres.Migrate(pc.DSN(), source, postgres.MigrateDown, 1)
	require.NoError(t, err)

	_, err = postgres.Migrate(pc.DSN(), source, "sideways", 0)
	assert.Error(t, err)
}
