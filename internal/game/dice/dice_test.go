package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

// TestCryptoSource_Intn_InRange verifies the postcondition:
// every value returned by Intn(6) is in [0, 6).
func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
}

// TestCryptoSource_Intn_PanicsOnZero verifies the precondition:
// Intn panics when called with n <= 0.
func TestCryptoSource_Intn_PanicsOnZero(t *testing.T) {
	src := dice.NewCryptoSource()
	assert.Panics(t, func() { src.Intn(0) })
}

func TestCryptoSource_Float64_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Float64()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestSeededSource_SameSeedSameSequence(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Int64().Draw(rt, "seed")
		a := dice.NewSeededSource(seed)
		b := dice.NewSeededSource(seed)
		for i := 0; i < 50; i++ {
			assert.Equal(rt, a.Float64(), b.Float64())
			assert.Equal(rt, a.Intn(100), b.Intn(100))
		}
	})
}

func TestSeededSource_Intn_PanicsOnZero(t *testing.T) {
	src := dice.NewSeededSource(1)
	assert.Panics(t, func() { src.Intn(0) })
}

func TestSeededSource_Float64_InRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		src := dice.NewSeededSource(rapid.Int64().Draw(rt, "seed"))
		for i := 0; i < 20; i++ {
			v := src.Float64()
			if v < 0 || v >= 1 {
				rt.Fatalf("Float64 out of range: %v", v)
			}
		}
	})
}

func TestChance_Extremes(t *testing.T) {
	src := dice.NewSeededSource(7)
	for i := 0; i < 100; i++ {
		assert.False(t, dice.Chance(src, 0))
		assert.True(t, dice.Chance(src, 1))
	}
}

func TestNewSeed(t *testing.T) {
	_, err := dice.NewSeed()
	require.NoError(t, err)
}

func TestRoller_LogsEveryDraw(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := dice.NewLoggedRoller(dice.NewSeededSource(3), zap.New(core))

	_ = r.Float64()
	_ = r.Intn(10)

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "dice float", logs.All()[0].Message)
	assert.Equal(t, "dice intn", logs.All()[1].Message)
}

func TestRoller_MatchesUnderlyingSource(t *testing.T) {
	r := dice.NewLoggedRoller(dice.NewSeededSource(11), zap.NewNop())
	raw := dice.NewSeededSource(11)
	for i := 0; i < 10; i++ {
		assert.Equal(t, raw.Float64(), r.Float64())
	}
}
