package scripting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveLimit(t *testing.T) {
	assert.Equal(t, DefaultInstructionLimit, effectiveLimit(0))
	assert.Equal(t, DefaultInstructionLimit, effectiveLimit(-5))
	assert.Equal(t, 250, effectiveLimit(250))
}

func TestCountingContext_CancelsAfterLimit(t *testing.T) {
	ctx, cancel := newCountingContext(3)
	defer cancel()

	for i := 0; i < 2; i++ {
		select {
		case <-ctx.Done():
			t.Fatalf("cancelled after %d calls", i+1)
		default:
		}
	}
	select {
	case <-ctx.Done():
	default:
		t.Fatal("third Done call should cancel")
	}
}
