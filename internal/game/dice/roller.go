package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger so that every draw made during a battle is
// logged at debug level.
//
// Roller itself satisfies Source, so it can be handed to the engine in place
// of the raw Source.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that draws from src and logs each draw to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Intn draws from the underlying Source and logs the result.
//
// Precondition: n > 0.
func (r *Roller) Intn(n int) int {
	v := r.src.Intn(n)
	r.logger.Debug("dice intn", zap.Int("n", n), zap.Int("value", v))
	return v
}

// Float64 draws from the underlying Source and logs the result.
func (r *Roller) Float64() float64 {
	v := r.src.Float64()
	r.logger.Debug("dice float", zap.Float64("value", v))
	return v
}
