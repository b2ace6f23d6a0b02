// Package dice provides the randomness abstraction used by the battle engine.
//
// Every probability check in a battle (hit, crit, passive trigger) and every
// random pick in the campaign generator draws from a Source, so a seeded
// Source reproduces a battle exactly.
package dice

// Source is the randomness provider for battle rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
	// Float64 returns a uniformly distributed float in [0.0, 1.0).
	Float64() float64
}

// Chance reports whether a uniform draw from src falls below p.
// p <= 0 never succeeds and p >= 1 always succeeds, but a value is drawn
// either way so the sequence of draws does not depend on p.
//
// Precondition: src must be non-nil.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}
