package recommendation

import "math/rand/v2"

// Chooser picks an index in [0, n) among equally ranked recipes.
type Chooser interface {
	Intn(n int) int
}

// RandomChooser draws from the process wide random source. There is no
// seeding contract, so callers must not expect a repeatable sequence.
type RandomChooser struct{}

// Intn returns a uniform index in [0, n)
func (RandomChooser) Intn(n int) int {
	return rand.IntN(n)
}

// FixedChooser always returns the same index, clamped to the range.
type FixedChooser int

// Intn returns the fixed index
func (c FixedChooser) Intn(n int) int {
	if int(c) >= n {
		return n - 1
	}
	if c < 0 {
		return 0
	}
	return int(c)
}
