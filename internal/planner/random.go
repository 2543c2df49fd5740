package planner

import "math/rand"

// RandomSource picks among equally good candidates.
type RandomSource interface {
	// NextInRange returns a value in [0, n).
	NextInRange(n int) int
}

// SeededSource is a RandomSource backed by math/rand with a fixed seed.
type SeededSource struct {
	r *rand.Rand
}

func NewSeededSource(seed int64) *SeededSource {
	return &SeededSource{r: rand.New(rand.NewSource(seed))}
}

func (s *SeededSource) NextInRange(n int) int {
	if n <= 1 {
		return 0
	}
	return s.r.Intn(n)
}

// TopPick always chooses the first candidate of the top tier.
type TopPick struct{}

func (TopPick) NextInRange(int) int { return 0 }
