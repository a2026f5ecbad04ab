package streaming

import "math/rand"

// LotPolicy supplies the visible size a quote shows when the spread is at
// its tightest. Policies must be deterministic per product so a replayed
// feed reproduces the same stream.
type LotPolicy interface {
	NextLot(cusip string) int64
}

// CycleLots rotates through a fixed lot schedule independently per product.
type CycleLots struct {
	lots []int64
	next map[string]int
}

// NewCycleLots builds the rotating policy. With no arguments the schedule
// is 1mm then 2mm.
func NewCycleLots(lots ...int64) *CycleLots {
	if len(lots) == 0 {
		lots = []int64{1_000_000, 2_000_000}
	}
	return &CycleLots{lots: lots, next: make(map[string]int)}
}

func (c *CycleLots) NextLot(cusip string) int64 {
	i := c.next[cusip]
	c.next[cusip] = (i + 1) % len(c.lots)
	return c.lots[i]
}

// SeededLots draws from the schedule with an explicit seeded generator.
// For simulation runs that want variety without ambient randomness.
type SeededLots struct {
	lots []int64
	rng  *rand.Rand
}

func NewSeededLots(seed int64, lots ...int64) *SeededLots {
	if len(lots) == 0 {
		lots = []int64{1_000_000, 2_000_000}
	}
	return &SeededLots{lots: lots, rng: rand.New(rand.NewSource(seed))}
}

func (s *SeededLots) NextLot(string) int64 {
	return s.lots[s.rng.Intn(len(s.lots))]
}
