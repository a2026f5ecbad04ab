package execution

import (
	"math/rand"
	"strconv"

	"github.com/google/uuid"

	"main/internal/model"
)

// SidePolicy picks which side of the book an aggressive order hits.
// Policies must be deterministic per product so a replayed feed reproduces
// the same order flow.
type SidePolicy interface {
	NextSide(cusip string) model.Side
}

// AlternateSides strictly alternates bid and offer per product, starting
// with the bid.
type AlternateSides struct {
	next map[string]model.Side
}

func NewAlternateSides() *AlternateSides {
	return &AlternateSides{next: make(map[string]model.Side)}
}

func (a *AlternateSides) NextSide(cusip string) model.Side {
	side, ok := a.next[cusip]
	if !ok {
		side = model.SideBid
	}
	if side == model.SideBid {
		a.next[cusip] = model.SideOffer
	} else {
		a.next[cusip] = model.SideBid
	}
	return side
}

// SeededSides draws a side from an explicit seeded generator.
type SeededSides struct {
	rng *rand.Rand
}

func NewSeededSides(seed int64) *SeededSides {
	return &SeededSides{rng: rand.New(rand.NewSource(seed))}
}

func (s *SeededSides) NextSide(string) model.Side {
	if s.rng.Intn(2) == 0 {
		return model.SideBid
	}
	return model.SideOffer
}

// IDSource mints order identifiers and the parent identifier an aggregate
// order hangs its child fills from.
type IDSource interface {
	OrderID() string
	ParentID(cusip string) string
}

// UUIDSource is the production identifier source.
type UUIDSource struct{}

func (UUIDSource) OrderID() string {
	return uuid.NewString()
}

func (UUIDSource) ParentID(cusip string) string {
	return "AGGR-" + cusip
}

// SequenceIDs is a counting identifier source for deterministic runs.
type SequenceIDs struct {
	prefix string
	n      int
}

func NewSequenceIDs(prefix string) *SequenceIDs {
	return &SequenceIDs{prefix: prefix}
}

func (s *SequenceIDs) OrderID() string {
	s.n++
	return s.prefix + "-" + strconv.Itoa(s.n)
}

func (s *SequenceIDs) ParentID(cusip string) string {
	return "AGGR-" + cusip
}
