package model

import (
	"strconv"
	"strings"

	"github.com/yanun0323/errors"

	"main/pkg/exception"
)

// Price is a scaled integer on the half-tick grid: one unit is 1/512 of a
// point, half of the 1/256 trading increment. The extra factor of two keeps
// mid +- spread/2 exact when the spread is an odd number of ticks. The wire
// format stays on the 1/256 grid.
type Price int64

const (
	// HalfTick is the price resolution, 1/512 of a point.
	HalfTick Price = 1
	// Tick is the smallest traded increment, 1/256 of a point.
	Tick Price = 2
	// Point is one whole point.
	Point Price = 512
)

// ParsePrice decodes treasury price text "<whole>-<32nds><eighth>", where
// the eighth digit '4' is written as '+'. "99-31+" is 99 + 31/32 + 4/256.
// The same format carries spreads, e.g. "0-002" is 1/128.
func ParsePrice(s string) (Price, error) {
	whole, frac, ok := strings.Cut(s, "-")
	if !ok || len(frac) != 3 || whole == "" {
		return 0, errors.Wrapf(exception.ErrMalformedPrice, "text: %q", s)
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || w < 0 {
		return 0, errors.Wrapf(exception.ErrMalformedPrice, "whole part: %q", s)
	}

	t32, err := strconv.ParseInt(frac[:2], 10, 64)
	if err != nil || t32 > 31 {
		return 0, errors.Wrapf(exception.ErrMalformedPrice, "32nds part: %q", s)
	}

	var eighth int64
	switch c := frac[2]; {
	case c == '+':
		eighth = 4
	case c >= '0' && c <= '7':
		eighth = int64(c - '0')
	default:
		return 0, errors.Wrapf(exception.ErrMalformedPrice, "eighth part: %q", s)
	}

	return Price(w*int64(Point) + t32*16 + eighth*int64(Tick)), nil
}

// String renders the canonical price text. Values off the 1/256 grid (a
// quote around a one-tick spread lands on a half tick) fall back to a plain
// decimal rendering.
func (p Price) String() string {
	if p < 0 || p%Tick != 0 {
		return strconv.FormatFloat(p.Float64(), 'f', -1, 64)
	}
	whole := int64(p / Point)
	rem := int64(p % Point)
	t32 := rem / 16
	eighth := (rem % 16) / int64(Tick)

	var b strings.Builder
	b.WriteString(strconv.FormatInt(whole, 10))
	b.WriteByte('-')
	if t32 < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(t32, 10))
	if eighth == 4 {
		b.WriteByte('+')
	} else {
		b.WriteByte('0' + byte(eighth))
	}
	return b.String()
}

// Float64 returns the price in points. Exact for every representable value:
// half ticks are dyadic rationals.
func (p Price) Float64() float64 {
	return float64(p) / float64(Point)
}
