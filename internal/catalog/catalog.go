// Package catalog is the read-only reference catalog of tradable
// securities. It is built once at startup and passed to constructors;
// nothing in the desk reaches for a process-wide product table.
package catalog

import (
	"github.com/yanun0323/errors"

	"main/internal/model"
	"main/pkg/exception"
)

// Entry is one catalog security with its risk weight.
type Entry struct {
	Bond model.Bond
	// PV01 is the per-unit price value of a basis point for the security.
	PV01 float64
}

// Catalog resolves CUSIPs to bonds. Immutable after New.
type Catalog struct {
	byID  map[string]Entry
	order []string
}

// New builds a catalog from entries, preserving their order.
func New(entries []Entry) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		if e.Bond.CUSIP == "" {
			return nil, errors.Wrap(exception.ErrInvalidArgument, "catalog entry without CUSIP")
		}
		if _, ok := c.byID[e.Bond.CUSIP]; ok {
			return nil, errors.Wrapf(exception.ErrInvalidArgument, "duplicate CUSIP %s", e.Bond.CUSIP)
		}
		c.byID[e.Bond.CUSIP] = e
		c.order = append(c.order, e.Bond.CUSIP)
	}
	return c, nil
}

// Bond returns the security for a CUSIP.
func (c *Catalog) Bond(cusip string) (model.Bond, error) {
	e, ok := c.byID[cusip]
	if !ok {
		return model.Bond{}, errors.Wrapf(exception.ErrUnknownProduct, "cusip: %s", cusip)
	}
	return e.Bond, nil
}

// PV01 returns the per-unit risk weight for a CUSIP.
func (c *Catalog) PV01(cusip string) (float64, error) {
	e, ok := c.byID[cusip]
	if !ok {
		return 0, errors.Wrapf(exception.ErrUnknownProduct, "cusip: %s", cusip)
	}
	return e.PV01, nil
}

// ByTicker returns every security sharing a ticker, in catalog order.
func (c *Catalog) ByTicker(ticker string) []model.Bond {
	var out []model.Bond
	for _, cusip := range c.order {
		if e := c.byID[cusip]; e.Bond.Ticker == ticker {
			out = append(out, e.Bond)
		}
	}
	return out
}

// Bonds returns every security in catalog order.
func (c *Catalog) Bonds() []model.Bond {
	out := make([]model.Bond, 0, len(c.order))
	for _, cusip := range c.order {
		out = append(out, c.byID[cusip].Bond)
	}
	return out
}

// Len returns the number of securities.
func (c *Catalog) Len() int {
	return len(c.order)
}
