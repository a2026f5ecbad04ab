package model

import (
	"github.com/yanun0323/errors"

	"main/pkg/exception"
)

// Side is the pricing side of an order or quote.
type Side uint8

const (
	SideBid Side = iota + 1
	SideOffer
)

func (s Side) String() string {
	switch s {
	case SideBid:
		return "BID"
	case SideOffer:
		return "OFFER"
	default:
		return "UNKNOWN"
	}
}

// ParseSide decodes the feed representation of a pricing side.
func ParseSide(s string) (Side, error) {
	switch s {
	case "BID":
		return SideBid, nil
	case "OFFER":
		return SideOffer, nil
	default:
		return 0, errors.Wrapf(exception.ErrMalformedRecord, "side: %q", s)
	}
}

// Order is a single market data order. Immutable value.
type Order struct {
	Price    Price
	Quantity int64
	Side     Side
}

// OrderBook is the bid and offer stacks for one product. A book is replaced
// wholesale on each update, never mutated in place, so a snapshot handed to
// a reader stays consistent.
type OrderBook struct {
	Product Bond
	Bids    []Order
	Offers  []Order
}

// BidOffer is the best order on each side of a book. Derived, never stored.
type BidOffer struct {
	Bid   Order
	Offer Order
}
