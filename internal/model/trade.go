package model

import (
	"github.com/yanun0323/errors"

	"main/pkg/exception"
)

// TradeSide is the direction of a booked trade.
type TradeSide uint8

const (
	TradeBuy TradeSide = iota + 1
	TradeSell
)

func (s TradeSide) String() string {
	switch s {
	case TradeBuy:
		return "BUY"
	case TradeSell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// ParseTradeSide decodes the feed representation of a trade side.
func ParseTradeSide(s string) (TradeSide, error) {
	switch s {
	case "BUY":
		return TradeBuy, nil
	case "SELL":
		return TradeSell, nil
	default:
		return 0, errors.Wrapf(exception.ErrMalformedRecord, "trade side: %q", s)
	}
}

// Trade is a fill booked to a particular book.
type Trade struct {
	Product  Bond
	TradeID  string
	Price    Price
	Book     string
	Quantity int64
	Side     TradeSide
}
