package model

import (
	"time"

	"github.com/yanun0323/decimal"
)

// Bond is the immutable identity and static terms of a treasury security.
// Looked up by CUSIP from the reference catalog; never mutated after
// creation.
type Bond struct {
	CUSIP    string
	Ticker   string
	Coupon   decimal.Decimal
	Maturity time.Time
}
