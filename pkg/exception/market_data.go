package exception

import "errors"

var (
	ErrUnknownProduct  = errors.New("market data: unknown product")
	ErrEmptyBook       = errors.New("market data: order book side is empty")
	ErrMalformedRecord = errors.New("feed: malformed record")
	ErrMalformedPrice  = errors.New("feed: malformed price text")
)
