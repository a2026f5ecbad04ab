package exception

import "errors"

var (
	ErrStateMismatch     = errors.New("engine: event product does not match tracked state")
	ErrUnknownTrade      = errors.New("booking: trade not found")
	ErrUnknownInquiry    = errors.New("inquiry: inquiry not found")
	ErrInvalidTransition = errors.New("inquiry: invalid state transition")
)
