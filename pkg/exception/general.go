package exception

import "errors"

// General errors
var (
	ErrNilInstance     = errors.New("nil instance")
	ErrNilListener     = errors.New("nil listener")
	ErrInvalidArgument = errors.New("invalid argument")
)
