package game

import "errors"

var (
	ErrInvalidMove     = errors.New("invalid move")
	ErrMatchOver       = errors.New("match is over")
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)
