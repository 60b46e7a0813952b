package models

import "errors"

// Custom errors
var (
	ErrUnknownStat        = errors.New("unknown stat")
	ErrInvalidAlpha       = errors.New("alpha must be in (0.5, 1.0]")
	ErrInvalidThreshold   = errors.New("threshold must be a finite number")
	ErrInvalidWindow      = errors.New("window size must be positive")
	ErrInvalidPrior       = errors.New("bayesian prior parameters must be positive")
	ErrInvalidConfidence  = errors.New("confidence level must be in (0, 1)")
	ErrNotFound           = errors.New("record not found")
	ErrDuplicateKey       = errors.New("duplicate key violation")
	ErrPlayerNotFound     = errors.New("player not found")
)
