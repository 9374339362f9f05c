package service

import "errors"

// Service errors surfaced to the HTTP layer
var (
	ErrCentresUnavailable = errors.New("centre list unavailable")
	ErrInvalidShortcut    = errors.New("unknown date range shortcut")
	ErrInvalidDate        = errors.New("invalid date value")
)
