package domain

import "errors"

var (
	ErrInvalidInterval   = errors.New("invalid interval")
	ErrInvalidTimeOfDay  = errors.New("invalid time of day")
	ErrInvalidWeekday    = errors.New("invalid weekday")
	ErrInvalidDuration   = errors.New("invalid duration")
	ErrInvalidGridStep   = errors.New("invalid grid step")
	ErrInvalidProvider   = errors.New("invalid provider")
	ErrInvalidDate       = errors.New("invalid date")
	ErrRemoteUnavailable = errors.New("remote unavailable")
)
