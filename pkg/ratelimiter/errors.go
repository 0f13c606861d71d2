package ratelimiter

import "errors"

// ErrInvalidConfig indicates a non-positive burst or interval.
var ErrInvalidConfig = errors.New("ratelimiter: invalid configuration")
