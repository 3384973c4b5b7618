package service

import "errors"

// ErrNoSource is returned when Run is called on a Service without an epoch source.
var ErrNoSource = errors.New("no epoch source configured")
