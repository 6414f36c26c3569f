package cache

import "errors"

// ErrNetwork is returned when a remote backend or asset host cannot be
// reached.
var ErrNetwork = errors.New("network error")
