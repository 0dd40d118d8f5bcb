package models

import "errors"

// ErrInconsistentGameRecord marks a game whose points break the concluded
// game invariant: exactly one side at or over the threshold.
var ErrInconsistentGameRecord = errors.New("inconsistent game record")
