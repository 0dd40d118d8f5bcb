package services

import "errors"

// Shared service errors, mapped to HTTP statuses by the handlers.
var (
	ErrNotFound           = errors.New("requested resource not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrGameNotFound       = errors.New("game not found")
	ErrStandingNotFound   = errors.New("standing not found")

	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidStage     = errors.New("invalid tournament stage")

	ErrTournamentNameConflict = errors.New("tournament name already exists")
	ErrNameConflict           = errors.New("name or number already taken in this tournament")

	// ErrScheduleLocked guards regeneration of a stage that already has
	// scored games.
	ErrScheduleLocked = errors.New("stage already has scored games")
	// ErrPrerequisiteMissing means the data a stage is built from does not
	// exist yet, such as playoffs before round robin standings.
	ErrPrerequisiteMissing = errors.New("stage prerequisites are missing")

	ErrInvalidCredentials = errors.New("invalid password")
)
