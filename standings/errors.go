package standings

import (
	"errors"

	"github.com/Dosada05/euchre-tournament/models"
)

var (
	ErrInconsistentGameRecord = models.ErrInconsistentGameRecord
	ErrCohortTooLarge         = errors.New("tied cohort too large for cycle enumeration")
	ErrUnseededPlayer         = errors.New("player has no seed")
)
