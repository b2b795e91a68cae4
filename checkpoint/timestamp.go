package checkpoint

import (
	"time"

	"github.com/momentum-sez/corridor-core/canon"
)

// parseTimestamp parses the RFC3339-seconds-Z form checkpoints carry, the
// same format package receipt uses.
func parseTimestamp(s string) (canon.Time, error) {
	t, err := time.Parse("2006-01-02T15:04:05Z", s)
	if err != nil {
		return canon.Time{}, err
	}
	return canon.UTC(t), nil
}
