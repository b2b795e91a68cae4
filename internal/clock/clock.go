// Package clock supplies a "now" for timestamps written into signed objects
// (proof.created, a checkpoint's timestamp, a receipt's timestamp). The other
// packages of this repository take such timestamps as parameters and do not
// call it themselves. Reading SOURCE_DATE_EPOCH makes those timestamps
// reproducible across CI runs that build the same commit at different
// wall-clock times.
package clock

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/momentum-sez/corridor-core/canon"
)

// Now returns the current instant as seconds-precision UTC. When the
// SOURCE_DATE_EPOCH environment variable is set to a non-empty integer
// (seconds since the Unix epoch), that value is used instead of the wall
// clock, matching the reproducible-build convention the original tooling
// follows.
func Now() (canon.Time, error) {
	if raw, ok := os.LookupEnv("SOURCE_DATE_EPOCH"); ok && strings.TrimSpace(raw) != "" {
		secs, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return canon.Time{}, fmt.Errorf("clock: SOURCE_DATE_EPOCH must be an integer (seconds): %w", err)
		}
		return canon.UTC(time.Unix(secs, 0)), nil
	}
	return canon.UTC(time.Now()), nil
}

// MustNow is Now without an error return, for call sites that treat a
// malformed SOURCE_DATE_EPOCH as a programming error (it is always set by
// the build environment, never by request input).
func MustNow() canon.Time {
	t, err := Now()
	if err != nil {
		panic(err)
	}
	return t
}
