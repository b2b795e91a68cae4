package proof

import (
	"fmt"
	"time"
)

// maxFutureClockSkew is the allowance applied when rejecting a credential
// whose issuanceDate is in the future, matching the 60s skew tolerance the
// original tooling used.
const maxFutureClockSkew = 60 * time.Second

// ValidateDates checks issuanceDate and expirationDate against now and
// returns one error message per violation (nil means valid). A credential
// with no expirationDate never expires; callers apply their own policy for
// that case if they want one.
func ValidateDates(credential map[string]any, now time.Time) []string {
	var errs []string

	if raw, ok := credential["issuanceDate"]; ok && raw != nil {
		s, _ := raw.(string)
		t, err := parseFlexibleRFC3339(s)
		if err != nil {
			errs = append(errs, fmt.Sprintf("invalid issuanceDate: %v", err))
		} else if t.After(now.Add(maxFutureClockSkew)) {
			errs = append(errs, fmt.Sprintf("issuanceDate is in the future: %s", s))
		}
	}

	if raw, ok := credential["expirationDate"]; ok && raw != nil {
		s, _ := raw.(string)
		t, err := parseFlexibleRFC3339(s)
		if err != nil {
			errs = append(errs, fmt.Sprintf("invalid expirationDate: %v", err))
		} else if t.Before(now) {
			errs = append(errs, fmt.Sprintf("credential has expired: %s", s))
		}
	}

	return errs
}

// parseFlexibleRFC3339 accepts both a "Z" suffix and an explicit numeric
// offset, and treats an offset-free timestamp as UTC, mirroring the
// original tooling's tolerant datetime.fromisoformat handling.
func parseFlexibleRFC3339(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("not a valid RFC3339 timestamp: %q", s)
}
