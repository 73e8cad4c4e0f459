// ABOUTME: Snowflake ID decoding for platforms that embed timestamps in numeric status IDs
// ABOUTME: Pure arithmetic, testable against known reference ID/date pairs

package classify

import (
	"errors"
	"regexp"
	"strconv"
	"time"
)

const (
	// xEpochMs is the millisecond epoch used by X status IDs
	xEpochMs = int64(1288834974657)

	// xTimestampShift is the number of low bits below the timestamp
	// (10 machine bits + 12 sequence bits)
	xTimestampShift = uint(22)
)

var statusIDPattern = regexp.MustCompile(`/status(?:es)?/(\d{15,20})`)

// DecodeSnowflakeID converts a numeric snowflake ID into the UTC time it
// encodes. epochMs is the platform epoch in milliseconds and shiftBits the
// number of non-timestamp low bits.
func DecodeSnowflakeID(id string, epochMs int64, shiftBits uint) (time.Time, error) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return time.Time{}, errors.New("snowflake ID is not a valid number")
	}

	ms := int64(n>>shiftBits) + epochMs
	return time.UnixMilli(ms).UTC(), nil
}

// decodeXStatusURL extracts a status ID from an X post URL and decodes it.
// Returns a zero time when the URL carries no status ID. now anchors the
// future-date sanity window so callers with an injected clock stay
// deterministic.
func decodeXStatusURL(rawURL string, now time.Time) (time.Time, bool) {
	match := statusIDPattern.FindStringSubmatch(rawURL)
	if match == nil {
		return time.Time{}, false
	}

	t, err := DecodeSnowflakeID(match[1], xEpochMs, xTimestampShift)
	if err != nil {
		return time.Time{}, false
	}

	// Reject decoded times outside a sane window; malformed IDs can
	// still parse as numbers
	if t.Year() < 2006 || t.After(now.UTC().AddDate(1, 0, 0)) {
		return time.Time{}, false
	}

	return t, true
}
