package classify

import (
	"testing"
	"time"
)

func TestDecodeSnowflakeID_ReferenceValue(t *testing.T) {
	// Known reference pair: this status ID encodes 2022-09-01 18:13:43.072 UTC
	decoded, err := DecodeSnowflakeID("1565402536254500865", xEpochMs, xTimestampShift)
	if err != nil {
		t.Fatalf("DecodeSnowflakeID returned error: %v", err)
	}

	expected := time.Date(2022, 9, 1, 18, 13, 43, 72_000_000, time.UTC)
	if !decoded.Equal(expected) {
		t.Errorf("DecodeSnowflakeID = %v, want %v", decoded, expected)
	}

	if decoded.Format(dateLayout) != "2022-09-01" {
		t.Errorf("decoded date = %s, want 2022-09-01", decoded.Format(dateLayout))
	}
}

func TestDecodeSnowflakeID_ReturnsUTC(t *testing.T) {
	decoded, err := DecodeSnowflakeID("1565402536254500865", xEpochMs, xTimestampShift)
	if err != nil {
		t.Fatalf("DecodeSnowflakeID returned error: %v", err)
	}

	if decoded.Location() != time.UTC {
		t.Errorf("decoded time location = %v, want UTC", decoded.Location())
	}
}

func TestDecodeSnowflakeID_InvalidNumber(t *testing.T) {
	_, err := DecodeSnowflakeID("not-a-number", xEpochMs, xTimestampShift)
	if err == nil {
		t.Error("DecodeSnowflakeID should return error for non-numeric IDs")
	}

	_, err = DecodeSnowflakeID("-42", xEpochMs, xTimestampShift)
	if err == nil {
		t.Error("DecodeSnowflakeID should return error for negative IDs")
	}
}

func TestDecodeXStatusURL(t *testing.T) {
	now := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	decoded, ok := decodeXStatusURL("https://x.com/user/status/1565402536254500865", now)
	if !ok {
		t.Fatal("decodeXStatusURL should decode a valid status URL")
	}

	if decoded.Format(dateLayout) != "2022-09-01" {
		t.Errorf("decoded date = %s, want 2022-09-01", decoded.Format(dateLayout))
	}
}

func TestDecodeXStatusURL_NoStatusID(t *testing.T) {
	now := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	cases := []string{
		"https://x.com/user",
		"https://x.com/user/with_replies",
		"https://example.com/article/123",
	}

	for _, u := range cases {
		if _, ok := decodeXStatusURL(u, now); ok {
			t.Errorf("decodeXStatusURL(%q) should not decode", u)
		}
	}
}

func TestDecodeXStatusURL_FutureWindowUsesGivenClock(t *testing.T) {
	// The reference ID decodes to 2022-09-01; the sanity window is
	// anchored to the given clock, not the wall clock.
	url := "https://x.com/user/status/1565402536254500865"

	early := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, ok := decodeXStatusURL(url, early); ok {
		t.Error("a decoded time more than a year past the clock should be rejected")
	}

	later := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	decoded, ok := decodeXStatusURL(url, later)
	if !ok {
		t.Fatal("decode under a later clock should succeed")
	}
	if decoded.Year() != 2022 {
		t.Errorf("decoded year = %d, want 2022", decoded.Year())
	}
}
