package utils

import (
	"time"

	"github.com/pingcap/errors"
)

// TimestampFormats are the accepted source timestamp layouts, tried in
// order. Destinations expect ISO 8601, so anything matching one of these is
// reformatted before upserting.
var TimestampFormats = []string{
	"2006/01/02 15:04:05", // yyyy/MM/dd HH:mm:ss
	"2006-01-02 15:04:05", // yyyy-MM-dd HH:mm:ss
}

// ISO8601Layout is the canonical output layout. No timezone offset is
// appended beyond what the parse itself embeds.
const ISO8601Layout = "2006-01-02T15:04:05"

// ParseTimestamp tries each accepted layout in order and returns the first
// successful parse.
func ParseTimestamp(timestampStr string) (time.Time, error) {
	for _, layout := range TimestampFormats {
		if t, err := time.Parse(layout, timestampStr); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Errorf("timestamp format not recognized: %s", timestampStr)
}

// SerializeTimestamp normalizes a timestamp string in one of the accepted
// layouts into ISO 8601.
func SerializeTimestamp(timestampStr string) (string, error) {
	t, err := ParseTimestamp(timestampStr)
	if err != nil {
		return "", errors.Trace(err)
	}
	return t.Format(ISO8601Layout), nil
}
