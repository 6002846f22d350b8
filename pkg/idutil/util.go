package idutil

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// PlatformEpoch is the first millisecond of 2015, the epoch of chat platform
// snowflake ids.
const PlatformEpoch int64 = 1420070400000

// Timestamp returns the creation time in milliseconds since the Unix epoch
// embedded in the high bits of a snowflake id. It returns false if id is not a
// valid snowflake.
func Timestamp(id string) (int64, bool) {
	sf, err := snowflake.ParseString(id)
	if err != nil || sf < 0 {
		return 0, false
	}

	// snowflake.ID.Time adds the package epoch to the embedded offset.
	return sf.Time() - snowflake.Epoch + PlatformEpoch, true
}

// CreatedAt returns the creation time of the entity identified by id, or the
// zero time if id is not a valid snowflake.
func CreatedAt(id string) time.Time {
	ms, ok := Timestamp(id)
	if !ok {
		return time.Time{}
	}

	return time.UnixMilli(ms).UTC()
}
