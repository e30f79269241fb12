package domain

import (
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"
)

type TimestampKind int

const (
	// RawMillisKind is a plain epoch-milliseconds value, typically a message
	// that has not been round-tripped through the store yet.
	RawMillisKind TimestampKind = iota
	// NativeKind is the store-native timestamp representation.
	NativeKind
)

const clockLayout = "03:04 PM"

// Timestamp is a tagged union over the two shapes a message time can arrive in.
// Every consumer goes through Time, never through the underlying shape.
type Timestamp struct {
	kind   TimestampKind
	native *timestamppb.Timestamp
	millis int64
}

func NativeTimestamp(ts *timestamppb.Timestamp) Timestamp {
	return Timestamp{kind: NativeKind, native: ts}
}

func RawMillis(ms int64) Timestamp {
	return Timestamp{kind: RawMillisKind, millis: ms}
}

// TimestampFromTime builds the raw form used for locally created messages.
func TimestampFromTime(t time.Time) Timestamp {
	return RawMillis(t.UnixMilli())
}

func (t Timestamp) Kind() TimestampKind {
	return t.kind
}

// Time normalises both shapes to a UTC time.Time. A nil native value is the epoch.
func (t Timestamp) Time() time.Time {
	switch t.kind {
	case NativeKind:
		if t.native == nil {
			return time.Unix(0, 0).UTC()
		}
		return t.native.AsTime()
	default:
		return time.UnixMilli(t.millis).UTC()
	}
}

// Compare orders two timestamps by their normalised time.
func (t Timestamp) Compare(other Timestamp) int {
	return t.Time().Compare(other.Time())
}

// Clock renders the display time (hh:mm AM/PM) in the given location.
func (t Timestamp) Clock(loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.Time().In(loc).Format(clockLayout)
}
