package snowflakeid

import "time"

// IDTime returns the wall clock instant an id was issued at, given the
// epoch it was generated against.
func IDTime(id uint64, epochStart time.Time) time.Time {
	ms := id >> TimeShift
	return epochStart.Add(time.Duration(ms) * time.Millisecond)
}

// IDUnixMilli returns the unix millisecond timestamp of an id.
func IDUnixMilli(id uint64, epochStart time.Time) int64 {
	return epochStart.UnixMilli() + int64(id>>TimeShift)
}
