package catalog

import "time"

const secondsPerMinuteConstant = 60

// ReconstructCommitTime rebuilds the committer's wall clock from epoch seconds and the recorded
// UTC offset, then expresses that wall clock in display.
//
// The result keeps the committer's clock reading: a commit made at 09:00 +0200 reads 09:00 in
// any display location. A nil display means time.Local.
func ReconstructCommitTime(epochSeconds int64, offsetMinutes int, display *time.Location) time.Time {
	if display == nil {
		display = time.Local
	}

	committerClock := time.Unix(epochSeconds, 0).In(time.FixedZone("", offsetMinutes*secondsPerMinuteConstant))
	return time.Date(
		committerClock.Year(),
		committerClock.Month(),
		committerClock.Day(),
		committerClock.Hour(),
		committerClock.Minute(),
		committerClock.Second(),
		0,
		display,
	)
}
