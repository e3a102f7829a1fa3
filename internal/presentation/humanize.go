// Package presentation renders a branch catalog as the aligned text block shown in the picker.
package presentation

import (
	"fmt"
	"time"
)

const (
	lessThanOneMinuteConstant        = "less than 1 minute"
	hoursTemplateConstant            = "%d hours"
	minutesTemplateConstant          = "%d minutes"
	weeksTemplateConstant            = "%d weeks"
	daysTemplateConstant             = "%d days"
	hourFormThresholdMinutesConstant = 100
	daysPerWeekConstant              = 7
	hoursPerDayConstant              = 24
)

// Humanize describes how long ago committedAt was, relative to now. Every count is truncated.
//
// Same-day ages above 100 minutes switch to hours, so 101 minutes reads "1 hours".
// A committedAt after now is reported with negative minutes or days.
func Humanize(now time.Time, committedAt time.Time) string {
	elapsed := now.Sub(committedAt)
	elapsedMinutes := int64(elapsed / time.Minute)
	elapsedDays := int64(elapsed / (hoursPerDayConstant * time.Hour))
	elapsedWeeks := elapsedDays / daysPerWeekConstant

	switch {
	case elapsedMinutes == 0:
		return lessThanOneMinuteConstant
	case elapsedDays == 0 && elapsedMinutes > hourFormThresholdMinutesConstant:
		return fmt.Sprintf(hoursTemplateConstant, int64(elapsed/time.Hour))
	case elapsedDays == 0:
		return fmt.Sprintf(minutesTemplateConstant, elapsedMinutes)
	case elapsedWeeks > 0:
		return fmt.Sprintf(weeksTemplateConstant, elapsedWeeks)
	default:
		return fmt.Sprintf(daysTemplateConstant, elapsedDays)
	}
}
