package openai

import "time"

// TimeContext carries the temporal anchors embedded in the task-creation
// prompt. All values are UTC.
type TimeContext struct {
	NowISO       string // current instant, YYYY-MM-DDTHH:MM:SSZ
	TodayDate    string // current date, YYYY-MM-DD
	TomorrowNoon string // now +1 day at 12:00:00
	EndOfWeek    string // now +7 days at 17:00:00
	EndOfMonth   string // now +30 days at 17:00:00
}

// BuildTimeContext derives the prompt's temporal anchors from the given
// instant. Pure function of the clock; fixed offsets, fixed clock fields.
func BuildTimeContext(now time.Time) TimeContext {
	now = now.UTC()

	tomorrow := atClock(now.AddDate(0, 0, 1), 12)
	endOfWeek := atClock(now.AddDate(0, 0, 7), 17)
	endOfMonth := atClock(now.AddDate(0, 0, 30), 17)

	return TimeContext{
		NowISO:       now.Format(TimestampFormat),
		TodayDate:    now.Format(DateFormat),
		TomorrowNoon: tomorrow.Format(TimestampFormat),
		EndOfWeek:    endOfWeek.Format(TimestampFormat),
		EndOfMonth:   endOfMonth.Format(TimestampFormat),
	}
}

// atClock keeps the date and pins hour:00:00 UTC.
func atClock(t time.Time, hour int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, time.UTC)
}
