package services

import (
	"fmt"
	"time"
)

const DayKeyLayout = "2006-01-02"

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

func DayKey(value time.Time, location *time.Location) string {
	return DateAtLocation(value, location).Format(DayKeyLayout)
}

func ParseDayKey(raw string, location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.UTC
	}
	return time.ParseInLocation(DayKeyLayout, raw, location)
}

func TimeFromMillis(millis int64, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	return time.UnixMilli(millis).In(location)
}

// WeekdayIndex maps a timestamp to Mon=0 .. Sun=6 in the given location.
func WeekdayIndex(millis int64, location *time.Location) int {
	weekday := TimeFromMillis(millis, location).Weekday()
	if weekday == time.Sunday {
		return 6
	}
	return int(weekday) - 1
}

func IsWeekend(millis int64, location *time.Location) bool {
	weekday := TimeFromMillis(millis, location).Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// ShortDayLabel formats a day as D/M without zero padding.
func ShortDayLabel(day time.Time) string {
	return fmt.Sprintf("%d/%d", day.Day(), int(day.Month()))
}

var weekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func WeekdayLabel(index int) string {
	if index < 0 || index >= len(weekdayLabels) {
		return ""
	}
	return weekdayLabels[index]
}
