package model

import (
	"fmt"
	"time"
)

// DaysPerWeek is the number of weekday flags carried by every alarm.
const DaysPerWeek = 7

// WeekdayLabels are the short day names in the order of Alarm.Days (Sun..Sat).
var WeekdayLabels = [DaysPerWeek]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Alarm is one recurring alarm as stored on the clock.
type Alarm struct {
	Hour   int               `json:"hour"`
	Minute int               `json:"minute"`
	Days   [DaysPerWeek]bool `json:"days"`
}

// Settings is the document exchanged with the clock's /settings endpoint.
type Settings struct {
	Alarms []Alarm `json:"alarms"`
}

// RangeError reports an alarm field outside of its allowed bounds.
type RangeError struct {
	Field string
	Value int
	Min   int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %d out of range [%d, %d]", e.Field, e.Value, e.Min, e.Max)
}

// Validate checks hour and minute against the same bounds the form inputs carry.
func (a Alarm) Validate() error {
	if a.Hour < 0 || a.Hour > 23 {
		return &RangeError{Field: "hour", Value: a.Hour, Min: 0, Max: 23}
	}
	if a.Minute < 0 || a.Minute > 59 {
		return &RangeError{Field: "minute", Value: a.Minute, Min: 0, Max: 59}
	}
	return nil
}

// Enabled reports whether the alarm fires on at least one weekday.
func (a Alarm) Enabled() bool {
	for _, on := range a.Days {
		if on {
			return true
		}
	}
	return false
}

// Next returns the first time strictly after now at which the alarm fires.
// The result is expressed in now's location. A wall-clock time skipped by a
// daylight saving transition fires as far after the transition as it was
// set after its start, so 02:30 on a 02:00 -> 03:00 day fires at 03:30.
// Alarms outside the valid hour and minute range never fire.
func (a Alarm) Next(now time.Time) (time.Time, bool) {
	if !a.Enabled() || a.Validate() != nil {
		return time.Time{}, false
	}

	y, m, d := now.Date()
	// eight days so that today's weekday is reached again next week
	for offset := 0; offset <= DaysPerWeek; offset++ {
		wall := time.Date(y, m, d+offset, a.Hour, a.Minute, 0, 0, time.UTC)
		if !a.Days[wall.Weekday()] {
			continue
		}
		at := inLocation(wall, now.Location())
		if at.After(now) {
			return at, true
		}
	}
	return time.Time{}, false
}

// inLocation returns the instant showing wall's date and clock reading in
// loc, moving forward when that reading falls into a gap.
func inLocation(wall time.Time, loc *time.Location) time.Time {
	at := time.Date(wall.Year(), wall.Month(), wall.Day(), wall.Hour(), wall.Minute(), 0, 0, loc)
	shown := time.Date(at.Year(), at.Month(), at.Day(), at.Hour(), at.Minute(), 0, 0, time.UTC)
	if shown.Before(wall) {
		at = at.Add(wall.Sub(shown))
	}
	return at
}

// Validate checks every alarm and reports the index of the first invalid one.
func (s Settings) Validate() error {
	for i, a := range s.Alarms {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("alarm %d: %w", i+1, err)
		}
	}
	return nil
}

// Next returns the earliest upcoming firing across all alarms together with
// the index of the alarm producing it. Ties go to the lowest index.
func (s Settings) Next(now time.Time) (int, time.Time, bool) {
	index := -1
	var earliest time.Time
	for i, a := range s.Alarms {
		at, ok := a.Next(now)
		if !ok {
			continue
		}
		if index == -1 || at.Before(earliest) {
			index, earliest = i, at
		}
	}
	return index, earliest, index != -1
}
