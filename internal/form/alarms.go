// Package form converts alarms to and from the settings form.
//
// Alarm i is rendered as the inputs hour{i}, minute{i} and seven day{i}
// checkboxes whose values are the weekday indexes 0..6. The hidden count
// input carries the number of alarms on the page.
package form

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Nixie-Tech-LLC/doubleclock/internal/model"
)

// CountField holds the number of alarms rendered on the page.
const CountField = "count"

// MaxAlarms bounds the count accepted from a submitted form.
const MaxAlarms = 64

// FieldError reports a submitted input that could not be turned into an alarm.
type FieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s=%q: %s", e.Field, e.Value, e.Reason)
}

// DayView is one weekday checkbox.
type DayView struct {
	Value   int
	Label   string
	Checked bool
}

// AlarmView is everything the template needs to draw one alarm.
type AlarmView struct {
	Index      int
	Title      string
	HourName   string
	MinuteName string
	DayName    string
	Hour       string
	Minute     string
	Days       []DayView
	Invalid    string
}

// HourName is the input name of alarm i's hour.
func HourName(i int) string { return "hour" + strconv.Itoa(i) }

// MinuteName is the input name of alarm i's minute.
func MinuteName(i int) string { return "minute" + strconv.Itoa(i) }

// DayName is the name shared by alarm i's weekday checkboxes.
func DayName(i int) string { return "day" + strconv.Itoa(i) }

func newView(i int, hour, minute string, days [model.DaysPerWeek]bool) AlarmView {
	v := AlarmView{
		Index:      i,
		Title:      fmt.Sprintf("Alarm %d", i+1),
		HourName:   HourName(i),
		MinuteName: MinuteName(i),
		DayName:    DayName(i),
		Hour:       hour,
		Minute:     minute,
		Days:       make([]DayView, model.DaysPerWeek),
	}
	for d, label := range model.WeekdayLabels {
		v.Days[d] = DayView{Value: d, Label: label, Checked: days[d]}
	}
	return v
}

// Views builds one view per alarm, in order.
func Views(alarms []model.Alarm) []AlarmView {
	views := make([]AlarmView, 0, len(alarms))
	for i, a := range alarms {
		views = append(views, newView(i, strconv.Itoa(a.Hour), strconv.Itoa(a.Minute), a.Days))
	}
	return views
}

// Values encodes alarms the way a browser submits the rendered form.
func Values(alarms []model.Alarm) url.Values {
	values := url.Values{}
	values.Set(CountField, strconv.Itoa(len(alarms)))
	for i, a := range alarms {
		values.Set(HourName(i), strconv.Itoa(a.Hour))
		values.Set(MinuteName(i), strconv.Itoa(a.Minute))
		for d, on := range a.Days {
			if on {
				values.Add(DayName(i), strconv.Itoa(d))
			}
		}
	}
	return values
}

// Decode reads the alarms out of a submitted form.
func Decode(values url.Values) ([]model.Alarm, error) {
	count, err := decodeCount(values)
	if err != nil {
		return nil, err
	}

	alarms := make([]model.Alarm, 0, count)
	for i := 0; i < count; i++ {
		hour, err := decodeInt(values, HourName(i), 0, 23)
		if err != nil {
			return nil, err
		}
		minute, err := decodeInt(values, MinuteName(i), 0, 59)
		if err != nil {
			return nil, err
		}
		days, err := decodeDays(values, DayName(i))
		if err != nil {
			return nil, err
		}
		alarms = append(alarms, model.Alarm{Hour: hour, Minute: minute, Days: days})
	}
	return alarms, nil
}

// Redisplay rebuilds views from submitted values, keeping raw text so the
// user sees what they typed. The alarm owning the failing field, if any,
// is flagged. It returns nil when the count itself is unusable, since the
// alarms on the page can then not be recovered from values.
func Redisplay(values url.Values, failed error) []AlarmView {
	count, err := decodeCount(values)
	if err != nil {
		return nil
	}

	invalid := ""
	if fe, ok := failed.(*FieldError); ok {
		invalid = fe.Field
	}

	views := make([]AlarmView, 0, count)
	for i := 0; i < count; i++ {
		var days [model.DaysPerWeek]bool
		for _, raw := range values[DayName(i)] {
			if d, err := strconv.Atoi(raw); err == nil && d >= 0 && d < model.DaysPerWeek {
				days[d] = true
			}
		}
		v := newView(i, values.Get(HourName(i)), values.Get(MinuteName(i)), days)
		if invalid == v.HourName || invalid == v.MinuteName || invalid == v.DayName {
			v.Invalid = invalid
		}
		views = append(views, v)
	}
	return views
}

func decodeCount(values url.Values) (int, error) {
	raw := strings.TrimSpace(values.Get(CountField))
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &FieldError{Field: CountField, Value: raw, Reason: "not a number"}
	}
	if n < 0 || n > MaxAlarms {
		return 0, &FieldError{Field: CountField, Value: raw, Reason: fmt.Sprintf("must be between 0 and %d", MaxAlarms)}
	}
	return n, nil
}

func decodeInt(values url.Values, field string, min, max int) (int, error) {
	raw := strings.TrimSpace(values.Get(field))
	if raw == "" {
		return 0, &FieldError{Field: field, Value: raw, Reason: "missing"}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &FieldError{Field: field, Value: raw, Reason: "not a number"}
	}
	if n < min || n > max {
		return 0, &FieldError{Field: field, Value: raw, Reason: fmt.Sprintf("must be between %d and %d", min, max)}
	}
	return n, nil
}

func decodeDays(values url.Values, field string) ([model.DaysPerWeek]bool, error) {
	var days [model.DaysPerWeek]bool
	for _, raw := range values[field] {
		d, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || d < 0 || d >= model.DaysPerWeek {
			return days, &FieldError{Field: field, Value: raw, Reason: "not a weekday index"}
		}
		days[d] = true
	}
	return days, nil
}
