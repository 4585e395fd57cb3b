package form

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/doubleclock/internal/model"
)

var sample = []model.Alarm{
	{Hour: 6, Minute: 45, Days: [7]bool{false, true, true, true, true, true, false}},
	{Hour: 0, Minute: 0},
	{Hour: 23, Minute: 59, Days: [7]bool{true, false, false, false, false, false, true}},
}

func TestViewsOnePerAlarm(t *testing.T) {
	views := Views(sample)
	require.Len(t, views, len(sample))

	first := views[0]
	assert.Equal(t, "Alarm 1", first.Title)
	assert.Equal(t, "hour0", first.HourName)
	assert.Equal(t, "minute0", first.MinuteName)
	assert.Equal(t, "day0", first.DayName)
	assert.Equal(t, "6", first.Hour)
	assert.Equal(t, "45", first.Minute)
	require.Len(t, first.Days, 7)
	assert.Equal(t, "Sun", first.Days[0].Label)
	assert.False(t, first.Days[0].Checked)
	assert.Equal(t, "Mon", first.Days[1].Label)
	assert.True(t, first.Days[1].Checked)

	assert.Equal(t, "Alarm 3", views[2].Title)
	assert.Equal(t, 6, views[2].Days[6].Value)
}

func TestViewsEmpty(t *testing.T) {
	assert.Empty(t, Views(nil))
}

func TestDecodeRoundTrip(t *testing.T) {
	alarms, err := Decode(Values(sample))
	require.NoError(t, err)
	assert.Equal(t, sample, alarms)
}

func TestDecodeZeroAlarms(t *testing.T) {
	alarms, err := Decode(url.Values{CountField: {"0"}})
	require.NoError(t, err)
	assert.Empty(t, alarms)
}

func TestDecodeFieldErrors(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(url.Values)
		field string
	}{
		{"missing count", func(v url.Values) { v.Del(CountField) }, CountField},
		{"huge count", func(v url.Values) { v.Set(CountField, "1000") }, CountField},
		{"missing hour", func(v url.Values) { v.Del("hour1") }, "hour1"},
		{"hour too big", func(v url.Values) { v.Set("hour0", "24") }, "hour0"},
		{"minute negative", func(v url.Values) { v.Set("minute2", "-1") }, "minute2"},
		{"minute text", func(v url.Values) { v.Set("minute0", "half") }, "minute0"},
		{"bad day", func(v url.Values) { v.Add("day1", "7") }, "day1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := Values(sample)
			tt.edit(values)

			_, err := Decode(values)
			var fieldErr *FieldError
			require.True(t, errors.As(err, &fieldErr), "got %v", err)
			assert.Equal(t, tt.field, fieldErr.Field)
		})
	}
}

func TestDecodeTrimsWhitespace(t *testing.T) {
	values := url.Values{CountField: {" 1 "}, "hour0": {" 7"}, "minute0": {"30 "}, "day0": {"3"}}
	alarms, err := Decode(values)
	require.NoError(t, err)
	require.Len(t, alarms, 1)
	assert.Equal(t, 7, alarms[0].Hour)
	assert.Equal(t, 30, alarms[0].Minute)
	assert.True(t, alarms[0].Days[3])
}

func TestRedisplayKeepsRawInput(t *testing.T) {
	values := Values(sample)
	values.Set("hour1", "99")

	_, err := Decode(values)
	require.Error(t, err)

	views := Redisplay(values, err)
	require.Len(t, views, 3)
	assert.Equal(t, "99", views[1].Hour)
	assert.Equal(t, "hour1", views[1].Invalid)
	assert.Empty(t, views[0].Invalid)
	assert.True(t, views[2].Days[6].Checked)
}

func TestRedisplayWithoutCount(t *testing.T) {
	assert.Nil(t, Redisplay(url.Values{}, nil))
}
