package packets

import "github.com/Nixie-Tech-LLC/doubleclock/internal/model"

// REQUESTS FOR /api/settings

// AlarmRequest uses pointers so that a missing hour or minute is told apart from 0.
type AlarmRequest struct {
	Hour   *int   `json:"hour"   binding:"required,min=0,max=23"`
	Minute *int   `json:"minute" binding:"required,min=0,max=59"`
	Days   []bool `json:"days"   binding:"required,len=7"`
}

type SaveSettingsRequest struct {
	Alarms []AlarmRequest `json:"alarms" binding:"required,dive"`
}

// Settings converts a bound request into the document sent to the clock.
func (r SaveSettingsRequest) Settings() model.Settings {
	alarms := make([]model.Alarm, 0, len(r.Alarms))
	for _, a := range r.Alarms {
		alarm := model.Alarm{Hour: *a.Hour, Minute: *a.Minute}
		copy(alarm.Days[:], a.Days)
		alarms = append(alarms, alarm)
	}
	return model.Settings{Alarms: alarms}
}
