package packets

import (
	"encoding/json"

	"github.com/Nixie-Tech-LLC/doubleclock/internal/model"
)

// RESPONSES FOR /api/settings/*

type SettingsResponse struct {
	Alarms []model.Alarm `json:"alarms"`
}

type SaveSettingsResponse struct {
	Alarms []model.Alarm   `json:"alarms"`
	Ack    json.RawMessage `json:"ack"`
}

// NextAlarmResponse flattens the firing time to RFC3339
type NextAlarmResponse struct {
	Alarm   int    `json:"alarm"` // 0-based index into alarms; the page titles it "Alarm {alarm+1}"
	At      string `json:"at"`
	Message string `json:"message"`
}
