package endpoints

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/doubleclock/internal/clock"
	"github.com/Nixie-Tech-LLC/doubleclock/internal/display"
	"github.com/Nixie-Tech-LLC/doubleclock/internal/http/api"
	"github.com/Nixie-Tech-LLC/doubleclock/internal/http/api/settings/packets"
	"github.com/Nixie-Tech-LLC/doubleclock/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/doubleclock/internal/model"
)

type SettingsController struct {
	device      clock.Device
	notifier    middleware.Notifier
	displayTick time.Duration
	now         func() time.Time
}

func NewSettingsController(device clock.Device, notifier middleware.Notifier, displayTick time.Duration) *SettingsController {
	if notifier == nil {
		notifier = middleware.NopNotifier{}
	}
	return &SettingsController{
		device:      device,
		notifier:    notifier,
		displayTick: displayTick,
		now:         time.Now,
	}
}

// PageModule serves the browser form at the group root.
func PageModule(ctl *SettingsController) api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.Handle(http.MethodGet, "/", ctl.showSettingsPage)
		c.Handle(http.MethodPost, "/", ctl.saveSettingsPage)
	})
}

// SettingsModule serves the JSON proxy and the display preview.
func SettingsModule(ctl *SettingsController) api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/settings", ctl.getSettings)
		c.POST("/settings", ctl.saveSettings)
		c.GET("/settings/next", ctl.nextAlarm)

		c.Handle(http.MethodGet, "/display/ws", ctl.displayWebSocket)
	})
}

// GET /api/settings
func (s *SettingsController) getSettings(ctx *gin.Context) (any, *api.APIError) {
	settings, err := s.device.Settings(ctx.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("error fetching alarm data")
		return nil, clockError(err)
	}
	return packets.SettingsResponse{Alarms: nonNil(settings.Alarms)}, nil
}

// POST /api/settings
func (s *SettingsController) saveSettings(ctx *gin.Context) (any, *api.APIError) {
	var request packets.SaveSettingsRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	settings := request.Settings()
	ack, err := s.device.SaveSettings(ctx.Request.Context(), settings)
	if err != nil {
		log.Error().Err(err).Msg("error saving alarm data")
		return nil, clockError(err)
	}
	log.Info().RawJSON("ack", ack).Int("alarms", len(settings.Alarms)).Msg("successfully saved alarm data")
	s.notify(ctx, settings)

	return packets.SaveSettingsResponse{Alarms: settings.Alarms, Ack: ack}, nil
}

// GET /api/settings/next
func (s *SettingsController) nextAlarm(ctx *gin.Context) (any, *api.APIError) {
	settings, err := s.device.Settings(ctx.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("error fetching alarm data")
		return nil, clockError(err)
	}

	now := s.now()
	index, at, ok := settings.Next(now)
	if !ok {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "no alarm enabled"}
	}
	return packets.NextAlarmResponse{
		Alarm:   index,
		At:      at.Format(time.RFC3339),
		Message: display.NextAlarmMessage(settings, now),
	}, nil
}

func (s *SettingsController) notify(ctx *gin.Context, settings model.Settings) {
	if err := s.notifier.NotifyAlarms(ctx.Request.Context(), settings); err != nil {
		log.Warn().Err(err).Msg("failed to publish saved alarms")
	}
}

func clockError(err error) *api.APIError {
	var statusErr *clock.StatusError
	if errors.As(err, &statusErr) {
		return &api.APIError{Code: http.StatusBadGateway, Message: statusErr.Error()}
	}
	return &api.APIError{Code: http.StatusBadGateway, Message: "clock unavailable"}
}

func nonNil(alarms []model.Alarm) []model.Alarm {
	if alarms == nil {
		return []model.Alarm{}
	}
	return alarms
}
