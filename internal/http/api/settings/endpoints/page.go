package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/doubleclock/internal/form"
	"github.com/Nixie-Tech-LLC/doubleclock/internal/model"
	"github.com/Nixie-Tech-LLC/doubleclock/internal/web"
)

// SavedFlash is shown once the clock accepted the submitted alarms.
const SavedFlash = "Settings saved successfully!"

type settingsPage struct {
	CountField string
	Count      int
	Alarms     []form.AlarmView
	Flash      string
}

func renderSettings(c *gin.Context, status int, alarms []form.AlarmView, flash string) {
	c.HTML(status, web.SettingsTemplate, settingsPage{
		CountField: form.CountField,
		Count:      len(alarms),
		Alarms:     alarms,
		Flash:      flash,
	})
}

// currentViews reads the alarms back from the clock, or none when it is unreachable.
func (s *SettingsController) currentViews(c *gin.Context) []form.AlarmView {
	settings, err := s.device.Settings(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("error fetching alarm data")
		settings = model.Settings{}
	}
	return form.Views(settings.Alarms)
}

// GET /
func (s *SettingsController) showSettingsPage(c *gin.Context) {
	renderSettings(c, http.StatusOK, s.currentViews(c), "")
}

// POST /
func (s *SettingsController) saveSettingsPage(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		log.Warn().Err(err).Msg("unreadable settings form")
		renderSettings(c, http.StatusBadRequest, s.currentViews(c), "")
		return
	}
	values := c.Request.PostForm

	alarms, err := form.Decode(values)
	if err != nil {
		log.Warn().Err(err).Msg("invalid settings form")
		views := form.Redisplay(values, err)
		if views == nil {
			views = s.currentViews(c)
		}
		renderSettings(c, http.StatusBadRequest, views, "")
		return
	}

	settings := model.Settings{Alarms: alarms}
	ack, err := s.device.SaveSettings(c.Request.Context(), settings)
	if err != nil {
		log.Error().Err(err).Msg("error saving alarm data")
		renderSettings(c, http.StatusBadGateway, form.Views(alarms), "")
		return
	}

	log.Info().RawJSON("ack", ack).Int("alarms", len(alarms)).Msg("successfully saved alarm data")
	s.notify(c, settings)
	renderSettings(c, http.StatusOK, form.Views(alarms), SavedFlash)
}
