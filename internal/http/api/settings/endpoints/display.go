package endpoints

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/doubleclock/internal/display"
)

const (
	writeWait     = 5 * time.Second
	offlineNotice = "CLOCK OFFLINE"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GET /api/display/ws
//
// Streams what the clock's marquee would show for the next alarm, one text
// message per frame, until the browser goes away.
func (s *SettingsController) displayWebSocket(c *gin.Context) {
	msg := offlineNotice
	if settings, err := s.device.Settings(c.Request.Context()); err != nil {
		log.Error().Err(err).Msg("error fetching alarm data")
	} else {
		msg = display.NextAlarmMessage(settings, s.now())
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// reader: only needed to notice the close frame
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	marquee := display.NewMarquee(display.SinkFunc(func(f display.Frame) error {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteMessage(websocket.TextMessage, []byte(f.String()))
	}))
	if err := marquee.SetMessage(msg); err != nil {
		log.Debug().Err(err).Msg("display preview closed")
		return
	}

	log.Debug().Str("message", msg).Msg("display preview connected")
	if err := marquee.Run(ctx, s.displayTick); err != nil && !errors.Is(err, context.Canceled) {
		log.Debug().Err(err).Msg("display preview closed")
	}
}
