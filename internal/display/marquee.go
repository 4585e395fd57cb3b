// Package display drives the clock's four character alphanumeric display.
package display

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/doubleclock/internal/model"
)

// Width is the number of characters on the display.
const Width = 4

// Frame is the content of the display at one instant.
type Frame [Width]byte

func (f Frame) String() string { return string(f[:]) }

// Sink receives every frame written to the display.
type Sink interface {
	WriteFrame(Frame) error
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(Frame) error

func (f SinkFunc) WriteFrame(frame Frame) error { return f(frame) }

func blank() Frame {
	return Frame{' ', ' ', ' ', ' '}
}

// Marquee shows short messages still and scrolls long ones one character
// per tick.
type Marquee struct {
	mu     sync.Mutex
	sink   Sink
	msg    string
	buffer Frame
	index  int
}

// NewMarquee returns a blank marquee writing to sink.
func NewMarquee(sink Sink) *Marquee {
	return &Marquee{sink: sink, buffer: blank()}
}

// SetMessage replaces the message. Setting the current message again is a no-op.
// Messages that fit are written left aligned right away, longer ones start
// scrolling in on the next Tick.
func (m *Marquee) SetMessage(msg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if msg == m.msg {
		return nil
	}
	m.msg = msg
	m.buffer = blank()
	m.index = 0

	if len(m.msg) > Width {
		return nil
	}
	copy(m.buffer[:], m.msg)
	return m.write()
}

// Tick advances a scrolling message by one character.
func (m *Marquee) Tick() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.msg) <= Width {
		return nil
	}
	if m.index >= len(m.msg) {
		m.index = 0
	}
	copy(m.buffer[:Width-1], m.buffer[1:])
	m.buffer[Width-1] = m.msg[m.index]
	m.index++
	return m.write()
}

// Frame returns what is currently shown.
func (m *Marquee) Frame() Frame {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buffer
}

func (m *Marquee) write() error {
	if m.sink == nil {
		return nil
	}
	if err := m.sink.WriteFrame(m.buffer); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// Run ticks the marquee every interval until ctx is done or the sink fails.
func (m *Marquee) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := m.Tick(); err != nil {
				log.Debug().Err(err).Msg("marquee stopped")
				return err
			}
		}
	}
}

// NextAlarmMessage is the text the clock shows for the upcoming alarm,
// e.g. "MON 07:30", or "NO ALARM" when nothing is enabled.
func NextAlarmMessage(settings model.Settings, now time.Time) string {
	_, at, ok := settings.Next(now)
	if !ok {
		return "NO ALARM"
	}
	day := model.WeekdayLabels[at.Weekday()]
	return fmt.Sprintf("%s %02d:%02d", strings.ToUpper(day), at.Hour(), at.Minute())
}
