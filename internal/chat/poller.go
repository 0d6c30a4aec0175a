// Package chat implements the appointment chat view: a fixed-interval poll
// of the full message list, with sends followed by an immediate re-fetch.
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/harentsoaR/medischedule-portal/internal/models"
)

const DefaultInterval = 3 * time.Second

var ErrEmptyMessage = errors.New("chat: message is empty")

// Backend is the slice of the API client the chat view needs.
type Backend interface {
	ChatMessages(ctx context.Context, appointmentID string) ([]models.ChatMessage, error)
	SendChatMessage(ctx context.Context, appointmentID, text string) (models.ChatMessage, error)
}

type Poller struct {
	api           Backend
	appointmentID string
	interval      time.Duration
	log           zerolog.Logger

	// seq numbers fetches as they start; applied is the newest one whose
	// result is on display. An older result arriving late is dropped.
	seq atomic.Uint64

	mu       sync.RWMutex
	messages []models.ChatMessage
	applied  uint64
	loaded   bool
	lastErr  error

	// fatal reports errors after which polling stops, e.g. a rejected token.
	fatal func(error) bool

	runMu  sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	first  chan struct{}
}

func NewPoller(api Backend, appointmentID string, interval time.Duration, log zerolog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		api:           api,
		appointmentID: appointmentID,
		interval:      interval,
		log:           log.With().Str("appointment_id", appointmentID).Logger(),
		messages:      []models.ChatMessage{},
	}
}

func (p *Poller) AppointmentID() string { return p.appointmentID }

// Mount starts polling: one fetch right away, then one every interval,
// until Unmount or until ctx is cancelled. The fetches run on the poll
// goroutine, so Mount itself never waits on the network. Mounting a
// mounted poller does nothing.
func (p *Poller) Mount(ctx context.Context) {
	p.runMu.Lock()
	defer p.runMu.Unlock()
	if p.cancel != nil {
		return
	}

	loopCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.first = make(chan struct{})

	go p.loop(loopCtx, p.done, p.first)
	p.log.Debug().Dur("interval", p.interval).Msg("chat view mounted")
}

// StopOn sets the errors that end polling. Call it before Mount.
func (p *Poller) StopOn(fatal func(error) bool) {
	p.fatal = fatal
}

// WaitFirst blocks until the first fetch after Mount has finished, or ctx
// is done. It returns at once when the poller was never mounted.
func (p *Poller) WaitFirst(ctx context.Context) error {
	p.runMu.Lock()
	first := p.first
	p.runMu.Unlock()
	if first == nil {
		return nil
	}
	select {
	case <-first:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Poller) loop(ctx context.Context, done, first chan struct{}) {
	defer close(done)
	err := p.Fetch(ctx)
	close(first)
	if p.stopped(err) {
		return
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if p.stopped(p.Fetch(ctx)) {
				return
			}
		}
	}
}

func (p *Poller) stopped(err error) bool {
	if err == nil || p.fatal == nil || !p.fatal(err) {
		return false
	}
	p.log.Info().Err(err).Msg("chat polling stopped")
	return true
}

// Unmount stops the timer and waits for the poll loop to exit, so no fetch
// starts after it returns.
func (p *Poller) Unmount() {
	p.runMu.Lock()
	defer p.runMu.Unlock()
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
	p.cancel = nil
	p.done = nil
	p.log.Debug().Msg("chat view unmounted")
}

func (p *Poller) Mounted() bool {
	p.runMu.Lock()
	defer p.runMu.Unlock()
	return p.cancel != nil
}

// Fetch replaces the displayed list with the server's. On failure the
// previous list stays and the error is only logged and returned.
func (p *Poller) Fetch(ctx context.Context) error {
	n := p.seq.Add(1)
	list, err := p.api.ChatMessages(ctx, p.appointmentID)
	if err != nil {
		if ctx.Err() == nil {
			p.log.Warn().Err(err).Msg("error fetching messages")
		}
		p.mu.Lock()
		if n > p.applied {
			p.lastErr = err
		}
		p.mu.Unlock()
		return err
	}
	if list == nil {
		list = []models.ChatMessage{}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if n <= p.applied {
		p.log.Debug().Uint64("seq", n).Uint64("applied", p.applied).Msg("dropping stale chat response")
		return nil
	}
	p.messages = list
	p.applied = n
	p.loaded = true
	p.lastErr = nil
	return nil
}

// Send posts text and then re-fetches. Blank text is rejected without
// touching the network.
func (p *Poller) Send(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}
	if _, err := p.api.SendChatMessage(ctx, p.appointmentID, text); err != nil {
		p.log.Warn().Err(err).Msg("send message failed")
		return err
	}
	_ = p.Fetch(ctx)
	return nil
}

// Messages returns a copy of the list on display.
func (p *Poller) Messages() []models.ChatMessage {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]models.ChatMessage, len(p.messages))
	copy(out, p.messages)
	return out
}

// Loaded reports whether any fetch has succeeded yet.
func (p *Poller) Loaded() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loaded
}

func (p *Poller) LastError() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastErr
}
