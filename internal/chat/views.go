package chat

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Views tracks the one chat view that is mounted, the way a browser tab
// shows one page at a time. Navigating anywhere else unmounts it.
type Views struct {
	base     context.Context
	api      Backend
	interval time.Duration
	log      zerolog.Logger
	fatal    func(error) bool

	mu     sync.Mutex
	path   string
	poller *Poller
}

// NewViews ties every poller's lifetime to base as well as to navigation.
func NewViews(base context.Context, api Backend, interval time.Duration, log zerolog.Logger) *Views {
	return &Views{base: base, api: api, interval: interval, log: log}
}

// StopOn sets the fetch errors that end a mounted view's polling. Call it
// before the first Open.
func (v *Views) StopOn(fatal func(error) bool) {
	v.fatal = fatal
}

// Open mounts the chat view for appointmentID at path. Re-opening the view
// that is already mounted keeps its poller. The first fetch runs on the
// poller's goroutine; use WaitFirst to wait for it.
func (v *Views) Open(path, appointmentID string) *Poller {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.poller != nil && v.path == path && v.poller.AppointmentID() == appointmentID {
		return v.poller
	}
	v.unmountLocked()

	p := NewPoller(v.api, appointmentID, v.interval, v.log)
	p.StopOn(v.fatal)
	p.Mount(v.base)
	v.path = path
	v.poller = p
	return p
}

// Detached returns a poller for appointmentID that is not mounted, for a
// one-off send outside the chat view.
func (v *Views) Detached(appointmentID string) *Poller {
	return NewPoller(v.api, appointmentID, v.interval, v.log)
}

// Active returns the mounted poller if it serves appointmentID.
func (v *Views) Active(appointmentID string) (*Poller, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.poller == nil || v.poller.AppointmentID() != appointmentID {
		return nil, false
	}
	return v.poller, true
}

// Navigate records a page navigation; a chat view mounted at any other
// path is unmounted.
func (v *Views) Navigate(path string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.poller != nil && v.path != path {
		v.unmountLocked()
	}
}

// Close unmounts whatever is mounted.
func (v *Views) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.unmountLocked()
}

func (v *Views) unmountLocked() {
	if v.poller == nil {
		return
	}
	v.poller.Unmount()
	v.poller = nil
	v.path = ""
}
