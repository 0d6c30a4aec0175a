package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/harentsoaR/medischedule-portal/internal/models"
)

func TestViewsNavigateAwayUnmounts(t *testing.T) {
	api := &fakeBackend{}
	v := NewViews(context.Background(), api, tick, zerolog.Nop())

	p := v.Open("/patient/chat/apt-1", "apt-1")
	if !p.Mounted() {
		t.Fatal("expected mounted poller")
	}
	if again := v.Open("/patient/chat/apt-1", "apt-1"); again != p {
		t.Fatal("re-opening the same view should keep its poller")
	}
	if got, ok := v.Active("apt-1"); !ok || got != p {
		t.Fatal("expected active poller for apt-1")
	}

	v.Navigate("/patient/chat/apt-1")
	if !p.Mounted() {
		t.Fatal("navigating to the same view must not unmount it")
	}

	v.Navigate("/patient/appointments")
	if p.Mounted() {
		t.Fatal("navigating away must unmount the chat view")
	}
	if _, ok := v.Active("apt-1"); ok {
		t.Fatal("no view should be active after navigating away")
	}

	after := api.fetchCount()
	time.Sleep(5 * tick)
	if api.fetchCount() != after {
		t.Fatalf("timer leaked across navigation: %d -> %d", after, api.fetchCount())
	}
}

func TestViewsSwitchAppointment(t *testing.T) {
	api := &fakeBackend{}
	v := NewViews(context.Background(), api, time.Hour, zerolog.Nop())

	first := v.Open("/doctor/chat/apt-1", "apt-1")
	second := v.Open("/doctor/chat/apt-2", "apt-2")
	if first.Mounted() {
		t.Fatal("opening another chat must unmount the first")
	}
	if !second.Mounted() {
		t.Fatal("second chat should be mounted")
	}
	v.Close()
	if second.Mounted() {
		t.Fatal("Close must unmount")
	}
}

// stallingBackend never answers a fetch until its context is cancelled.
type stallingBackend struct {
	started chan struct{}
}

func (b *stallingBackend) ChatMessages(ctx context.Context, appointmentID string) ([]models.ChatMessage, error) {
	select {
	case b.started <- struct{}{}:
	default:
	}
	<-ctx.Done()
	return nil, ctx.Err()
}

func (b *stallingBackend) SendChatMessage(ctx context.Context, appointmentID, text string) (models.ChatMessage, error) {
	return models.ChatMessage{}, nil
}

func TestSlowFirstFetchDoesNotBlockNavigation(t *testing.T) {
	api := &stallingBackend{started: make(chan struct{}, 1)}
	v := NewViews(context.Background(), api, time.Hour, zerolog.Nop())

	opened := make(chan *Poller, 1)
	go func() { opened <- v.Open("/patient/chat/apt-1", "apt-1") }()

	var p *Poller
	select {
	case p = <-opened:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("Open waited on the first fetch")
	}
	select {
	case <-api.started:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("first fetch never started")
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := p.WaitFirst(reqCtx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("a cancelled request should stop waiting, got %v", err)
	}

	navigated := make(chan struct{})
	go func() {
		v.Navigate("/patient/appointments")
		close(navigated)
	}()
	select {
	case <-navigated:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("Navigate blocked behind a slow chat fetch")
	}
	if p.Mounted() {
		t.Fatal("navigating away must unmount the chat view")
	}
}
