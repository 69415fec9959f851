// Package sync refreshes the unread/total counters shown in the
// sidebar. Refreshes happen only when an action asks for one; there is
// no periodic timer and no background reconciliation.
package sync

import (
	"context"
	"errors"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nvu/mailterm/internal/api"
	"github.com/nvu/mailterm/internal/model"
)

// fetchTimeout is the maximum time allowed for a single stats fetch.
const fetchTimeout = 15 * time.Second

// StatsResultMsg is a tea.Msg sent when a stats refresh completes.
type StatsResultMsg struct {
	Stats *model.Stats
	Err   error
	// Auth is set when the server rejected the session; the app reacts
	// by dropping to the login screen.
	Auth *api.AuthError
}

// Refresher fetches mailbox counters on demand. Triggers that arrive
// while a fetch is in flight coalesce into a single follow-up fetch.
type Refresher struct {
	client *api.Client

	triggerCh chan struct{}
	resultCh  chan StatsResultMsg
	stopCh    chan struct{}

	mu      gosync.Mutex
	running bool
}

// New creates a Refresher over the given API client.
func New(client *api.Client) *Refresher {
	return &Refresher{
		client:    client,
		triggerCh: make(chan struct{}, 1),
		resultCh:  make(chan StatsResultMsg, 4),
		stopCh:    make(chan struct{}),
	}
}

// Start launches the refresh loop and returns the subscription command
// that delivers StatsResultMsg messages to the Bubble Tea runtime.
func (r *Refresher) Start() tea.Cmd {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	r.running = true
	r.mu.Unlock()

	go r.loop()

	return r.waitForResult()
}

// Stop halts the refresh loop.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return
	}

	close(r.stopCh)
	r.running = false
}

// Trigger requests a refresh. The buffered channel holds at most one
// pending request, so bursts of triggers produce one fetch.
func (r *Refresher) Trigger() {
	select {
	case r.triggerCh <- struct{}{}:
	default:
	}
}

// loop waits for triggers and fetches stats one at a time.
func (r *Refresher) loop() {
	for {
		select {
		case <-r.stopCh:
			return
		case <-r.triggerCh:
			r.fetch()
		}
	}
}

// fetch performs a single stats request and publishes the result.
func (r *Refresher) fetch() {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	stats, err := r.client.Stats(ctx)
	if err != nil {
		msg := StatsResultMsg{Err: err}
		var authErr *api.AuthError
		if errors.As(err, &authErr) {
			msg.Auth = authErr
		}
		r.sendResult(msg)
		return
	}

	r.sendResult(StatsResultMsg{Stats: stats})
}

// sendResult publishes a result without blocking the loop.
func (r *Refresher) sendResult(msg StatsResultMsg) {
	select {
	case r.resultCh <- msg:
	default:
	}
}

// waitForResult returns a tea.Cmd that waits for the next refresh
// result. The app re-subscribes after handling each StatsResultMsg.
func (r *Refresher) waitForResult() tea.Cmd {
	return func() tea.Msg {
		result, ok := <-r.resultCh
		if !ok {
			return nil
		}
		return result
	}
}

// WaitForNextResult re-subscribes to refresh results. Call it after
// processing a StatsResultMsg to keep listening.
func (r *Refresher) WaitForNextResult() tea.Cmd {
	return r.waitForResult()
}
