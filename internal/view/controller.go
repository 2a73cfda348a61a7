// Package view holds the names form view-controller.
//
// A Controller owns one State and is the only thing that mutates it. Every
// change is published to subscribers as a fresh snapshot; renderers draw
// from snapshots and never touch the State directly.
package view

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/harrylevesque/hellonames/internal/models"
	"github.com/harrylevesque/hellonames/internal/utils"
)

// User-facing messages.
const (
	MsgEmptyName         = "Please enter a name"
	MsgFetchFailed       = "Failed to fetch names"
	MsgAddFailed         = "Failed to add name"
	MsgConnectionFailure = "Error connecting to server"
)

// NamesAPI is the list-storage API as seen by the controller.
type NamesAPI interface {
	ListNames(ctx context.Context) (models.NamesResponse, error)
	AddName(ctx context.Context, name string) (models.AddNameResponse, error)
}

// State is a snapshot of the form.
type State struct {
	DraftName    string
	Names        []string
	ErrorMessage string
	IsLoading    bool
	IsSubmitting bool
}

// CanSubmit reports whether the submit control should be enabled.
func (s State) CanSubmit() bool {
	return !s.IsSubmitting && strings.TrimSpace(s.DraftName) != ""
}

func (s State) clone() State {
	s.Names = slices.Clone(s.Names)
	return s
}

// Controller drives the names form. It is safe for concurrent use; calls
// that reach the network block until the response settles.
type Controller struct {
	api    NamesAPI
	logger *slog.Logger

	mu    sync.Mutex
	state State
	subs  map[int]func(State)
	next  int

	// notifyMu keeps snapshot delivery in mutation order.
	notifyMu sync.Mutex

	mount sync.Once
}

// NewController returns a controller with an empty State.
func NewController(api NamesAPI, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = utils.NopLogger()
	}
	return &Controller{
		api:    api,
		logger: logger,
		state:  State{Names: []string{}},
		subs:   make(map[int]func(State)),
	}
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// CanSubmit reports whether the current state allows a submission.
func (c *Controller) CanSubmit() bool {
	return c.State().CanSubmit()
}

// Subscribe registers fn to receive every new snapshot. fn runs on the
// goroutine that made the change and must not call back into mutating
// methods.
func (c *Controller) Subscribe(fn func(State)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.next
	c.next++
	c.subs[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// update applies fn to the state and publishes the result.
func (c *Controller) update(fn func(*State)) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	fn(&c.state)
	snap := c.state.clone()
	ids := make([]int, 0, len(c.subs))
	for id := range c.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	subs := make([]func(State), 0, len(ids))
	for _, id := range ids {
		subs = append(subs, c.subs[id])
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(snap.clone())
	}
}

// SetDraft records the text currently in the input.
func (c *Controller) SetDraft(s string) {
	c.update(func(st *State) { st.DraftName = s })
}

// Mount runs the initial load. Later calls do nothing.
func (c *Controller) Mount(ctx context.Context) {
	c.mount.Do(func() { c.LoadNames(ctx) })
}

// LoadNames replaces the displayed list with the server's. On failure the
// previous list stays and ErrorMessage is set.
func (c *Controller) LoadNames(ctx context.Context) {
	c.update(func(st *State) {
		st.IsLoading = true
		st.ErrorMessage = ""
	})
	defer c.update(func(st *State) { st.IsLoading = false })

	resp, err := c.api.ListNames(ctx)
	if err != nil {
		c.logger.Error("fetch names failed", "error", err)
		c.update(func(st *State) { st.ErrorMessage = MsgConnectionFailure })
		return
	}
	if !resp.Success {
		c.update(func(st *State) { st.ErrorMessage = MsgFetchFailed })
		return
	}
	names := resp.Names
	if names == nil {
		names = []string{}
	}
	c.update(func(st *State) { st.Names = slices.Clone(names) })
}

// Submit submits the current draft.
func (c *Controller) Submit(ctx context.Context) {
	c.SubmitName(ctx, c.State().DraftName)
}

// SubmitName posts the trimmed raw input. Blank input is rejected without a
// network call. On success the draft is cleared and the list is refetched;
// on failure the draft is kept. A call made while another submission is in
// flight is ignored.
func (c *Controller) SubmitName(ctx context.Context, raw string) {
	name := strings.TrimSpace(raw)
	if name == "" {
		c.update(func(st *State) { st.ErrorMessage = MsgEmptyName })
		return
	}

	claimed := false
	c.update(func(st *State) {
		if st.IsSubmitting {
			return
		}
		claimed = true
		st.IsSubmitting = true
		st.ErrorMessage = ""
	})
	if !claimed {
		return
	}
	defer c.update(func(st *State) { st.IsSubmitting = false })

	resp, err := c.api.AddName(ctx, name)
	if err != nil {
		c.logger.Error("submit name failed", "error", err)
		c.update(func(st *State) { st.ErrorMessage = MsgConnectionFailure })
		return
	}
	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = MsgAddFailed
		}
		c.update(func(st *State) { st.ErrorMessage = msg })
		return
	}

	c.update(func(st *State) { st.DraftName = "" })
	c.LoadNames(ctx)
}
