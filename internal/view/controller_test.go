package view

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrylevesque/hellonames/internal/models"
)

// fakeAPI replays canned responses and records calls.
type fakeAPI struct {
	mu sync.Mutex

	lists   []models.NamesResponse
	listErr error
	add     models.AddNameResponse
	addErr  error

	listCalls int
	added     []string

	// during runs inside each call, before it returns.
	during func()
}

func (f *fakeAPI) ListNames(ctx context.Context) (models.NamesResponse, error) {
	f.mu.Lock()
	f.listCalls++
	var resp models.NamesResponse
	if len(f.lists) > 0 {
		resp = f.lists[0]
		if len(f.lists) > 1 {
			f.lists = f.lists[1:]
		}
	}
	during := f.during
	f.mu.Unlock()
	if during != nil {
		during()
	}
	return resp, f.listErr
}

func (f *fakeAPI) AddName(ctx context.Context, name string) (models.AddNameResponse, error) {
	f.mu.Lock()
	f.added = append(f.added, name)
	during := f.during
	f.mu.Unlock()
	if during != nil {
		during()
	}
	return f.add, f.addErr
}

func record(c *Controller) *[]State {
	var snaps []State
	c.Subscribe(func(s State) { snaps = append(snaps, s) })
	return &snaps
}

func TestMountLoadsNames(t *testing.T) {
	api := &fakeAPI{lists: []models.NamesResponse{{Success: true, Names: []string{"Ada", "Grace"}}}}
	c := NewController(api, nil)

	c.Mount(context.Background())
	c.Mount(context.Background())

	want := State{Names: []string{"Ada", "Grace"}}
	if diff := cmp.Diff(want, c.State()); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, api.listCalls)
}

func TestMountServerFailure(t *testing.T) {
	api := &fakeAPI{lists: []models.NamesResponse{{Success: false}}}
	c := NewController(api, nil)

	c.Mount(context.Background())

	st := c.State()
	assert.Empty(t, st.Names)
	assert.Equal(t, MsgFetchFailed, st.ErrorMessage)
	assert.False(t, st.IsLoading)
}

func TestLoadFailureKeepsStaleList(t *testing.T) {
	api := &fakeAPI{lists: []models.NamesResponse{{Success: true, Names: []string{"Ada"}}}}
	c := NewController(api, nil)
	c.LoadNames(context.Background())

	api.listErr = errors.New("connection refused")
	c.LoadNames(context.Background())

	st := c.State()
	assert.Equal(t, []string{"Ada"}, st.Names)
	assert.Equal(t, MsgConnectionFailure, st.ErrorMessage)
}

func TestLoadingFlagOnlyDuringLoad(t *testing.T) {
	api := &fakeAPI{lists: []models.NamesResponse{{Success: true, Names: []string{"Ada"}}}}
	c := NewController(api, nil)
	api.during = func() {
		assert.True(t, c.State().IsLoading)
	}
	snaps := record(c)

	c.LoadNames(context.Background())

	require.NotEmpty(t, *snaps)
	assert.True(t, (*snaps)[0].IsLoading)
	last := (*snaps)[len(*snaps)-1]
	assert.False(t, last.IsLoading)
	assert.False(t, last.IsSubmitting)
}

func TestLoadClearsPreviousError(t *testing.T) {
	api := &fakeAPI{lists: []models.NamesResponse{{Success: true}}}
	c := NewController(api, nil)
	c.SubmitName(context.Background(), "   ")
	require.Equal(t, MsgEmptyName, c.State().ErrorMessage)

	c.LoadNames(context.Background())

	assert.Empty(t, c.State().ErrorMessage)
	assert.NotNil(t, c.State().Names)
}

func TestSubmitRejectsBlankInput(t *testing.T) {
	for _, in := range []string{"", " ", "\t", "  \n  "} {
		api := &fakeAPI{}
		c := NewController(api, nil)
		c.SetDraft(in)

		c.SubmitName(context.Background(), in)

		assert.Empty(t, api.added, "input %q", in)
		assert.Zero(t, api.listCalls, "input %q", in)
		assert.Equal(t, MsgEmptyName, c.State().ErrorMessage)
		assert.False(t, c.State().IsSubmitting)
	}
}

func TestSubmitSendsTrimmedValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ada", "Ada"},
		{"  Linus  ", "Linus"},
		{"\tMary  Jane\n", "Mary  Jane"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			api := &fakeAPI{add: models.AddNameResponse{Success: true}, lists: []models.NamesResponse{{Success: true}}}
			c := NewController(api, nil)

			c.SubmitName(context.Background(), tt.in)

			assert.Equal(t, []string{tt.want}, api.added)
		})
	}
}

func TestSubmitSuccessClearsDraftAndRefetchesOnce(t *testing.T) {
	api := &fakeAPI{
		add:   models.AddNameResponse{Success: true, Message: "Name stored successfully"},
		lists: []models.NamesResponse{{Success: true, Names: []string{"Linus"}}},
	}
	c := NewController(api, nil)
	c.SetDraft("  Linus  ")

	c.Submit(context.Background())

	want := State{Names: []string{"Linus"}}
	if diff := cmp.Diff(want, c.State()); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, api.listCalls)
}

func TestSubmitFailureKeepsDraft(t *testing.T) {
	tests := []struct {
		name    string
		add     models.AddNameResponse
		addErr  error
		wantMsg string
	}{
		{
			name:    "server message",
			add:     models.AddNameResponse{Success: false, Message: "duplicate name"},
			wantMsg: "duplicate name",
		},
		{
			name:    "server without message",
			add:     models.AddNameResponse{Success: false},
			wantMsg: MsgAddFailed,
		},
		{
			name:    "transport",
			addErr:  errors.New("dial tcp: connection refused"),
			wantMsg: MsgConnectionFailure,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{add: tt.add, addErr: tt.addErr}
			c := NewController(api, nil)
			c.SetDraft("Bob")

			c.Submit(context.Background())

			st := c.State()
			assert.Equal(t, "Bob", st.DraftName)
			assert.Equal(t, tt.wantMsg, st.ErrorMessage)
			assert.False(t, st.IsSubmitting)
			assert.Zero(t, api.listCalls)
		})
	}
}

func TestSubmittingFlagOnlyDuringSubmit(t *testing.T) {
	api := &fakeAPI{add: models.AddNameResponse{Success: false}}
	c := NewController(api, nil)
	var seen bool
	api.during = func() { seen = c.State().IsSubmitting }
	snaps := record(c)

	c.SubmitName(context.Background(), "Ada")

	assert.True(t, seen)
	last := (*snaps)[len(*snaps)-1]
	assert.False(t, last.IsSubmitting)
	assert.False(t, last.IsLoading)
}

func TestSubmitClearsPreviousError(t *testing.T) {
	api := &fakeAPI{add: models.AddNameResponse{Success: true}, lists: []models.NamesResponse{{Success: true}}}
	c := NewController(api, nil)
	c.SubmitName(context.Background(), "")
	var errDuringCall string
	api.during = func() { errDuringCall = c.State().ErrorMessage }

	c.SubmitName(context.Background(), "Ada")

	assert.Empty(t, errDuringCall)
	assert.Empty(t, c.State().ErrorMessage)
}

func TestOverlappingSubmitIgnored(t *testing.T) {
	api := &fakeAPI{add: models.AddNameResponse{Success: false}}
	c := NewController(api, nil)
	api.during = func() {
		api.during = nil
		c.SubmitName(context.Background(), "Grace")
	}

	c.SubmitName(context.Background(), "Ada")

	assert.Equal(t, []string{"Ada"}, api.added)
}

func TestCanSubmit(t *testing.T) {
	assert.False(t, State{}.CanSubmit())
	assert.False(t, State{DraftName: "  "}.CanSubmit())
	assert.True(t, State{DraftName: "Ada"}.CanSubmit())
	assert.False(t, State{DraftName: "Ada", IsSubmitting: true}.CanSubmit())
}

func TestSnapshotsAreCopies(t *testing.T) {
	api := &fakeAPI{lists: []models.NamesResponse{{Success: true, Names: []string{"Ada"}}}}
	c := NewController(api, nil)
	c.LoadNames(context.Background())

	st := c.State()
	st.Names[0] = "Mallory"

	assert.Equal(t, []string{"Ada"}, c.State().Names)
}

func TestUnsubscribe(t *testing.T) {
	c := NewController(&fakeAPI{}, nil)
	n := 0
	unsub := c.Subscribe(func(State) { n++ })
	c.SetDraft("A")
	unsub()
	c.SetDraft("Ad")

	assert.Equal(t, 1, n)
}
