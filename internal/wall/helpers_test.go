package wall

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/parishnet/videowall/internal/core"
)

type fakeTrack struct {
	id    string
	ended atomic.Bool
	stops atomic.Int32
}

func newFakeTrack(id string) *fakeTrack { return &fakeTrack{id: id} }

func (t *fakeTrack) ID() string  { return t.id }
func (t *fakeTrack) Ended() bool { return t.ended.Load() }
func (t *fakeTrack) Stop()       { t.stops.Add(1); t.ended.Store(true) }

type fakeSurface struct {
	mu       sync.Mutex
	attached core.VideoTrack
	attaches int
	detaches int
	playErr  error
	plays    int
}

func (s *fakeSurface) Attach(track core.VideoTrack) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attached = track
	s.attaches++
}

func (s *fakeSurface) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attached = nil
	s.detaches++
}

func (s *fakeSurface) setPlayErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playErr = err
}

func (s *fakeSurface) Play(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plays++
	return s.playErr
}

// fakeCall is a scriptable in-memory provider handle.
type fakeCall struct {
	mu           sync.Mutex
	participants []core.Participant
	subs         map[core.ParticipantID]core.SubscriptionUpdate
	captures     []core.CaptureProfile
	encodes      []core.EncodeProfile
	video        []bool
	audio        []bool
	joined       bool
	left         bool
	destroyed    bool
	joinErr      error
	destroyGate  chan struct{} // when non-nil, Destroy blocks until closed

	events chan core.Event
}

func newFakeCall() *fakeCall {
	return &fakeCall{
		subs:   make(map[core.ParticipantID]core.SubscriptionUpdate),
		events: make(chan core.Event, 64),
	}
}

func (c *fakeCall) Join(_ context.Context, _, _ string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.joinErr != nil {
		return c.joinErr
	}
	c.joined = true
	return nil
}

func (c *fakeCall) Leave(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.left = true
	return nil
}

func (c *fakeCall) Destroy(context.Context) error {
	c.mu.Lock()
	gate := c.destroyGate
	c.mu.Unlock()
	if gate != nil {
		<-gate
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.destroyed = true
	return nil
}

func (c *fakeCall) Participants() []core.Participant {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]core.Participant, len(c.participants))
	copy(out, c.participants)
	for i := range out {
		if u, ok := c.subs[out[i].ID]; ok {
			out[i].Subscribed = u.Subscribed
		}
	}
	return out
}

func (c *fakeCall) SetVideoCapture(_ context.Context, p core.CaptureProfile) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.captures = append(c.captures, p)
	return nil
}

func (c *fakeCall) SetLocalVideo(_ context.Context, enabled bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.video = append(c.video, enabled)
	return nil
}

func (c *fakeCall) SetLocalAudio(_ context.Context, enabled bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.audio = append(c.audio, enabled)
	return nil
}

func (c *fakeCall) UpdateSendEncoding(_ context.Context, p core.EncodeProfile) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.encodes = append(c.encodes, p)
	return nil
}

func (c *fakeCall) UpdateReceiveSubscription(_ context.Context, id core.ParticipantID, u core.SubscriptionUpdate) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs[id] = u
	return nil
}

func (c *fakeCall) Events() <-chan core.Event { return c.events }

func (c *fakeCall) setParticipants(ps []core.Participant) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.participants = ps
}

func (c *fakeCall) subscription(id core.ParticipantID) (core.SubscriptionUpdate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	u, ok := c.subs[id]
	return u, ok
}

func (c *fakeCall) wasLeft() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.left
}

func (c *fakeCall) lastEncode() (core.EncodeProfile, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.encodes) == 0 {
		return core.EncodeProfile{}, false
	}
	return c.encodes[len(c.encodes)-1], true
}
