package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"

	"github.com/parishnet/videowall/internal/core"
)

var (
	ErrNotJoined = errors.New("not joined to a room")
	ErrDestroyed = errors.New("call destroyed")
)

// envelope is the signaling wire format, both directions.
type envelope struct {
	Type string `json:"type"`

	Credential string `json:"credential,omitempty"`
	Room       string `json:"room,omitempty"`

	Participant *participantPayload  `json:"participant,omitempty"`
	Snapshot    []participantPayload `json:"snapshot,omitempty"`

	SDP           string `json:"sdp,omitempty"`
	Candidate     string `json:"candidate,omitempty"`
	SDPMid        string `json:"sdpMid,omitempty"`
	SDPMLineIndex uint16 `json:"sdpMLineIndex,omitempty"`

	Subscribed bool `json:"subscribed,omitempty"`
	Layer      int  `json:"layer,omitempty"`
	Quality    int  `json:"quality,omitempty"`

	Width   int     `json:"width,omitempty"`
	Height  int     `json:"height,omitempty"`
	FPS     int     `json:"fps,omitempty"`
	MaxKbps int     `json:"maxKbps,omitempty"`
	Scale   float64 `json:"scale,omitempty"`
	Enabled bool    `json:"enabled,omitempty"`

	Error string `json:"error,omitempty"`
	Fatal bool   `json:"fatal,omitempty"`
}

type participantPayload struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Local      bool   `json:"local"`
	TrackState string `json:"trackState"`
	Subscribed bool   `json:"subscribed"`
	Quality    int    `json:"quality"`
}

type participantState struct {
	core.Participant
	track *remoteTrack
}

// Client is the websocket-signaled call handle. It owns the signaling
// connection, the pion peer, and the provider-truth participant table
// that core.Call.Participants exposes.
type Client struct {
	dialer *websocket.Dialer

	mu           sync.RWMutex
	ws           *websocket.Conn
	peer         *peerConnection
	participants map[core.ParticipantID]*participantState
	joined       bool
	destroyed    bool

	send    chan []byte
	events  chan core.Event
	joinAck chan error
	done    chan struct{}

	emitMu   sync.RWMutex
	evClosed bool
}

func NewClient() *Client {
	return &Client{
		dialer:       websocket.DefaultDialer,
		participants: make(map[core.ParticipantID]*participantState),
		send:         make(chan []byte, 32),
		events:       make(chan core.Event, 64),
		joinAck:      make(chan error, 1),
		done:         make(chan struct{}),
	}
}

// Factory adapts NewClient to core.CallFactory.
func Factory() (core.Call, error) { return NewClient(), nil }

func (c *Client) Join(ctx context.Context, roomURL, credential string) error {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return ErrDestroyed
	}
	if c.joined {
		c.mu.Unlock()
		return errors.New("already joined")
	}
	c.mu.Unlock()

	ws, _, err := c.dialer.DialContext(ctx, roomURL, nil)
	if err != nil {
		return fmt.Errorf("dial provider: %w", err)
	}

	peer, err := newPeerConnection(defaultWebRTCConfig())
	if err != nil {
		_ = ws.Close()
		return fmt.Errorf("create peer: %w", err)
	}
	peer.onICE = func(ci webrtc.ICECandidateInit) { c.sendCandidate(ci) }
	peer.onTrack = func(t *webrtc.TrackRemote) { c.handleTrack(t) }
	peer.onClose = func() {
		c.emit(core.Event{Type: core.EventError, Err: errors.New("peer connection closed"), Fatal: true})
	}
	peer.start()

	c.mu.Lock()
	c.ws = ws
	c.peer = peer
	c.mu.Unlock()

	go c.writePump()
	go c.readPump()

	c.sendJSON(envelope{Type: "join", Credential: credential})

	offer, err := peer.createOffer()
	if err != nil {
		return fmt.Errorf("create offer: %w", err)
	}
	c.sendJSON(envelope{Type: "offer", SDP: offer.SDP})

	select {
	case err := <-c.joinAck:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		return ctx.Err()
	case <-c.done:
		return ErrDestroyed
	}

	c.mu.Lock()
	c.joined = true
	c.mu.Unlock()
	log.Info().Str("module", "provider.call").Str("room", roomURL).Msg("joined")
	return nil
}

func (c *Client) Leave(ctx context.Context) error {
	c.mu.Lock()
	if !c.joined {
		c.mu.Unlock()
		return nil
	}
	c.joined = false
	c.mu.Unlock()
	c.sendJSON(envelope{Type: "leave"})
	return nil
}

func (c *Client) Destroy(ctx context.Context) error {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return nil
	}
	c.destroyed = true
	c.joined = false
	ws, peer := c.ws, c.peer
	for _, p := range c.participants {
		if p.track != nil {
			p.track.Stop()
		}
	}
	c.participants = make(map[core.ParticipantID]*participantState)
	c.mu.Unlock()

	close(c.done)
	if peer != nil {
		peer.close()
	}
	if ws != nil {
		_ = ws.Close()
	}

	c.emitMu.Lock()
	c.evClosed = true
	close(c.events)
	c.emitMu.Unlock()

	log.Info().Str("module", "provider.call").Msg("destroyed")
	return nil
}

// Participants returns a fresh snapshot of the live table.
func (c *Client) Participants() []core.Participant {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]core.Participant, 0, len(c.participants))
	for _, p := range c.participants {
		snap := p.Participant
		if p.track != nil && !p.track.Ended() {
			snap.Track = p.track
		}
		out = append(out, snap)
	}
	return out
}

func (c *Client) SetVideoCapture(ctx context.Context, p core.CaptureProfile) error {
	return c.command(envelope{Type: "capture", Width: p.Width, Height: p.Height, FPS: p.FrameRate})
}

func (c *Client) SetLocalVideo(ctx context.Context, enabled bool) error {
	return c.command(envelope{Type: "local-video", Enabled: enabled})
}

func (c *Client) SetLocalAudio(ctx context.Context, enabled bool) error {
	return c.command(envelope{Type: "local-audio", Enabled: enabled})
}

func (c *Client) UpdateSendEncoding(ctx context.Context, p core.EncodeProfile) error {
	return c.command(envelope{
		Type:    "encoding",
		MaxKbps: p.MaxBitrateKbps,
		FPS:     p.MaxFrameRate,
		Scale:   p.ScaleResolutionDownBy,
	})
}

func (c *Client) UpdateReceiveSubscription(ctx context.Context, id core.ParticipantID, u core.SubscriptionUpdate) error {
	return c.command(envelope{
		Type:        "subscribe",
		Participant: &participantPayload{ID: string(id)},
		Subscribed:  u.Subscribed,
		Layer:       u.Layer,
	})
}

func (c *Client) Events() <-chan core.Event { return c.events }

func (c *Client) command(env envelope) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.destroyed {
		return ErrDestroyed
	}
	if c.ws == nil {
		return ErrNotJoined
	}
	b, err := json.Marshal(env)
	if err != nil {
		return err
	}
	select {
	case c.send <- b:
		return nil
	default:
		return errors.New("signaling backpressure")
	}
}

func (c *Client) sendJSON(env envelope) {
	if err := c.command(env); err != nil {
		log.Error().Err(err).Str("module", "provider.call").Str("type", env.Type).Msg("send failed")
	}
}

func (c *Client) sendCandidate(ci webrtc.ICECandidateInit) {
	env := envelope{Type: "candidate", Candidate: ci.Candidate}
	if ci.SDPMid != nil {
		env.SDPMid = *ci.SDPMid
	}
	if ci.SDPMLineIndex != nil {
		env.SDPMLineIndex = *ci.SDPMLineIndex
	}
	c.sendJSON(env)
}

// handleTrack maps a pion OnTrack callback onto the event enum. The
// stream id carries the publishing participant's identity.
func (c *Client) handleTrack(t *webrtc.TrackRemote) {
	if !isVideo(t) {
		return
	}
	id := core.ParticipantID(t.StreamID())
	track := newRemoteTrack(t)

	c.mu.Lock()
	p, ok := c.participants[id]
	if !ok {
		// Track raced its participant-joined envelope; keep it so the
		// table is already correct when the participant shows up.
		p = &participantState{Participant: core.Participant{ID: id, TrackState: core.TrackSendable}}
		c.participants[id] = p
	}
	if p.track != nil {
		p.track.Stop()
	}
	p.track = track
	p.TrackState = core.TrackSendable
	c.mu.Unlock()

	c.emit(core.Event{Type: core.EventTrackStarted, Participant: id, Track: track})
}

// emit delivers an event without ever blocking a provider callback. A
// full buffer drops the event; the coordinator's periodic reconciliation
// re-derives whatever a dropped event would have told it.
func (c *Client) emit(ev core.Event) {
	c.emitMu.RLock()
	defer c.emitMu.RUnlock()
	if c.evClosed {
		return
	}
	select {
	case c.events <- ev:
	default:
		log.Warn().Str("module", "provider.call").Str("type", ev.Type.String()).Msg("event buffer full, dropped")
	}
}
