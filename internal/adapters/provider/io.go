package provider

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"

	"github.com/parishnet/videowall/internal/core"
)

const writeDeadline = 5 * time.Second

func (c *Client) writePump() {
	for {
		select {
		case <-c.done:
			log.Debug().Str("module", "provider.io").Msg("writePump done")
			return
		case data := <-c.send:
			if err := c.ws.SetWriteDeadline(time.Now().Add(writeDeadline)); err != nil {
				log.Error().Err(err).Str("module", "provider.io").Msg("writePump set deadline")
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "provider.io").Msg("writePump write error")
				return
			}
		}
	}
}

func (c *Client) readPump() {
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			select {
			case <-c.done:
				// Expected: Destroy closed the socket under us.
			default:
				log.Error().Err(err).Str("module", "provider.io").Msg("readPump read error")
				c.emit(core.Event{Type: core.EventError, Err: err, Fatal: true})
			}
			return
		}
		c.handleEnvelope(data)
	}
}

func (c *Client) handleEnvelope(data []byte) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "provider.io").Msg("bad envelope")
		return
	}

	switch env.Type {
	case "joined":
		c.applySnapshot(env.Snapshot)
		select {
		case c.joinAck <- nil:
		default:
		}
		c.emit(core.Event{Type: core.EventJoined})

	case "join-error":
		select {
		case c.joinAck <- errors.New(env.Error):
		default:
		}

	case "participant-joined":
		id := c.applyParticipant(env.Participant)
		c.emit(core.Event{Type: core.EventParticipantJoined, Participant: id})

	case "participant-updated":
		id := c.applyParticipant(env.Participant)
		c.emit(core.Event{Type: core.EventParticipantUpdated, Participant: id})

	case "participant-left":
		if env.Participant == nil {
			return
		}
		id := core.ParticipantID(env.Participant.ID)
		c.mu.Lock()
		if p, ok := c.participants[id]; ok {
			if p.track != nil {
				p.track.Stop()
			}
			delete(c.participants, id)
		}
		c.mu.Unlock()
		c.emit(core.Event{Type: core.EventParticipantLeft, Participant: id})

	case "track-stopped":
		if env.Participant == nil {
			return
		}
		id := core.ParticipantID(env.Participant.ID)
		c.mu.Lock()
		if p, ok := c.participants[id]; ok {
			if p.track != nil {
				p.track.Stop()
			}
			p.track = nil
			p.TrackState = core.TrackOff
		}
		c.mu.Unlock()
		c.emit(core.Event{Type: core.EventTrackStopped, Participant: id})

	case "subscription-updated":
		if env.Participant == nil {
			return
		}
		id := core.ParticipantID(env.Participant.ID)
		c.mu.Lock()
		if p, ok := c.participants[id]; ok {
			p.Subscribed = env.Subscribed
		}
		c.mu.Unlock()
		c.emit(core.Event{Type: core.EventParticipantUpdated, Participant: id})

	case "network-quality":
		c.emit(core.Event{Type: core.EventNetworkQuality, Quality: env.Quality})

	case "answer":
		c.mu.RLock()
		peer := c.peer
		c.mu.RUnlock()
		if peer == nil {
			return
		}
		if err := peer.applyAnswer(env.SDP); err != nil {
			log.Error().Err(err).Str("module", "provider.io").Msg("apply answer")
		}

	case "candidate":
		c.mu.RLock()
		peer := c.peer
		c.mu.RUnlock()
		if peer == nil {
			return
		}
		cand := webrtc.ICECandidateInit{Candidate: env.Candidate}
		if env.SDPMid != "" {
			cand.SDPMid = &env.SDPMid
		}
		idx := env.SDPMLineIndex
		cand.SDPMLineIndex = &idx
		if err := peer.addICECandidate(cand); err != nil {
			log.Error().Err(err).Str("module", "provider.io").Msg("add ice candidate")
		}

	case "error":
		c.emit(core.Event{Type: core.EventError, Err: errors.New(env.Error), Fatal: env.Fatal})

	default:
		log.Warn().Str("module", "provider.io").Str("type", env.Type).Msg("unknown envelope")
	}
}

func (c *Client) applySnapshot(snapshot []participantPayload) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range snapshot {
		c.applyParticipantLocked(&snapshot[i])
	}
}

func (c *Client) applyParticipant(p *participantPayload) core.ParticipantID {
	if p == nil {
		return ""
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applyParticipantLocked(p)
}

// applyParticipantLocked merges a payload into the live table, preserving
// any track handle that arrived ahead of the participant metadata.
func (c *Client) applyParticipantLocked(p *participantPayload) core.ParticipantID {
	id := core.ParticipantID(p.ID)
	state, ok := c.participants[id]
	if !ok {
		state = &participantState{}
		c.participants[id] = state
	}
	state.ID = id
	state.Name = p.Name
	state.Local = p.Local
	state.Subscribed = p.Subscribed
	state.Quality = p.Quality
	state.TrackState = parseTrackState(p.TrackState)
	return id
}

func parseTrackState(s string) core.TrackState {
	switch s {
	case "off":
		return core.TrackOff
	case "blocked":
		return core.TrackBlocked
	case "sendable":
		return core.TrackSendable
	default:
		return core.TrackUnknown
	}
}
