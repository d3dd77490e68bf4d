package provider

import (
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"
)

// peerConnection wraps the pion peer used for receiving remote media.
// Signaling (offer/answer/candidates) travels over the websocket.
type peerConnection struct {
	pc      *webrtc.PeerConnection
	onICE   func(webrtc.ICECandidateInit)
	onTrack func(track *webrtc.TrackRemote)
	onClose func()
}

func defaultWebRTCConfig() webrtc.Configuration {
	return webrtc.Configuration{
		ICEServers: []webrtc.ICEServer{
			{URLs: []string{"stun:stun.l.google.com:19302"}},
		},
	}
}

func newPeerConnection(cfg webrtc.Configuration) (*peerConnection, error) {
	pc, err := webrtc.NewPeerConnection(cfg)
	if err != nil {
		return nil, err
	}
	return &peerConnection{pc: pc}, nil
}

func (p *peerConnection) start() {
	p.pc.OnICECandidate(func(cand *webrtc.ICECandidate) {
		if cand != nil && p.onICE != nil {
			p.onICE(cand.ToJSON())
		}
	})

	p.pc.OnTrack(func(track *webrtc.TrackRemote, _ *webrtc.RTPReceiver) {
		log.Info().
			Str("module", "provider.peer").
			Str("kind", track.Kind().String()).
			Str("track_id", track.ID()).
			Str("stream_id", track.StreamID()).
			Msg("remote track")
		if p.onTrack != nil {
			p.onTrack(track)
		}
	})

	p.pc.OnConnectionStateChange(func(s webrtc.PeerConnectionState) {
		log.Info().Str("module", "provider.peer").Str("state", s.String()).Msg("peer state")
		if s == webrtc.PeerConnectionStateFailed || s == webrtc.PeerConnectionStateClosed {
			if p.onClose != nil {
				p.onClose()
			}
		}
	})
}

// createOffer prepares a recv-capable offer for the signaling channel.
func (p *peerConnection) createOffer() (*webrtc.SessionDescription, error) {
	if _, err := p.pc.AddTransceiverFromKind(webrtc.RTPCodecTypeVideo, webrtc.RTPTransceiverInit{
		Direction: webrtc.RTPTransceiverDirectionSendrecv,
	}); err != nil {
		return nil, err
	}
	offer, err := p.pc.CreateOffer(nil)
	if err != nil {
		return nil, err
	}
	gatherComplete := webrtc.GatheringCompletePromise(p.pc)
	if err := p.pc.SetLocalDescription(offer); err != nil {
		return nil, err
	}
	<-gatherComplete
	return p.pc.LocalDescription(), nil
}

func (p *peerConnection) applyAnswer(sdp string) error {
	return p.pc.SetRemoteDescription(webrtc.SessionDescription{
		Type: webrtc.SDPTypeAnswer,
		SDP:  sdp,
	})
}

func (p *peerConnection) addICECandidate(ci webrtc.ICECandidateInit) error {
	return p.pc.AddICECandidate(ci)
}

func (p *peerConnection) close() {
	if err := p.pc.Close(); err != nil {
		log.Error().Err(err).Str("module", "provider.peer").Msg("close error")
	}
}
