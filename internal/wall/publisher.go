package wall

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/parishnet/videowall/internal/core"
)

// NetworkClass is the coarse pre-join hint used to pick a capture profile.
type NetworkClass int

const (
	NetUnknown NetworkClass = iota
	NetVerySlow
	NetSlow
	NetMedium
	NetFast
)

// DegradeThreshold: a provider quality report below this while live
// triggers the one-way encode downgrade.
const DegradeThreshold = 50

// captureProfiles is the fixed selection table. The slow tier is the
// product's canonical 240x180@8 low-bandwidth profile.
var captureProfiles = map[NetworkClass]core.CaptureProfile{
	NetVerySlow: {Width: 160, Height: 120, FrameRate: 5},
	NetSlow:     {Width: 240, Height: 180, FrameRate: 8},
	NetMedium:   {Width: 320, Height: 240, FrameRate: 10},
	NetFast:     {Width: 640, Height: 360, FrameRate: 15},
}

// SelectProfile picks a capture profile for the observed network class,
// falling back to the mid tier when the hint is unknown.
func SelectProfile(hint NetworkClass) core.CaptureProfile {
	if p, ok := captureProfiles[hint]; ok && hint != NetUnknown {
		return p
	}
	return captureProfiles[NetMedium]
}

// EncodeFor derives the publish constraints from a capture profile:
// smaller resolution, lower bitrate ceiling.
func EncodeFor(p core.CaptureProfile) core.EncodeProfile {
	var kbps int
	switch {
	case p.Width <= 160:
		kbps = 80
	case p.Width <= 240:
		kbps = 120
	case p.Width <= 320:
		kbps = 200
	default:
		kbps = 400
	}
	return core.EncodeProfile{
		MaxBitrateKbps:        kbps,
		MaxFrameRate:          p.FrameRate,
		ScaleResolutionDownBy: 1,
	}
}

// degrade produces the single post-join downgrade step: halved bitrate,
// reduced frame rate, extra downscale.
func degrade(p core.EncodeProfile) core.EncodeProfile {
	fps := p.MaxFrameRate / 2
	if fps < 2 {
		fps = 2
	}
	return core.EncodeProfile{
		MaxBitrateKbps:        p.MaxBitrateKbps / 2,
		MaxFrameRate:          fps,
		ScaleResolutionDownBy: p.ScaleResolutionDownBy * 2,
	}
}

// Publisher is the contributing side: it joins the room, captures video
// at the selected profile with audio disabled (audio is never published;
// dozens of simultaneous sites feeding back is not a product we ship),
// and reacts to live network-quality downgrades.
//
// The downgrade is a one-way ratchet for the lifetime of the publish
// session: media conditions during a live event tend to worsen
// monotonically, and upgrading back risks oscillation.
type Publisher struct {
	call      core.Call
	profile   core.CaptureProfile
	encode    core.EncodeProfile
	threshold int
	live      bool
	degraded  bool
}

type PublisherOptions struct {
	NetworkHint NetworkClass
	// DegradeThreshold overrides the default of 50 when > 0.
	DegradeThreshold int
}

func NewPublisher(call core.Call, opts PublisherOptions) *Publisher {
	profile := SelectProfile(opts.NetworkHint)
	threshold := opts.DegradeThreshold
	if threshold <= 0 {
		threshold = DegradeThreshold
	}
	return &Publisher{
		call:      call,
		profile:   profile,
		encode:    EncodeFor(profile),
		threshold: threshold,
	}
}

// Start joins the room and brings the camera up at the selected profile.
// An acquisition failure (no camera, no permission) is fatal to the
// publish attempt and propagates: it needs user intervention, not a retry
// loop.
func (p *Publisher) Start(ctx context.Context, roomURL, credential string) error {
	if err := p.call.Join(ctx, roomURL, credential); err != nil {
		return fmt.Errorf("join room: %w", err)
	}
	if err := p.call.SetVideoCapture(ctx, p.profile); err != nil {
		return fmt.Errorf("acquire camera: %w", err)
	}
	if err := p.call.SetLocalVideo(ctx, true); err != nil {
		return fmt.Errorf("enable camera: %w", err)
	}
	if err := p.call.SetLocalAudio(ctx, false); err != nil {
		log.Warn().Err(err).Str("module", "wall.publisher").Msg("disable audio failed")
	}
	if err := p.call.UpdateSendEncoding(ctx, p.encode); err != nil {
		log.Warn().Err(err).Str("module", "wall.publisher").Msg("initial encode constraints failed")
	}
	p.live = true
	log.Info().
		Str("module", "wall.publisher").
		Int("width", p.profile.Width).
		Int("height", p.profile.Height).
		Int("fps", p.profile.FrameRate).
		Int("max_kbps", p.encode.MaxBitrateKbps).
		Msg("publishing")
	return nil
}

// OnNetworkQuality handles a live quality report (0-100). The first
// report under the threshold issues the one additional downgrade; nothing
// ever raises the encode back up in this session.
func (p *Publisher) OnNetworkQuality(ctx context.Context, quality int) {
	if !p.live || p.degraded || quality >= p.threshold {
		return
	}
	p.encode = degrade(p.encode)
	p.degraded = true
	if err := p.call.UpdateSendEncoding(ctx, p.encode); err != nil {
		log.Warn().Err(err).Str("module", "wall.publisher").Msg("encode downgrade failed")
		return
	}
	log.Info().
		Str("module", "wall.publisher").
		Int("quality", quality).
		Int("max_kbps", p.encode.MaxBitrateKbps).
		Msg("encode downgraded for poor network")
}

// Run consumes provider events until the context ends or the provider
// reports a terminal disconnect.
func (p *Publisher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			p.stop()
			return ctx.Err()
		case ev, ok := <-p.call.Events():
			if !ok {
				return nil
			}
			switch ev.Type {
			case core.EventNetworkQuality:
				p.OnNetworkQuality(ctx, ev.Quality)
			case core.EventError:
				if ev.Fatal {
					log.Error().Err(ev.Err).Str("module", "wall.publisher").Msg("terminal provider error")
					p.stop()
					return ev.Err
				}
				log.Warn().Err(ev.Err).Str("module", "wall.publisher").Msg("provider error")
			}
		}
	}
}

// Encode reports the current constraints; used by status displays.
func (p *Publisher) Encode() core.EncodeProfile { return p.encode }

// Profile reports the selected capture profile.
func (p *Publisher) Profile() core.CaptureProfile { return p.profile }

func (p *Publisher) stop() {
	p.live = false
	ctx, cancel := context.WithTimeout(context.Background(), leaveTimeout)
	defer cancel()
	if err := p.call.Leave(ctx); err != nil {
		log.Warn().Err(err).Str("module", "wall.publisher").Msg("leave failed")
	}
}
