package wall

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/parishnet/videowall/internal/core"
)

// SubscribeCommand asks the provider to subscribe the local viewer to one
// participant's video at a given layer.
type SubscribeCommand struct {
	ID    core.ParticipantID
	Layer int
}

// PlanSubscriptions reconciles receive-subscriptions against the visible
// set: every remote participant with a published video track that is not
// yet subscribed gets a subscribe-lowest-layer command. The provider's
// auto-subscribe can race track publication and silently leave a feed
// never subscribed; this planner re-derives the correct state from
// provider truth instead of trusting event delivery.
//
// Running it twice on an unchanged snapshot yields nothing the second
// time the provider acknowledges, and an empty plan means no provider
// call at all.
func PlanSubscriptions(visible []core.Participant) []SubscribeCommand {
	var cmds []SubscribeCommand
	for _, p := range visible {
		if p.Track == nil || p.Subscribed {
			continue
		}
		cmds = append(cmds, SubscribeCommand{ID: p.ID, Layer: core.LayerLowest})
	}
	return cmds
}

// applySubscriptions executes a plan against the call. Failures are
// logged and left for the next reconciliation pass; they are never fatal
// to the session.
func applySubscriptions(ctx context.Context, call core.Call, cmds []SubscribeCommand) {
	for _, cmd := range cmds {
		err := call.UpdateReceiveSubscription(ctx, cmd.ID, core.SubscriptionUpdate{
			Subscribed: true,
			Layer:      cmd.Layer,
		})
		if err != nil {
			log.Warn().Err(err).
				Str("module", "wall.enforcer").
				Str("participant", string(cmd.ID)).
				Msg("subscribe failed, will retry next pass")
		}
	}
	if len(cmds) > 0 {
		log.Debug().Str("module", "wall.enforcer").Int("count", len(cmds)).Msg("forced subscriptions")
	}
}
