package core

import "context"

// LayerLowest is the provider's lowest-quality simulcast layer. Walls
// always request it to keep sixty concurrent feeds inside a residential
// downlink.
const LayerLowest = 0

// CaptureProfile is the camera capture request on the publishing side.
type CaptureProfile struct {
	Width     int
	Height    int
	FrameRate int
}

// EncodeProfile constrains the publisher's encoder. Smaller capture
// resolutions get lower bitrate ceilings.
type EncodeProfile struct {
	MaxBitrateKbps        int
	MaxFrameRate          int
	ScaleResolutionDownBy float64
}

// SubscriptionUpdate is one receive-side command: subscribe (or not) to a
// participant's video at a given layer.
type SubscriptionUpdate struct {
	Subscribed bool
	Layer      int
}

// Call is the room handle exposed by the media provider. All methods are
// asynchronous operations completed without blocking the coordinator's
// event loop; events may interleave arbitrarily between a call and its
// acknowledgment.
//
// One Call is a single process-wide resource; CallLifecycle serializes
// create and destroy.
type Call interface {
	// Join connects to the room with an opaque credential from the issuer.
	Join(ctx context.Context, roomURL, credential string) error
	Leave(ctx context.Context) error
	// Destroy releases the handle entirely. Events() is closed afterwards.
	Destroy(ctx context.Context) error

	// Participants returns a fresh snapshot of the provider's live table,
	// local participant included.
	Participants() []Participant

	SetVideoCapture(ctx context.Context, p CaptureProfile) error
	SetLocalVideo(ctx context.Context, enabled bool) error
	SetLocalAudio(ctx context.Context, enabled bool) error
	UpdateSendEncoding(ctx context.Context, p EncodeProfile) error
	UpdateReceiveSubscription(ctx context.Context, id ParticipantID, u SubscriptionUpdate) error

	// Events delivers provider events until Destroy.
	Events() <-chan Event
}

// CallFactory creates a fresh Call handle. Used by CallLifecycle so a
// pending destroy can be awaited before the next create.
type CallFactory func() (Call, error)
