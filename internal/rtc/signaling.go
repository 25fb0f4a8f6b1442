package rtc

import (
	"context"
	"fmt"
	"time"

	"voice-client/internal/p2p/discovery"
	"voice-client/internal/p2p/signaling"
	"voice-client/internal/rtc/negotiator"

	"github.com/libp2p/go-libp2p/core/network"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"
)

const handshakeTimeout = 30 * time.Second

// runSignaling discovers a peer, establishes the signaling stream and
// runs SDP negotiation. The side that dialed the stream sends the
// offer; the side that accepted it answers.
func runSignaling(ctx context.Context, sessionID string, pc *webrtc.PeerConnection) error {
	handshake := signaling.NewHandshake()
	sh := negotiator.NewStreamHandler(sessionID, handshake.MarkReady)
	neg := negotiator.NewNegotiator(pc, sh)
	neg.SetupCallbacks()

	role := make(chan bool, 2)
	outStream := func(stream network.Stream) {
		sh.HandleStream(stream)
		role <- true
	}
	inStream := func(stream network.Stream) {
		sh.HandleStream(stream)
		role <- false
	}

	dscvr, err := discovery.NewDiscover(outStream, inStream)
	if err != nil {
		return fmt.Errorf("failed to create discovery: %w", err)
	}

	discoveryErr := make(chan error, 1)
	go func() {
		discoveryErr <- dscvr.StartDiscovery(ctx)
	}()

	var initiator bool
	select {
	case initiator = <-role:
	case err := <-discoveryErr:
		if err != nil {
			return fmt.Errorf("failed to start discovery: %w", err)
		}
		// discovery returned before the stream handler fired
		select {
		case initiator = <-role:
		case <-ctx.Done():
			return ctx.Err()
		}
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-handshake.Ready:
		log.Info().Bool("initiator", initiator).Msg("Signaling channel established")
	case <-time.After(handshakeTimeout):
		return fmt.Errorf("timeout waiting for signaling handshake")
	case <-ctx.Done():
		return ctx.Err()
	}

	if initiator {
		return neg.CreateOffer(ctx)
	}
	return neg.AcceptOffer(ctx)
}
