package rtc

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"

	"voice-client/internal/audio/pipeline"
	"voice-client/pkg/config"
	"voice-client/pkg/system"
)

// Call is one voice call: a pion peer connection with one outbound audio
// track, signaled over the p2p discovery streams.
type Call struct {
	Pipeline      *pipeline.AudioPipeline
	StatusChannel chan error
	SessionID     string

	mu sync.Mutex
	pc *webrtc.PeerConnection
}

func NewCall(pipeline *pipeline.AudioPipeline) *Call {
	return &Call{
		Pipeline:      pipeline,
		StatusChannel: make(chan error, 1),
		SessionID:     system.GenerateSessionID(),
	}
}

// PeerConnection returns the live peer connection, or nil before Connect /
// after Close.
func (c *Call) PeerConnection() *webrtc.PeerConnection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pc
}

// Connect builds the peer connection, attaches the outbound audio track and
// runs signaling until the call is established. attempt selects the NAT
// traversal config (1 = STUN only, otherwise STUN+TURN).
func (c *Call) Connect(ctx context.Context, attempt int, outboundTrack webrtc.TrackLocal) error {
	log.Info().Int("attempt", attempt).Msg("Trying connection with config attempt")
	rtcConfig := createConfigForNATType(attempt)

	settingEngine := webrtc.SettingEngine{}
	settingEngine.SetICETimeouts(
		time.Second*60, // Disconnected timeout upped for double NAT
		time.Second*30, // Failed timeout
		time.Second*5,  // Keepalive interval
	)
	settingEngine.SetReceiveMTU(1500)

	settingEngine.SetNetworkTypes([]webrtc.NetworkType{
		webrtc.NetworkTypeUDP4,
		webrtc.NetworkTypeUDP6,
	})

	mediaEngine := &webrtc.MediaEngine{}
	err := mediaEngine.RegisterCodec(webrtc.RTPCodecParameters{
		RTPCodecCapability: webrtc.RTPCodecCapability{
			MimeType:    webrtc.MimeTypeOpus,
			ClockRate:   48000,
			Channels:    1,
			SDPFmtpLine: "minptime=10;useinbandfec=1;maxaveragebitrate=64000;stereo=0;sprop-stereo=0;cbr=0",
		},
		PayloadType: 111,
	}, webrtc.RTPCodecTypeAudio)
	if err != nil {
		return fmt.Errorf("failed to register Opus codec: %w", err)
	}

	api := webrtc.NewAPI(
		webrtc.WithMediaEngine(mediaEngine),
		webrtc.WithSettingEngine(settingEngine),
	)

	pc, err := api.NewPeerConnection(rtcConfig)
	if err != nil {
		return fmt.Errorf("failed to create PeerConnection: %w", err)
	}

	rtpSender, err := pc.AddTrack(outboundTrack)
	if err != nil {
		pc.Close()
		return fmt.Errorf("failed to add audio track: %w", err)
	}
	log.Info().Str("track_id", rtpSender.Track().ID()).Msg("Audio track added")

	c.mu.Lock()
	c.pc = pc
	c.mu.Unlock()

	handlers := EventHandlers{statusChannel: c.StatusChannel, pipeline: c.Pipeline}
	handlers.setupEventHandlers(pc)

	SetActiveCall(c)

	if err := runSignaling(ctx, c.SessionID, pc); err != nil {
		c.Close()
		return fmt.Errorf("signaling failed: %w", err)
	}
	return nil
}

// Close tears down the peer connection and unpublishes the call.
func (c *Call) Close() {
	if ActiveCall() == c {
		SetActiveCall(nil)
	}

	c.mu.Lock()
	pc := c.pc
	c.pc = nil
	c.mu.Unlock()

	if pc != nil {
		if err := pc.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close peer connection")
		}
	}
}

func createConfigForNATType(attempt int) webrtc.Configuration {
	stunServers := config.GetStunServers()
	turnServers := config.GetTurnServers()

	rtcConfig := webrtc.Configuration{
		BundlePolicy:  webrtc.BundlePolicyMaxBundle,
		RTCPMuxPolicy: webrtc.RTCPMuxPolicyRequire,
	}

	switch attempt {
	case 1:
		log.Info().Msg("Configured only with STUN servers")
		rtcConfig.ICEServers = stunServers
		rtcConfig.ICECandidatePoolSize = 15

	default:
		log.Info().Msg("Configured with STUN and TURN servers")
		rtcConfig.ICEServers = append(stunServers, turnServers...)
		rtcConfig.ICECandidatePoolSize = 25
	}

	return rtcConfig
}
