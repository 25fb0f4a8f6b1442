package base

import (
	"context"
	"fmt"

	dht "github.com/libp2p/go-libp2p-kad-dht"
	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/network"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/libp2p/go-libp2p/core/protocol"
	"github.com/multiformats/go-multiaddr"
	"github.com/rs/zerolog/log"
)

var (
	RendezvousString string                = "voice-client-meet-8c4f1d20-3b9e-4a51-9c77-5e2d8f0a61b4"
	BootstrapPeers   []multiaddr.Multiaddr = dht.DefaultBootstrapPeers
	ListenAddresses  []multiaddr.Multiaddr = []multiaddr.Multiaddr{}
	ProtocolID       string                = "/voice-client/connection/1.0.0"
)

type DiscoverInterface interface {
	Start(ctx context.Context) error
}

type DiscoverConfig struct {
	ProtocolId       string
	RendezvousString string
	ListenAddresses  []multiaddr.Multiaddr
	BootstrapPeers   []multiaddr.Multiaddr
	ListenHost       string
	ListenPort       int
}

func NewDefaultDiscoverConfig() *DiscoverConfig {
	return &DiscoverConfig{
		ProtocolId:       ProtocolID,
		RendezvousString: RendezvousString,
		ListenAddresses:  ListenAddresses,
		BootstrapPeers:   dht.DefaultBootstrapPeers,
		ListenHost:       "0.0.0.0",
		ListenPort:       0,
	}
}

type StreamHandler func(stream network.Stream)

// Discover holds the shared discovery config and the stream handlers
// that receive outgoing and incoming signaling streams.
type Discover struct {
	Cfg       *DiscoverConfig
	OutStream func(stream network.Stream)
	InStream  func(stream network.Stream)
}

func NewDiscoverWithDefaultCfg(outStream, inStream StreamHandler) (*Discover, error) {
	if outStream == nil || inStream == nil {
		return nil, fmt.Errorf("stream handlers cannot be nil")
	}
	cfg := NewDefaultDiscoverConfig()
	return &Discover{Cfg: cfg, OutStream: outStream, InStream: inStream}, nil
}

// ProcessOnePeer tries to connect to one discovered peer. Only the host
// with the larger peer ID dials, so exactly one side of a pair opens
// the signaling stream and becomes the offerer.
func (d *Discover) ProcessOnePeer(ctx context.Context, host host.Host, peer peer.AddrInfo) (shouldExit bool) {

	if peer.ID >= host.ID() {
		return shouldExit
	}

	log.Debug().Str("peer", peer.String()).Msg("found peer")
	if err := host.Connect(ctx, peer); err != nil {
		log.Warn().Str("peer", peer.String()).Err(err).Msg("Connection failed")
		return shouldExit
	}

	stream, err := host.NewStream(ctx, peer.ID, protocol.ID(d.Cfg.ProtocolId))
	if err != nil {
		log.Warn().Str("peer", peer.String()).Err(err).Msg("Stream open failed")
		return shouldExit
	}
	go d.OutStream(stream) // process outgoing stream

	log.Info().Str("peer", peer.String()).Msg("Connected to peer")

	shouldExit = true
	return shouldExit
}
