package discovery

import (
	"context"
	"time"

	"voice-client/internal/p2p/base"
	"voice-client/internal/p2p/dht"
	"voice-client/internal/p2p/mdns"

	"github.com/rs/zerolog/log"
)

// DiscoverManager tries mDNS first and falls back to the DHT when no
// local peer shows up in time.
type DiscoverManager struct {
	baseDicover base.Discover
}

func NewDiscover(outStream, inStream base.StreamHandler) (*DiscoverManager, error) {
	baseDiscover, err := base.NewDiscoverWithDefaultCfg(outStream, inStream)
	if err != nil {
		return nil, err
	}
	return &DiscoverManager{*baseDiscover}, nil
}

func (d *DiscoverManager) StartDiscovery(ctx context.Context) error {
	mdnsCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()
	mdnsDiscover := mdns.MDNSDiscovery{Discover: d.baseDicover}
	err := mdnsDiscover.Start(mdnsCtx)
	if err == nil {
		return nil
	}
	cancel()
	log.Warn().Err(err).Msg("mDNS discovery failed, falling back to DHT")
	dhtDiscover := dht.DhtDiscover{Discover: d.baseDicover}
	return dhtDiscover.Start(ctx)
}
