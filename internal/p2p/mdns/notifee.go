package mdns

import (
	"github.com/libp2p/go-libp2p/core/peer"
)

type discoveryNotifee struct {
	PeerChan chan peer.AddrInfo
}

// HandlePeerFound forwards each discovered peer to PeerChan.
func (n *discoveryNotifee) HandlePeerFound(pi peer.AddrInfo) {
	n.PeerChan <- pi
}
