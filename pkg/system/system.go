package system

import (
	"crypto/rand"
	"encoding/hex"
	"net"
	"os"
)

func GenerateSessionID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// GetLocalIP returns the first non-loopback IPv4 address of this machine,
// or "" if none is found.
func GetLocalIP() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return ""
	}
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		if ip4 := ipNet.IP.To4(); ip4 != nil {
			return ip4.String()
		}
	}
	return ""
}

func GetWebPort() string {
	return os.Getenv("WEB_PORT")
}
