package config

import (
	"crypto"
	"crypto/tls"
	"net"
	"testing"
	"time"

	"github.com/pion/stun"
)

func TestStunServersFromEnv(t *testing.T) {
	t.Setenv("STUN_SERVERS", "stun:stun.example.org:3478, stun:stun2.example.org:19302")

	stunServers := GetStunServers()
	if len(stunServers) != 2 {
		t.Fatalf("expected 2 STUN servers, got %d", len(stunServers))
	}
	if stunServers[1].URLs[0] != "stun:stun2.example.org:19302" {
		t.Errorf("server list not trimmed: %q", stunServers[1].URLs[0])
	}
}

func TestTurnServersFromEnv(t *testing.T) {
	t.Setenv("TURN_SERVERS", "turn:turn.example.org:3478")
	t.Setenv("TURN_USERNAME", "user")
	t.Setenv("TURN_CREDENTIAL", "pass")

	turnServers := GetTurnServers()
	if len(turnServers) != 1 {
		t.Fatalf("expected 1 TURN server, got %d", len(turnServers))
	}
	if turnServers[0].Username != "user" {
		t.Errorf("TURN server missing username")
	}
	if turnServers[0].Credential != "pass" {
		t.Errorf("TURN server missing credential")
	}
}

func TestTurnServersMissingEnv(t *testing.T) {
	t.Setenv("TURN_SERVERS", "")

	if servers := GetTurnServers(); servers != nil {
		t.Fatalf("expected nil for missing TURN config, got %v", servers)
	}
}

// TestStunBindingRoundTrip runs a STUN binding exchange against a local
// responder to check the request path used for server probing.
func TestStunBindingRoundTrip(t *testing.T) {
	server, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	defer server.Close()

	go func() {
		buf := make([]byte, 1024)
		n, addr, err := server.ReadFrom(buf)
		if err != nil {
			return
		}
		var req stun.Message
		req.Raw = buf[:n]
		if err := req.Decode(); err != nil {
			return
		}
		resp := stun.MustBuild(stun.NewTransactionIDSetter(req.TransactionID), stun.BindingSuccess)
		server.WriteTo(resp.Raw, addr)
	}()

	conn, err := net.Dial("udp", server.LocalAddr().String())
	if err != nil {
		t.Fatalf("failed to dial: %v", err)
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(5 * time.Second))

	m := stun.MustBuild(stun.TransactionID, stun.BindingRequest)
	if _, err := conn.Write(m.Raw); err != nil {
		t.Fatalf("failed to send binding request: %v", err)
	}

	buf := make([]byte, 1024)
	n, err := conn.Read(buf)
	if err != nil {
		t.Fatalf("failed to read binding response: %v", err)
	}

	var response stun.Message
	response.Raw = buf[:n]
	if err := response.Decode(); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Type != stun.BindingSuccess {
		t.Fatalf("unexpected response type: %v", response.Type)
	}
}

func TestGenerateSelfSignedCert(t *testing.T) {
	cert, err := GenerateSelfSignedCert()
	if err != nil {
		t.Fatalf("failed to generate certificate: %v", err)
	}
	if len(cert.Certificate) == 0 {
		t.Fatal("certificate has no DER blocks")
	}
	signer, ok := cert.PrivateKey.(crypto.Signer)
	if !ok {
		t.Fatalf("certificate private key cannot sign: %T", cert.PrivateKey)
	}
	if signer.Public() == nil {
		t.Fatal("certificate private key has no public key")
	}

	// usable in a TLS config
	cfg := &tls.Config{Certificates: []tls.Certificate{cert}}
	if len(cfg.Certificates) != 1 {
		t.Fatal("certificate not accepted by tls.Config")
	}
}
