// Package session maintains the WebSocket connection to the realtime voice
// endpoint and the process-wide handle other components resolve it through.
package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/coder/websocket"
	"github.com/rs/zerolog/log"
)

// ErrInitBlocked is returned by Connect while voice is disabled.
var ErrInitBlocked = errors.New("voice session initialization is blocked: voice is disabled")

// Config for one realtime session.
type Config struct {
	URL    string // WebSocket endpoint
	APIKey string // bearer token, empty for local endpoints
}

// ConfigFromEnv reads the endpoint settings the way the rest of the app
// reads configuration.
func ConfigFromEnv() Config {
	return Config{
		URL:    os.Getenv("REALTIME_URL"),
		APIKey: os.Getenv("REALTIME_API_KEY"),
	}
}

// RealtimeSession is a live connection to the realtime voice endpoint. It
// satisfies the coordinator's sender and muter capabilities.
type RealtimeSession struct {
	conn    *websocket.Conn
	audioCh chan []byte

	mu     sync.Mutex
	muted  bool
	closed bool

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// Connect dials the realtime endpoint and applies the initial voice
// detection configuration. It refuses to start while session
// initialization is blocked.
func Connect(ctx context.Context, cfg Config) (*RealtimeSession, error) {
	if InitBlocked() {
		return nil, ErrInitBlocked
	}
	if cfg.URL == "" {
		return nil, errors.New("realtime endpoint URL is empty")
	}

	var header http.Header
	if cfg.APIKey != "" {
		header = http.Header{"Authorization": []string{"Bearer " + cfg.APIKey}}
	}

	conn, _, err := websocket.Dial(ctx, cfg.URL, &websocket.DialOptions{HTTPHeader: header})
	if err != nil {
		return nil, fmt.Errorf("failed to dial realtime endpoint: %w", err)
	}

	sessCtx, cancel := context.WithCancel(context.Background())
	rs := &RealtimeSession{
		conn:    conn,
		audioCh: make(chan []byte, 64),
		ctx:     sessCtx,
		cancel:  cancel,
	}

	if err := rs.Send(VoiceDetectionUpdate(true)); err != nil {
		rs.Close()
		return nil, fmt.Errorf("failed to send initial session update: %w", err)
	}

	go rs.receiveLoop()

	log.Info().Str("url", cfg.URL).Msg("Realtime session connected")
	return rs, nil
}

// Send marshals the event and writes it as one text frame.
func (rs *RealtimeSession) Send(ev Event) error {
	rs.mu.Lock()
	if rs.closed {
		rs.mu.Unlock()
		return errors.New("session closed")
	}
	rs.mu.Unlock()

	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return rs.conn.Write(rs.ctx, websocket.MessageText, data)
}

// SendAudio forwards one PCM16 chunk to the endpoint. Chunks are silently
// dropped while the session is muted.
func (rs *RealtimeSession) SendAudio(pcm []byte) error {
	rs.mu.Lock()
	muted := rs.muted
	rs.mu.Unlock()
	if muted {
		return nil
	}

	return rs.Send(Event{
		Type:  TypeInputAudioAppend,
		Audio: base64.StdEncoding.EncodeToString(pcm),
	})
}

// Mute stops forwarding input audio and clears whatever the server has
// buffered; Mute(false) resumes forwarding.
func (rs *RealtimeSession) Mute(muted bool) error {
	rs.mu.Lock()
	rs.muted = muted
	rs.mu.Unlock()

	if muted {
		return rs.Send(ClearInputAudio())
	}
	return nil
}

// Audio returns the channel carrying decoded model audio. Closed when the
// receive loop exits.
func (rs *RealtimeSession) Audio() <-chan []byte {
	return rs.audioCh
}

func (rs *RealtimeSession) receiveLoop() {
	defer close(rs.audioCh)

	for {
		_, data, err := rs.conn.Read(rs.ctx)
		if err != nil {
			if rs.ctx.Err() == nil {
				log.Warn().Err(err).Msg("Realtime session read failed")
			}
			return
		}

		var evt ServerEvent
		if err := json.Unmarshal(data, &evt); err != nil {
			log.Debug().Err(err).Msg("Skipping unparseable server event")
			continue
		}

		switch evt.Type {
		case TypeAudioDelta:
			if evt.Delta == "" {
				continue
			}
			audio, err := base64.StdEncoding.DecodeString(evt.Delta)
			if err != nil || len(audio) == 0 {
				continue
			}
			select {
			case rs.audioCh <- audio:
			case <-rs.ctx.Done():
				return
			}

		case TypeError:
			msg := "unknown error"
			if evt.Error != nil && evt.Error.Message != "" {
				msg = evt.Error.Message
			}
			log.Warn().Str("error", msg).Msg("Realtime endpoint reported error")
		}
	}
}

// Close terminates the session. Idempotent.
func (rs *RealtimeSession) Close() error {
	rs.closeOnce.Do(func() {
		rs.mu.Lock()
		rs.closed = true
		rs.mu.Unlock()

		rs.cancel()
		rs.conn.Close(websocket.StatusNormalClosure, "session closed")
		log.Info().Msg("Realtime session closed")
	})
	return nil
}
