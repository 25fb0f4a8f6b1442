package connection

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pion/webrtc/v4"
	"github.com/pion/webrtc/v4/pkg/media"
	"github.com/rs/zerolog/log"

	"voice-client/internal/audio/codec"
	"voice-client/internal/audio/config"
	"voice-client/internal/audio/convert"
)

// WebsocketHandler bridges a browser audio page and the call: inbound
// float32 samples are resampled to the opus rate, encoded and written to the
// outbound track; frames arriving on Tap are resampled back to the browser
// rate and sent out. The handler is also a playback sink, so muting it cuts
// the browser-bound audio like any other output.
type WebsocketHandler struct {
	Encoder *codec.OpusEncoder
	Track   *webrtc.TrackLocalStaticSample
	Tap     chan []int16

	writeMu   sync.Mutex
	sampleBuf []float32
	frameSize int

	stateMu sync.Mutex
	muted   bool
	paused  bool
}

func NewWebsocketHandler(encoder *codec.OpusEncoder, track *webrtc.TrackLocalStaticSample, tap chan []int16) *WebsocketHandler {
	return &WebsocketHandler{
		Encoder:   encoder,
		Track:     track,
		Tap:       tap,
		frameSize: config.FrameSamplesOpus,
	}
}

func (wh *WebsocketHandler) SetMuted(muted bool) {
	wh.stateMu.Lock()
	wh.muted = muted
	wh.stateMu.Unlock()
}

func (wh *WebsocketHandler) Pause() {
	wh.stateMu.Lock()
	wh.paused = true
	wh.stateMu.Unlock()
}

func (wh *WebsocketHandler) Resume() {
	wh.stateMu.Lock()
	wh.paused = false
	wh.stateMu.Unlock()
}

func (wh *WebsocketHandler) silenced() bool {
	wh.stateMu.Lock()
	defer wh.stateMu.Unlock()
	return wh.muted || wh.paused
}

var upgrader = websocket.Upgrader{
	CheckOrigin:       func(r *http.Request) bool { return true },
	ReadBufferSize:    1024 * 10,
	WriteBufferSize:   1024 * 10,
	EnableCompression: false, // no compression for audio
}

// forwardToBrowser sends tapped playback frames to the connected browser at
// its native sample rate.
func (wh *WebsocketHandler) forwardToBrowser(conn *websocket.Conn) {
	for frame := range wh.Tap {
		if wh.silenced() {
			continue
		}

		samples := convert.Int16ToFloat32(frame)
		resampled, err := convert.Resample(samples, config.SampleRateOpus, config.SampleRateBrowser, 1)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to resample for browser")
			continue
		}

		wh.writeMu.Lock()
		err = conn.WriteMessage(websocket.BinaryMessage, convert.Float32ToBytes(resampled))
		wh.writeMu.Unlock()
		if err != nil {
			log.Warn().Err(err).Msg("Websocket write error")
			return
		}
	}
}

func (wh *WebsocketHandler) HandleWebsocketMessage(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "Failed to upgrade to WebSocket", http.StatusInternalServerError)
		return
	}
	defer conn.Close()

	if wh.Tap != nil {
		go wh.forwardToBrowser(conn)
	}

	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			log.Warn().Err(err).Msg("Websocket read error")
			break
		}

		if messageType != websocket.BinaryMessage {
			log.Debug().Int("type", messageType).Msg("Ignoring non-binary message")
			continue
		}
		if wh.silenced() {
			continue
		}

		samples := convert.BytesToFloat32(message)
		if len(samples) == 0 {
			continue
		}

		resampled, err := convert.Resample(samples, config.SampleRateBrowser, config.SampleRateOpus, 1)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to resample browser audio")
			continue
		}

		wh.sampleBuf = append(wh.sampleBuf, resampled...)
		wh.drainFrames()
	}
}

// drainFrames encodes every complete frame in the buffer onto the outbound
// track.
func (wh *WebsocketHandler) drainFrames() {
	frameDuration := config.FrameDuration * time.Millisecond

	for len(wh.sampleBuf) >= wh.frameSize {
		frame := wh.sampleBuf[:wh.frameSize]

		pkts, err := wh.Encoder.EncodeFloat32(frame)
		if err != nil {
			log.Warn().Err(err).Msg("Encode error")
			break
		}

		for _, pkt := range pkts {
			if err := wh.Track.WriteSample(media.Sample{Data: pkt, Duration: frameDuration}); err != nil {
				log.Warn().Err(err).Msg("Failed to write browser frame to track")
			}
		}

		wh.sampleBuf = wh.sampleBuf[wh.frameSize:]
	}
}
