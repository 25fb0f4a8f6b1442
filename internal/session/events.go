package session

// Client event types of the realtime voice protocol.
const (
	TypeSessionUpdate    = "session.update"
	TypeResponseCancel   = "response.cancel"
	TypeInputAudioAppend = "input_audio_buffer.append"
	TypeInputAudioClear  = "input_audio_buffer.clear"
)

// Server event types.
const (
	TypeAudioDelta = "response.audio.delta"
	TypeError      = "error"
)

// Fixed server-side voice activity detection parameters. The endpoint
// rejects partial turn_detection updates, so every session.update carries
// the complete shape.
const (
	VADType              = "server_vad"
	VADThreshold         = 0.5
	VADPrefixPaddingMs   = 300
	VADSilenceDurationMs = 500
)

// Event is one client->server message. Only the fields relevant to its Type
// are populated.
type Event struct {
	Type    string  `json:"type"`
	Session *Params `json:"session,omitempty"`
	Audio   string  `json:"audio,omitempty"` // base64-encoded PCM16
}

// Params is the session configuration payload of a session.update event.
type Params struct {
	TurnDetection *TurnDetection `json:"turn_detection"`
}

// TurnDetection carries the full voice-activity-detection configuration.
// No field is optional on the wire.
type TurnDetection struct {
	Type              string  `json:"type"`
	Threshold         float64 `json:"threshold"`
	PrefixPaddingMs   int     `json:"prefix_padding_ms"`
	SilenceDurationMs int     `json:"silence_duration_ms"`
	CreateResponse    bool    `json:"create_response"`
}

// ServerEvent is one server->client message.
type ServerEvent struct {
	Type  string       `json:"type"`
	Delta string       `json:"delta,omitempty"` // base64 audio for response.audio.delta
	Error *ServerError `json:"error,omitempty"`
}

// ServerError is the nested error object of an error event.
type ServerError struct {
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// CancelResponse builds the event that aborts the in-flight model response.
func CancelResponse() Event {
	return Event{Type: TypeResponseCancel}
}

// ClearInputAudio builds the event that drops buffered input audio on the server.
func ClearInputAudio() Event {
	return Event{Type: TypeInputAudioClear}
}

// VoiceDetectionUpdate builds a session.update carrying the complete
// turn-detection configuration with automatic response generation switched
// on or off.
func VoiceDetectionUpdate(createResponse bool) Event {
	return Event{
		Type: TypeSessionUpdate,
		Session: &Params{
			TurnDetection: &TurnDetection{
				Type:              VADType,
				Threshold:         VADThreshold,
				PrefixPaddingMs:   VADPrefixPaddingMs,
				SilenceDurationMs: VADSilenceDurationMs,
				CreateResponse:    createResponse,
			},
		},
	}
}
