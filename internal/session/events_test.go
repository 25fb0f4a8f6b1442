package session

import (
	"encoding/json"
	"testing"
)

// The endpoint rejects partial turn_detection updates, so the marshaled
// session.update must always carry every field, including zero-valued ones.
func TestVoiceDetectionUpdateCarriesFullShape(t *testing.T) {
	for _, createResponse := range []bool{true, false} {
		data, err := json.Marshal(VoiceDetectionUpdate(createResponse))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}

		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if raw["type"] != TypeSessionUpdate {
			t.Errorf("type = %v, want %q", raw["type"], TypeSessionUpdate)
		}

		sess, ok := raw["session"].(map[string]any)
		if !ok {
			t.Fatalf("session payload missing: %s", data)
		}
		td, ok := sess["turn_detection"].(map[string]any)
		if !ok {
			t.Fatalf("turn_detection missing: %s", data)
		}

		if td["type"] != VADType {
			t.Errorf("turn_detection.type = %v, want %q", td["type"], VADType)
		}
		if td["threshold"] != VADThreshold {
			t.Errorf("threshold = %v, want %v", td["threshold"], VADThreshold)
		}
		if td["prefix_padding_ms"] != float64(VADPrefixPaddingMs) {
			t.Errorf("prefix_padding_ms = %v, want %d", td["prefix_padding_ms"], VADPrefixPaddingMs)
		}
		if td["silence_duration_ms"] != float64(VADSilenceDurationMs) {
			t.Errorf("silence_duration_ms = %v, want %d", td["silence_duration_ms"], VADSilenceDurationMs)
		}
		if got, present := td["create_response"]; !present || got != createResponse {
			t.Errorf("create_response = %v (present=%v), want %v", got, present, createResponse)
		}
	}
}

func TestCancelResponseOmitsSessionPayload(t *testing.T) {
	data, err := json.Marshal(CancelResponse())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"type":"response.cancel"}` {
		t.Errorf("unexpected payload: %s", data)
	}
}
