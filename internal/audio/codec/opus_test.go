package codec

import (
	"errors"
	"testing"

	"gopkg.in/hraban/opus.v2"
)

func TestNewOpusEncoderRejectsBadFrameSize(t *testing.T) {
	_, err := NewOpusEncoder(48000, 1, 1000, opus.AppVoIP)
	if !errors.Is(err, ErrInvalidFrameSize) {
		t.Errorf("err = %v, want ErrInvalidFrameSize", err)
	}
}

func TestNewOpusDecoderRejectsBadFrameSize(t *testing.T) {
	_, err := NewOpusDecoder(48000, 1, 961)
	if !errors.Is(err, ErrInvalidFrameSize) {
		t.Errorf("err = %v, want ErrInvalidFrameSize", err)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	enc, err := NewOpusEncoder(48000, 1, 960, opus.AppVoIP)
	if err != nil {
		t.Fatalf("NewOpusEncoder: %v", err)
	}
	dec, err := NewOpusDecoder(48000, 1, 960)
	if err != nil {
		t.Fatalf("NewOpusDecoder: %v", err)
	}

	frame := make([]int16, 960)
	for i := range frame {
		frame[i] = int16(i % 512)
	}

	pkt, err := enc.Encode(frame)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(pkt) == 0 {
		t.Fatal("Encode returned empty packet")
	}

	decoded, err := dec.Decode(pkt)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(decoded) != 960 {
		t.Errorf("decoded %d samples, want 960", len(decoded))
	}
}

func TestEncodeFloat32IgnoresRemainder(t *testing.T) {
	enc, err := NewOpusEncoder(48000, 1, 960, opus.AppVoIP)
	if err != nil {
		t.Fatalf("NewOpusEncoder: %v", err)
	}

	// two full frames plus a partial one
	samples := make([]float32, 960*2+100)
	packets, err := enc.EncodeFloat32(samples)
	if err != nil {
		t.Fatalf("EncodeFloat32: %v", err)
	}
	if len(packets) != 2 {
		t.Errorf("packets = %d, want 2", len(packets))
	}
}
