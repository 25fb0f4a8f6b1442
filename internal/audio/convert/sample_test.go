package convert

import "testing"

func TestFloat32ToInt16Clamps(t *testing.T) {
	got := Float32ToInt16([]float32{2.0, -2.0, 0, 1.0, -1.0})
	want := []int16{32767, -32767, 0, 32767, -32767}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestInt16BytesRoundTrip(t *testing.T) {
	src := []int16{0, 1, -1, 32767, -32768, 12345}
	got := BytesToInt16(Int16ToBytes(src))
	if len(got) != len(src) {
		t.Fatalf("length = %d, want %d", len(got), len(src))
	}
	for i := range src {
		if got[i] != src[i] {
			t.Errorf("sample %d = %d, want %d", i, got[i], src[i])
		}
	}
}

func TestBytesToInt16DropsOddByte(t *testing.T) {
	if got := BytesToInt16([]byte{0x01, 0x02, 0x03}); len(got) != 1 {
		t.Errorf("length = %d, want 1", len(got))
	}
}

func TestFloat32BytesRoundTrip(t *testing.T) {
	src := []float32{0, 0.5, -0.5, 1, -1}
	got := BytesToFloat32(Float32ToBytes(src))
	for i := range src {
		if got[i] != src[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], src[i])
		}
	}
}

func TestIsFrameSizeValid(t *testing.T) {
	tests := []struct {
		sampleRate int
		frameSize  int
		want       bool
	}{
		{48000, 960, true},
		{48000, 2880, true},
		{48000, 1000, false},
		{16000, 320, true},
		{8000, 160, true},
		{8000, 111, false},
		{24000, 480, true},  // generic path, 20ms
		{24000, 500, false}, // generic path, not a valid frame duration
	}

	for _, tt := range tests {
		if got := IsFrameSizeValid(tt.sampleRate, tt.frameSize); got != tt.want {
			t.Errorf("IsFrameSizeValid(%d, %d) = %v, want %v", tt.sampleRate, tt.frameSize, got, tt.want)
		}
	}
}
