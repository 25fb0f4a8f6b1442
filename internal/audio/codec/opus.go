package codec

import (
	"errors"

	"gopkg.in/hraban/opus.v2"

	"voice-client/internal/audio/convert"
)

// Valid opus frame sizes at 48kHz (ms): 2.5ms=120, 5ms=240, 10ms=480, 20ms=960, 40ms=1920, 60ms=2880
var ErrInvalidFrameSize = errors.New("invalid opus frame size for given sampleRate")

type Encoder interface {
	Encode(pcm []int16) ([]byte, error)
}

type Decoder interface {
	Decode(packet []byte) ([]int16, error)
}

type OpusEncoder struct {
	enc        *opus.Encoder
	sampleRate int
	channels   int
	frameSize  int // samples per channel per packet (960 for 20ms @48k)
}

// NewOpusEncoder creates an opus encoder.
// app: opus.AppVoIP / opus.AppAudio / opus.AppRestrictedLowDelay
func NewOpusEncoder(sampleRate, channels, frameSize int, app opus.Application) (*OpusEncoder, error) {
	if !convert.IsFrameSizeValid(sampleRate, frameSize) {
		return nil, ErrInvalidFrameSize
	}
	enc, err := opus.NewEncoder(sampleRate, channels, app)
	if err != nil {
		return nil, err
	}
	return &OpusEncoder{
		enc:        enc,
		sampleRate: sampleRate,
		channels:   channels,
		frameSize:  frameSize,
	}, nil
}

// Encode encodes exactly one frame of int16 samples into an opus packet.
func (e *OpusEncoder) Encode(pcm []int16) ([]byte, error) {
	out := make([]byte, 1500) // MTU-safe upper bound for typical opus packet
	n, err := e.enc.Encode(pcm, out)
	if err != nil {
		return nil, err
	}
	pkt := make([]byte, n)
	copy(pkt, out[:n])
	return pkt, nil
}

// EncodeFloat32 splits samples into opus packets.
// samples length must be multiple of frameSize*channels, the remainder is ignored.
func (e *OpusEncoder) EncodeFloat32(samples []float32) ([][]byte, error) {
	frameStride := e.frameSize * e.channels
	nFrames := len(samples) / frameStride
	packets := make([][]byte, 0, nFrames)

	for f := 0; f < nFrames; f++ {
		start := f * frameStride
		frame := samples[start : start+frameStride]

		pkt, err := e.Encode(convert.Float32ToInt16(frame))
		if err != nil {
			return nil, err
		}
		packets = append(packets, pkt)
	}
	return packets, nil
}

type OpusDecoder struct {
	dec        *opus.Decoder
	sampleRate int
	channels   int
	frameSize  int
}

func NewOpusDecoder(sampleRate, channels, frameSize int) (*OpusDecoder, error) {
	if !convert.IsFrameSizeValid(sampleRate, frameSize) {
		return nil, ErrInvalidFrameSize
	}
	dec, err := opus.NewDecoder(sampleRate, channels)
	if err != nil {
		return nil, err
	}
	return &OpusDecoder{
		dec:        dec,
		sampleRate: sampleRate,
		channels:   channels,
		frameSize:  frameSize,
	}, nil
}

// Decode decodes one opus packet into int16 samples.
func (d *OpusDecoder) Decode(packet []byte) ([]int16, error) {
	intBuf := make([]int16, d.frameSize*d.channels)
	n, err := d.dec.Decode(packet, intBuf)
	if err != nil {
		return nil, err
	}
	return intBuf[:n*d.channels], nil
}

// DecodePacket decodes one opus packet -> float32 samples (interleaved).
func (d *OpusDecoder) DecodePacket(packet []byte) ([]float32, error) {
	intBuf, err := d.Decode(packet)
	if err != nil {
		return nil, err
	}
	return convert.Int16ToFloat32(intBuf), nil
}
