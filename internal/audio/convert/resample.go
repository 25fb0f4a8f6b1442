package convert

import (
	"fmt"

	"github.com/dh1tw/gosamplerate"
)

// Resample converts interleaved float32 samples from srcRate to dstRate.
// Browser AudioContexts commonly run at 44100 Hz while the opus path wants
// 48000 Hz, so the web bridge goes through here before encoding.
func Resample(samples []float32, srcRate, dstRate, channels int) ([]float32, error) {
	if srcRate == dstRate {
		return samples, nil
	}
	if srcRate <= 0 || dstRate <= 0 {
		return nil, fmt.Errorf("invalid sample rates: %d -> %d", srcRate, dstRate)
	}

	ratio := float64(dstRate) / float64(srcRate)
	out, err := gosamplerate.Simple(samples, ratio, channels, gosamplerate.SRC_SINC_FASTEST)
	if err != nil {
		return nil, fmt.Errorf("failed to resample %d -> %d: %w", srcRate, dstRate, err)
	}
	return out, nil
}
