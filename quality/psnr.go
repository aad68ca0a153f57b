// Package quality measures how much embedding disturbed a sample buffer.
package quality

import (
	"math"
	"strconv"
)

// MaxSampleValue is the peak value of an 8-bit sample.
const MaxSampleValue = 255.0

// Report summarises the distortion between a cover buffer and its stego
// counterpart.
type Report struct {
	Samples int
	Changed int
	MSE     float64
	// PSNR is in dB; +Inf for identical buffers, 0 when the buffers
	// cannot be compared.
	PSNR float64
}

// Compare walks both buffers once. Changed counts differing positions over
// the common prefix; MSE and PSNR are only set for equal, non-empty
// buffers.
func Compare(cover, stego []byte) Report {
	n := min(len(cover), len(stego))
	r := Report{Samples: n}

	var sum float64
	for i := 0; i < n; i++ {
		if d := float64(cover[i]) - float64(stego[i]); d != 0 {
			r.Changed++
			sum += d * d
		}
	}

	if n == 0 || len(cover) != len(stego) {
		return r
	}

	r.MSE = sum / float64(n)
	if r.MSE == 0 {
		r.PSNR = math.Inf(1)
	} else {
		r.PSNR = 10 * math.Log10(MaxSampleValue*MaxSampleValue/r.MSE)
	}
	return r
}

// Meets reports whether the PSNR reaches threshold dB.
func (r Report) Meets(threshold float64) bool {
	return math.IsInf(r.PSNR, 1) || r.PSNR >= threshold
}

// String renders the PSNR for headers and log lines.
func (r Report) String() string {
	return FormatPSNR(r.PSNR)
}

// CalculatePSNR returns the peak signal-to-noise ratio of stego against
// cover.
func CalculatePSNR(cover, stego []byte) float64 {
	return Compare(cover, stego).PSNR
}

// ChangedSamples counts the positions where the buffers differ.
func ChangedSamples(cover, stego []byte) int {
	return Compare(cover, stego).Changed
}

func ValidatePSNR(psnr, threshold float64) bool {
	return Report{PSNR: psnr}.Meets(threshold)
}

func FormatPSNR(psnr float64) string {
	if math.IsInf(psnr, 1) {
		return "inf"
	}
	return strconv.FormatFloat(psnr, 'f', 2, 64)
}
