// Package analysis provides frequency analysis of recorded run series.
package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform of data by radix-2
// decimation. The input is zero-padded to the next power of two.
func FFT(data []float64) []complex128 {
	padded := make([]complex128, nextPow2(len(data)))
	for i, v := range data {
		padded[i] = complex(v, 0)
	}
	return fft(padded)
}

func fft(x []complex128) []complex128 {
	n := len(x)
	if n <= 1 {
		return x
	}

	even := make([]complex128, n/2)
	odd := make([]complex128, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = x[2*i]
		odd[i] = x[2*i+1]
	}

	feven := fft(even)
	fodd := fft(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}
	return result
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

// PowerSpectrum returns the magnitude of each frequency bin up to the
// Nyquist frequency.
func PowerSpectrum(data []float64) []float64 {
	transformed := FFT(data)
	ps := make([]float64, len(transformed)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(transformed[i])
	}
	return ps
}

// DominantFrequency finds the strongest non-DC bin of the spectrum and
// converts it to hertz given the total sampled duration in seconds.
// It returns zero for series too short to analyze.
func DominantFrequency(spectrum []float64, duration float64) float64 {
	if len(spectrum) < 2 || duration <= 0 {
		return 0
	}
	maxPower, maxIdx := 0.0, 0
	for i := 1; i < len(spectrum); i++ {
		if spectrum[i] > maxPower {
			maxPower = spectrum[i]
			maxIdx = i
		}
	}
	return float64(maxIdx) / duration
}
