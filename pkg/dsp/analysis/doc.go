// Package analysis provides offline measurements of oscillator output:
// windowed magnitude spectra, alias energy relative to a harmonic series,
// and peak / RMS levels.
//
// Spectra are computed with gonum's real FFT. The measurements allocate
// and are meant for tools and tests, not the audio path.
package analysis
