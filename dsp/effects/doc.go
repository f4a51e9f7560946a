// Package effects provides the wavetable processing kernels.
//
// Effects in this package:
//   - ChaosFold: Lorenz-attractor driven wavefolder with dry/wet mix.
//   - HarmonicShaper: Polynomial waveshaper that boosts or tames harmonics.
//   - Gain: Linear output gain with hard clamping to [-1, 1].
//
// Every effect validates its parameters through Set* methods, treats
// the input table as read-only, and returns a freshly allocated table.
// Outputs are always finite and clamped to [-1, 1].
package effects
