// SPDX-License-Identifier: MIT

// Package wavio streams uncompressed PCM WAVE audio between byte streams so
// that signal processing effects can be chained through pipes or composed
// in-process.
//
// The codec itself lives in the wav subpackage; this package adds the linear
// piping layer on top: decode frames from an input, run each frame through a
// transform, re-encode to an output.
//
// # Quick Start
//
// An effect program is one call:
//
//	// Halve the volume of whatever arrives on stdin.
//	_, err := wavio.Process(os.Stdout, os.Stdin, wavio.Gain(0.5))
//
// Several such programs compose with shell pipes:
//
//	quiet <in.wav | mono >out.wav
//
// Process probes the output for seekability. Writing to a file produces exact
// header sizes; writing to a pipe produces sentinel sizes that downstream
// readers (including this package) handle by reading until the stream ends.
//
// # Transforms
//
// A transform is a plain function from frame to frame:
//
//	type FrameFunc func(frame []int) []int
//
// Gain and MonoMix are provided; anything with the same shape plugs in. A
// transform may change the channel count (MonoMix does); the output format is
// derived from the first transformed frame. Out-of-range samples are clamped
// by the writer, so transforms do not need their own limiter.
//
// # Lower Level
//
// For sample-accurate control, or go-audio interop, use wav.NewReader and
// wav.NewWriter directly. See the wav subpackage documentation.
package wavio
